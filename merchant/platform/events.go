package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	eventOfferChanged   = "offer_changed"
	eventSessionExpired = "session_expired"

	defaultPingInterval = 20 * time.Second
)

// Handlers receive decoded platform events. Either field may be nil.
type Handlers struct {
	OfferChanged   func(ctx context.Context, change StateChange)
	SessionExpired func(ctx context.Context)
}

type event struct {
	Type string `json:"type"`
	StateChange
}

// EventStream keeps a websocket to the trading gateway open and redials on failure.
type EventStream struct {
	url          string
	token        string
	backoff      Backoff
	pingInterval time.Duration
	dialer       *websocket.Dialer
	sleep        func(ctx context.Context, d time.Duration) error
}

func NewEventStream(url, token string) *EventStream {
	return &EventStream{
		url:          url,
		token:        token,
		backoff:      DefaultBackoff(),
		pingInterval: defaultPingInterval,
		dialer:       websocket.DefaultDialer,
		sleep:        sleepCtx,
	}
}

// Run blocks until ctx is done, delivering events to h.
func (s *EventStream) Run(ctx context.Context, h Handlers) error {
	attempt := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		header := http.Header{}
		if s.token != "" {
			header.Set("Authorization", "Bearer "+s.token)
		}
		conn, _, err := s.dialer.DialContext(ctx, s.url, header)
		if err != nil {
			attempt++
			wait := s.backoff.Next(attempt)
			slog.Warn("Event stream dial failed",
				slog.String("type", "sys"),
				slog.Int("attempt", attempt),
				slog.Duration("retry_in", wait),
				slog.Any("error", err))
			if err := s.sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		attempt = 0
		slog.Info("Event stream connected", slog.String("type", "sys"))

		err = s.session(ctx, conn, h)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}

		attempt++
		wait := s.backoff.Next(attempt)
		slog.Warn("Event stream disconnected",
			slog.String("type", "sys"),
			slog.Duration("retry_in", wait),
			slog.Any("error", err))
		if err := s.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (s *EventStream) session(ctx context.Context, conn *websocket.Conn, h Handlers) error {
	var writeMu sync.Mutex
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		t := time.NewTicker(s.pingInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = conn.Close()
				return
			case <-stop:
				return
			case <-t.C:
				writeMu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(3*time.Second))
				writeMu.Unlock()
				if err != nil {
					_ = conn.Close()
					return
				}
			}
		}
	}()

	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			if errors.Is(err, websocket.ErrCloseSent) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("event stream read: %w", err)
		}
		if typ != websocket.TextMessage || len(msg) == 0 {
			continue
		}

		var ev event
		if err := json.Unmarshal(msg, &ev); err != nil {
			slog.Warn("Dropping undecodable platform event",
				slog.String("type", "sys"),
				slog.Any("error", err))
			continue
		}
		s.deliver(ctx, ev, h)
	}
}

func (s *EventStream) deliver(ctx context.Context, ev event, h Handlers) {
	switch ev.Type {
	case eventOfferChanged:
		if h.OfferChanged != nil {
			h.OfferChanged(ctx, ev.StateChange)
		}
	case eventSessionExpired:
		if h.SessionExpired != nil {
			h.SessionExpired(ctx)
		}
	default:
		slog.Debug("Ignoring platform event",
			slog.String("type", "sys"),
			slog.String("event", ev.Type))
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
