package platform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

const refreshTimeout = 30 * time.Second

// StateStore persists the opaque resume blob between process restarts.
type StateStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}

// Session owns the single platform login of a merchant process. Concurrent Refresh
// calls share one login round trip.
type Session struct {
	client Client
	store  StateStore

	group     singleflight.Group
	mu        sync.RWMutex
	creds     Credentials
	refreshes atomic.Int64
}

func NewSession(client Client, store StateStore) *Session {
	return &Session{client: client, store: store}
}

// Start restores any saved resume state and performs the first login.
func (s *Session) Start(ctx context.Context) error {
	if s.store != nil {
		blob, err := s.store.Load(ctx)
		if err != nil {
			slog.Warn("Failed to load session resume state",
				slog.String("type", "sys"),
				slog.Any("error", err))
		} else if len(blob) > 0 {
			if err := s.client.RestoreState(ctx, blob); err != nil {
				slog.Warn("Failed to restore session resume state",
					slog.String("type", "sys"),
					slog.Any("error", err))
			}
		}
	}
	return s.Refresh(ctx)
}

func (s *Session) Credentials() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Refresh logs in again and installs the new credentials on the client.
func (s *Session) Refresh(ctx context.Context) error {
	_, err, shared := s.group.Do("refresh", func() (interface{}, error) {
		// joined callers share this login, so it must not die with the first caller
		loginCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()

		start := time.Now()
		creds, err := s.client.Authenticate(loginCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh platform session: %w", err)
		}
		s.client.SetCredentials(creds)

		s.mu.Lock()
		s.creds = creds
		s.mu.Unlock()
		s.refreshes.Add(1)

		slog.Info("Platform session refreshed",
			slog.String("type", "sys"),
			slog.Duration("took", time.Since(start)),
			slog.Time("expires_at", creds.ExpiresAt))
		return nil, nil
	})
	if shared {
		slog.Debug("Joined in-flight session refresh", slog.String("type", "sys"))
	}
	return err
}

// Refreshes reports how many logins have completed.
func (s *Session) Refreshes() int64 {
	return s.refreshes.Load()
}

// Close saves the resume state so the next process can skip a full login.
func (s *Session) Close(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	blob, err := s.client.ResumeState(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session resume state: %w", err)
	}
	if err := s.store.Save(ctx, blob); err != nil {
		return fmt.Errorf("failed to save session resume state: %w", err)
	}
	return nil
}
