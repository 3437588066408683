package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStream_DeliversAndReconnects(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var connections atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		switch connections.Add(1) {
		case 1:
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"offer_changed","offer_id":"77","state":3,"prev_state":2}`))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
			// dropping the connection forces a redial
		default:
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"session_expired"}`))
			time.Sleep(time.Second)
		}
	}))
	defer srv.Close()

	stream := NewEventStream("ws"+strings.TrimPrefix(srv.URL, "http"), "tok")
	stream.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes := make(chan StateChange, 1)
	expired := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- stream.Run(ctx, Handlers{
			OfferChanged: func(_ context.Context, c StateChange) { changes <- c },
			SessionExpired: func(context.Context) {
				expired <- struct{}{}
				cancel()
			},
		})
	}()

	select {
	case c := <-changes:
		assert.Equal(t, StateChange{OfferID: "77", State: StateAccepted, PrevState: StateActive}, c)
	case <-time.After(3 * time.Second):
		t.Fatal("no offer change delivered")
	}

	select {
	case <-expired:
	case <-time.After(3 * time.Second):
		t.Fatal("no session expiry delivered after reconnect")
	}

	require.ErrorIs(t, <-done, context.Canceled)
	assert.GreaterOrEqual(t, connections.Load(), int32(2))
}

func TestBackoffNext(t *testing.T) {
	b := Backoff{Min: 100 * time.Millisecond, Max: time.Second, Factor: 2}
	assert.Equal(t, 100*time.Millisecond, b.Next(1))
	assert.Equal(t, 200*time.Millisecond, b.Next(2))
	assert.Equal(t, 800*time.Millisecond, b.Next(4))
	assert.Equal(t, time.Second, b.Next(10))

	jittered := Backoff{Min: time.Second, Max: time.Second, Factor: 2, Jitter: 0.5}.Next(1)
	assert.GreaterOrEqual(t, jittered, 500*time.Millisecond)
	assert.LessOrEqual(t, jittered, 1500*time.Millisecond)
}
