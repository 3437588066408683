package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

// Listen subscribes to a notification channel on a dedicated pooled connection and
// calls handle with each payload. It returns when ctx is done or the connection fails;
// resubscribing is left to the caller.
func (db *DB) Listen(ctx context.Context, channel string, handle func(ctx context.Context, payload string)) error {
	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", channel, err)
	}
	defer func() {
		unlistenCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := conn.Exec(unlistenCtx, "UNLISTEN *"); err != nil {
			// A connection that cannot unlisten must not go back to the pool.
			_ = conn.Conn().Close(unlistenCtx)
		}
	}()

	slog.Info("Listening for notifications",
		slog.String("type", "db"),
		slog.String("channel", channel))

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("notification wait on %s failed: %w", channel, err)
		}
		handle(ctx, n.Payload)
	}
}
