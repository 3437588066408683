package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSleeper struct {
	waits []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return ctx.Err()
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		attempts  int
		wantErr   bool
		wantCalls int
		wantWaits int
	}{
		{name: "first try", failures: 0, attempts: 3, wantCalls: 1, wantWaits: 0},
		{name: "third try", failures: 2, attempts: 3, wantCalls: 3, wantWaits: 2},
		{name: "exhausted", failures: 5, attempts: 3, wantErr: true, wantCalls: 3, wantWaits: 2},
		{name: "zero attempts runs once", failures: 0, attempts: 0, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sleeper := &recordingSleeper{}
			p := RetryPolicy{Attempts: tt.attempts, Backoff: 2 * time.Second, Sleep: sleeper.Sleep}

			calls := 0
			got, err := Retry(context.Background(), p, func(_ context.Context, attempt int) (int, error) {
				calls++
				assert.Equal(t, calls, attempt)
				if calls <= tt.failures {
					return 0, errors.New("transient")
				}
				return attempt * 10, nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			assert.Len(t, sleeper.waits, tt.wantWaits)
			for _, w := range sleeper.waits {
				assert.Equal(t, 2*time.Second, w)
			}
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "transient")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, calls*10, got)
		})
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Retry(ctx, RetryPolicy{Attempts: 5, Backoff: time.Hour}, func(context.Context, int) (struct{}, error) {
		calls++
		cancel()
		return struct{}{}, errors.New("boom")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestFirstSuccess(t *testing.T) {
	prices := []int64{100, 105, 110}

	got, used, err := FirstSuccess(context.Background(), prices, func(_ context.Context, p int64) (string, error) {
		if p < 110 {
			return "", errors.New("sold out")
		}
		return "bought", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "bought", got)
	assert.Equal(t, int64(110), used)

	_, _, err = FirstSuccess(context.Background(), prices, func(context.Context, int64) (string, error) {
		return "", errors.New("sold out")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 candidates failed")

	_, _, err = FirstSuccess(context.Background(), []int64{}, func(context.Context, int64) (string, error) {
		return "x", nil
	})
	assert.ErrorIs(t, err, ErrNoCandidates)
}
