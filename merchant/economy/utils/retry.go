package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoCandidates is returned by FirstSuccess when it is given nothing to try.
var ErrNoCandidates = errors.New("no candidates to try")

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryPolicy is a bounded, fixed-backoff retry.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
	Sleep    Sleeper
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: RetryAttempts, Backoff: RetryBackoff, Sleep: Sleep}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts <= 0 {
		p.Attempts = 1
	}
	if p.Sleep == nil {
		p.Sleep = Sleep
	}
	return p
}

// Retry calls fn until it succeeds or the attempts run out. attempt is 1-based. The
// returned error wraps the last failure.
func Retry[R any](ctx context.Context, p RetryPolicy, fn func(ctx context.Context, attempt int) (R, error)) (R, error) {
	p = p.normalized()

	var zero R
	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		res, err := fn(ctx, attempt)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if attempt == p.Attempts {
			break
		}
		if err := p.Sleep(ctx, p.Backoff); err != nil {
			return zero, err
		}
	}
	return zero, fmt.Errorf("gave up after %d attempts: %w", p.Attempts, lastErr)
}

// FirstSuccess tries each candidate in order with fn and returns the first result
// that succeeds together with the candidate that produced it. Candidates are not
// retried; there is no pause between them.
func FirstSuccess[T, R any](ctx context.Context, candidates []T, fn func(ctx context.Context, candidate T) (R, error)) (R, T, error) {
	var zeroR R
	var zeroT T
	if len(candidates) == 0 {
		return zeroR, zeroT, ErrNoCandidates
	}

	var errs []error
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return zeroR, zeroT, err
		}
		res, err := fn(ctx, c)
		if err == nil {
			return res, c, nil
		}
		errs = append(errs, err)
	}
	return zeroR, zeroT, fmt.Errorf("all %d candidates failed: %w", len(candidates), errors.Join(errs...))
}
