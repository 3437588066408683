package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSubscriber replays payloads per channel. Each Listen call consumes one
// script entry; once the script is exhausted it blocks until ctx is done.
type scriptedSubscriber struct {
	mu      sync.Mutex
	scripts map[string][]listenResult
	calls   map[string]int
}

type listenResult struct {
	payloads []string
	err      error
}

func (s *scriptedSubscriber) Listen(ctx context.Context, channel string, handle func(context.Context, string)) error {
	s.mu.Lock()
	s.calls[channel]++
	var next *listenResult
	if script := s.scripts[channel]; len(script) > 0 {
		next = &script[0]
		s.scripts[channel] = script[1:]
	}
	s.mu.Unlock()

	if next == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	for _, p := range next.payloads {
		handle(ctx, p)
	}
	return next.err
}

type recordingRunner struct {
	mu          sync.Mutex
	deposits    []int64
	withdrawals []int64
	done        chan struct{}
	want        int
}

func (r *recordingRunner) record(list *[]int64, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*list = append(*list, id)
	if len(r.deposits)+len(r.withdrawals) == r.want {
		close(r.done)
	}
}

func (r *recordingRunner) RunDeposit(_ context.Context, id int64) { r.record(&r.deposits, id) }

func (r *recordingRunner) RunWithdrawal(_ context.Context, id int64) { r.record(&r.withdrawals, id) }

func newTestDispatcher(sub Subscriber, runner Runner) (*Dispatcher, *[]time.Duration, *sync.Mutex) {
	d := New(sub, runner, Config{})
	var mu sync.Mutex
	var sleeps []time.Duration
	d.jitter = func(max time.Duration) time.Duration { return max }
	d.sleep = func(ctx context.Context, dur time.Duration) error {
		mu.Lock()
		sleeps = append(sleeps, dur)
		mu.Unlock()
		return ctx.Err()
	}
	return d, &sleeps, &mu
}

func TestDispatcher_RoutesChannelsAndResubscribes(t *testing.T) {
	sub := &scriptedSubscriber{
		calls: map[string]int{},
		scripts: map[string][]listenResult{
			database.ChannelDepositCreated: {
				{payloads: []string{"1", "not-a-number"}, err: errors.New("connection reset")},
				{payloads: []string{" 2 "}},
			},
			database.ChannelWithdrawalCreated: {
				{payloads: []string{"10", "0"}},
			},
		},
	}
	runner := &recordingRunner{done: make(chan struct{}), want: 3}
	d, sleeps, mu := newTestDispatcher(sub, runner)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()

	select {
	case <-runner.done:
	case <-time.After(5 * time.Second):
		t.Fatal("runs were not dispatched")
	}
	cancel()
	require.NoError(t, <-errc)

	assert.ElementsMatch(t, []int64{1, 2}, runner.deposits)
	assert.Equal(t, []int64{10}, runner.withdrawals)

	sub.mu.Lock()
	assert.GreaterOrEqual(t, sub.calls[database.ChannelDepositCreated], 2)
	sub.mu.Unlock()

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, *sleeps, d.cfg.ResubscribeDelay)
	assert.Contains(t, *sleeps, d.cfg.DepositJitter)
	assert.Contains(t, *sleeps, d.cfg.WithdrawalJitter)
}

func TestDispatcher_SkipsRunWhenCanceledDuringJitter(t *testing.T) {
	runner := &recordingRunner{done: make(chan struct{}), want: -1}
	d := New(nil, runner, Config{})
	d.sleep = func(context.Context, time.Duration) error { return context.Canceled }

	d.dispatch(context.Background(), database.ChannelDepositCreated, "7", time.Second, runner.RunDeposit)
	d.wg.Wait()

	assert.Empty(t, runner.deposits)
}

func TestDispatcher_BoundsConcurrentRuns(t *testing.T) {
	const limit = 2
	d := New(nil, nil, Config{MaxConcurrent: limit})
	d.sleep = func(context.Context, time.Duration) error { return nil }

	var mu sync.Mutex
	active, peak := 0, 0
	release := make(chan struct{})
	run := func(context.Context, int64) {
		mu.Lock()
		active++
		if active > peak {
			peak = active
		}
		mu.Unlock()
		<-release
		mu.Lock()
		active--
		mu.Unlock()
	}

	for _, p := range []string{"1", "2", "3", "4", "5"} {
		d.dispatch(context.Background(), database.ChannelWithdrawalCreated, p, 0, run)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	d.wg.Wait()

	assert.LessOrEqual(t, peak, limit)
	assert.Positive(t, peak)
}

func TestRandomJitter(t *testing.T) {
	assert.Zero(t, randomJitter(0))
	for range 100 {
		j := randomJitter(time.Second)
		assert.GreaterOrEqual(t, j, time.Duration(0))
		assert.Less(t, j, time.Second)
	}
}
