// Package dispatch turns database notifications about new trades into workflow runs.
package dispatch

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/utils"
	"github.com/ellavondegurechaff/skinmerchant/merchant/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Subscriber delivers notification payloads for one channel until ctx is done or
// the subscription breaks.
type Subscriber interface {
	Listen(ctx context.Context, channel string, handle func(ctx context.Context, payload string)) error
}

type Runner interface {
	RunDeposit(ctx context.Context, id int64)
	RunWithdrawal(ctx context.Context, id int64)
}

type Config struct {
	DepositJitter    time.Duration
	WithdrawalJitter time.Duration
	ResubscribeDelay time.Duration
	MaxConcurrent    int
}

func (c Config) withDefaults() Config {
	if c.DepositJitter <= 0 {
		c.DepositJitter = utils.DepositJitter
	}
	if c.WithdrawalJitter <= 0 {
		c.WithdrawalJitter = utils.WithdrawalJitter
	}
	if c.ResubscribeDelay <= 0 {
		c.ResubscribeDelay = utils.ResubscribeDelay
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = utils.MaxConcurrentRuns
	}
	return c
}

type Dispatcher struct {
	sub    Subscriber
	runner Runner
	cfg    Config
	sem    *semaphore.Weighted
	wg     sync.WaitGroup

	jitter func(max time.Duration) time.Duration
	sleep  utils.Sleeper
}

func New(sub Subscriber, runner Runner, cfg Config) *Dispatcher {
	cfg = cfg.withDefaults()
	return &Dispatcher{
		sub:    sub,
		runner: runner,
		cfg:    cfg,
		sem:    semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		jitter: randomJitter,
		sleep:  utils.Sleep,
	}
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return rand.N(max)
}

// Run listens on both trade channels until ctx is done, then waits for every run it
// started to finish.
func (d *Dispatcher) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.subscribe(gctx, database.ChannelDepositCreated, d.cfg.DepositJitter, d.runner.RunDeposit)
	})
	g.Go(func() error {
		return d.subscribe(gctx, database.ChannelWithdrawalCreated, d.cfg.WithdrawalJitter, d.runner.RunWithdrawal)
	})
	err := g.Wait()
	d.wg.Wait()
	return err
}

func (d *Dispatcher) subscribe(ctx context.Context, channel string, jitter time.Duration, run func(context.Context, int64)) error {
	handle := func(ctx context.Context, payload string) {
		d.dispatch(ctx, channel, payload, jitter, run)
	}

	for {
		err := d.sub.Listen(ctx, channel, handle)
		if ctx.Err() != nil {
			return nil
		}
		slog.Warn("Notification subscription lost, resubscribing",
			slog.String("type", "db"),
			slog.String("channel", channel),
			slog.Duration("delay", d.cfg.ResubscribeDelay),
			slog.Any("error", err))
		if err := d.sleep(ctx, d.cfg.ResubscribeDelay); err != nil {
			return nil
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, channel, payload string, jitter time.Duration, run func(context.Context, int64)) {
	id, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil || id <= 0 {
		slog.Warn("Ignoring malformed notification",
			slog.String("type", "db"),
			slog.String("channel", channel),
			slog.String("payload", payload))
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		// spread concurrent merchants so one of them wins the claim cleanly
		if err := d.sleep(ctx, d.jitter(jitter)); err != nil {
			return
		}
		if err := d.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer d.sem.Release(1)

		logger.LogSystem("Dispatching trade",
			slog.String("channel", channel),
			slog.Int64("trade_id", id))
		// a claimed trade must reach a terminal write even during shutdown
		run(context.WithoutCancel(ctx), id)
	}()
}
