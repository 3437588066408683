// Package bridge moves items between the secondary marketplace and the merchant's
// platform inventory: it buys what withdrawals are missing and resells surplus.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/repositories"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/utils"
	"github.com/ellavondegurechaff/skinmerchant/merchant/market"
	"github.com/ellavondegurechaff/skinmerchant/merchant/platform"
)

var (
	// ErrShortfall means fewer items could be sourced than were requested.
	ErrShortfall = errors.New("could not source all requested items")
	// ErrPriceGuard means a batch was aborted because a name looked manipulated.
	ErrPriceGuard   = errors.New("listing price exceeds safe price guard")
	ErrSearchBudget = errors.New("search budget exhausted")
)

// Refresher re-authenticates the platform session.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Config struct {
	SteamID   string
	AppID     int
	ContextID string

	SearchLimit  int
	SearchBurst  int
	SearchPause  time.Duration
	PollAttempts int
	PollInterval time.Duration
	Retry        utils.RetryPolicy
}

func (c Config) withDefaults() Config {
	if c.SearchLimit <= 0 {
		c.SearchLimit = utils.SearchLimit
	}
	if c.SearchBurst <= 0 {
		c.SearchBurst = utils.SearchBurst
	}
	if c.SearchPause <= 0 {
		c.SearchPause = utils.SearchPause
	}
	if c.PollAttempts <= 0 {
		c.PollAttempts = utils.InventoryPollAttempts
	}
	if c.PollInterval <= 0 {
		c.PollInterval = utils.InventoryPollInterval
	}
	if c.Retry.Attempts <= 0 {
		c.Retry = utils.DefaultRetryPolicy()
	}
	return c
}

type Bridge struct {
	market  market.Client
	trading platform.Client
	session Refresher
	prices  repositories.PriceRepository
	trades  repositories.TradeRepository
	cfg     Config

	sleep utils.Sleeper
	now   func() time.Time

	// one purchase batch at a time; the running balance belongs to the account
	buyMu sync.Mutex
	held  Reservations
}

func New(
	mkt market.Client,
	trading platform.Client,
	session Refresher,
	prices repositories.PriceRepository,
	trades repositories.TradeRepository,
	cfg Config,
) *Bridge {
	cfg = cfg.withDefaults()
	b := &Bridge{
		market:  mkt,
		trading: trading,
		session: session,
		prices:  prices,
		trades:  trades,
		cfg:     cfg,
		sleep:   utils.Sleep,
		now:     time.Now,
	}
	if cfg.Retry.Sleep != nil {
		b.sleep = cfg.Retry.Sleep
	}
	b.cfg.Retry.Sleep = b.sleep
	return b
}

// Reservations returns the set of assets promised to withdrawals that have not been
// offered yet.
func (b *Bridge) Reservations() *Reservations {
	return &b.held
}

// Inventory returns the merchant's tradable platform inventory, refreshing the session
// once if the first read fails.
func (b *Bridge) Inventory(ctx context.Context) ([]platform.Item, error) {
	items, err := b.trading.Inventory(ctx, b.cfg.SteamID, b.cfg.AppID, b.cfg.ContextID)
	if err == nil {
		return items, nil
	}

	slog.Warn("Inventory read failed, refreshing session",
		slog.String("type", "market"),
		slog.Any("error", err))
	if rerr := b.session.Refresh(ctx); rerr != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", errors.Join(err, rerr))
	}

	items, err = b.trading.Inventory(ctx, b.cfg.SteamID, b.cfg.AppID, b.cfg.ContextID)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory after refresh: %w", err)
	}
	return items, nil
}

// Reservations is an in-process set of asset ids, keyed like the claim locks of a
// single process.
type Reservations struct {
	ids sync.Map
}

// Reserve takes all ids or none.
func (r *Reservations) Reserve(ids ...string) bool {
	taken := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, loaded := r.ids.LoadOrStore(id, struct{}{}); loaded {
			r.Release(taken...)
			return false
		}
		taken = append(taken, id)
	}
	return true
}

func (r *Reservations) Release(ids ...string) {
	for _, id := range ids {
		r.ids.Delete(id)
	}
}

func (r *Reservations) Has(id string) bool {
	_, ok := r.ids.Load(id)
	return ok
}
