package merchant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database"
	"github.com/ellavondegurechaff/skinmerchant/merchant/database/repositories"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/bridge"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/claim"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/dispatch"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/reconcile"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/workflow"
	"github.com/ellavondegurechaff/skinmerchant/merchant/logger"
	"github.com/ellavondegurechaff/skinmerchant/merchant/market"
	"github.com/ellavondegurechaff/skinmerchant/merchant/platform"
	"github.com/ellavondegurechaff/skinmerchant/merchant/platform/state"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func New(cfg Config, version string, commit string) *Merchant {
	return &Merchant{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

type Merchant struct {
	Cfg     Config
	Version string
	Commit  string

	DB         *database.DB
	Redis      *redis.Client
	Trading    platform.Client
	Session    *platform.Session
	Events     *platform.EventStream
	Market     market.Client
	Bridge     *bridge.Bridge
	Workflows  *workflow.Service
	Reconciler *reconcile.Reconciler
	Dispatcher *dispatch.Dispatcher

	// event callbacks run off the stream's read loop
	callbacks sync.WaitGroup
}

// Setup connects the stores and builds every component. Nothing is started.
func (m *Merchant) Setup(ctx context.Context) error {
	cfg := m.Cfg

	dbStart := time.Now()
	db, err := database.New(ctx, database.DBConfig{
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Database:     cfg.DB.Database,
		PoolSize:     cfg.DB.PoolSize,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxLifetime:  cfg.DB.MaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("database connection failed after %s: %w", time.Since(dbStart), err)
	}
	m.DB = db
	slog.Info("Database connected successfully",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStart)))

	httpMarket, err := market.NewHTTPClient(cfg.Market.URL, cfg.Market.APIKey, seconds(cfg.Market.TimeoutSeconds))
	if err != nil {
		return err
	}
	m.Market = httpMarket
	if rdb := m.connectRedis(ctx); rdb != nil {
		m.Redis = rdb
		m.Market = market.NewCachedClient(httpMarket, rdb, cfg.Merchant.AppID, seconds(cfg.Redis.PriceTTLSeconds))
	}

	trading, err := platform.NewHTTPClient(cfg.Platform.URL, cfg.Platform.Token, seconds(cfg.Platform.TimeoutSeconds))
	if err != nil {
		return err
	}
	m.Trading = trading

	store, err := m.stateStore(ctx)
	if err != nil {
		return err
	}
	m.Session = platform.NewSession(trading, store)
	if cfg.Platform.EventsURL != "" {
		m.Events = platform.NewEventStream(cfg.Platform.EventsURL, cfg.Platform.Token)
	}

	trades := repositories.NewTradeRepository(db.BunDB())
	users := repositories.NewUserRepository(db.BunDB())
	prices := repositories.NewPriceRepository(db.BunDB())

	m.Bridge = bridge.New(m.Market, trading, m.Session, prices, trades, bridge.Config{
		SteamID:      cfg.Merchant.SteamID,
		AppID:        cfg.Merchant.AppID,
		ContextID:    cfg.Merchant.ContextID,
		SearchLimit:  cfg.Bridge.SearchLimit,
		SearchBurst:  cfg.Bridge.SearchBurst,
		SearchPause:  seconds(cfg.Bridge.SearchPauseSeconds),
		PollAttempts: cfg.Bridge.PollAttempts,
		PollInterval: seconds(cfg.Bridge.PollSeconds),
	})

	claims := claim.NewClaimer(trades, m.Market, cfg.Merchant.SteamID, cfg.Merchant.AppID)
	m.Workflows = workflow.New(claims, users, trades, trading, m.Session, m.Bridge, workflow.Config{
		SteamID:            cfg.Merchant.SteamID,
		ContextID:          cfg.Merchant.ContextID,
		MaxWithdrawalItems: cfg.Merchant.MaxWithdrawalItems,
	})
	m.Reconciler = reconcile.New(trades, m.Bridge)
	m.Dispatcher = dispatch.New(db, m.Workflows, dispatch.Config{})

	logger.LogSystem("Merchant initialized",
		slog.String("steam_id", cfg.Merchant.SteamID),
		slog.Int("app_id", cfg.Merchant.AppID),
		slog.Bool("price_cache", m.Redis != nil),
		slog.Bool("event_stream", m.Events != nil))
	return nil
}

// connectRedis returns nil when no cache is configured or the server is unreachable;
// the marketplace is then queried directly.
func (m *Merchant) connectRedis(ctx context.Context) *redis.Client {
	if m.Cfg.Redis.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     m.Cfg.Redis.Addr,
		Password: m.Cfg.Redis.Password,
		DB:       m.Cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Warn("Redis unavailable, price cache disabled",
			slog.String("type", "sys"),
			slog.String("addr", m.Cfg.Redis.Addr),
			slog.Any("error", err))
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func (m *Merchant) stateStore(ctx context.Context) (platform.StateStore, error) {
	sc := m.Cfg.State
	if sc.Bucket == "" {
		return state.NewFileStore(sc.Path), nil
	}
	store, err := state.NewS3Store(ctx, state.S3Options{
		Bucket:   sc.Bucket,
		Key:      sc.Key,
		Region:   sc.Region,
		Endpoint: sc.Endpoint,
		AccessID: sc.AccessID,
		Secret:   sc.Secret,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session state store: %w", err)
	}
	return store, nil
}

// Run logs in, then serves trade notifications and offer events until ctx is done.
func (m *Merchant) Run(ctx context.Context) error {
	if err := m.Session.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.Dispatcher.Run(gctx)
	})
	if m.Events != nil {
		g.Go(func() error {
			err := m.Events.Run(gctx, m.eventHandlers())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		slog.Warn("No event stream configured, offers will not be reconciled",
			slog.String("type", "sys"))
	}

	slog.Info("Merchant is running. Press CTRL-C to exit.",
		slog.String("type", "sys"),
		slog.String("version", m.Version),
		slog.String("commit", m.Commit))

	err := g.Wait()
	m.callbacks.Wait()
	return err
}

func (m *Merchant) eventHandlers() platform.Handlers {
	reconcileOffer := m.Reconciler.Handler()
	return platform.Handlers{
		OfferChanged: func(ctx context.Context, change platform.StateChange) {
			m.callbacks.Add(1)
			go func() {
				defer m.callbacks.Done()
				reconcileOffer(context.WithoutCancel(ctx), change)
			}()
		},
		SessionExpired: func(ctx context.Context) {
			m.callbacks.Add(1)
			go func() {
				defer m.callbacks.Done()
				if err := m.Session.Refresh(ctx); err != nil {
					logger.LogError("Failed to refresh expired session", err)
				}
			}()
		},
	}
}

// Relist runs one repricing pass over the merchant's marketplace listings.
func (m *Merchant) Relist(ctx context.Context) (int, error) {
	return m.Bridge.Relist(ctx)
}

func (m *Merchant) Close(ctx context.Context) {
	if m.Session != nil && m.Session.Refreshes() > 0 {
		if err := m.Session.Close(ctx); err != nil {
			logger.LogError("Failed to save session state", err)
		}
	}
	if m.Redis != nil {
		_ = m.Redis.Close()
	}
	if m.DB != nil {
		m.DB.Close()
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
