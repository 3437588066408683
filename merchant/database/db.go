package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

// Channels published by the insert triggers; the payload is the new row id.
const (
	ChannelDepositCreated    = "deposit_created"
	ChannelWithdrawalCreated = "withdrawal_created"
)

type DBConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	PoolSize     int
	MaxIdleConns int
	MaxLifetime  int
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	var err error
	for i := 0; i < defaultMaxRetries; i++ {
		var conn net.Conn
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			conn.Close()
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{pool: pool, bunDB: newBunDB(cfg)}, nil
}

func buildConnString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func newBunDB(cfg DBConfig) *bun.DB {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, sslMode)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if cfg.PoolSize > 0 {
		sqldb.SetMaxOpenConns(cfg.PoolSize)
	}
	return bun.NewDB(sqldb, pgdialect.New())
}

// Pool is used for LISTEN/NOTIFY, which needs a dedicated pgx connection.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgx ping failed: %w", err)
	}
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}
	return nil
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", sql),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", sql),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", result.RowsAffected()),
	)
	return result, nil
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

// InitializeSchema creates the settlement tables, their indexes and the insert
// triggers that feed the dispatcher's notification channels. It is idempotent.
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.TradeDeposit)(nil),
		(*models.TradeWithdrawal)(nil),
		(*models.DepositItem)(nil),
		(*models.WithdrawalItem)(nil),
		(*models.PriceCacheEntry)(nil),
	}

	for _, model := range tables {
		_, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_trade_deposits_unclaimed ON trade_deposits(id) WHERE merchant_steam_id IS NULL;",
		"CREATE INDEX IF NOT EXISTS idx_trade_deposits_offer_id ON trade_deposits(offer_id);",
		"CREATE INDEX IF NOT EXISTS idx_trade_withdrawals_unclaimed ON trade_withdrawals(id) WHERE merchant_steam_id IS NULL;",
		"CREATE INDEX IF NOT EXISTS idx_trade_withdrawals_offer_id ON trade_withdrawals(offer_id);",
		"CREATE INDEX IF NOT EXISTS idx_trade_withdrawals_open ON trade_withdrawals(merchant_steam_id) WHERE completed_at IS NULL AND failed_at IS NULL;",
		"CREATE INDEX IF NOT EXISTS idx_deposit_items_trade_id ON deposit_items(trade_id);",
		"CREATE INDEX IF NOT EXISTS idx_withdrawal_items_trade_id ON withdrawal_items(trade_id);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_withdrawal_items_asset ON withdrawal_items(trade_id, asset_id);",
		`CREATE OR REPLACE FUNCTION notify_trade_created() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(TG_ARGV[0], NEW.id::text);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;`,
		"DROP TRIGGER IF EXISTS trade_deposits_notify ON trade_deposits;",
		"CREATE TRIGGER trade_deposits_notify AFTER INSERT ON trade_deposits FOR EACH ROW EXECUTE FUNCTION notify_trade_created('" + ChannelDepositCreated + "');",
		"DROP TRIGGER IF EXISTS trade_withdrawals_notify ON trade_withdrawals;",
		"CREATE TRIGGER trade_withdrawals_notify AFTER INSERT ON trade_withdrawals FOR EACH ROW EXECUTE FUNCTION notify_trade_created('" + ChannelWithdrawalCreated + "');",
	}

	for _, stmt := range statements {
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	slog.Info("Database schema initialized",
		slog.String("type", "db"),
		slog.Int("tables", len(tables)))
	return nil
}
