package merchant

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log      LogConfig      `toml:"log"`
	Merchant MerchantConfig `toml:"merchant"`
	DB       DBConfig       `toml:"db"`
	Platform PlatformConfig `toml:"platform"`
	Market   MarketConfig   `toml:"market"`
	Redis    RedisConfig    `toml:"redis"`
	State    StateConfig    `toml:"state"`
	Bridge   BridgeConfig   `toml:"bridge"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
	// File enables a rotated JSON log file next to the console output.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type MerchantConfig struct {
	SteamID            string `toml:"steam_id"`
	AppID              int    `toml:"app_id"`
	ContextID          string `toml:"context_id"`
	MaxWithdrawalItems int    `toml:"max_withdrawal_items"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type PlatformConfig struct {
	URL            string `toml:"url"`
	EventsURL      string `toml:"events_url"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type MarketConfig struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// RedisConfig is optional; an empty Addr disables the shared price cache.
type RedisConfig struct {
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	PriceTTLSeconds int    `toml:"price_ttl_seconds"`
}

// StateConfig selects where the session resume blob lives. With Bucket set it is
// stored in an S3 compatible bucket, otherwise in Path on local disk.
type StateConfig struct {
	Path     string `toml:"path"`
	Bucket   string `toml:"bucket"`
	Key      string `toml:"key"`
	Region   string `toml:"region"`
	Endpoint string `toml:"endpoint"`
	AccessID string `toml:"access_id"`
	Secret   string `toml:"secret"`
}

type BridgeConfig struct {
	SearchLimit        int `toml:"search_limit"`
	SearchBurst        int `toml:"search_burst"`
	SearchPauseSeconds int `toml:"search_pause_seconds"`
	PollAttempts       int `toml:"poll_attempts"`
	PollSeconds        int `toml:"poll_seconds"`
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MERCHANT_DB_PASSWORD"); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv("MERCHANT_MARKET_API_KEY"); v != "" {
		c.Market.APIKey = v
	}
	if v := os.Getenv("MERCHANT_PLATFORM_TOKEN"); v != "" {
		c.Platform.Token = v
	}
	if v := os.Getenv("MERCHANT_STATE_SECRET"); v != "" {
		c.State.Secret = v
	}
	if v := os.Getenv("MERCHANT_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.Merchant.AppID == 0 {
		c.Merchant.AppID = 730
	}
	if c.Merchant.ContextID == "" {
		c.Merchant.ContextID = "2"
	}
	if c.Merchant.MaxWithdrawalItems == 0 {
		c.Merchant.MaxWithdrawalItems = 3
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.Platform.TimeoutSeconds == 0 {
		c.Platform.TimeoutSeconds = 30
	}
	if c.Market.TimeoutSeconds == 0 {
		c.Market.TimeoutSeconds = 15
	}
	if c.Redis.PriceTTLSeconds == 0 {
		c.Redis.PriceTTLSeconds = 300
	}
	if c.State.Path == "" {
		c.State.Path = "session.state"
	}
	if c.State.Key == "" {
		c.State.Key = "merchants/" + c.Merchant.SteamID + "/session.state"
	}
	if c.Bridge.SearchLimit == 0 {
		c.Bridge.SearchLimit = 80
	}
	if c.Bridge.SearchBurst == 0 {
		c.Bridge.SearchBurst = 20
	}
	if c.Bridge.SearchPauseSeconds == 0 {
		c.Bridge.SearchPauseSeconds = 60
	}
	if c.Bridge.PollAttempts == 0 {
		c.Bridge.PollAttempts = 6
	}
	if c.Bridge.PollSeconds == 0 {
		c.Bridge.PollSeconds = 10
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
}

// Validate reports every missing required field at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Merchant.SteamID == "" {
		missing = append(missing, "merchant.steam_id")
	}
	if c.DB.Host == "" {
		missing = append(missing, "db.host")
	}
	if c.DB.Database == "" {
		missing = append(missing, "db.database")
	}
	if c.Platform.URL == "" {
		missing = append(missing, "platform.url")
	}
	if c.Market.URL == "" {
		missing = append(missing, "market.url")
	}
	if len(missing) > 0 {
		return errors.New("missing required config: " + strings.Join(missing, ", "))
	}
	if c.Merchant.MaxWithdrawalItems < 1 {
		return fmt.Errorf("merchant.max_withdrawal_items must be positive, got %d", c.Merchant.MaxWithdrawalItems)
	}
	return nil
}
