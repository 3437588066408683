package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type priceCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedClient shares the lowest-price snapshot between merchant processes through
// Redis. Every other call goes straight to the wrapped client.
type CachedClient struct {
	Client
	cache priceCache
	key   string
	ttl   time.Duration
}

func NewCachedClient(c Client, rdb *redis.Client, appID int, ttl time.Duration) *CachedClient {
	return newCachedClient(c, rdb, appID, ttl)
}

func newCachedClient(c Client, cache priceCache, appID int, ttl time.Duration) *CachedClient {
	return &CachedClient{
		Client: c,
		cache:  cache,
		key:    fmt.Sprintf("skinmerchant:lowest_prices:%d", appID),
		ttl:    ttl,
	}
}

func (c *CachedClient) LowestPrices(ctx context.Context) (map[string]LowestPrice, error) {
	raw, err := c.cache.Get(ctx, c.key).Bytes()
	if err == nil {
		var prices map[string]LowestPrice
		if err := json.Unmarshal(raw, &prices); err == nil {
			return prices, nil
		}
		slog.Warn("Discarding undecodable price cache entry",
			slog.String("type", "market"),
			slog.String("key", c.key))
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("Price cache read failed",
			slog.String("type", "market"),
			slog.Any("error", err))
	}

	prices, err := c.Client.LowestPrices(ctx)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(prices)
	if err != nil {
		return prices, nil
	}
	if err := c.cache.Set(ctx, c.key, b, c.ttl).Err(); err != nil {
		slog.Warn("Price cache write failed",
			slog.String("type", "market"),
			slog.Any("error", err))
	}
	return prices, nil
}
