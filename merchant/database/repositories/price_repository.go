package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"
)

const (
	priceCacheSize       = 10000
	priceCacheExpiration = 5 * time.Minute
)

type PriceRepository interface {
	// GetSafePrices returns the reference entries for the given names. Names without an
	// entry are absent from the result.
	GetSafePrices(ctx context.Context, names []string) (map[string]*models.PriceCacheEntry, error)
}

type cachedPrice struct {
	entry     *models.PriceCacheEntry
	timestamp time.Time
}

type priceRepository struct {
	*BaseRepository
	cache *lru.Cache
}

func NewPriceRepository(db *bun.DB) PriceRepository {
	cache, _ := lru.New(priceCacheSize)
	return &priceRepository{
		BaseRepository: NewBaseRepository(db),
		cache:          cache,
	}
}

func (r *priceRepository) GetSafePrices(ctx context.Context, names []string) (map[string]*models.PriceCacheEntry, error) {
	result := make(map[string]*models.PriceCacheEntry, len(names))
	var missing []string
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		if cached, ok := r.cache.Get(name); ok {
			cp := cached.(cachedPrice)
			if time.Since(cp.timestamp) < priceCacheExpiration {
				result[name] = cp.entry
				continue
			}
		}
		missing = append(missing, name)
	}

	if len(missing) == 0 {
		return result, nil
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var entries []*models.PriceCacheEntry
	err := r.db.NewSelect().
		Model(&entries).
		Where("name IN (?)", bun.In(missing)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get safe prices: %w", err)
	}

	now := time.Now()
	for _, entry := range entries {
		result[entry.Name] = entry
		r.cache.Add(entry.Name, cachedPrice{entry: entry, timestamp: now})
	}
	return result, nil
}
