package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PriceCacheEntry is the safe reference price for one item name, maintained by an
// external pricing job.
type PriceCacheEntry struct {
	bun.BaseModel `bun:"table:price_cache,alias:pc"`

	Name        string    `bun:"name,pk"`
	Price       int64     `bun:"price,notnull"`
	Blacklisted bool      `bun:"blacklisted,notnull,default:false"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
