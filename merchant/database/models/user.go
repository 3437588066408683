package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	SteamID      string    `bun:"steam_id,pk"`
	TradeLinkURL *string   `bun:"trade_link_url"`
	Balance      int64     `bun:"balance,notnull,default:0"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// TradeLink returns the configured trade link, or "" when none is set.
func (u *User) TradeLink() string {
	if u == nil || u.TradeLinkURL == nil {
		return ""
	}
	return *u.TradeLinkURL
}
