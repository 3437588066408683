package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TradeKind string

const (
	KindDeposit    TradeKind = "deposit"
	KindWithdrawal TradeKind = "withdrawal"
)

type TradeStatus string

const (
	StatusUnclaimed TradeStatus = "unclaimed"
	StatusClaimed   TradeStatus = "claimed"
	StatusOffered   TradeStatus = "offered"
	StatusCompleted TradeStatus = "completed"
	StatusFailed    TradeStatus = "failed"
)

// Trade holds the columns shared by deposits and withdrawals. A nil MerchantSteamID
// means nobody has claimed the row yet.
type Trade struct {
	ID              int64      `bun:"id,pk,autoincrement"`
	AppID           int        `bun:"app_id,notnull"`
	CreatedAt       time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UserSteamID     string     `bun:"user_steam_id,notnull"`
	ItemNames       []string   `bun:"item_names,type:jsonb,notnull"`
	MerchantSteamID *string    `bun:"merchant_steam_id"`
	AcknowledgedAt  *time.Time `bun:"acknowledged_at"`
	OfferedAt       *time.Time `bun:"offered_at"`
	OfferID         *string    `bun:"offer_id"`
	CompletedAt     *time.Time `bun:"completed_at"`
	FailedAt        *time.Time `bun:"failed_at"`
	FailureDetails  *string    `bun:"failure_details"`
	Total           int64      `bun:"total,notnull"`
}

// Status derives the lifecycle state from the timestamp columns.
func (t *Trade) Status() TradeStatus {
	switch {
	case t.FailedAt != nil:
		return StatusFailed
	case t.CompletedAt != nil:
		return StatusCompleted
	case t.OfferedAt != nil:
		return StatusOffered
	case t.MerchantSteamID != nil:
		return StatusClaimed
	}
	return StatusUnclaimed
}

type TradeDeposit struct {
	bun.BaseModel `bun:"table:trade_deposits,alias:td"`
	Trade

	Bonus int64 `bun:"bonus,notnull,default:0"`
}

// Credit is the balance a completed deposit adds to its owner.
func (d *TradeDeposit) Credit() int64 {
	return d.Total + d.Bonus
}

type TradeWithdrawal struct {
	bun.BaseModel `bun:"table:trade_withdrawals,alias:tw"`
	Trade
}

type DepositItem struct {
	bun.BaseModel `bun:"table:deposit_items,alias:di"`

	ID      int64  `bun:"id,pk,autoincrement"`
	TradeID int64  `bun:"trade_id,notnull"`
	AssetID string `bun:"asset_id,notnull"`
	Name    string `bun:"name"`
}

type WithdrawalItem struct {
	bun.BaseModel `bun:"table:withdrawal_items,alias:wi"`

	ID      int64  `bun:"id,pk,autoincrement"`
	TradeID int64  `bun:"trade_id,notnull"`
	AssetID string `bun:"asset_id,notnull"`
	Name    string `bun:"name"`
}
