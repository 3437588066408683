// Package claim is the exactly-once gate in front of every workflow. A merchant may
// only act on a transaction after its conditional claim UPDATE matched the row.
package claim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	"github.com/ellavondegurechaff/skinmerchant/merchant/database/repositories"
)

// ErrAlreadyClaimed means another merchant owns the transaction, or it does not exist
// for this app. Callers treat it as a silent no-op.
var ErrAlreadyClaimed = errors.New("transaction already claimed")

// BalanceReader reports the merchant's spendable marketplace balance.
type BalanceReader interface {
	Balance(ctx context.Context) (int64, error)
}

type Claimer struct {
	trades     repositories.TradeRepository
	balances   BalanceReader
	merchantID string
	appID      int
}

func NewClaimer(trades repositories.TradeRepository, balances BalanceReader, merchantID string, appID int) *Claimer {
	return &Claimer{
		trades:     trades,
		balances:   balances,
		merchantID: merchantID,
		appID:      appID,
	}
}

func (c *Claimer) ClaimDeposit(ctx context.Context, id int64) (*models.TradeDeposit, error) {
	deposit, err := c.trades.ClaimDeposit(ctx, id, c.appID, c.merchantID)
	if err != nil {
		return nil, c.translate("deposit", id, err)
	}
	return deposit, nil
}

// ClaimWithdrawal claims the withdrawal only if its total fits within the current
// marketplace balance.
func (c *Claimer) ClaimWithdrawal(ctx context.Context, id int64) (*models.TradeWithdrawal, error) {
	balance, err := c.balances.Balance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read marketplace balance: %w", err)
	}

	withdrawal, err := c.trades.ClaimWithdrawal(ctx, id, c.appID, c.merchantID, &balance)
	if err != nil {
		return nil, c.translate("withdrawal", id, err)
	}
	return withdrawal, nil
}

// ClaimForRejection claims a withdrawal that is about to be failed without touching
// the marketplace.
func (c *Claimer) ClaimForRejection(ctx context.Context, id int64) (*models.TradeWithdrawal, error) {
	withdrawal, err := c.trades.ClaimWithdrawal(ctx, id, c.appID, c.merchantID, nil)
	if err != nil {
		return nil, c.translate("withdrawal", id, err)
	}
	return withdrawal, nil
}

func (c *Claimer) translate(kind string, id int64, err error) error {
	if errors.Is(err, repositories.ErrNoTransition) {
		slog.Debug("Transaction not claimable",
			slog.String("type", "trade"),
			slog.String("kind", kind),
			slog.Int64("trade_id", id))
		return ErrAlreadyClaimed
	}
	return fmt.Errorf("failed to claim %s %d: %w", kind, id, err)
}
