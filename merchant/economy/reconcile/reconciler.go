// Package reconcile applies platform offer state changes to the trade rows that
// produced the offers.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	"github.com/ellavondegurechaff/skinmerchant/merchant/database/repositories"
	"github.com/ellavondegurechaff/skinmerchant/merchant/logger"
	"github.com/ellavondegurechaff/skinmerchant/merchant/platform"
)

// Lister puts newly acquired inventory up for sale.
type Lister interface {
	ListAfterAcquisition(ctx context.Context) error
}

type Reconciler struct {
	trades repositories.TradeRepository
	lister Lister
}

func New(trades repositories.TradeRepository, lister Lister) *Reconciler {
	return &Reconciler{trades: trades, lister: lister}
}

// HandleStateChange settles the trade behind an offer. Duplicate and unknown events
// are no-ops, so the stream may deliver the same change more than once.
func (r *Reconciler) HandleStateChange(ctx context.Context, change platform.StateChange) error {
	if !tracked(change.PrevState) {
		return nil
	}
	outcome, message := OutcomeFor(change.State)
	if outcome == OutcomeNone {
		return nil
	}

	kind, id, err := r.trades.FindByOfferID(ctx, change.OfferID)
	if repositories.IsNotFound(err) {
		// an offer sent but never written to its row lands here
		slog.Warn("State change for unknown offer",
			slog.String("type", "trade"),
			slog.String("offer_id", change.OfferID),
			slog.Any("state", change.State))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up offer %s: %w", change.OfferID, err)
	}

	attrs := []any{
		slog.String("offer_id", change.OfferID),
		slog.String("state", change.State.String()),
	}

	if outcome == OutcomeFail {
		err := r.trades.MarkFailed(ctx, kind, id, message)
		if errors.Is(err, repositories.ErrNoTransition) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to fail %s %d: %w", kind, id, err)
		}
		logger.LogTrade("Trade failed: "+message, string(kind), id, attrs...)
		return nil
	}

	switch kind {
	case models.KindDeposit:
		return r.completeDeposit(ctx, id, attrs)
	case models.KindWithdrawal:
		err := r.trades.CompleteWithdrawal(ctx, id)
		if errors.Is(err, repositories.ErrNoTransition) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to complete withdrawal %d: %w", id, err)
		}
		logger.LogTrade("Withdrawal completed", string(kind), id, attrs...)
	}
	return nil
}

func (r *Reconciler) completeDeposit(ctx context.Context, id int64, attrs []any) error {
	deposit, err := r.trades.CompleteDeposit(ctx, id)
	if errors.Is(err, repositories.ErrNoTransition) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to complete deposit %d: %w", id, err)
	}
	logger.LogTrade("Deposit completed", string(models.KindDeposit), id,
		append(attrs, slog.Int64("credited", deposit.Credit()))...)

	// the deposit is settled; listing failures only leave items unlisted
	if err := r.lister.ListAfterAcquisition(ctx); err != nil {
		logger.LogError("Failed to list deposited items", err, slog.Int64("trade_id", id))
	}
	return nil
}

// Handler adapts the reconciler to the event stream callback, which has nowhere to
// return errors to.
func (r *Reconciler) Handler() func(ctx context.Context, change platform.StateChange) {
	return func(ctx context.Context, change platform.StateChange) {
		if err := r.HandleStateChange(ctx, change); err != nil {
			logger.LogError("Failed to reconcile offer", err, slog.String("offer_id", change.OfferID))
		}
	}
}
