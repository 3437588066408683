package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	"github.com/uptrace/bun"
)

type TradeRepository interface {
	// ClaimDeposit stamps the merchant onto an unclaimed deposit. Returns ErrNoTransition
	// when the row is missing, belongs to another app or is already claimed.
	ClaimDeposit(ctx context.Context, id int64, appID int, merchantID string) (*models.TradeDeposit, error)
	// ClaimWithdrawal claims an unclaimed withdrawal. When maxTotal is non-nil the claim
	// only succeeds if the row's total does not exceed it.
	ClaimWithdrawal(ctx context.Context, id int64, appID int, merchantID string, maxTotal *int64) (*models.TradeWithdrawal, error)
	GetDeposit(ctx context.Context, id int64) (*models.TradeDeposit, error)
	GetWithdrawal(ctx context.Context, id int64) (*models.TradeWithdrawal, error)
	GetDepositItems(ctx context.Context, tradeID int64) ([]*models.DepositItem, error)
	FindByOfferID(ctx context.Context, offerID string) (models.TradeKind, int64, error)
	MarkDepositOffered(ctx context.Context, id int64, offerID string) error
	// MarkWithdrawalOffered records the offer and the exact assets it carries in one
	// transaction.
	MarkWithdrawalOffered(ctx context.Context, id int64, offerID string, items []*models.WithdrawalItem) error
	MarkFailed(ctx context.Context, kind models.TradeKind, id int64, details string) error
	// CompleteDeposit sets completed_at and credits the owner's balance atomically.
	CompleteDeposit(ctx context.Context, id int64) (*models.TradeDeposit, error)
	CompleteWithdrawal(ctx context.Context, id int64) error
	CommittedAssetIDs(ctx context.Context, merchantID string) (map[string]struct{}, error)
}

type tradeRepository struct {
	*BaseRepository
	now func() time.Time
}

func NewTradeRepository(db *bun.DB) TradeRepository {
	return &tradeRepository{
		BaseRepository: NewBaseRepository(db),
		now:            time.Now,
	}
}

func (r *tradeRepository) ClaimDeposit(ctx context.Context, id int64, appID int, merchantID string) (*models.TradeDeposit, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	deposit := new(models.TradeDeposit)
	res, err := r.db.NewUpdate().
		Model(deposit).
		Set("merchant_steam_id = ?", merchantID).
		Set("acknowledged_at = ?", r.now()).
		Where("id = ?", id).
		Where("app_id = ?", appID).
		Where("merchant_steam_id IS NULL").
		Returning("*").
		Exec(ctx)

	if err := affected(res, err); err != nil {
		if errors.Is(err, ErrNoTransition) {
			return nil, err
		}
		return nil, r.HandleErrorWithID("claim", "trade_deposit", id, err)
	}

	slog.Debug("Deposit claimed",
		slog.String("type", "db"),
		slog.Int64("trade_id", id),
		slog.String("merchant", merchantID))
	return deposit, nil
}

func (r *tradeRepository) ClaimWithdrawal(ctx context.Context, id int64, appID int, merchantID string, maxTotal *int64) (*models.TradeWithdrawal, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	withdrawal := new(models.TradeWithdrawal)
	q := r.db.NewUpdate().
		Model(withdrawal).
		Set("merchant_steam_id = ?", merchantID).
		Set("acknowledged_at = ?", r.now()).
		Where("id = ?", id).
		Where("app_id = ?", appID).
		Where("merchant_steam_id IS NULL")
	if maxTotal != nil {
		q = q.Where("total <= ?", *maxTotal)
	}

	res, err := q.Returning("*").Exec(ctx)
	if err := affected(res, err); err != nil {
		if errors.Is(err, ErrNoTransition) {
			return nil, err
		}
		return nil, r.HandleErrorWithID("claim", "trade_withdrawal", id, err)
	}

	slog.Debug("Withdrawal claimed",
		slog.String("type", "db"),
		slog.Int64("trade_id", id),
		slog.String("merchant", merchantID),
		slog.Bool("reserved", maxTotal != nil))
	return withdrawal, nil
}

func (r *tradeRepository) GetDeposit(ctx context.Context, id int64) (*models.TradeDeposit, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	deposit := new(models.TradeDeposit)
	err := r.db.NewSelect().
		Model(deposit).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "trade_deposit", id, err)
	}
	return deposit, nil
}

func (r *tradeRepository) GetWithdrawal(ctx context.Context, id int64) (*models.TradeWithdrawal, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	withdrawal := new(models.TradeWithdrawal)
	err := r.db.NewSelect().
		Model(withdrawal).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "trade_withdrawal", id, err)
	}
	return withdrawal, nil
}

func (r *tradeRepository) GetDepositItems(ctx context.Context, tradeID int64) ([]*models.DepositItem, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var items []*models.DepositItem
	err := r.db.NewSelect().
		Model(&items).
		Where("trade_id = ?", tradeID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit items: %w", err)
	}
	return items, nil
}

func (r *tradeRepository) FindByOfferID(ctx context.Context, offerID string) (models.TradeKind, int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var id int64
	err := r.db.NewSelect().
		Model((*models.TradeDeposit)(nil)).
		Column("id").
		Where("offer_id = ?", offerID).
		Limit(1).
		Scan(ctx, &id)
	if err == nil {
		return models.KindDeposit, id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", 0, r.HandleErrorWithID("find", "trade_deposit", offerID, err)
	}

	err = r.db.NewSelect().
		Model((*models.TradeWithdrawal)(nil)).
		Column("id").
		Where("offer_id = ?", offerID).
		Limit(1).
		Scan(ctx, &id)
	if err != nil {
		return "", 0, r.HandleErrorWithID("find", "trade", offerID, err)
	}
	return models.KindWithdrawal, id, nil
}

func (r *tradeRepository) MarkDepositOffered(ctx context.Context, id int64, offerID string) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.TradeDeposit)(nil)).
		Set("offer_id = ?", offerID).
		Set("offered_at = ?", r.now()).
		Where("id = ?", id).
		Where("offered_at IS NULL").
		Where("failed_at IS NULL").
		Exec(ctx)
	if err := affected(res, err); err != nil {
		if errors.Is(err, ErrNoTransition) {
			return err
		}
		return r.HandleErrorWithID("mark_offered", "trade_deposit", id, err)
	}
	return nil
}

func (r *tradeRepository) MarkWithdrawalOffered(ctx context.Context, id int64, offerID string, items []*models.WithdrawalItem) error {
	return r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.TradeWithdrawal)(nil)).
			Set("offer_id = ?", offerID).
			Set("offered_at = ?", r.now()).
			Where("id = ?", id).
			Where("offered_at IS NULL").
			Where("failed_at IS NULL").
			Exec(ctx)
		if err := affected(res, err); err != nil {
			if errors.Is(err, ErrNoTransition) {
				return err
			}
			return r.HandleErrorWithID("mark_offered", "trade_withdrawal", id, err)
		}

		if len(items) == 0 {
			return nil
		}
		for _, item := range items {
			item.TradeID = id
		}
		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert withdrawal items: %w", err)
		}
		return nil
	})
}

// MarkFailed records a terminal failure. It never overwrites an earlier failure or a
// completion.
func (r *tradeRepository) MarkFailed(ctx context.Context, kind models.TradeKind, id int64, details string) error {
	model, err := tradeModel(kind)
	if err != nil {
		return err
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model(model).
		Set("failed_at = ?", r.now()).
		Set("failure_details = ?", details).
		Where("id = ?", id).
		Where("failed_at IS NULL").
		Where("completed_at IS NULL").
		Exec(ctx)
	if err := affected(res, err); err != nil {
		if errors.Is(err, ErrNoTransition) {
			return err
		}
		return r.HandleErrorWithID("mark_failed", "trade_"+string(kind), id, err)
	}

	slog.Debug("Trade marked failed",
		slog.String("type", "db"),
		slog.String("kind", string(kind)),
		slog.Int64("trade_id", id),
		slog.String("details", details))
	return nil
}

func (r *tradeRepository) CompleteDeposit(ctx context.Context, id int64) (*models.TradeDeposit, error) {
	deposit := new(models.TradeDeposit)
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(deposit).
			Set("completed_at = ?", r.now()).
			Where("id = ?", id).
			Where("offered_at IS NOT NULL").
			Where("completed_at IS NULL").
			Where("failed_at IS NULL").
			Returning("*").
			Exec(ctx)
		if err := affected(res, err); err != nil {
			return err
		}
		return creditBalance(ctx, tx, deposit.UserSteamID, deposit.Credit(), r.now())
	})
	if err != nil {
		if errors.Is(err, ErrNoTransition) {
			return nil, err
		}
		return nil, r.HandleErrorWithID("complete", "trade_deposit", id, err)
	}
	return deposit, nil
}

func (r *tradeRepository) CompleteWithdrawal(ctx context.Context, id int64) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.TradeWithdrawal)(nil)).
		Set("completed_at = ?", r.now()).
		Where("id = ?", id).
		Where("offered_at IS NOT NULL").
		Where("completed_at IS NULL").
		Where("failed_at IS NULL").
		Exec(ctx)
	if err := affected(res, err); err != nil {
		if errors.Is(err, ErrNoTransition) {
			return err
		}
		return r.HandleErrorWithID("complete", "trade_withdrawal", id, err)
	}
	return nil
}

// CommittedAssetIDs returns the assets already promised to this merchant's open
// withdrawal offers.
func (r *tradeRepository) CommittedAssetIDs(ctx context.Context, merchantID string) (map[string]struct{}, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var ids []string
	err := r.db.NewSelect().
		TableExpr("withdrawal_items AS wi").
		ColumnExpr("wi.asset_id").
		Join("JOIN trade_withdrawals AS tw ON tw.id = wi.trade_id").
		Where("tw.merchant_steam_id = ?", merchantID).
		Where("tw.completed_at IS NULL").
		Where("tw.failed_at IS NULL").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get committed assets: %w", err)
	}

	committed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		committed[id] = struct{}{}
	}
	return committed, nil
}
