package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	"github.com/ellavondegurechaff/skinmerchant/merchant/database/repositories"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/bridge"
	"github.com/ellavondegurechaff/skinmerchant/merchant/logger"
	"github.com/ellavondegurechaff/skinmerchant/merchant/platform"
)

// ProcessWithdrawal validates, claims, sources and offers one withdrawal. Requests
// that fail validation are claimed and failed without any marketplace call.
func (s *Service) ProcessWithdrawal(ctx context.Context, id int64) error {
	row, err := s.trades.GetWithdrawal(ctx, id)
	if repositories.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if row.MerchantSteamID != nil {
		return nil
	}

	link, err := tradeLink(s.users.GetBySteamID(ctx, row.UserSteamID))
	if err != nil {
		return err
	}

	if failure := s.validateWithdrawal(link, row); failure != nil {
		if _, err := s.claims.ClaimForRejection(ctx, id); err != nil {
			if isAlreadyClaimed(err) {
				return nil
			}
			return err
		}
		return s.settle(ctx, models.KindWithdrawal, id, failure)
	}

	withdrawal, err := s.claims.ClaimWithdrawal(ctx, id)
	if isAlreadyClaimed(err) {
		return nil
	}
	if err != nil {
		return err
	}
	logger.LogTrade("Withdrawal claimed", string(models.KindWithdrawal), id, runAttr(ctx))

	if err := s.offerWithdrawal(ctx, withdrawal, link); err != nil {
		return s.settle(ctx, models.KindWithdrawal, id, err)
	}
	return nil
}

func (s *Service) validateWithdrawal(link string, w *models.TradeWithdrawal) *FailureError {
	switch {
	case link == "":
		return failf(MsgNoTradeLink)
	case len(w.ItemNames) == 0:
		return failf(MsgNoItems)
	case len(w.ItemNames) > s.cfg.MaxWithdrawalItems:
		return failf(MsgTooManyItems, s.cfg.MaxWithdrawalItems)
	}
	return nil
}

func (s *Service) offerWithdrawal(ctx context.Context, w *models.TradeWithdrawal, link string) error {
	offer, err := s.counterparty(ctx, link)
	if err != nil {
		return err
	}

	items, err := s.source(ctx, w)
	if err != nil {
		return err
	}
	reserved := s.sourcer.Reservations()
	defer reserved.Release(assetIDs(items)...)

	offer.AddMyItems(items...)
	offer.SetMessage(fmt.Sprintf(withdrawalMessage, w.ID))

	offerID, err := s.trading.SendOffer(ctx, offer)
	if err != nil {
		return failf(MsgSendFailed, err)
	}

	_, err = withRefresh(ctx, s.session, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.trading.ConfirmOffer(ctx, offerID)
	})
	if err != nil {
		slog.Warn("Offer confirmation failed",
			slog.String("type", "trade"),
			slog.Int64("trade_id", w.ID),
			slog.String("offer_id", offerID),
			slog.Any("error", err),
			runAttr(ctx))
		return failf(MsgConfirmFailed)
	}

	rows := make([]*models.WithdrawalItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, &models.WithdrawalItem{TradeID: w.ID, AssetID: it.AssetID, Name: it.Name})
	}
	err = s.persistOffer(ctx, models.KindWithdrawal, w.ID, offerID, func(ctx context.Context) error {
		return s.trades.MarkWithdrawalOffered(ctx, w.ID, offerID, rows)
	})
	if err != nil {
		return err
	}

	logger.LogTrade("Withdrawal offer sent", string(models.KindWithdrawal), w.ID,
		slog.String("offer_id", offerID),
		slog.Int("items", len(items)),
		runAttr(ctx))
	return nil
}

// source returns one reserved inventory item per requested name, buying whatever the
// free inventory cannot cover. On any shortfall nothing stays reserved.
func (s *Service) source(ctx context.Context, w *models.TradeWithdrawal) ([]platform.Item, error) {
	inventory, err := s.sourcer.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	committed, err := s.trades.CommittedAssetIDs(ctx, s.cfg.SteamID)
	if err != nil {
		return nil, err
	}

	reserved := s.sourcer.Reservations()
	var picked []platform.Item
	var missing []string
	for _, name := range w.ItemNames {
		it, ok := takeFree(name, inventory, committed, reserved)
		if !ok {
			missing = append(missing, name)
			continue
		}
		picked = append(picked, it)
	}

	if len(missing) == 0 {
		return picked, nil
	}

	bought, err := s.sourcer.PurchaseAndImport(ctx, missing)
	if err != nil {
		reserved.Release(assetIDs(picked)...)
		slog.Warn("Withdrawal sourcing fell short",
			slog.String("type", "trade"),
			slog.Int64("trade_id", w.ID),
			slog.Any("missing", missing),
			slog.Any("error", err),
			runAttr(ctx))

		failure := failf(MsgShortfall)
		if rerr := s.recordFailure(ctx, models.KindWithdrawal, w.ID, failure); rerr != nil {
			return nil, errors.Join(failure, rerr)
		}
		if rerr := s.sourcer.RecoverUnconsumed(ctx, missing); rerr != nil {
			logger.LogError("Failed to relist unconsumed purchases", rerr,
				slog.Int64("trade_id", w.ID),
				runAttr(ctx))
		}
		return nil, failure
	}

	return append(picked, bought...), nil
}

func takeFree(name string, inventory []platform.Item, committed map[string]struct{}, reserved *bridge.Reservations) (platform.Item, bool) {
	for _, it := range inventory {
		if it.Name != name {
			continue
		}
		if _, ok := committed[it.AssetID]; ok {
			continue
		}
		if reserved.Reserve(it.AssetID) {
			return it, true
		}
	}
	return platform.Item{}, false
}

func assetIDs(items []platform.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.AssetID)
	}
	return ids
}
