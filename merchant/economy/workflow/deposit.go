package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	"github.com/ellavondegurechaff/skinmerchant/merchant/logger"
	"github.com/ellavondegurechaff/skinmerchant/merchant/platform"
)

// ProcessDeposit claims a deposit and sends the user an offer asking for the
// deposited items. A deposit claimed by someone else is a silent no-op.
func (s *Service) ProcessDeposit(ctx context.Context, id int64) error {
	deposit, err := s.claims.ClaimDeposit(ctx, id)
	if isAlreadyClaimed(err) {
		return nil
	}
	if err != nil {
		return err
	}
	logger.LogTrade("Deposit claimed", string(models.KindDeposit), id, runAttr(ctx))

	offerID, err := s.offerDeposit(ctx, deposit)
	if err != nil {
		return s.settle(ctx, models.KindDeposit, id, err)
	}

	err = s.persistOffer(ctx, models.KindDeposit, id, offerID, func(ctx context.Context) error {
		return s.trades.MarkDepositOffered(ctx, id, offerID)
	})
	if err != nil {
		return s.settle(ctx, models.KindDeposit, id, err)
	}

	logger.LogTrade("Deposit offer sent", string(models.KindDeposit), id,
		slog.String("offer_id", offerID), runAttr(ctx))
	return nil
}

func (s *Service) offerDeposit(ctx context.Context, deposit *models.TradeDeposit) (string, error) {
	link, err := tradeLink(s.users.GetBySteamID(ctx, deposit.UserSteamID))
	if err != nil {
		return "", err
	}
	if link == "" {
		return "", failf(MsgNoTradeLink)
	}

	requested, err := s.trades.GetDepositItems(ctx, deposit.ID)
	if err != nil {
		return "", err
	}
	if len(requested) == 0 {
		return "", failf(MsgNoItems)
	}

	inventory, err := withRefresh(ctx, s.session, func(ctx context.Context) ([]platform.Item, error) {
		return s.trading.Inventory(ctx, deposit.UserSteamID, deposit.AppID, s.cfg.ContextID)
	})
	if err != nil {
		slog.Warn("User inventory unavailable",
			slog.String("type", "trade"),
			slog.Int64("trade_id", deposit.ID),
			slog.Any("error", err),
			runAttr(ctx))
		return "", failf(MsgInventoryFetch)
	}

	items, err := pickAssets(requested, inventory)
	if err != nil {
		return "", err
	}

	offer, err := s.counterparty(ctx, link)
	if err != nil {
		return "", err
	}

	offer.AddTheirItems(items...)
	offer.SetMessage(fmt.Sprintf(depositMessage, deposit.ID))

	offerID, err := s.trading.SendOffer(ctx, offer)
	if err != nil {
		return "", failf(MsgSendFailed, err)
	}
	return offerID, nil
}

// pickAssets resolves every requested asset id against the user's inventory. Each row
// must map to its own unit; a repeated asset id cannot be fulfilled.
func pickAssets(requested []*models.DepositItem, inventory []platform.Item) ([]platform.Item, error) {
	byAsset := make(map[string]platform.Item, len(inventory))
	for _, it := range inventory {
		byAsset[it.AssetID] = it
	}

	items := make([]platform.Item, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, r := range requested {
		it, ok := byAsset[r.AssetID]
		if !ok {
			return nil, failf(MsgMissingItems)
		}
		if _, dup := seen[r.AssetID]; dup {
			return nil, failf(MsgMissingItems)
		}
		seen[r.AssetID] = struct{}{}
		items = append(items, it)
	}
	return items, nil
}
