package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/utils"
	"github.com/ellavondegurechaff/skinmerchant/merchant/logger"
	"github.com/ellavondegurechaff/skinmerchant/merchant/market"
	"github.com/shopspring/decimal"
)

var (
	undervaluedRatio   = decimal.RequireFromString(utils.UndervaluedRatio)
	scarcityMultiplier = decimal.RequireFromString(utils.ScarcityMultiplier)
)

// ListingPrice prices one unit for sale. When the external lowest is at or below the
// undervaluation ratio of the safe price the safe price is used; otherwise the lowest
// is marked up for scarce items and rounded up, never above lowest*1.05.
func ListingPrice(safe int64, lowest market.LowestPrice) int64 {
	if lowest.Price <= 0 {
		return safe
	}

	low := decimal.NewFromInt(lowest.Price)
	if low.LessThanOrEqual(decimal.NewFromInt(safe).Mul(undervaluedRatio)) {
		return safe
	}

	multiplier := decimal.NewFromInt(1)
	if lowest.Quantity <= utils.ScarceQuantity {
		multiplier = scarcityMultiplier
	}

	price := low.Mul(multiplier).Ceil()
	ceiling := low.Mul(scarcityMultiplier).Floor()
	if price.GreaterThan(ceiling) {
		price = ceiling
	}
	return price.IntPart()
}

type listable struct {
	assetID string
	itemID  string
	name    string
}

// ListAfterAcquisition lists every free inventory item: not committed to an open
// withdrawal, not reserved by one in progress and not already listed.
func (b *Bridge) ListAfterAcquisition(ctx context.Context) error {
	start := time.Now()

	inv, err := b.Inventory(ctx)
	if err != nil {
		return err
	}
	committed, err := b.trades.CommittedAssetIDs(ctx, b.cfg.SteamID)
	if err != nil {
		return err
	}
	listings, err := market.AllListings(ctx, b.market)
	if err != nil {
		return err
	}
	listed := make(map[string]struct{}, len(listings))
	for _, l := range listings {
		listed[l.AssetID] = struct{}{}
	}

	var free []listable
	for _, it := range inv {
		if _, ok := committed[it.AssetID]; ok {
			continue
		}
		if _, ok := listed[it.AssetID]; ok {
			continue
		}
		if b.held.Has(it.AssetID) {
			continue
		}
		free = append(free, listable{assetID: it.AssetID, name: it.Name})
	}

	n, err := b.list(ctx, free)
	logger.LogMarket("list_after_acquisition", time.Since(start), err,
		slog.Int("inventory", len(inv)),
		slog.Int("free", len(free)),
		slog.Int("listed", n))
	return err
}

// RecoverUnconsumed lists marketplace-held items left over from an abandoned
// purchase batch.
func (b *Bridge) RecoverUnconsumed(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	start := time.Now()

	held, err := b.market.Inventory(ctx)
	if err != nil {
		return fmt.Errorf("failed to read marketplace inventory: %w", err)
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	var leftovers []listable
	for _, it := range held {
		if _, ok := wanted[it.Name]; ok {
			leftovers = append(leftovers, listable{itemID: it.ID, name: it.Name})
		}
	}

	n, err := b.list(ctx, leftovers)
	logger.LogMarket("recover_unconsumed", time.Since(start), err,
		slog.Int("held", len(held)),
		slog.Int("listed", n))
	return err
}

func (b *Bridge) list(ctx context.Context, items []listable) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.name)
	}
	safe, err := b.prices.GetSafePrices(ctx, names)
	if err != nil {
		return 0, fmt.Errorf("failed to load safe prices: %w", err)
	}
	lowest, err := b.market.LowestPrices(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load lowest prices: %w", err)
	}

	requests := make([]market.ListRequest, 0, len(items))
	for _, it := range items {
		entry := safe[it.name]
		if !sellable(entry) {
			continue
		}
		requests = append(requests, market.ListRequest{
			AssetID: it.assetID,
			ItemID:  it.itemID,
			Price:   ListingPrice(entry.Price, lowest[it.name]),
		})
	}
	if len(requests) == 0 {
		return 0, nil
	}

	if err := b.market.List(ctx, requests); err != nil {
		return 0, fmt.Errorf("failed to list items: %w", err)
	}
	return len(requests), nil
}

func sellable(entry *models.PriceCacheEntry) bool {
	return entry != nil && !entry.Blacklisted && entry.Price > 0
}
