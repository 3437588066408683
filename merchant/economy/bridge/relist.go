package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/utils"
	"github.com/ellavondegurechaff/skinmerchant/merchant/logger"
	"github.com/ellavondegurechaff/skinmerchant/merchant/market"
)

// Relist undercuts the external lowest price by one unit on every listing that has
// been idle for an hour and is no longer at that price. It returns the number of
// listings edited.
func (b *Bridge) Relist(ctx context.Context) (int, error) {
	start := time.Now()

	lowest, err := b.market.LowestPrices(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load lowest prices: %w", err)
	}
	listings, err := market.AllListings(ctx, b.market)
	if err != nil {
		return 0, err
	}

	now := b.now()
	var edits []market.PriceEdit
	for _, l := range listings {
		if len(edits) == utils.RelistMaxEdits {
			break
		}
		if now.Sub(l.UpdatedAt) < utils.RelistIdle {
			continue
		}
		low, ok := lowest[l.Name]
		if !ok || low.Price <= 1 || l.Price == low.Price {
			continue
		}
		edits = append(edits, market.PriceEdit{ListingID: l.ID, Price: low.Price - 1})
	}

	if len(edits) > 0 {
		err = b.market.EditPrices(ctx, edits)
	}
	logger.LogMarket("relist", time.Since(start), err,
		slog.Int("listings", len(listings)),
		slog.Int("edits", len(edits)))
	if err != nil {
		return 0, fmt.Errorf("failed to edit prices: %w", err)
	}
	return len(edits), nil
}
