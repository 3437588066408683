package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/utils"
	"github.com/ellavondegurechaff/skinmerchant/merchant/logger"
	"github.com/ellavondegurechaff/skinmerchant/merchant/market"
	"github.com/ellavondegurechaff/skinmerchant/merchant/platform"
	"github.com/shopspring/decimal"
)

var guardMultiplier = decimal.RequireFromString(utils.PriceGuardMultiplier)

type searchBudget struct {
	limit int
	burst int
	pause time.Duration
	sleep utils.Sleeper
	used  int
}

func (b *searchBudget) take(ctx context.Context) error {
	if b.used >= b.limit {
		return ErrSearchBudget
	}
	if b.used > 0 && b.used%b.burst == 0 {
		slog.Info("Search burst used, pausing",
			slog.String("type", "market"),
			slog.Int("searches", b.used),
			slog.Duration("pause", b.pause))
		if err := b.sleep(ctx, b.pause); err != nil {
			return err
		}
	}
	b.used++
	return nil
}

type purchase struct {
	name    string
	itemIDs []string
	price   int64
}

// PurchaseAndImport buys one listing for every name and waits for the purchases to
// arrive in the platform inventory. It is all-or-nothing: any name that cannot be
// bought fails the batch with ErrShortfall and nothing is imported. Returned items
// are reserved; the caller releases them.
func (b *Bridge) PurchaseAndImport(ctx context.Context, names []string) ([]platform.Item, error) {
	if len(names) == 0 {
		return nil, nil
	}

	b.buyMu.Lock()
	defer b.buyMu.Unlock()

	start := time.Now()
	bought, err := b.purchase(ctx, names)
	logger.LogMarket("purchase", time.Since(start), err,
		slog.Int("requested", len(names)),
		slog.Int("bought", len(bought)))
	if err != nil {
		return nil, err
	}

	return b.importPurchases(ctx, names, bought)
}

func (b *Bridge) purchase(ctx context.Context, names []string) ([]purchase, error) {
	safe, err := b.prices.GetSafePrices(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to load safe prices: %w", err)
	}
	lowest, err := b.market.LowestPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lowest prices: %w", err)
	}
	balance, err := b.market.Balance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}

	budget := &searchBudget{
		limit: b.cfg.SearchLimit,
		burst: b.cfg.SearchBurst,
		pause: b.cfg.SearchPause,
		sleep: b.sleep,
	}

	bought := make([]purchase, 0, len(names))
	for _, name := range names {
		entry, ok := safe[name]
		if !ok || entry.Price <= 0 {
			return bought, fmt.Errorf("%w: no safe price for %q", ErrShortfall, name)
		}

		listings, err := utils.Retry(ctx, b.cfg.Retry, func(ctx context.Context, _ int) ([]market.Listing, error) {
			if err := budget.take(ctx); err != nil {
				return nil, err
			}
			return b.market.Search(ctx, name)
		})
		if err != nil {
			return bought, fmt.Errorf("%w: search for %q: %w", ErrShortfall, name, err)
		}
		if len(listings) == 0 {
			return bought, fmt.Errorf("%w: no listings for %q", ErrShortfall, name)
		}
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].Price < listings[j].Price })

		cheapest := decimal.NewFromInt(listings[0].Price)
		ceiling := decimal.NewFromInt(entry.Price).Mul(guardMultiplier)
		if cheapest.GreaterThan(ceiling) && guarded(lowest, name) {
			slog.Warn("Aborting purchase batch on price guard",
				slog.String("type", "market"),
				slog.String("name", name),
				slog.Int64("cheapest", listings[0].Price),
				slog.Int64("safe", entry.Price),
				slog.Int("quantity", lowest[name].Quantity),
				slog.Bool("quantity_known", hasQuantity(lowest, name)))
			return bought, fmt.Errorf("%w: %w: %q", ErrShortfall, ErrPriceGuard, name)
		}

		candidates := make([]market.Listing, 0, utils.ListingCandidates)
		for _, l := range listings {
			if len(candidates) == utils.ListingCandidates {
				break
			}
			if l.Price <= balance {
				candidates = append(candidates, l)
			}
		}

		ids, used, err := utils.FirstSuccess(ctx, candidates, func(ctx context.Context, l market.Listing) ([]string, error) {
			return b.market.Buy(ctx, l.ID, l.Price)
		})
		if err != nil {
			return bought, fmt.Errorf("%w: buy %q: %w", ErrShortfall, name, err)
		}

		balance -= used.Price
		bought = append(bought, purchase{name: name, itemIDs: ids, price: used.Price})
		slog.Info("Purchased listing",
			slog.String("type", "market"),
			slog.String("name", name),
			slog.String("listing", used.ID),
			slog.Int64("price", used.Price),
			slog.Int64("balance", balance))
	}
	return bought, nil
}

func (b *Bridge) importPurchases(ctx context.Context, names []string, bought []purchase) ([]platform.Item, error) {
	before, err := b.Inventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShortfall, err)
	}
	known := make(map[string]struct{}, len(before))
	for _, it := range before {
		known[it.AssetID] = struct{}{}
	}

	var itemIDs []string
	for _, p := range bought {
		itemIDs = append(itemIDs, p.itemIDs...)
	}

	if err := b.withdraw(ctx, itemIDs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShortfall, err)
	}

	rewithdrawn := false
	for attempt := 1; attempt <= b.cfg.PollAttempts; attempt++ {
		if err := b.sleep(ctx, b.cfg.PollInterval); err != nil {
			return nil, err
		}

		inv, err := b.Inventory(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrShortfall, err)
		}
		if items, ok := b.matchArrivals(names, inv, known); ok && b.held.Reserve(itemAssetIDs(items)...) {
			return items, nil
		}

		if !rewithdrawn && attempt*2 >= b.cfg.PollAttempts && !b.deliveryPending(ctx, itemIDs) {
			rewithdrawn = true
			slog.Warn("Purchased items have not arrived, withdrawing again",
				slog.String("type", "market"),
				slog.Int("attempt", attempt))
			if err := b.withdraw(ctx, itemIDs); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrShortfall, err)
			}
		}
	}
	return nil, fmt.Errorf("%w: purchased items did not arrive", ErrShortfall)
}

func (b *Bridge) withdraw(ctx context.Context, itemIDs []string) error {
	_, err := utils.Retry(ctx, b.cfg.Retry, func(ctx context.Context, _ int) (struct{}, error) {
		return struct{}{}, b.market.Withdraw(ctx, itemIDs)
	})
	if err != nil {
		return fmt.Errorf("failed to withdraw purchases: %w", err)
	}
	return nil
}

// deliveryPending reports whether the marketplace still has an open trade offer
// carrying any of the purchased items.
func (b *Bridge) deliveryPending(ctx context.Context, itemIDs []string) bool {
	offers, err := b.market.TradeOffers(ctx)
	if err != nil {
		return false
	}
	want := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		want[id] = struct{}{}
	}
	for _, o := range offers {
		for _, id := range o.ItemIDs {
			if _, ok := want[id]; ok {
				return true
			}
		}
	}
	return false
}

// matchArrivals takes exactly one new inventory item per requested name.
func (b *Bridge) matchArrivals(names []string, inv []platform.Item, known map[string]struct{}) ([]platform.Item, bool) {
	fresh := make(map[string][]platform.Item)
	for _, it := range inv {
		if _, ok := known[it.AssetID]; ok || b.held.Has(it.AssetID) {
			continue
		}
		fresh[it.Name] = append(fresh[it.Name], it)
	}

	out := make([]platform.Item, 0, len(names))
	for _, name := range names {
		pool := fresh[name]
		if len(pool) == 0 {
			return nil, false
		}
		out = append(out, pool[0])
		fresh[name] = pool[1:]
	}
	return out, true
}

func itemAssetIDs(items []platform.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.AssetID)
	}
	return ids
}

// guarded reports whether the price guard applies to name. A name missing from the
// lowest-price snapshot has unknown supply and is guarded.
func guarded(lowest map[string]market.LowestPrice, name string) bool {
	lp, ok := lowest[name]
	return !ok || lp.Quantity >= utils.GuardMinQuantity
}

func hasQuantity(lowest map[string]market.LowestPrice, name string) bool {
	_, ok := lowest[name]
	return ok
}
