package bridge

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	repomock "github.com/ellavondegurechaff/skinmerchant/merchant/database/repositories/mock"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/utils"
	"github.com/ellavondegurechaff/skinmerchant/merchant/market"
	marketmock "github.com/ellavondegurechaff/skinmerchant/merchant/market/mock"
	"github.com/ellavondegurechaff/skinmerchant/merchant/platform"
	platformmock "github.com/ellavondegurechaff/skinmerchant/merchant/platform/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	steamID   = "76561198000000001"
	appID     = 730
	contextID = "2"

	redline = "AK-47 | Redline (Field-Tested)"
	asiimov = "AWP | Asiimov (Field-Tested)"
)

type fakeRefresher struct{ calls int }

func (f *fakeRefresher) Refresh(context.Context) error {
	f.calls++
	return nil
}

type fixture struct {
	bridge  *Bridge
	market  *marketmock.MockClient
	trading *platformmock.MockClient
	prices  *repomock.MockPriceRepository
	trades  *repomock.MockTradeRepository
	session *fakeRefresher
	sleeps  []time.Duration
}

func newFixture(t *testing.T, cfg Config) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		market:  marketmock.NewMockClient(ctrl),
		trading: platformmock.NewMockClient(ctrl),
		prices:  repomock.NewMockPriceRepository(ctrl),
		trades:  repomock.NewMockTradeRepository(ctrl),
		session: &fakeRefresher{},
	}

	cfg.SteamID = steamID
	cfg.AppID = appID
	cfg.ContextID = contextID
	cfg.Retry = utils.RetryPolicy{
		Attempts: utils.RetryAttempts,
		Backoff:  utils.RetryBackoff,
		Sleep: func(ctx context.Context, d time.Duration) error {
			f.sleeps = append(f.sleeps, d)
			return ctx.Err()
		},
	}
	f.bridge = New(f.market, f.trading, f.session, f.prices, f.trades, cfg)
	f.bridge.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func safePrices(prices map[string]int64) map[string]*models.PriceCacheEntry {
	out := make(map[string]*models.PriceCacheEntry, len(prices))
	for name, p := range prices {
		out[name] = &models.PriceCacheEntry{Name: name, Price: p}
	}
	return out
}

func item(assetID, name string) platform.Item {
	return platform.Item{AssetID: assetID, AppID: appID, ContextID: contextID, Name: name, Amount: 1}
}

func countSleeps(sleeps []time.Duration, d time.Duration) int {
	n := 0
	for _, s := range sleeps {
		if s == d {
			n++
		}
	}
	return n
}

func TestListingPrice(t *testing.T) {
	tests := []struct {
		name   string
		safe   int64
		lowest market.LowestPrice
		want   int64
	}{
		{name: "undervalued uses safe price", safe: 1000, lowest: market.LowestPrice{Price: 650, Quantity: 100}, want: 1000},
		{name: "just above undervaluation", safe: 1000, lowest: market.LowestPrice{Price: 651, Quantity: 100}, want: 651},
		{name: "plentiful keeps lowest", safe: 1000, lowest: market.LowestPrice{Price: 900, Quantity: 13}, want: 900},
		{name: "scarce marks up", safe: 1000, lowest: market.LowestPrice{Price: 1000, Quantity: 12}, want: 1050},
		{name: "scarce markup never exceeds cap", safe: 100, lowest: market.LowestPrice{Price: 101, Quantity: 1}, want: 106},
		{name: "no external price", safe: 700, lowest: market.LowestPrice{}, want: 700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListingPrice(tt.safe, tt.lowest))
		})
	}
}

func TestListingPrice_Bounds(t *testing.T) {
	for _, safe := range []int64{3, 50, 999, 12345} {
		for low := int64(1); low < 3*safe; low += 7 {
			for _, qty := range []int{1, 12, 13, 5000} {
				got := ListingPrice(safe, market.LowestPrice{Price: low, Quantity: qty})
				if float64(low) <= 0.65*float64(safe) {
					assert.Equal(t, safe, got, "undervalued safe=%d low=%d", safe, low)
					continue
				}
				assert.LessOrEqual(t, float64(got), 1.05*float64(low), "safe=%d low=%d qty=%d", safe, low, qty)
				assert.GreaterOrEqual(t, got, low)
			}
		}
	}
}

func TestPurchaseAndImport_SearchFailsTwiceThenSucceeds(t *testing.T) {
	f := newFixture(t, Config{PollAttempts: 3, PollInterval: 10 * time.Second})
	ctx := context.Background()

	f.prices.EXPECT().GetSafePrices(gomock.Any(), []string{redline}).Return(safePrices(map[string]int64{redline: 1000}), nil)
	f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{}, nil)
	f.market.EXPECT().Balance(gomock.Any()).Return(int64(5000), nil)

	searches := 0
	f.market.EXPECT().Search(gomock.Any(), redline).DoAndReturn(func(context.Context, string) ([]market.Listing, error) {
		searches++
		if searches < 3 {
			return nil, errors.New("429 too many requests")
		}
		return []market.Listing{{ID: "third", Name: redline, Price: 990}}, nil
	}).Times(3)
	f.market.EXPECT().Buy(gomock.Any(), "third", int64(990)).Return([]string{"m-1"}, nil)
	f.market.EXPECT().Withdraw(gomock.Any(), []string{"m-1"}).Return(nil)

	gomock.InOrder(
		f.trading.EXPECT().Inventory(gomock.Any(), steamID, appID, contextID).
			Return([]platform.Item{item("old", redline)}, nil),
		f.trading.EXPECT().Inventory(gomock.Any(), steamID, appID, contextID).
			Return([]platform.Item{item("old", redline), item("new", redline)}, nil),
	)

	items, err := f.bridge.PurchaseAndImport(ctx, []string{redline})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].AssetID)
	assert.Equal(t, 2, countSleeps(f.sleeps, utils.RetryBackoff))
	assert.Equal(t, 1, countSleeps(f.sleeps, 10*time.Second))
}

func TestPurchaseAndImport_PriceGuard(t *testing.T) {
	t.Run("aborts when cheapest is inflated and plentiful", func(t *testing.T) {
		f := newFixture(t, Config{})
		f.prices.EXPECT().GetSafePrices(gomock.Any(), gomock.Any()).Return(safePrices(map[string]int64{redline: 1000, asiimov: 5000}), nil)
		f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{
			redline: {Name: redline, Price: 1051, Quantity: 400},
		}, nil)
		f.market.EXPECT().Balance(gomock.Any()).Return(int64(100000), nil)
		f.market.EXPECT().Search(gomock.Any(), redline).Return([]market.Listing{{ID: "x", Price: 1051}}, nil)

		_, err := f.bridge.PurchaseAndImport(context.Background(), []string{redline, asiimov})
		assert.ErrorIs(t, err, ErrShortfall)
		assert.ErrorIs(t, err, ErrPriceGuard)
	})

	t.Run("aborts when the name has no lowest-price entry", func(t *testing.T) {
		f := newFixture(t, Config{})
		f.prices.EXPECT().GetSafePrices(gomock.Any(), gomock.Any()).Return(safePrices(map[string]int64{redline: 1000}), nil)
		f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{
			asiimov: {Name: asiimov, Price: 4000, Quantity: 10},
		}, nil)
		f.market.EXPECT().Balance(gomock.Any()).Return(int64(100000), nil)
		f.market.EXPECT().Search(gomock.Any(), redline).Return([]market.Listing{{ID: "x", Price: 1051}}, nil)

		_, err := f.bridge.PurchaseAndImport(context.Background(), []string{redline})
		assert.ErrorIs(t, err, ErrPriceGuard)
	})

	t.Run("buys when quantity is below the guard", func(t *testing.T) {
		f := newFixture(t, Config{})
		f.prices.EXPECT().GetSafePrices(gomock.Any(), gomock.Any()).Return(safePrices(map[string]int64{redline: 1000}), nil)
		f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{
			redline: {Name: redline, Price: 1051, Quantity: 399},
		}, nil)
		f.market.EXPECT().Balance(gomock.Any()).Return(int64(100000), nil)
		f.market.EXPECT().Search(gomock.Any(), redline).Return([]market.Listing{{ID: "x", Price: 1051}}, nil)
		f.market.EXPECT().Buy(gomock.Any(), "x", int64(1051)).Return([]string{"m-x"}, nil)
		f.trading.EXPECT().Inventory(gomock.Any(), steamID, appID, contextID).Return(nil, errors.New("offline")).Times(2)

		_, err := f.bridge.PurchaseAndImport(context.Background(), []string{redline})
		assert.ErrorIs(t, err, ErrShortfall)
		assert.NotErrorIs(t, err, ErrPriceGuard)
		assert.Equal(t, 1, f.session.calls)
	})
}

func TestPurchaseAndImport_BuyFallsBackToCheaperListings(t *testing.T) {
	f := newFixture(t, Config{PollAttempts: 1, PollInterval: time.Second})

	f.prices.EXPECT().GetSafePrices(gomock.Any(), gomock.Any()).Return(safePrices(map[string]int64{redline: 1000}), nil)
	f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{}, nil)
	f.market.EXPECT().Balance(gomock.Any()).Return(int64(5000), nil)
	f.market.EXPECT().Search(gomock.Any(), redline).Return([]market.Listing{
		{ID: "l4", Price: 120},
		{ID: "l2", Price: 105},
		{ID: "l1", Price: 100},
		{ID: "l3", Price: 110},
	}, nil)
	gomock.InOrder(
		f.market.EXPECT().Buy(gomock.Any(), "l1", int64(100)).Return(nil, errors.New("listing gone")),
		f.market.EXPECT().Buy(gomock.Any(), "l2", int64(105)).Return(nil, errors.New("listing gone")),
		f.market.EXPECT().Buy(gomock.Any(), "l3", int64(110)).Return([]string{"m-3"}, nil),
	)
	f.market.EXPECT().Withdraw(gomock.Any(), []string{"m-3"}).Return(nil)
	gomock.InOrder(
		f.trading.EXPECT().Inventory(gomock.Any(), steamID, appID, contextID).Return(nil, nil),
		f.trading.EXPECT().Inventory(gomock.Any(), steamID, appID, contextID).Return([]platform.Item{item("a", redline)}, nil),
	)

	items, err := f.bridge.PurchaseAndImport(context.Background(), []string{redline})
	require.NoError(t, err)
	assert.Equal(t, "a", items[0].AssetID)
}

func TestPurchaseAndImport_AllOrNothing(t *testing.T) {
	f := newFixture(t, Config{})

	f.prices.EXPECT().GetSafePrices(gomock.Any(), gomock.Any()).Return(safePrices(map[string]int64{redline: 1000, asiimov: 5000}), nil)
	f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{}, nil)
	f.market.EXPECT().Balance(gomock.Any()).Return(int64(5500), nil)
	f.market.EXPECT().Search(gomock.Any(), redline).Return([]market.Listing{{ID: "r", Price: 1000}}, nil)
	f.market.EXPECT().Buy(gomock.Any(), "r", int64(1000)).Return([]string{"m-r"}, nil)
	// remaining balance 4500 cannot cover the only asiimov listing
	f.market.EXPECT().Search(gomock.Any(), asiimov).Return([]market.Listing{{ID: "a", Price: 4800}}, nil)

	items, err := f.bridge.PurchaseAndImport(context.Background(), []string{redline, asiimov})
	assert.ErrorIs(t, err, ErrShortfall)
	assert.Nil(t, items)
}

func TestPurchaseAndImport_MissingSafePrice(t *testing.T) {
	f := newFixture(t, Config{})

	f.prices.EXPECT().GetSafePrices(gomock.Any(), gomock.Any()).Return(safePrices(map[string]int64{}), nil)
	f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{}, nil)
	f.market.EXPECT().Balance(gomock.Any()).Return(int64(5500), nil)

	_, err := f.bridge.PurchaseAndImport(context.Background(), []string{redline})
	assert.ErrorIs(t, err, ErrShortfall)
}

func TestPurchaseAndImport_WithdrawsAgainWhenItemsDoNotArrive(t *testing.T) {
	f := newFixture(t, Config{PollAttempts: 4, PollInterval: 5 * time.Second})

	f.prices.EXPECT().GetSafePrices(gomock.Any(), gomock.Any()).Return(safePrices(map[string]int64{redline: 1000}), nil)
	f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{}, nil)
	f.market.EXPECT().Balance(gomock.Any()).Return(int64(5000), nil)
	f.market.EXPECT().Search(gomock.Any(), redline).Return([]market.Listing{{ID: "r", Price: 900}}, nil)
	f.market.EXPECT().Buy(gomock.Any(), "r", int64(900)).Return([]string{"m-r"}, nil)
	f.market.EXPECT().Withdraw(gomock.Any(), []string{"m-r"}).Return(nil).Times(2)
	f.market.EXPECT().TradeOffers(gomock.Any()).Return([]market.TradeOffer{{ID: "o", ItemIDs: []string{"unrelated"}}}, nil)

	polls := 0
	f.trading.EXPECT().Inventory(gomock.Any(), steamID, appID, contextID).DoAndReturn(
		func(context.Context, string, int, string) ([]platform.Item, error) {
			polls++
			if polls < 5 {
				return []platform.Item{item("old", redline)}, nil
			}
			return []platform.Item{item("old", redline), item("late", redline)}, nil
		}).Times(5)

	items, err := f.bridge.PurchaseAndImport(context.Background(), []string{redline})
	require.NoError(t, err)
	assert.Equal(t, "late", items[0].AssetID)
}

func TestPurchaseAndImport_ConsumesOneItemPerName(t *testing.T) {
	f := newFixture(t, Config{PollAttempts: 1, PollInterval: time.Second})

	f.prices.EXPECT().GetSafePrices(gomock.Any(), gomock.Any()).Return(safePrices(map[string]int64{redline: 1000}), nil)
	f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{}, nil)
	f.market.EXPECT().Balance(gomock.Any()).Return(int64(5000), nil)
	f.market.EXPECT().Search(gomock.Any(), redline).Return([]market.Listing{{ID: "r1", Price: 900}, {ID: "r2", Price: 901}}, nil).Times(2)
	f.market.EXPECT().Buy(gomock.Any(), "r1", int64(900)).Return([]string{"m-1"}, nil).Times(2)
	f.market.EXPECT().Withdraw(gomock.Any(), []string{"m-1", "m-1"}).Return(nil)
	gomock.InOrder(
		f.trading.EXPECT().Inventory(gomock.Any(), steamID, appID, contextID).Return(nil, nil),
		f.trading.EXPECT().Inventory(gomock.Any(), steamID, appID, contextID).Return([]platform.Item{
			item("n1", redline), item("n2", redline), item("n3", redline), item("x", asiimov),
		}, nil),
	)

	items, err := f.bridge.PurchaseAndImport(context.Background(), []string{redline, redline})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].AssetID, items[1].AssetID)
	for _, it := range items {
		assert.Equal(t, redline, it.Name)
	}
}

func TestSearchBudget(t *testing.T) {
	var pauses []time.Duration
	b := &searchBudget{
		limit: 5,
		burst: 2,
		pause: time.Minute,
		sleep: func(_ context.Context, d time.Duration) error {
			pauses = append(pauses, d)
			return nil
		},
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, b.take(context.Background()))
	}
	assert.Equal(t, []time.Duration{time.Minute, time.Minute}, pauses)
	assert.ErrorIs(t, b.take(context.Background()), ErrSearchBudget)
}

func TestRelist(t *testing.T) {
	f := newFixture(t, Config{})
	now := f.bridge.now()

	f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{
		redline: {Name: redline, Price: 1000, Quantity: 50},
		asiimov: {Name: asiimov, Price: 5000, Quantity: 50},
	}, nil)
	f.market.EXPECT().Listings(gomock.Any(), 1).Return([]market.OwnListing{
		{ID: "idle-high", Name: redline, Price: 1200, UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: "idle-low", Name: asiimov, Price: 4000, UpdatedAt: now.Add(-time.Hour)},
		{ID: "fresh", Name: redline, Price: 1200, UpdatedAt: now.Add(-10 * time.Minute)},
		{ID: "at-lowest", Name: redline, Price: 1000, UpdatedAt: now.Add(-3 * time.Hour)},
		{ID: "unpriced", Name: "Sticker | Unknown", Price: 10, UpdatedAt: now.Add(-3 * time.Hour)},
	}, false, nil)
	f.market.EXPECT().EditPrices(gomock.Any(), []market.PriceEdit{
		{ListingID: "idle-high", Price: 999},
		{ListingID: "idle-low", Price: 4999},
	}).Return(nil)

	n, err := f.bridge.Relist(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRelist_CapsEdits(t *testing.T) {
	f := newFixture(t, Config{})
	now := f.bridge.now()

	listings := make([]market.OwnListing, 0, 600)
	for i := 0; i < 600; i++ {
		listings = append(listings, market.OwnListing{
			ID: fmt.Sprintf("l%d", i), Name: redline, Price: 2000, UpdatedAt: now.Add(-2 * time.Hour),
		})
	}

	f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{redline: {Price: 1000}}, nil)
	f.market.EXPECT().Listings(gomock.Any(), 1).Return(listings, false, nil)
	f.market.EXPECT().EditPrices(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, edits []market.PriceEdit) error {
		assert.Len(t, edits, utils.RelistMaxEdits)
		for _, e := range edits {
			assert.Equal(t, int64(999), e.Price)
		}
		return nil
	})

	n, err := f.bridge.Relist(context.Background())
	require.NoError(t, err)
	assert.Equal(t, utils.RelistMaxEdits, n)
}

func TestListAfterAcquisition(t *testing.T) {
	f := newFixture(t, Config{})
	const knife = "★ Karambit | Doppler (Factory New)"

	require.True(t, f.bridge.Reservations().Reserve("reserved"))

	f.trading.EXPECT().Inventory(gomock.Any(), steamID, appID, contextID).Return([]platform.Item{
		item("committed", redline),
		item("listed", redline),
		item("reserved", redline),
		item("free", redline),
		item("banned", asiimov),
		item("no-price", knife),
	}, nil)
	f.trades.EXPECT().CommittedAssetIDs(gomock.Any(), steamID).Return(map[string]struct{}{"committed": {}}, nil)
	f.market.EXPECT().Listings(gomock.Any(), 1).Return([]market.OwnListing{{ID: "x", AssetID: "listed"}}, false, nil)
	f.prices.EXPECT().GetSafePrices(gomock.Any(), []string{redline, asiimov, knife}).Return(map[string]*models.PriceCacheEntry{
		redline: {Name: redline, Price: 1000},
		asiimov: {Name: asiimov, Price: 5000, Blacklisted: true},
	}, nil)
	f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{
		redline: {Name: redline, Price: 900, Quantity: 8},
	}, nil)
	f.market.EXPECT().List(gomock.Any(), []market.ListRequest{{AssetID: "free", Price: 945}}).Return(nil)

	require.NoError(t, f.bridge.ListAfterAcquisition(context.Background()))
}

func TestRecoverUnconsumed(t *testing.T) {
	f := newFixture(t, Config{})

	f.market.EXPECT().Inventory(gomock.Any()).Return([]market.HeldItem{
		{ID: "h1", Name: redline},
		{ID: "h2", Name: "Glove Case"},
		{ID: "h3", Name: asiimov},
	}, nil)
	f.prices.EXPECT().GetSafePrices(gomock.Any(), []string{redline, asiimov}).Return(safePrices(map[string]int64{redline: 1000, asiimov: 5000}), nil)
	f.market.EXPECT().LowestPrices(gomock.Any()).Return(map[string]market.LowestPrice{
		redline: {Price: 600, Quantity: 100},
		asiimov: {Price: 4800, Quantity: 100},
	}, nil)
	f.market.EXPECT().List(gomock.Any(), []market.ListRequest{
		{ItemID: "h1", Price: 1000},
		{ItemID: "h3", Price: 4800},
	}).Return(nil)

	require.NoError(t, f.bridge.RecoverUnconsumed(context.Background(), []string{redline, asiimov}))
}

func TestReservations(t *testing.T) {
	var r Reservations
	require.True(t, r.Reserve("a", "b"))
	assert.False(t, r.Reserve("c", "b"), "overlapping reservation fails")
	assert.False(t, r.Has("c"), "failed reservation rolls back")
	r.Release("a", "b")
	assert.True(t, r.Reserve("b", "c"))
}
