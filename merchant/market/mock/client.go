package mock

import (
	context "context"
	reflect "reflect"

	market "github.com/ellavondegurechaff/skinmerchant/merchant/market"
	gomock "go.uber.org/mock/gomock"
)

// MockClient is a mock of Client interface.
type MockClient struct {
	ctrl     *gomock.Controller
	recorder *MockClientMockRecorder
	isgomock struct{}
}

// MockClientMockRecorder is the mock recorder for MockClient.
type MockClientMockRecorder struct {
	mock *MockClient
}

// NewMockClient creates a new mock instance.
func NewMockClient(ctrl *gomock.Controller) *MockClient {
	mock := &MockClient{ctrl: ctrl}
	mock.recorder = &MockClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClient) EXPECT() *MockClientMockRecorder {
	return m.recorder
}

// Balance mocks base method.
func (m *MockClient) Balance(ctx context.Context) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Balance", ctx)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Balance indicates an expected call of Balance.
func (mr *MockClientMockRecorder) Balance(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Balance", reflect.TypeOf((*MockClient)(nil).Balance), ctx)
}

// Buy mocks base method.
func (m *MockClient) Buy(ctx context.Context, listingID string, price int64) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Buy", ctx, listingID, price)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Buy indicates an expected call of Buy.
func (mr *MockClientMockRecorder) Buy(ctx, listingID, price any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Buy", reflect.TypeOf((*MockClient)(nil).Buy), ctx, listingID, price)
}

// EditPrices mocks base method.
func (m *MockClient) EditPrices(ctx context.Context, edits []market.PriceEdit) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EditPrices", ctx, edits)
	ret0, _ := ret[0].(error)
	return ret0
}

// EditPrices indicates an expected call of EditPrices.
func (mr *MockClientMockRecorder) EditPrices(ctx, edits any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EditPrices", reflect.TypeOf((*MockClient)(nil).EditPrices), ctx, edits)
}

// Inventory mocks base method.
func (m *MockClient) Inventory(ctx context.Context) ([]market.HeldItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Inventory", ctx)
	ret0, _ := ret[0].([]market.HeldItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Inventory indicates an expected call of Inventory.
func (mr *MockClientMockRecorder) Inventory(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Inventory", reflect.TypeOf((*MockClient)(nil).Inventory), ctx)
}

// List mocks base method.
func (m *MockClient) List(ctx context.Context, items []market.ListRequest) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, items)
	ret0, _ := ret[0].(error)
	return ret0
}

// List indicates an expected call of List.
func (mr *MockClientMockRecorder) List(ctx, items any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockClient)(nil).List), ctx, items)
}

// Listings mocks base method.
func (m *MockClient) Listings(ctx context.Context, page int) ([]market.OwnListing, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Listings", ctx, page)
	ret0, _ := ret[0].([]market.OwnListing)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Listings indicates an expected call of Listings.
func (mr *MockClientMockRecorder) Listings(ctx, page any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Listings", reflect.TypeOf((*MockClient)(nil).Listings), ctx, page)
}

// LowestPrices mocks base method.
func (m *MockClient) LowestPrices(ctx context.Context) (map[string]market.LowestPrice, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LowestPrices", ctx)
	ret0, _ := ret[0].(map[string]market.LowestPrice)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LowestPrices indicates an expected call of LowestPrices.
func (mr *MockClientMockRecorder) LowestPrices(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LowestPrices", reflect.TypeOf((*MockClient)(nil).LowestPrices), ctx)
}

// Search mocks base method.
func (m *MockClient) Search(ctx context.Context, name string) ([]market.Listing, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Search", ctx, name)
	ret0, _ := ret[0].([]market.Listing)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Search indicates an expected call of Search.
func (mr *MockClientMockRecorder) Search(ctx, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Search", reflect.TypeOf((*MockClient)(nil).Search), ctx, name)
}

// TradeOffers mocks base method.
func (m *MockClient) TradeOffers(ctx context.Context) ([]market.TradeOffer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TradeOffers", ctx)
	ret0, _ := ret[0].([]market.TradeOffer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TradeOffers indicates an expected call of TradeOffers.
func (mr *MockClientMockRecorder) TradeOffers(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TradeOffers", reflect.TypeOf((*MockClient)(nil).TradeOffers), ctx)
}

// Withdraw mocks base method.
func (m *MockClient) Withdraw(ctx context.Context, itemIDs []string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Withdraw", ctx, itemIDs)
	ret0, _ := ret[0].(error)
	return ret0
}

// Withdraw indicates an expected call of Withdraw.
func (mr *MockClientMockRecorder) Withdraw(ctx, itemIDs any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Withdraw", reflect.TypeOf((*MockClient)(nil).Withdraw), ctx, itemIDs)
}
