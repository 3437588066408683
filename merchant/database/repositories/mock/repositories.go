package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockTradeRepository is a mock of TradeRepository interface.
type MockTradeRepository struct {
	ctrl     *gomock.Controller
	recorder *MockTradeRepositoryMockRecorder
	isgomock struct{}
}

// MockTradeRepositoryMockRecorder is the mock recorder for MockTradeRepository.
type MockTradeRepositoryMockRecorder struct {
	mock *MockTradeRepository
}

// NewMockTradeRepository creates a new mock instance.
func NewMockTradeRepository(ctrl *gomock.Controller) *MockTradeRepository {
	mock := &MockTradeRepository{ctrl: ctrl}
	mock.recorder = &MockTradeRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTradeRepository) EXPECT() *MockTradeRepositoryMockRecorder {
	return m.recorder
}

// ClaimDeposit mocks base method.
func (m *MockTradeRepository) ClaimDeposit(ctx context.Context, id int64, appID int, merchantID string) (*models.TradeDeposit, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimDeposit", ctx, id, appID, merchantID)
	ret0, _ := ret[0].(*models.TradeDeposit)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimDeposit indicates an expected call of ClaimDeposit.
func (mr *MockTradeRepositoryMockRecorder) ClaimDeposit(ctx, id, appID, merchantID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimDeposit", reflect.TypeOf((*MockTradeRepository)(nil).ClaimDeposit), ctx, id, appID, merchantID)
}

// ClaimWithdrawal mocks base method.
func (m *MockTradeRepository) ClaimWithdrawal(ctx context.Context, id int64, appID int, merchantID string, maxTotal *int64) (*models.TradeWithdrawal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimWithdrawal", ctx, id, appID, merchantID, maxTotal)
	ret0, _ := ret[0].(*models.TradeWithdrawal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimWithdrawal indicates an expected call of ClaimWithdrawal.
func (mr *MockTradeRepositoryMockRecorder) ClaimWithdrawal(ctx, id, appID, merchantID, maxTotal any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimWithdrawal", reflect.TypeOf((*MockTradeRepository)(nil).ClaimWithdrawal), ctx, id, appID, merchantID, maxTotal)
}

// CommittedAssetIDs mocks base method.
func (m *MockTradeRepository) CommittedAssetIDs(ctx context.Context, merchantID string) (map[string]struct{}, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CommittedAssetIDs", ctx, merchantID)
	ret0, _ := ret[0].(map[string]struct{})
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CommittedAssetIDs indicates an expected call of CommittedAssetIDs.
func (mr *MockTradeRepositoryMockRecorder) CommittedAssetIDs(ctx, merchantID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CommittedAssetIDs", reflect.TypeOf((*MockTradeRepository)(nil).CommittedAssetIDs), ctx, merchantID)
}

// CompleteDeposit mocks base method.
func (m *MockTradeRepository) CompleteDeposit(ctx context.Context, id int64) (*models.TradeDeposit, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CompleteDeposit", ctx, id)
	ret0, _ := ret[0].(*models.TradeDeposit)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CompleteDeposit indicates an expected call of CompleteDeposit.
func (mr *MockTradeRepositoryMockRecorder) CompleteDeposit(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CompleteDeposit", reflect.TypeOf((*MockTradeRepository)(nil).CompleteDeposit), ctx, id)
}

// CompleteWithdrawal mocks base method.
func (m *MockTradeRepository) CompleteWithdrawal(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CompleteWithdrawal", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// CompleteWithdrawal indicates an expected call of CompleteWithdrawal.
func (mr *MockTradeRepositoryMockRecorder) CompleteWithdrawal(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CompleteWithdrawal", reflect.TypeOf((*MockTradeRepository)(nil).CompleteWithdrawal), ctx, id)
}

// FindByOfferID mocks base method.
func (m *MockTradeRepository) FindByOfferID(ctx context.Context, offerID string) (models.TradeKind, int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByOfferID", ctx, offerID)
	ret0, _ := ret[0].(models.TradeKind)
	ret1, _ := ret[1].(int64)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// FindByOfferID indicates an expected call of FindByOfferID.
func (mr *MockTradeRepositoryMockRecorder) FindByOfferID(ctx, offerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByOfferID", reflect.TypeOf((*MockTradeRepository)(nil).FindByOfferID), ctx, offerID)
}

// GetDeposit mocks base method.
func (m *MockTradeRepository) GetDeposit(ctx context.Context, id int64) (*models.TradeDeposit, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDeposit", ctx, id)
	ret0, _ := ret[0].(*models.TradeDeposit)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetDeposit indicates an expected call of GetDeposit.
func (mr *MockTradeRepositoryMockRecorder) GetDeposit(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDeposit", reflect.TypeOf((*MockTradeRepository)(nil).GetDeposit), ctx, id)
}

// GetDepositItems mocks base method.
func (m *MockTradeRepository) GetDepositItems(ctx context.Context, tradeID int64) ([]*models.DepositItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDepositItems", ctx, tradeID)
	ret0, _ := ret[0].([]*models.DepositItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetDepositItems indicates an expected call of GetDepositItems.
func (mr *MockTradeRepositoryMockRecorder) GetDepositItems(ctx, tradeID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDepositItems", reflect.TypeOf((*MockTradeRepository)(nil).GetDepositItems), ctx, tradeID)
}

// GetWithdrawal mocks base method.
func (m *MockTradeRepository) GetWithdrawal(ctx context.Context, id int64) (*models.TradeWithdrawal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetWithdrawal", ctx, id)
	ret0, _ := ret[0].(*models.TradeWithdrawal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetWithdrawal indicates an expected call of GetWithdrawal.
func (mr *MockTradeRepositoryMockRecorder) GetWithdrawal(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetWithdrawal", reflect.TypeOf((*MockTradeRepository)(nil).GetWithdrawal), ctx, id)
}

// MarkDepositOffered mocks base method.
func (m *MockTradeRepository) MarkDepositOffered(ctx context.Context, id int64, offerID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkDepositOffered", ctx, id, offerID)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkDepositOffered indicates an expected call of MarkDepositOffered.
func (mr *MockTradeRepositoryMockRecorder) MarkDepositOffered(ctx, id, offerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkDepositOffered", reflect.TypeOf((*MockTradeRepository)(nil).MarkDepositOffered), ctx, id, offerID)
}

// MarkFailed mocks base method.
func (m *MockTradeRepository) MarkFailed(ctx context.Context, kind models.TradeKind, id int64, details string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkFailed", ctx, kind, id, details)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkFailed indicates an expected call of MarkFailed.
func (mr *MockTradeRepositoryMockRecorder) MarkFailed(ctx, kind, id, details any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkFailed", reflect.TypeOf((*MockTradeRepository)(nil).MarkFailed), ctx, kind, id, details)
}

// MarkWithdrawalOffered mocks base method.
func (m *MockTradeRepository) MarkWithdrawalOffered(ctx context.Context, id int64, offerID string, items []*models.WithdrawalItem) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkWithdrawalOffered", ctx, id, offerID, items)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkWithdrawalOffered indicates an expected call of MarkWithdrawalOffered.
func (mr *MockTradeRepositoryMockRecorder) MarkWithdrawalOffered(ctx, id, offerID, items any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkWithdrawalOffered", reflect.TypeOf((*MockTradeRepository)(nil).MarkWithdrawalOffered), ctx, id, offerID, items)
}

// MockUserRepository is a mock of UserRepository interface.
type MockUserRepository struct {
	ctrl     *gomock.Controller
	recorder *MockUserRepositoryMockRecorder
	isgomock struct{}
}

// MockUserRepositoryMockRecorder is the mock recorder for MockUserRepository.
type MockUserRepositoryMockRecorder struct {
	mock *MockUserRepository
}

// NewMockUserRepository creates a new mock instance.
func NewMockUserRepository(ctrl *gomock.Controller) *MockUserRepository {
	mock := &MockUserRepository{ctrl: ctrl}
	mock.recorder = &MockUserRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUserRepository) EXPECT() *MockUserRepositoryMockRecorder {
	return m.recorder
}

// GetBySteamID mocks base method.
func (m *MockUserRepository) GetBySteamID(ctx context.Context, steamID string) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBySteamID", ctx, steamID)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBySteamID indicates an expected call of GetBySteamID.
func (mr *MockUserRepositoryMockRecorder) GetBySteamID(ctx, steamID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBySteamID", reflect.TypeOf((*MockUserRepository)(nil).GetBySteamID), ctx, steamID)
}

// MockPriceRepository is a mock of PriceRepository interface.
type MockPriceRepository struct {
	ctrl     *gomock.Controller
	recorder *MockPriceRepositoryMockRecorder
	isgomock struct{}
}

// MockPriceRepositoryMockRecorder is the mock recorder for MockPriceRepository.
type MockPriceRepositoryMockRecorder struct {
	mock *MockPriceRepository
}

// NewMockPriceRepository creates a new mock instance.
func NewMockPriceRepository(ctrl *gomock.Controller) *MockPriceRepository {
	mock := &MockPriceRepository{ctrl: ctrl}
	mock.recorder = &MockPriceRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPriceRepository) EXPECT() *MockPriceRepositoryMockRecorder {
	return m.recorder
}

// GetSafePrices mocks base method.
func (m *MockPriceRepository) GetSafePrices(ctx context.Context, names []string) (map[string]*models.PriceCacheEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetSafePrices", ctx, names)
	ret0, _ := ret[0].(map[string]*models.PriceCacheEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetSafePrices indicates an expected call of GetSafePrices.
func (mr *MockPriceRepositoryMockRecorder) GetSafePrices(ctx, names any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetSafePrices", reflect.TypeOf((*MockPriceRepository)(nil).GetSafePrices), ctx, names)
}
