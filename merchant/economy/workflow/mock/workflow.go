package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	bridge "github.com/ellavondegurechaff/skinmerchant/merchant/economy/bridge"
	platform "github.com/ellavondegurechaff/skinmerchant/merchant/platform"
	gomock "go.uber.org/mock/gomock"
)

// MockClaimer is a mock of Claimer interface.
type MockClaimer struct {
	ctrl     *gomock.Controller
	recorder *MockClaimerMockRecorder
	isgomock struct{}
}

// MockClaimerMockRecorder is the mock recorder for MockClaimer.
type MockClaimerMockRecorder struct {
	mock *MockClaimer
}

// NewMockClaimer creates a new mock instance.
func NewMockClaimer(ctrl *gomock.Controller) *MockClaimer {
	mock := &MockClaimer{ctrl: ctrl}
	mock.recorder = &MockClaimerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClaimer) EXPECT() *MockClaimerMockRecorder {
	return m.recorder
}

// ClaimDeposit mocks base method.
func (m *MockClaimer) ClaimDeposit(ctx context.Context, id int64) (*models.TradeDeposit, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimDeposit", ctx, id)
	ret0, _ := ret[0].(*models.TradeDeposit)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimDeposit indicates an expected call of ClaimDeposit.
func (mr *MockClaimerMockRecorder) ClaimDeposit(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimDeposit", reflect.TypeOf((*MockClaimer)(nil).ClaimDeposit), ctx, id)
}

// ClaimForRejection mocks base method.
func (m *MockClaimer) ClaimForRejection(ctx context.Context, id int64) (*models.TradeWithdrawal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimForRejection", ctx, id)
	ret0, _ := ret[0].(*models.TradeWithdrawal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimForRejection indicates an expected call of ClaimForRejection.
func (mr *MockClaimerMockRecorder) ClaimForRejection(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimForRejection", reflect.TypeOf((*MockClaimer)(nil).ClaimForRejection), ctx, id)
}

// ClaimWithdrawal mocks base method.
func (m *MockClaimer) ClaimWithdrawal(ctx context.Context, id int64) (*models.TradeWithdrawal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimWithdrawal", ctx, id)
	ret0, _ := ret[0].(*models.TradeWithdrawal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimWithdrawal indicates an expected call of ClaimWithdrawal.
func (mr *MockClaimerMockRecorder) ClaimWithdrawal(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimWithdrawal", reflect.TypeOf((*MockClaimer)(nil).ClaimWithdrawal), ctx, id)
}

// MockSourcer is a mock of Sourcer interface.
type MockSourcer struct {
	ctrl     *gomock.Controller
	recorder *MockSourcerMockRecorder
	isgomock struct{}
}

// MockSourcerMockRecorder is the mock recorder for MockSourcer.
type MockSourcerMockRecorder struct {
	mock *MockSourcer
}

// NewMockSourcer creates a new mock instance.
func NewMockSourcer(ctrl *gomock.Controller) *MockSourcer {
	mock := &MockSourcer{ctrl: ctrl}
	mock.recorder = &MockSourcerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSourcer) EXPECT() *MockSourcerMockRecorder {
	return m.recorder
}

// Inventory mocks base method.
func (m *MockSourcer) Inventory(ctx context.Context) ([]platform.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Inventory", ctx)
	ret0, _ := ret[0].([]platform.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Inventory indicates an expected call of Inventory.
func (mr *MockSourcerMockRecorder) Inventory(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Inventory", reflect.TypeOf((*MockSourcer)(nil).Inventory), ctx)
}

// PurchaseAndImport mocks base method.
func (m *MockSourcer) PurchaseAndImport(ctx context.Context, names []string) ([]platform.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PurchaseAndImport", ctx, names)
	ret0, _ := ret[0].([]platform.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PurchaseAndImport indicates an expected call of PurchaseAndImport.
func (mr *MockSourcerMockRecorder) PurchaseAndImport(ctx, names any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PurchaseAndImport", reflect.TypeOf((*MockSourcer)(nil).PurchaseAndImport), ctx, names)
}

// RecoverUnconsumed mocks base method.
func (m *MockSourcer) RecoverUnconsumed(ctx context.Context, names []string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecoverUnconsumed", ctx, names)
	ret0, _ := ret[0].(error)
	return ret0
}

// RecoverUnconsumed indicates an expected call of RecoverUnconsumed.
func (mr *MockSourcerMockRecorder) RecoverUnconsumed(ctx, names any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecoverUnconsumed", reflect.TypeOf((*MockSourcer)(nil).RecoverUnconsumed), ctx, names)
}

// Reservations mocks base method.
func (m *MockSourcer) Reservations() *bridge.Reservations {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reservations")
	ret0, _ := ret[0].(*bridge.Reservations)
	return ret0
}

// Reservations indicates an expected call of Reservations.
func (mr *MockSourcerMockRecorder) Reservations() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reservations", reflect.TypeOf((*MockSourcer)(nil).Reservations))
}
