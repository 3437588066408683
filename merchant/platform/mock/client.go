package mock

import (
	context "context"
	reflect "reflect"

	platform "github.com/ellavondegurechaff/skinmerchant/merchant/platform"
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

// Authenticate mocks base method.
func (m *MockClient) Authenticate(ctx context.Context) (platform.Credentials, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Authenticate", ctx)
	ret0, _ := ret[0].(platform.Credentials)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Authenticate indicates an expected call of Authenticate.
func (mr *MockClientMockRecorder) Authenticate(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Authenticate", reflect.TypeOf((*MockClient)(nil).Authenticate), ctx)
}

// ConfirmOffer mocks base method.
func (m *MockClient) ConfirmOffer(ctx context.Context, offerID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ConfirmOffer", ctx, offerID)
	ret0, _ := ret[0].(error)
	return ret0
}

// ConfirmOffer indicates an expected call of ConfirmOffer.
func (mr *MockClientMockRecorder) ConfirmOffer(ctx, offerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConfirmOffer", reflect.TypeOf((*MockClient)(nil).ConfirmOffer), ctx, offerID)
}

// CreateOffer mocks base method.
func (m *MockClient) CreateOffer(ctx context.Context, tradeLink string) (*platform.Offer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateOffer", ctx, tradeLink)
	ret0, _ := ret[0].(*platform.Offer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateOffer indicates an expected call of CreateOffer.
func (mr *MockClientMockRecorder) CreateOffer(ctx, tradeLink any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateOffer", reflect.TypeOf((*MockClient)(nil).CreateOffer), ctx, tradeLink)
}

// Inventory mocks base method.
func (m *MockClient) Inventory(ctx context.Context, steamID string, appID int, contextID string) ([]platform.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Inventory", ctx, steamID, appID, contextID)
	ret0, _ := ret[0].([]platform.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Inventory indicates an expected call of Inventory.
func (mr *MockClientMockRecorder) Inventory(ctx, steamID, appID, contextID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Inventory", reflect.TypeOf((*MockClient)(nil).Inventory), ctx, steamID, appID, contextID)
}

// PartnerDetails mocks base method.
func (m *MockClient) PartnerDetails(ctx context.Context, offer *platform.Offer) (platform.Party, platform.Party, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PartnerDetails", ctx, offer)
	ret0, _ := ret[0].(platform.Party)
	ret1, _ := ret[1].(platform.Party)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// PartnerDetails indicates an expected call of PartnerDetails.
func (mr *MockClientMockRecorder) PartnerDetails(ctx, offer any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PartnerDetails", reflect.TypeOf((*MockClient)(nil).PartnerDetails), ctx, offer)
}

// RestoreState mocks base method.
func (m *MockClient) RestoreState(ctx context.Context, blob []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RestoreState", ctx, blob)
	ret0, _ := ret[0].(error)
	return ret0
}

// RestoreState indicates an expected call of RestoreState.
func (mr *MockClientMockRecorder) RestoreState(ctx, blob any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RestoreState", reflect.TypeOf((*MockClient)(nil).RestoreState), ctx, blob)
}

// ResumeState mocks base method.
func (m *MockClient) ResumeState(ctx context.Context) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResumeState", ctx)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ResumeState indicates an expected call of ResumeState.
func (mr *MockClientMockRecorder) ResumeState(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResumeState", reflect.TypeOf((*MockClient)(nil).ResumeState), ctx)
}

// SendOffer mocks base method.
func (m *MockClient) SendOffer(ctx context.Context, offer *platform.Offer) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendOffer", ctx, offer)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SendOffer indicates an expected call of SendOffer.
func (mr *MockClientMockRecorder) SendOffer(ctx, offer any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendOffer", reflect.TypeOf((*MockClient)(nil).SendOffer), ctx, offer)
}

// SetCredentials mocks base method.
func (m *MockClient) SetCredentials(creds platform.Credentials) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetCredentials", creds)
}

// SetCredentials indicates an expected call of SetCredentials.
func (mr *MockClientMockRecorder) SetCredentials(creds any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetCredentials", reflect.TypeOf((*MockClient)(nil).SetCredentials), creds)
}
