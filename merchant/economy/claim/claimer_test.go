package claim

import (
	"context"
	"errors"
	"testing"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	"github.com/ellavondegurechaff/skinmerchant/merchant/database/repositories"
	repomock "github.com/ellavondegurechaff/skinmerchant/merchant/database/repositories/mock"
	marketmock "github.com/ellavondegurechaff/skinmerchant/merchant/market/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	merchantID = "76561198000000001"
	appID      = 730
)

func TestClaimDeposit(t *testing.T) {
	tests := []struct {
		name      string
		repoErr   error
		wantErr   error
		wantClaim bool
	}{
		{name: "claimed", wantClaim: true},
		{name: "already claimed", repoErr: repositories.ErrNoTransition, wantErr: ErrAlreadyClaimed},
		{name: "database down", repoErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			trades := repomock.NewMockTradeRepository(ctrl)
			c := NewClaimer(trades, marketmock.NewMockClient(ctrl), merchantID, appID)

			var row *models.TradeDeposit
			if tt.repoErr == nil {
				row = &models.TradeDeposit{Trade: models.Trade{ID: 1}}
			}
			trades.EXPECT().ClaimDeposit(gomock.Any(), int64(1), appID, merchantID).Return(row, tt.repoErr)

			got, err := c.ClaimDeposit(context.Background(), 1)
			switch {
			case tt.wantClaim:
				require.NoError(t, err)
				assert.Equal(t, row, got)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrAlreadyClaimed)
			}
		})
	}
}

func TestClaimDeposit_SecondClaimIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	trades := repomock.NewMockTradeRepository(ctrl)
	c := NewClaimer(trades, marketmock.NewMockClient(ctrl), merchantID, appID)

	gomock.InOrder(
		trades.EXPECT().ClaimDeposit(gomock.Any(), int64(7), appID, merchantID).
			Return(&models.TradeDeposit{Trade: models.Trade{ID: 7}}, nil),
		trades.EXPECT().ClaimDeposit(gomock.Any(), int64(7), appID, merchantID).
			Return(nil, repositories.ErrNoTransition),
	)

	_, err := c.ClaimDeposit(context.Background(), 7)
	require.NoError(t, err)
	_, err = c.ClaimDeposit(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestClaimWithdrawal_ReservesBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	trades := repomock.NewMockTradeRepository(ctrl)
	mkt := marketmock.NewMockClient(ctrl)
	c := NewClaimer(trades, mkt, merchantID, appID)

	mkt.EXPECT().Balance(gomock.Any()).Return(int64(5000), nil)
	trades.EXPECT().ClaimWithdrawal(gomock.Any(), int64(3), appID, merchantID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ int, _ string, maxTotal *int64) (*models.TradeWithdrawal, error) {
			require.NotNil(t, maxTotal)
			assert.Equal(t, int64(5000), *maxTotal)
			return &models.TradeWithdrawal{Trade: models.Trade{ID: 3, Total: 4000}}, nil
		})

	w, err := c.ClaimWithdrawal(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), w.ID)
}

func TestClaimWithdrawal_BalanceErrorDoesNotClaim(t *testing.T) {
	ctrl := gomock.NewController(t)
	trades := repomock.NewMockTradeRepository(ctrl)
	mkt := marketmock.NewMockClient(ctrl)
	c := NewClaimer(trades, mkt, merchantID, appID)

	mkt.EXPECT().Balance(gomock.Any()).Return(int64(0), errors.New("503"))

	_, err := c.ClaimWithdrawal(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyClaimed)
}

func TestClaimForRejection_SkipsMarketplace(t *testing.T) {
	ctrl := gomock.NewController(t)
	trades := repomock.NewMockTradeRepository(ctrl)
	c := NewClaimer(trades, marketmock.NewMockClient(ctrl), merchantID, appID)

	trades.EXPECT().ClaimWithdrawal(gomock.Any(), int64(4), appID, merchantID, (*int64)(nil)).
		Return(&models.TradeWithdrawal{Trade: models.Trade{ID: 4}}, nil)

	_, err := c.ClaimForRejection(context.Background(), 4)
	require.NoError(t, err)
}
