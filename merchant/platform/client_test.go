package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOffer(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		partner string
		token   string
		wantErr bool
	}{
		{
			name:    "full link",
			link:    "https://steamcommunity.com/tradeoffer/new/?partner=39725017&token=Xy1_ab",
			partner: "39725017",
			token:   "Xy1_ab",
		},
		{
			name:    "no token",
			link:    "https://steamcommunity.com/tradeoffer/new/?partner=12",
			partner: "12",
		},
		{name: "missing partner", link: "https://steamcommunity.com/tradeoffer/new/?token=abc", wantErr: true},
		{name: "non numeric partner", link: "https://steamcommunity.com/tradeoffer/new/?partner=bob", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer, err := NewOffer(tt.link)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.partner, offer.PartnerID)
			assert.Equal(t, tt.token, offer.Token)
			assert.Empty(t, offer.ItemsToGive)
			assert.Empty(t, offer.ItemsToReceive)
		})
	}
}

func TestHTTPClient_SendOfferCarriesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/offers", r.URL.Path)
		assert.Equal(t, "Bearer gateway-token", r.Header.Get("Authorization"))
		assert.Equal(t, "sess-9", r.Header.Get("X-Session-Id"))

		var offer Offer
		require.NoError(t, json.NewDecoder(r.Body).Decode(&offer))
		assert.Equal(t, "Deposit #1", offer.Message)
		assert.Len(t, offer.ItemsToReceive, 1)

		_, _ = w.Write([]byte(`{"id":"5512"}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "gateway-token", time.Second)
	require.NoError(t, err)
	c.SetCredentials(Credentials{SessionID: "sess-9"})

	offer, err := NewOffer("https://steamcommunity.com/tradeoffer/new/?partner=1&token=t")
	require.NoError(t, err)
	offer.SetMessage("Deposit #1")
	offer.AddTheirItems(Item{AssetID: "100", AppID: 730, ContextID: "2", Amount: 1})

	id, err := c.SendOffer(context.Background(), offer)
	require.NoError(t, err)
	assert.Equal(t, "5512", id)
	assert.Equal(t, "5512", offer.ID)
}

func TestHTTPClient_UnauthorizedIsSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "login required", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "", time.Second)
	require.NoError(t, err)

	_, _, err = c.PartnerDetails(context.Background(), &Offer{PartnerID: "1"})
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestHTTPClient_Inventory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/inventory/7656/730/2", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("tradable"))
		_, _ = w.Write([]byte(`{"items":[{"assetid":"a1","appid":730,"contextid":"2","market_hash_name":"AK-47 | Redline (Field-Tested)","amount":1}]}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "", time.Second)
	require.NoError(t, err)

	items, err := c.Inventory(context.Background(), "7656", 730, "2")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].AssetID)
	assert.Equal(t, "AK-47 | Redline (Field-Tested)", items[0].Name)
}

func TestHTTPClient_ServerErrorIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "trade offer limit reached", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "", time.Second)
	require.NoError(t, err)

	err = c.ConfirmOffer(context.Background(), "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "trade offer limit reached")
}

func TestOfferStateString(t *testing.T) {
	assert.Equal(t, "Accepted", StateAccepted.String())
	assert.Equal(t, "CreatedNeedsConfirmation", StateCreatedNeedsConfirmation.String())
	assert.Equal(t, "OfferState(42)", OfferState(42).String())
}
