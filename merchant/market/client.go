package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is the secondary marketplace used to buy missing items and resell surplus.
// All prices are integer minor units.
type Client interface {
	Balance(ctx context.Context) (int64, error)
	LowestPrices(ctx context.Context) (map[string]LowestPrice, error)
	Listings(ctx context.Context, page int) ([]OwnListing, bool, error)
	// Search returns listings for an exact item name, cheapest first.
	Search(ctx context.Context, name string) ([]Listing, error)
	// Buy purchases one listing at the given price and returns the marketplace item ids.
	Buy(ctx context.Context, listingID string, price int64) ([]string, error)
	// Withdraw asks the marketplace to deliver held items to the merchant's inventory.
	Withdraw(ctx context.Context, itemIDs []string) error
	List(ctx context.Context, items []ListRequest) error
	EditPrices(ctx context.Context, edits []PriceEdit) error
	TradeOffers(ctx context.Context) ([]TradeOffer, error)
	// Inventory returns items held by the marketplace on the merchant's behalf.
	Inventory(ctx context.Context) ([]HeldItem, error)
}

type Listing struct {
	ID    string `json:"id"`
	Name  string `json:"market_hash_name"`
	Price int64  `json:"price"`
}

type LowestPrice struct {
	Name     string `json:"market_hash_name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type OwnListing struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"asset_id"`
	Name      string    `json:"market_hash_name"`
	Price     int64     `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

type HeldItem struct {
	ID   string `json:"id"`
	Name string `json:"market_hash_name"`
}

// ListRequest lists either a platform asset or a marketplace-held item.
type ListRequest struct {
	AssetID string `json:"asset_id,omitempty"`
	ItemID  string `json:"item_id,omitempty"`
	Price   int64  `json:"price"`
}

type PriceEdit struct {
	ListingID string `json:"id"`
	Price     int64  `json:"price"`
}

type TradeOffer struct {
	ID        string    `json:"id"`
	ItemIDs   []string  `json:"item_ids"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

type HTTPClient struct {
	host       string
	apiKey     string
	httpClient *http.Client
	newKey     func() string
}

func NewHTTPClient(host, apiKey string, timeout time.Duration) (*HTTPClient, error) {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return nil, fmt.Errorf("market host is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		host:       host,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		newKey:     uuid.NewString,
	}, nil
}

type balanceResp struct {
	Balance int64 `json:"balance"`
}

type pricesResp struct {
	Items []LowestPrice `json:"items"`
}

type listingsResp struct {
	Items   []OwnListing `json:"items"`
	HasMore bool         `json:"has_more"`
}

type searchResp struct {
	Items []Listing `json:"items"`
}

type buyResp struct {
	ItemIDs []string `json:"item_ids"`
}

type offersResp struct {
	Offers []TradeOffer `json:"offers"`
}

type heldResp struct {
	Items []HeldItem `json:"items"`
}

func (c *HTTPClient) Balance(ctx context.Context) (int64, error) {
	var resp balanceResp
	if err := c.doJSON(ctx, http.MethodGet, "/v1/balance", nil, nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

func (c *HTTPClient) LowestPrices(ctx context.Context) (map[string]LowestPrice, error) {
	var resp pricesResp
	if err := c.doJSON(ctx, http.MethodGet, "/v1/prices", nil, nil, nil, &resp); err != nil {
		return nil, err
	}
	prices := make(map[string]LowestPrice, len(resp.Items))
	for _, p := range resp.Items {
		prices[p.Name] = p
	}
	return prices, nil
}

func (c *HTTPClient) Listings(ctx context.Context, page int) ([]OwnListing, bool, error) {
	params := url.Values{"page": []string{strconv.Itoa(page)}}
	var resp listingsResp
	if err := c.doJSON(ctx, http.MethodGet, "/v1/listings", params, nil, nil, &resp); err != nil {
		return nil, false, err
	}
	return resp.Items, resp.HasMore, nil
}

func (c *HTTPClient) Search(ctx context.Context, name string) ([]Listing, error) {
	params := url.Values{"market_hash_name": []string{name}, "order": []string{"price_asc"}}
	var resp searchResp
	if err := c.doJSON(ctx, http.MethodGet, "/v1/search", params, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *HTTPClient) Buy(ctx context.Context, listingID string, price int64) ([]string, error) {
	headers := http.Header{"Idempotency-Key": []string{c.newKey()}}
	body := map[string]any{"id": listingID, "price": price}
	var resp buyResp
	if err := c.doJSON(ctx, http.MethodPost, "/v1/buy", nil, headers, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.ItemIDs) == 0 {
		return nil, fmt.Errorf("market buy %s returned no items", listingID)
	}
	return resp.ItemIDs, nil
}

func (c *HTTPClient) Withdraw(ctx context.Context, itemIDs []string) error {
	headers := http.Header{"Idempotency-Key": []string{c.newKey()}}
	return c.doJSON(ctx, http.MethodPost, "/v1/withdraw", nil, headers, map[string]any{"item_ids": itemIDs}, nil)
}

func (c *HTTPClient) List(ctx context.Context, items []ListRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/list", nil, nil, map[string]any{"items": items}, nil)
}

func (c *HTTPClient) EditPrices(ctx context.Context, edits []PriceEdit) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/listings/prices", nil, nil, map[string]any{"items": edits}, nil)
}

func (c *HTTPClient) TradeOffers(ctx context.Context) ([]TradeOffer, error) {
	var resp offersResp
	if err := c.doJSON(ctx, http.MethodGet, "/v1/trade-offers", nil, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Offers, nil
}

func (c *HTTPClient) Inventory(ctx context.Context) ([]HeldItem, error) {
	var resp heldResp
	if err := c.doJSON(ctx, http.MethodGet, "/v1/inventory", nil, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, params url.Values, headers http.Header, in, out any) error {
	u := c.host + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("market %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s response: %w (body=%s)", path, err, strings.TrimSpace(string(b)))
	}
	return nil
}

// AllListings walks every page of the merchant's own listings.
func AllListings(ctx context.Context, c Client) ([]OwnListing, error) {
	var all []OwnListing
	for page := 1; ; page++ {
		items, more, err := c.Listings(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to get listings page %d: %w", page, err)
		}
		all = append(all, items...)
		if !more || len(items) == 0 {
			return all, nil
		}
	}
}
