package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client is the trading capability of one merchant account.
type Client interface {
	Authenticate(ctx context.Context) (Credentials, error)
	SetCredentials(creds Credentials)
	CreateOffer(ctx context.Context, tradeLink string) (*Offer, error)
	// PartnerDetails returns our own party and the counterparty of an unsent offer.
	PartnerDetails(ctx context.Context, offer *Offer) (me Party, them Party, err error)
	SendOffer(ctx context.Context, offer *Offer) (string, error)
	ConfirmOffer(ctx context.Context, offerID string) error
	Inventory(ctx context.Context, steamID string, appID int, contextID string) ([]Item, error)
	ResumeState(ctx context.Context) ([]byte, error)
	RestoreState(ctx context.Context, blob []byte) error
}

// HTTPClient talks to the trading gateway sidecar that owns the platform protocol.
type HTTPClient struct {
	host       string
	token      string
	httpClient *http.Client

	mu    sync.RWMutex
	creds Credentials
}

func NewHTTPClient(host, token string, timeout time.Duration) (*HTTPClient, error) {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return nil, fmt.Errorf("platform host is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		host:       host,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type partnerResp struct {
	Me   Party `json:"me"`
	Them Party `json:"them"`
}

type sendResp struct {
	ID string `json:"id"`
}

type inventoryResp struct {
	Items []Item `json:"items"`
}

type stateBlob struct {
	State []byte `json:"state"`
}

func (c *HTTPClient) Authenticate(ctx context.Context) (Credentials, error) {
	var creds Credentials
	if err := c.doJSON(ctx, http.MethodPost, "/v1/session", nil, nil, &creds); err != nil {
		return Credentials{}, err
	}
	if creds.SessionID == "" {
		return Credentials{}, fmt.Errorf("platform login returned no session")
	}
	return creds, nil
}

func (c *HTTPClient) SetCredentials(creds Credentials) {
	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()
}

func (c *HTTPClient) CreateOffer(_ context.Context, tradeLink string) (*Offer, error) {
	return NewOffer(tradeLink)
}

func (c *HTTPClient) PartnerDetails(ctx context.Context, offer *Offer) (Party, Party, error) {
	var resp partnerResp
	body := map[string]string{"partner": offer.PartnerID, "token": offer.Token}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/offers/partner", nil, body, &resp); err != nil {
		return Party{}, Party{}, err
	}
	return resp.Me, resp.Them, nil
}

func (c *HTTPClient) SendOffer(ctx context.Context, offer *Offer) (string, error) {
	var resp sendResp
	if err := c.doJSON(ctx, http.MethodPost, "/v1/offers", nil, offer, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("platform returned no offer id")
	}
	offer.ID = resp.ID
	return resp.ID, nil
}

func (c *HTTPClient) ConfirmOffer(ctx context.Context, offerID string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/offers/"+url.PathEscape(offerID)+"/confirm", nil, nil, nil)
}

func (c *HTTPClient) Inventory(ctx context.Context, steamID string, appID int, contextID string) ([]Item, error) {
	path := fmt.Sprintf("/v1/inventory/%s/%d/%s", url.PathEscape(steamID), appID, url.PathEscape(contextID))
	var resp inventoryResp
	if err := c.doJSON(ctx, http.MethodGet, path, url.Values{"tradable": []string{"1"}}, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *HTTPClient) ResumeState(ctx context.Context) ([]byte, error) {
	var resp stateBlob
	if err := c.doJSON(ctx, http.MethodGet, "/v1/state", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

func (c *HTTPClient) RestoreState(ctx context.Context, blob []byte) error {
	return c.doJSON(ctx, http.MethodPut, "/v1/state", nil, stateBlob{State: blob}, nil)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, params url.Values, in, out any) error {
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
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RLock()
	if c.creds.SessionID != "" {
		req.Header.Set("X-Session-Id", c.creds.SessionID)
	}
	for _, cookie := range c.creds.Cookies {
		req.Header.Add("X-Session-Cookie", cookie)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("platform %s %s: %w", method, path, ErrSessionExpired)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("platform %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s response: %w (body=%s)", path, err, strings.TrimSpace(string(b)))
	}
	return nil
}
