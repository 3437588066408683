package platform

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ErrSessionExpired is returned by client calls rejected because the session's web
// credentials are no longer valid.
var ErrSessionExpired = errors.New("platform session expired")

// OfferState follows the trading platform's offer state numbering.
type OfferState int

const (
	StateInvalid                  OfferState = 1
	StateActive                   OfferState = 2
	StateAccepted                 OfferState = 3
	StateCountered                OfferState = 4
	StateExpired                  OfferState = 5
	StateCanceled                 OfferState = 6
	StateDeclined                 OfferState = 7
	StateInvalidItems             OfferState = 8
	StateCreatedNeedsConfirmation OfferState = 9
	StateCanceledBySecondFactor   OfferState = 10
	StateInEscrow                 OfferState = 11
)

var offerStateNames = map[OfferState]string{
	StateInvalid:                  "Invalid",
	StateActive:                   "Active",
	StateAccepted:                 "Accepted",
	StateCountered:                "Countered",
	StateExpired:                  "Expired",
	StateCanceled:                 "Canceled",
	StateDeclined:                 "Declined",
	StateInvalidItems:             "InvalidItems",
	StateCreatedNeedsConfirmation: "CreatedNeedsConfirmation",
	StateCanceledBySecondFactor:   "CanceledBySecondFactor",
	StateInEscrow:                 "InEscrow",
}

func (s OfferState) String() string {
	if name, ok := offerStateNames[s]; ok {
		return name
	}
	return "OfferState(" + strconv.Itoa(int(s)) + ")"
}

// Item is one unit in a platform inventory.
type Item struct {
	AssetID   string `json:"assetid"`
	AppID     int    `json:"appid"`
	ContextID string `json:"contextid"`
	Name      string `json:"market_hash_name"`
	Amount    int    `json:"amount"`
}

// Party describes one side of an offer as the platform reports it.
type Party struct {
	SteamID    string `json:"steamid"`
	Persona    string `json:"persona"`
	EscrowDays int    `json:"escrow_days"`
	Probation  bool   `json:"probation"`
}

type Offer struct {
	ID             string     `json:"id,omitempty"`
	PartnerID      string     `json:"partner"`
	Token          string     `json:"token,omitempty"`
	TradeLink      string     `json:"trade_link"`
	Message        string     `json:"message,omitempty"`
	ItemsToGive    []Item     `json:"items_to_give"`
	ItemsToReceive []Item     `json:"items_to_receive"`
	State          OfferState `json:"state,omitempty"`
}

// NewOffer builds an empty offer addressed to the owner of a trade link such as
// https://steamcommunity.com/tradeoffer/new/?partner=12345&token=abcd.
func NewOffer(tradeLink string) (*Offer, error) {
	u, err := url.Parse(tradeLink)
	if err != nil {
		return nil, fmt.Errorf("invalid trade link: %w", err)
	}
	partner := u.Query().Get("partner")
	if partner == "" {
		return nil, fmt.Errorf("invalid trade link: missing partner")
	}
	if _, err := strconv.ParseUint(partner, 10, 32); err != nil {
		return nil, fmt.Errorf("invalid trade link partner %q: %w", partner, err)
	}

	return &Offer{
		PartnerID:      partner,
		Token:          u.Query().Get("token"),
		TradeLink:      tradeLink,
		ItemsToGive:    []Item{},
		ItemsToReceive: []Item{},
	}, nil
}

func (o *Offer) AddMyItems(items ...Item) {
	o.ItemsToGive = append(o.ItemsToGive, items...)
}

func (o *Offer) AddTheirItems(items ...Item) {
	o.ItemsToReceive = append(o.ItemsToReceive, items...)
}

func (o *Offer) SetMessage(msg string) {
	o.Message = msg
}

// StateChange is emitted when an offer moves from PrevState to State.
type StateChange struct {
	OfferID   string     `json:"offer_id"`
	State     OfferState `json:"state"`
	PrevState OfferState `json:"prev_state"`
}

// Credentials are the web session the sidecar needs for offer and inventory calls.
type Credentials struct {
	SessionID string    `json:"session_id"`
	Cookies   []string  `json:"cookies"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (c Credentials) Valid(now time.Time) bool {
	return c.SessionID != "" && (c.ExpiresAt.IsZero() || now.Before(c.ExpiresAt))
}
