package reconcile

import "github.com/ellavondegurechaff/skinmerchant/merchant/platform"

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeComplete
	OutcomeFail
)

type transition struct {
	outcome Outcome
	message string
}

var outcomes = map[platform.OfferState]transition{
	platform.StateAccepted:               {outcome: OutcomeComplete},
	platform.StateCountered:              {outcome: OutcomeFail, message: "Trade offer was countered"},
	platform.StateExpired:                {outcome: OutcomeFail, message: "Trade offer expired"},
	platform.StateCanceled:               {outcome: OutcomeFail, message: "Trade offer was cancelled"},
	platform.StateDeclined:               {outcome: OutcomeFail, message: "Trade offer was declined"},
	platform.StateInvalidItems:           {outcome: OutcomeFail, message: "Items in the trade offer are no longer available"},
	platform.StateCanceledBySecondFactor: {outcome: OutcomeFail, message: "Trade offer was cancelled by second factor"},
}

// OutcomeFor maps a new offer state to what happens to the trade row. States not in
// the table leave the row alone.
func OutcomeFor(state platform.OfferState) (Outcome, string) {
	t, ok := outcomes[state]
	if !ok {
		return OutcomeNone, ""
	}
	return t.outcome, t.message
}

// tracked reports whether a change out of prev concerns an offer the merchant is
// still waiting on.
func tracked(prev platform.OfferState) bool {
	return prev == platform.StateActive || prev == platform.StateCreatedNeedsConfirmation
}
