package utils

import "time"

// Withdrawal limits
const (
	MaxWithdrawalItems = 3 // Items per withdrawal request
)

// Sourcing Constants
const (
	SearchLimit       = 80               // Searches per purchase batch
	SearchBurst       = 20               // Searches between pauses
	SearchPause       = 60 * time.Second // Pause after each burst
	ListingCandidates = 3                // Cheapest listings tried per name

	// Abort the batch when the cheapest listing exceeds the safe price by this
	// factor while at least GuardMinQuantity units are on sale.
	PriceGuardMultiplier = "1.05"
	GuardMinQuantity     = 400
)

// Listing Constants
const (
	UndervaluedRatio   = "0.65" // Lowest at or below this share of safe price lists at safe price
	ScarcityMultiplier = "1.05"
	ScarceQuantity     = 12 // Markup applies at or below this many units on sale

	RelistIdle     = time.Hour
	RelistMaxEdits = 500
)

// Retry Constants
const (
	RetryAttempts = 3
	RetryBackoff  = 2 * time.Second

	InventoryPollAttempts = 6
	InventoryPollInterval = 10 * time.Second
)

// Dispatch Constants
const (
	DepositJitter     = 5 * time.Second
	WithdrawalJitter  = time.Second
	ResubscribeDelay  = 5 * time.Second
	MaxConcurrentRuns = 16
)
