package workflow

// User-facing failure details stored on the trade row.
const (
	MsgNoTradeLink     = "Please set your Trade URL to proceed"
	MsgInvalidTradeURL = "Your Trade URL is invalid, please update it"
	MsgNoItems         = "No items were requested"
	MsgTooManyItems    = "You can withdraw at most %d items at once"
	MsgMissingItems    = "Some of the requested items are no longer in your inventory"
	MsgInventoryFetch  = "Failed to fetch your inventory, please try again later"
	MsgPartnerDetails  = "Failed to fetch trade partner details, please try again later"
	MsgProbation       = "You are on trade probation and cannot trade at the moment"
	MsgEscrow          = "Your account has a trade hold of %d days, please enable Steam Guard Mobile Authenticator"
	MsgSendFailed      = "Failed to send trade offer: %v"
	MsgConfirmFailed   = "Failed to confirm trade offer, please try again later"
	MsgShortfall       = "Could not source all requested items, please try again later"
	MsgInternal        = "Something went wrong while processing your trade, please try again later"

	depositMessage    = "Deposit #%d"
	withdrawalMessage = "Withdrawal #%d"
)
