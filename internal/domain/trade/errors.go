package trade

import "errors"

// Sentinel error kinds for trade evaluation.
var (
	// ErrInvalidProposal indicates a malformed trade, such as overlapping
	// player sets or an empty side.
	ErrInvalidProposal = errors.New("invalid trade proposal")

	// ErrMissingValuation indicates a referenced player id has no valuation.
	ErrMissingValuation = errors.New("missing valuation")
)
