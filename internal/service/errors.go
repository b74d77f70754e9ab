package service

import "errors"

// Business-rule violations surface as this closed set of error kinds so
// callers can branch without string matching. Ledger operations reject them
// before any mutation — failures are never partially applied.
var (
	// ErrInvalidQuantity: a non-positive quantity was supplied.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInsufficientStock: an outbound or transfer asked for more than the
	// source key holds. No partial fulfillment.
	ErrInsufficientStock = errors.New("insufficient stock")
)
