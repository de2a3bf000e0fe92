// Package apperrors defines the sentinel errors shared across the
// application layers. Handlers map these onto HTTP status codes with
// errors.Is; repositories and services wrap them with fmt.Errorf("%w").
package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrStockNotFound indicates that a watchlist entry for the given ticker does not exist.
	ErrStockNotFound = errors.New("stock not found")

	// ErrSymbolNotFound indicates that the quote provider returned no data for a ticker.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrAPIKeyNotSet indicates that no quote provider API key is configured.
	ErrAPIKeyNotSet = errors.New("quote provider API key not set")
)

// Business logic errors represent constraint violations. These are rejected
// before any state mutation.
var (
	// ErrOversell indicates a sell of more units than the ticker's current net quantity.
	ErrOversell = errors.New("sell exceeds net open quantity")

	// ErrQuoteLookup indicates a per-ticker quote fetch failure (network,
	// timeout or malformed response). The refresh coordinator recovers
	// from it and reports the ticker in the failed list; it never aborts
	// a batch refresh.
	ErrQuoteLookup = errors.New("quote lookup failed")
)
