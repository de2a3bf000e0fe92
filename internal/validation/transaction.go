package validation

import (
	"strings"

	"github.com/stockportfoliotracker/backend/internal/api/request"
)

// ValidateTransaction validates a transaction create or update request.
//
// Required:
//   - ticker: non-empty
//   - quantity: non-zero (positive = buy, negative = sell)
//   - purchasePrice: positive
//
// lastPrice may be zero; it is populated by price refreshes, but must not be
// negative when supplied.
//
// The oversell check against the ledger's net quantity is a business rule
// handled by the transaction service, not here.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateTransaction(req request.TransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if req.Quantity == 0 {
		errors["quantity"] = "quantity must not be zero"
	}

	if req.PurchasePrice <= 0.0 {
		errors["purchasePrice"] = "purchasePrice must be positive"
	}

	if req.LastPrice < 0.0 {
		errors["lastPrice"] = "lastPrice must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
