package validation

import (
	"strings"

	"github.com/stockportfoliotracker/backend/internal/api/request"
)

// ValidateAddStock validates a watchlist add request. Quantity and purchase
// price are optional and default to zero for plain watchlist items, but must
// not be negative when supplied.
func ValidateAddStock(req request.AddStockRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if req.Quantity < 0 {
		errors["quantity"] = "quantity must not be negative"
	}

	if req.PurchasePrice < 0.0 {
		errors["purchasePrice"] = "purchasePrice must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
