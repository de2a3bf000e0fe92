package request

// AddStockRequest is the body for adding a watchlist entry. Quantity and
// purchasePrice are optional; plain watchlist items leave them zero.
type AddStockRequest struct {
	Ticker        string  `json:"ticker"`
	Quantity      int64   `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
}
