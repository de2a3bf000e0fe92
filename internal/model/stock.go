package model

// Stock is a denormalized watchlist entry keyed by ticker. It carries the
// last fetched quote data for display and is independent of the transaction
// ledger.
type Stock struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        string  `json:"change"`
	Quantity      int64   `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
}
