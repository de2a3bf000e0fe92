// Package request defines the JSON request bodies accepted by the API.
package request

// TransactionRequest is the body for creating or updating a transaction.
// Quantity is signed: positive = buy, negative = sell. LastPrice is optional
// and normally left zero; price refreshes maintain it.
type TransactionRequest struct {
	Ticker        string  `json:"ticker"`
	Quantity      int64   `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
	LastPrice     float64 `json:"lastPrice"`
}
