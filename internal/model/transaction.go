package model

// Transaction represents a single buy or sell leg in the portfolio ledger.
// Quantity is signed: positive quantities are buys, negative quantities are
// sells. The autoincrement ID doubles as chronological order; the valuation
// engine folds transactions in id-ascending order.
type Transaction struct {
	ID            int64   `json:"id"`
	Ticker        string  `json:"ticker"`
	Quantity      int64   `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
	LastPrice     float64 `json:"lastPrice"`
}

// Position is the result of folding one ticker's ordered transactions with
// the weighted-average-cost method.
type Position struct {
	Ticker        string  `json:"ticker"`
	RealizedPL    float64 `json:"realizedPl"`
	OpenQuantity  int64   `json:"openQuantity"`
	OpenCostBasis float64 `json:"openCostBasis"`
	LastPrice     float64 `json:"lastPrice"`
	CurrentValue  float64 `json:"currentValue"`
	UnrealizedPL  float64 `json:"unrealizedPl"`
}

// PortfolioSummary aggregates valuation metrics across all tickers in the
// ledger. All five figures are recomputed from scratch on every request.
type PortfolioSummary struct {
	TotalSpent   float64    `json:"totalSpent"`
	TotalSells   float64    `json:"totalSells"`
	CurrentValue float64    `json:"currentValue"`
	RealizedPL   float64    `json:"realizedPl"`
	UnrealizedPL float64    `json:"unrealizedPl"`
	Positions    []Position `json:"positions"`
}

// RefreshResult reports the outcome of a price refresh pass. A refresh never
// fails as a whole because individual tickers failed; callers surface
// FailedTickers to the user instead.
type RefreshResult struct {
	UpdatedCount  int      `json:"updatedCount"`
	FailedTickers []string `json:"failedTickers"`
}
