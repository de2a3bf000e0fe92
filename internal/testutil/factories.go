package testutil

import (
	"database/sql"
	"testing"

	"github.com/stockportfoliotracker/backend/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test
// transactions.
//
// Example usage:
//
//	// Simple buy with defaults
//	tx := testutil.NewTransaction("AAPL").Build(t, db)
//
//	// Customized sell
//	tx := testutil.NewTransaction("AAPL").
//	    WithQuantity(-5).
//	    WithPurchasePrice(25).
//	    Build(t, db)
type TransactionBuilder struct {
	Ticker        string
	Quantity      int64
	PurchasePrice float64
	LastPrice     float64
}

// NewTransaction creates a TransactionBuilder with sensible defaults: a buy
// of 10 units at 10.0 with no last price.
func NewTransaction(ticker string) *TransactionBuilder {
	return &TransactionBuilder{
		Ticker:        ticker,
		Quantity:      10,
		PurchasePrice: 10.0,
		LastPrice:     0.0,
	}
}

// WithQuantity sets a custom signed quantity.
func (b *TransactionBuilder) WithQuantity(quantity int64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPurchasePrice sets a custom purchase price.
func (b *TransactionBuilder) WithPurchasePrice(price float64) *TransactionBuilder {
	b.PurchasePrice = price
	return b
}

// WithLastPrice sets a custom last price.
func (b *TransactionBuilder) WithLastPrice(price float64) *TransactionBuilder {
	b.LastPrice = price
	return b
}

// Build inserts the transaction into the database and returns it with the
// assigned id.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (ticker, quantity, purchase_price, last_price)
		VALUES (?, ?, ?, ?)
	`

	result, err := db.Exec(query, b.Ticker, b.Quantity, b.PurchasePrice, b.LastPrice)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read test transaction id: %v", err)
	}

	return model.Transaction{
		ID:            id,
		Ticker:        b.Ticker,
		Quantity:      b.Quantity,
		PurchasePrice: b.PurchasePrice,
		LastPrice:     b.LastPrice,
	}
}

// StockBuilder provides a fluent interface for creating test watchlist
// entries.
type StockBuilder struct {
	Ticker        string
	Name          string
	Price         float64
	Change        string
	Quantity      int64
	PurchasePrice float64
}

// NewStock creates a StockBuilder with sensible defaults.
func NewStock(ticker string) *StockBuilder {
	return &StockBuilder{
		Ticker: ticker,
		Name:   ticker + " Inc.",
		Price:  100.0,
		Change: "1.00 (1.00%)",
	}
}

// WithName sets a custom display name.
func (b *StockBuilder) WithName(name string) *StockBuilder {
	b.Name = name
	return b
}

// WithPrice sets a custom price.
func (b *StockBuilder) WithPrice(price float64) *StockBuilder {
	b.Price = price
	return b
}

// Build inserts the stock into the database and returns it.
func (b *StockBuilder) Build(t *testing.T, db *sql.DB) model.Stock {
	t.Helper()

	query := `
		INSERT INTO stock (ticker, name, price, change, quantity, purchase_price)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.Ticker, b.Name, b.Price, b.Change, b.Quantity, b.PurchasePrice)
	if err != nil {
		t.Fatalf("Failed to create test stock: %v", err)
	}

	return model.Stock{
		Ticker:        b.Ticker,
		Name:          b.Name,
		Price:         b.Price,
		Change:        b.Change,
		Quantity:      b.Quantity,
		PurchasePrice: b.PurchasePrice,
	}
}
