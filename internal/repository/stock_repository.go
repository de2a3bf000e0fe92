package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockportfoliotracker/backend/internal/apperrors"
	"github.com/stockportfoliotracker/backend/internal/model"
)

// StockRepository provides data access methods for the watchlist table.
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new StockRepository with the provided database connection.
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

// Upsert inserts or replaces the watchlist entry for stock.Ticker.
func (r *StockRepository) Upsert(ctx context.Context, stock model.Stock) error {
	query := `
		INSERT INTO stock (ticker, name, price, change, quantity, purchase_price)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			change = excluded.change,
			quantity = excluded.quantity,
			purchase_price = excluded.purchase_price
	`

	_, err := r.db.ExecContext(ctx, query,
		stock.Ticker, stock.Name, stock.Price, stock.Change, stock.Quantity, stock.PurchasePrice)
	if err != nil {
		return fmt.Errorf("failed to upsert stock: %w", err)
	}

	return nil
}

// Delete removes the watchlist entry for a ticker. Returns the number of
// rows removed (0 or 1).
func (r *StockRepository) Delete(ctx context.Context, ticker string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stock WHERE UPPER(ticker) = UPPER(?)`, ticker)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// Get retrieves the watchlist entry for a ticker, case-insensitively.
func (r *StockRepository) Get(ctx context.Context, ticker string) (model.Stock, error) {
	query := `
		SELECT ticker, name, price, change, quantity, purchase_price
		FROM stock
		WHERE UPPER(ticker) = UPPER(?)
	`

	var s model.Stock
	err := r.db.QueryRowContext(ctx, query, ticker).Scan(
		&s.Ticker,
		&s.Name,
		&s.Price,
		&s.Change,
		&s.Quantity,
		&s.PurchasePrice,
	)
	if err == sql.ErrNoRows {
		return model.Stock{}, apperrors.ErrStockNotFound
	}
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to scan stock: %w", err)
	}

	return s, nil
}

// All retrieves all watchlist entries ordered by ticker.
func (r *StockRepository) All(ctx context.Context) ([]model.Stock, error) {
	query := `
		SELECT ticker, name, price, change, quantity, purchase_price
		FROM stock
		ORDER BY ticker ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	stocks := []model.Stock{}

	for rows.Next() {
		var s model.Stock

		err := rows.Scan(
			&s.Ticker,
			&s.Name,
			&s.Price,
			&s.Change,
			&s.Quantity,
			&s.PurchasePrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}

		stocks = append(stocks, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock table: %w", err)
	}

	return stocks, nil
}
