package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockportfoliotracker/backend/internal/apperrors"
	"github.com/stockportfoliotracker/backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction
// ledger. All read methods return transactions in id-ascending order, which
// is the chronological order the valuation engine relies on.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Insert appends a transaction to the ledger. The assigned autoincrement id
// is written back into tx.ID.
func (r *TransactionRepository) Insert(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (ticker, quantity, purchase_price, last_price)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, tx.Ticker, tx.Quantity, tx.PurchasePrice, tx.LastPrice)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted transaction id: %w", err)
	}
	tx.ID = id

	return nil
}

// Replace performs a full update of the transaction with tx.ID. Used both
// for user edits and for price refresh writebacks.
func (r *TransactionRepository) Replace(ctx context.Context, tx *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET ticker = ?, quantity = ?, purchase_price = ?, last_price = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, tx.Ticker, tx.Quantity, tx.PurchasePrice, tx.LastPrice, tx.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// Delete removes the transaction with the given id. Returns the number of
// rows removed (0 or 1). Removal is immediate and permanent.
func (r *TransactionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// Get retrieves a single transaction by id.
func (r *TransactionRepository) Get(ctx context.Context, id int64) (model.Transaction, error) {
	query := `
		SELECT id, ticker, quantity, purchase_price, last_price
		FROM "transaction"
		WHERE id = ?
	`

	var tx model.Transaction
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tx.ID,
		&tx.Ticker,
		&tx.Quantity,
		&tx.PurchasePrice,
		&tx.LastPrice,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	return tx, nil
}

// All retrieves the full ledger in insertion order (id ascending).
func (r *TransactionRepository) All(ctx context.Context) ([]model.Transaction, error) {
	query := `
		SELECT id, ticker, quantity, purchase_price, last_price
		FROM "transaction"
		ORDER BY id ASC
	`

	return r.queryTransactions(ctx, query)
}

// ByTicker retrieves all transactions for a ticker in insertion order.
// Matching is case-insensitive; the ledger stores the original casing.
func (r *TransactionRepository) ByTicker(ctx context.Context, ticker string) ([]model.Transaction, error) {
	query := `
		SELECT id, ticker, quantity, purchase_price, last_price
		FROM "transaction"
		WHERE UPPER(ticker) = UPPER(?)
		ORDER BY id ASC
	`

	return r.queryTransactions(ctx, query, ticker)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var tx model.Transaction

		err := rows.Scan(
			&tx.ID,
			&tx.Ticker,
			&tx.Quantity,
			&tx.PurchasePrice,
			&tx.LastPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}
