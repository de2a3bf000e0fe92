package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockportfoliotracker/backend/internal/apperrors"
	"github.com/stockportfoliotracker/backend/internal/model"
	"github.com/stockportfoliotracker/backend/internal/repository"
)

// TransactionService handles ledger business logic: entry validation,
// the oversell precheck and CRUD against the transaction repository.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependency.
func NewTransactionService(transactionRepo *repository.TransactionRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// All returns the full ledger in insertion order.
func (s *TransactionService) All(ctx context.Context) ([]model.Transaction, error) {
	return s.transactionRepo.All(ctx)
}

// Get returns a single transaction by id.
func (s *TransactionService) Get(ctx context.Context, id int64) (model.Transaction, error) {
	return s.transactionRepo.Get(ctx, id)
}

// ByTicker returns a ticker's transactions in insertion order.
func (s *TransactionService) ByTicker(ctx context.Context, ticker string) ([]model.Transaction, error) {
	return s.transactionRepo.ByTicker(ctx, ticker)
}

// Create validates and appends a new transaction. Sells are rejected when
// they exceed the ticker's current net quantity; this is a best-effort entry
// guard, the valuation fold independently ignores any oversell that slips
// through.
func (s *TransactionService) Create(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	tx.Ticker = strings.TrimSpace(tx.Ticker)

	if err := s.checkSell(ctx, tx, 0); err != nil {
		return model.Transaction{}, err
	}

	if err := s.transactionRepo.Insert(ctx, &tx); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

// Update replaces an existing transaction in full. The oversell precheck
// excludes the transaction being replaced from the net-quantity sum.
func (s *TransactionService) Update(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	tx.Ticker = strings.TrimSpace(tx.Ticker)

	existing, err := s.transactionRepo.Get(ctx, tx.ID)
	if err != nil {
		return model.Transaction{}, err
	}

	var excluded int64
	if strings.EqualFold(existing.Ticker, tx.Ticker) {
		excluded = existing.Quantity
	}

	if err := s.checkSell(ctx, tx, excluded); err != nil {
		return model.Transaction{}, err
	}

	if err := s.transactionRepo.Replace(ctx, &tx); err != nil {
		return model.Transaction{}, err
	}

	return tx, nil
}

// Delete removes a transaction by id.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	removed, err := s.transactionRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// checkSell rejects a sell larger than the ticker's net open quantity.
// excluded is subtracted from the net sum, used by Update to discount the
// transaction being replaced.
func (s *TransactionService) checkSell(ctx context.Context, tx model.Transaction, excluded int64) error {
	if tx.Quantity >= 0 {
		return nil
	}

	existing, err := s.transactionRepo.ByTicker(ctx, tx.Ticker)
	if err != nil {
		return err
	}

	if -tx.Quantity > NetQuantity(existing)-excluded {
		return fmt.Errorf("%w: %s", apperrors.ErrOversell, strings.ToUpper(tx.Ticker))
	}

	return nil
}
