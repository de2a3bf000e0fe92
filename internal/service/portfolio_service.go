package service

import (
	"context"

	"github.com/stockportfoliotracker/backend/internal/model"
	"github.com/stockportfoliotracker/backend/internal/repository"
)

// PortfolioService derives portfolio-level valuation metrics from the
// transaction ledger. Every call recomputes from a fresh snapshot; no
// derived state is cached between calls.
type PortfolioService struct {
	transactionRepo *repository.TransactionRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependency.
func NewPortfolioService(transactionRepo *repository.TransactionRepository) *PortfolioService {
	return &PortfolioService{
		transactionRepo: transactionRepo,
	}
}

// Summary returns the aggregated portfolio metrics over the full ledger.
func (s *PortfolioService) Summary(ctx context.Context) (model.PortfolioSummary, error) {
	transactions, err := s.transactionRepo.All(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	return Aggregate(transactions), nil
}

// Position returns the valuation of a single ticker's position.
func (s *PortfolioService) Position(ctx context.Context, ticker string) (model.Position, error) {
	transactions, err := s.transactionRepo.ByTicker(ctx, ticker)
	if err != nil {
		return model.Position{}, err
	}

	return ComputePosition(transactions), nil
}
