package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stockportfoliotracker/backend/internal/fmp"
	"github.com/stockportfoliotracker/backend/internal/model"
	"github.com/stockportfoliotracker/backend/internal/repository"
)

// QuoteClient is the quote-provider capability the refresh services need.
// Implemented by fmp.Client; tests substitute a mock.
type QuoteClient interface {
	GetQuote(ctx context.Context, symbol, apiKey string) (fmp.Quote, error)
}

// RefreshService fetches the latest prices for every distinct ticker in the
// ledger and writes them back into the transactions' last_price fields.
//
// Quote requests run concurrently with a bounded fan-out and a per-request
// timeout; a failed ticker is recorded and skipped, it never aborts the
// batch. The writeback pass runs serially after all requests settle and is
// skipped entirely if the context was cancelled in the meantime.
type RefreshService struct {
	transactionRepo *repository.TransactionRepository
	quotes          QuoteClient
	settings        *SettingsService
	requestTimeout  time.Duration
	maxConcurrent   int
}

// NewRefreshService creates a new RefreshService with the provided dependencies.
func NewRefreshService(
	transactionRepo *repository.TransactionRepository,
	quotes QuoteClient,
	settings *SettingsService,
	requestTimeout time.Duration,
	maxConcurrent int,
) *RefreshService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &RefreshService{
		transactionRepo: transactionRepo,
		quotes:          quotes,
		settings:        settings,
		requestTimeout:  requestTimeout,
		maxConcurrent:   maxConcurrent,
	}
}

// RefreshPortfolio refreshes the last-known price for every distinct ticker
// in the ledger and reports how many transactions were updated and which
// tickers failed.
func (s *RefreshService) RefreshPortfolio(ctx context.Context) (model.RefreshResult, error) {
	transactions, err := s.transactionRepo.All(ctx)
	if err != nil {
		return model.RefreshResult{}, err
	}

	apiKey, err := s.settings.APIKey(ctx)
	if err != nil {
		return model.RefreshResult{}, err
	}

	prices, failed := s.fetchPrices(ctx, distinctTickers(transactions), apiKey)

	// Cancellation between fetch and writeback must not leave a partial
	// merge behind.
	if err := ctx.Err(); err != nil {
		return model.RefreshResult{}, err
	}

	result := model.RefreshResult{FailedTickers: failed}

	for _, tx := range transactions {
		price, ok := prices[strings.ToUpper(tx.Ticker)]
		if !ok {
			continue
		}

		tx.LastPrice = price
		if err := s.transactionRepo.Replace(ctx, &tx); err != nil {
			return result, fmt.Errorf("failed to write back price for %s: %w", tx.Ticker, err)
		}
		result.UpdatedCount++
	}

	return result, nil
}

// fetchPrices requests quotes for the given tickers concurrently and returns
// the fetched prices keyed by uppercased ticker, plus the sorted list of
// tickers whose lookups failed.
func (s *RefreshService) fetchPrices(ctx context.Context, tickers []string, apiKey string) (map[string]float64, []string) {
	prices := make(map[string]float64, len(tickers))
	failed := []string{}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			qctx, cancel := context.WithTimeout(gctx, s.requestTimeout)
			defer cancel()

			quote, err := s.quotes.GetQuote(qctx, ticker, apiKey)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("quote lookup failed for %s: %v", ticker, err)
				failed = append(failed, strings.ToUpper(ticker))
				// Per-ticker failures never abort the batch.
				return nil
			}
			prices[strings.ToUpper(ticker)] = quote.Price
			return nil
		})
	}

	// Goroutines only ever return nil; Wait is for joining.
	_ = g.Wait()

	sort.Strings(failed)
	return prices, failed
}

// distinctTickers returns one representative ticker per case-insensitive
// symbol, in first-seen ledger order and original casing.
func distinctTickers(transactions []model.Transaction) []string {
	seen := make(map[string]bool)
	tickers := []string{}
	for _, tx := range transactions {
		key := strings.ToUpper(tx.Ticker)
		if seen[key] {
			continue
		}
		seen[key] = true
		tickers = append(tickers, tx.Ticker)
	}
	return tickers
}
