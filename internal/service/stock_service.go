package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/stockportfoliotracker/backend/internal/fmp"
	"github.com/stockportfoliotracker/backend/internal/model"
	"github.com/stockportfoliotracker/backend/internal/repository"
)

// HistoryClient is the historical-price capability of the quote provider.
type HistoryClient interface {
	GetHistoricalPrices(ctx context.Context, symbol, apiKey string) ([]fmp.HistoricalPrice, error)
}

// StockService handles the watchlist: adding entries by quote lookup,
// refreshing their displayed prices and proxying historical price data.
type StockService struct {
	stockRepo *repository.StockRepository
	quotes    QuoteClient
	history   HistoryClient
	settings  *SettingsService
}

// NewStockService creates a new StockService with the provided dependencies.
func NewStockService(
	stockRepo *repository.StockRepository,
	quotes QuoteClient,
	history HistoryClient,
	settings *SettingsService,
) *StockService {
	return &StockService{
		stockRepo: stockRepo,
		quotes:    quotes,
		history:   history,
		settings:  settings,
	}
}

// All returns all watchlist entries.
func (s *StockService) All(ctx context.Context) ([]model.Stock, error) {
	return s.stockRepo.All(ctx)
}

// Get returns a single watchlist entry by ticker.
func (s *StockService) Get(ctx context.Context, ticker string) (model.Stock, error) {
	return s.stockRepo.Get(ctx, ticker)
}

// Add looks up the ticker at the quote provider and stores the resulting
// entry. Quantity and purchase price default to zero for plain watchlist
// items.
func (s *StockService) Add(ctx context.Context, ticker string, quantity int64, purchasePrice float64) (model.Stock, error) {
	apiKey, err := s.settings.APIKey(ctx)
	if err != nil {
		return model.Stock{}, err
	}

	quote, err := s.quotes.GetQuote(ctx, strings.TrimSpace(ticker), apiKey)
	if err != nil {
		return model.Stock{}, err
	}

	stock := model.Stock{
		Ticker:        quote.Symbol,
		Name:          quote.Name,
		Price:         quote.Price,
		Change:        formatChange(quote),
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
	}

	if err := s.stockRepo.Upsert(ctx, stock); err != nil {
		return model.Stock{}, err
	}

	return stock, nil
}

// Delete removes a watchlist entry.
func (s *StockService) Delete(ctx context.Context, ticker string) (int64, error) {
	return s.stockRepo.Delete(ctx, ticker)
}

// RefreshAll re-fetches quotes for every watchlist entry. Entries whose
// lookup fails keep their previous data and are reported in FailedTickers;
// the refresh itself never fails because of them.
func (s *StockService) RefreshAll(ctx context.Context) (model.RefreshResult, error) {
	stocks, err := s.stockRepo.All(ctx)
	if err != nil {
		return model.RefreshResult{}, err
	}

	apiKey, err := s.settings.APIKey(ctx)
	if err != nil {
		return model.RefreshResult{}, err
	}

	result := model.RefreshResult{FailedTickers: []string{}}

	for _, stock := range stocks {
		quote, err := s.quotes.GetQuote(ctx, stock.Ticker, apiKey)
		if err != nil {
			log.Printf("quote lookup failed for %s: %v", stock.Ticker, err)
			result.FailedTickers = append(result.FailedTickers, strings.ToUpper(stock.Ticker))
			continue
		}

		stock.Price = quote.Price
		stock.Change = formatChange(quote)
		if err := s.stockRepo.Upsert(ctx, stock); err != nil {
			return result, fmt.Errorf("failed to write back quote for %s: %w", stock.Ticker, err)
		}
		result.UpdatedCount++
	}

	sort.Strings(result.FailedTickers)
	return result, nil
}

// History returns the daily price history for a ticker from the quote
// provider.
func (s *StockService) History(ctx context.Context, ticker string) ([]fmp.HistoricalPrice, error) {
	apiKey, err := s.settings.APIKey(ctx)
	if err != nil {
		return nil, err
	}

	return s.history.GetHistoricalPrices(ctx, strings.TrimSpace(ticker), apiKey)
}

// formatChange renders a quote's absolute and percentage change the way the
// watchlist displays it, e.g. "1.25 (0.83%)".
func formatChange(quote fmp.Quote) string {
	return fmt.Sprintf("%.2f (%.2f%%)", quote.Change, quote.ChangesPercentage)
}
