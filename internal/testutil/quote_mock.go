package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/stockportfoliotracker/backend/internal/apperrors"
	"github.com/stockportfoliotracker/backend/internal/fmp"
)

// MockQuoteClient is a quote-provider stand-in for tests. Quotes are keyed
// by uppercased symbol; unknown symbols report apperrors.ErrSymbolNotFound.
// It satisfies both service.QuoteClient and service.HistoryClient.
type MockQuoteClient struct {
	mu sync.Mutex

	// Quotes maps uppercased symbols to the quote to return.
	Quotes map[string]fmp.Quote
	// Errors maps uppercased symbols to an error overriding the quote.
	Errors map[string]error
	// History is returned by GetHistoricalPrices for any known symbol.
	History []fmp.HistoricalPrice
	// QueryCount tracks how many quote lookups were made.
	QueryCount int
}

// NewMockQuoteClient creates an empty mock; configure it with WithQuote and
// WithError.
func NewMockQuoteClient() *MockQuoteClient {
	return &MockQuoteClient{
		Quotes: make(map[string]fmp.Quote),
		Errors: make(map[string]error),
	}
}

// WithQuote registers a successful quote for a symbol.
func (m *MockQuoteClient) WithQuote(symbol string, price float64) *MockQuoteClient {
	key := strings.ToUpper(symbol)
	m.Quotes[key] = fmp.Quote{
		Symbol:            key,
		Name:              key + " Inc.",
		Price:             price,
		Change:            1.0,
		ChangesPercentage: 1.0,
	}
	return m
}

// WithError registers a lookup failure for a symbol.
func (m *MockQuoteClient) WithError(symbol string, err error) *MockQuoteClient {
	m.Errors[strings.ToUpper(symbol)] = err
	return m
}

// GetQuote returns the configured quote or error for the symbol.
func (m *MockQuoteClient) GetQuote(_ context.Context, symbol, _ string) (fmp.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++

	key := strings.ToUpper(symbol)
	if err, ok := m.Errors[key]; ok {
		return fmp.Quote{}, err
	}
	if quote, ok := m.Quotes[key]; ok {
		return quote, nil
	}
	return fmp.Quote{}, apperrors.ErrSymbolNotFound
}

// GetHistoricalPrices returns the configured history for any known symbol.
func (m *MockQuoteClient) GetHistoricalPrices(_ context.Context, symbol, _ string) ([]fmp.HistoricalPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToUpper(symbol)
	if err, ok := m.Errors[key]; ok {
		return nil, err
	}
	if _, ok := m.Quotes[key]; !ok {
		return nil, apperrors.ErrSymbolNotFound
	}
	return m.History, nil
}
