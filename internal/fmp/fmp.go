// Package fmp provides a client for the Financial Modeling Prep API,
// the quote provider used by the price refresh and watchlist features.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/stockportfoliotracker/backend/internal/apperrors"
)

// Client provides methods for fetching quotes, company profiles and
// historical prices from the Financial Modeling Prep API. The API key is
// passed in per call so a stored override can take precedence over the
// configured key without shared mutable state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Financial Modeling Prep client. baseURL is the
// scheme and host, e.g. "https://financialmodelingprep.com".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// GetQuote fetches the current quote for a symbol.
//
// The quote endpoint returns a JSON array; an empty array means the symbol
// is unknown, which is reported as apperrors.ErrSymbolNotFound. Transport
// and decoding failures are reported as apperrors.ErrQuoteLookup.
func (c *Client) GetQuote(ctx context.Context, symbol, apiKey string) (Quote, error) {
	var quotes []Quote
	if err := c.getJSON(ctx, "/api/v3/quote/"+url.PathEscape(symbol), apiKey, &quotes); err != nil {
		return Quote{}, err
	}

	if len(quotes) == 0 {
		return Quote{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}

	return quotes[0], nil
}

// GetProfile fetches the company profile for a symbol.
func (c *Client) GetProfile(ctx context.Context, symbol, apiKey string) (CompanyProfile, error) {
	var profiles []CompanyProfile
	if err := c.getJSON(ctx, "/api/v3/profile/"+url.PathEscape(symbol), apiKey, &profiles); err != nil {
		return CompanyProfile{}, err
	}

	if len(profiles) == 0 {
		return CompanyProfile{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}

	return profiles[0], nil
}

// GetHistoricalPrices fetches the full daily price history for a symbol,
// most recent day first as the API returns it.
func (c *Client) GetHistoricalPrices(ctx context.Context, symbol, apiKey string) ([]HistoricalPrice, error) {
	var history HistoricalPricesResponse
	if err := c.getJSON(ctx, "/api/v3/historical-price-full/"+url.PathEscape(symbol), apiKey, &history); err != nil {
		return nil, err
	}

	if len(history.Historical) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}

	return history.Historical, nil
}

// getJSON executes a GET request against the API and decodes the JSON body
// into out. The API key travels as the apikey query parameter.
func (c *Client) getJSON(ctx context.Context, path, apiKey string, out any) error {
	if apiKey == "" {
		return apperrors.ErrAPIKeyNotSet
	}

	reqURL := fmt.Sprintf("%s%s?apikey=%s", c.baseURL, path, url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrQuoteLookup, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrQuoteLookup, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrQuoteLookup, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", apperrors.ErrQuoteLookup, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrQuoteLookup, err)
	}

	return nil
}
