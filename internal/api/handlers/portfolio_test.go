package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stockportfoliotracker/backend/internal/config"
	"github.com/stockportfoliotracker/backend/internal/model"
	"github.com/stockportfoliotracker/backend/internal/repository"
	"github.com/stockportfoliotracker/backend/internal/service"
	"github.com/stockportfoliotracker/backend/internal/testutil"
)

func setupPortfolioHandler(t *testing.T, quotes *testutil.MockQuoteClient, apiKey string) (*PortfolioHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	transactionRepo := repository.NewTransactionRepository(db)
	settings := service.NewSettingsService(repository.NewSettingsRepository(db), config.QuotesConfig{APIKey: apiKey})
	portfolioService := service.NewPortfolioService(transactionRepo)
	refreshService := service.NewRefreshService(transactionRepo, quotes, settings, time.Second, 4)
	return NewPortfolioHandler(portfolioService, refreshService), db
}

func TestPortfolioHandler_Summary(t *testing.T) {
	handler, db := setupPortfolioHandler(t, testutil.NewMockQuoteClient(), "test-key")

	testutil.NewTransaction("X").WithQuantity(10).WithPurchasePrice(10).Build(t, db)
	testutil.NewTransaction("X").WithQuantity(-3).WithPurchasePrice(12).WithLastPrice(15).Build(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil)
	rec := httptest.NewRecorder()
	handler.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var summary model.PortfolioSummary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if summary.TotalSpent != 100 || summary.TotalSells != 36 {
		t.Errorf("Unexpected totals: %+v", summary)
	}
	if summary.RealizedPL != 6 || summary.UnrealizedPL != 35 {
		t.Errorf("Unexpected P/L figures: %+v", summary)
	}
	if len(summary.Positions) != 1 {
		t.Errorf("Expected 1 position, got %d", len(summary.Positions))
	}
}

func TestPortfolioHandler_Position(t *testing.T) {
	handler, db := setupPortfolioHandler(t, testutil.NewMockQuoteClient(), "test-key")

	testutil.NewTransaction("aapl").WithQuantity(10).WithPurchasePrice(10).Build(t, db)

	req := testutil.NewRequestWithURLParams(
		http.MethodGet,
		"/api/portfolio/position/AAPL",
		map[string]string{"ticker": "AAPL"},
	)
	rec := httptest.NewRecorder()
	handler.Position(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var position model.Position
	if err := json.NewDecoder(rec.Body).Decode(&position); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if position.Ticker != "AAPL" || position.OpenQuantity != 10 {
		t.Errorf("Unexpected position: %+v", position)
	}
}

func TestPortfolioHandler_Refresh(t *testing.T) {
	t.Run("reports updates and failures", func(t *testing.T) {
		quotes := testutil.NewMockQuoteClient().WithQuote("AAPL", 150)
		handler, db := setupPortfolioHandler(t, quotes, "test-key")

		testutil.NewTransaction("AAPL").Build(t, db)
		testutil.NewTransaction("MSFT").Build(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/refresh", nil)
		rec := httptest.NewRecorder()
		handler.Refresh(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var result model.RefreshResult
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if result.UpdatedCount != 1 {
			t.Errorf("Expected 1 updated transaction, got %d", result.UpdatedCount)
		}
		if !reflect.DeepEqual(result.FailedTickers, []string{"MSFT"}) {
			t.Errorf("Expected failed tickers [MSFT], got %v", result.FailedTickers)
		}
	})

	t.Run("missing API key returns 400", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, testutil.NewMockQuoteClient(), "")

		testutil.NewTransaction("AAPL").Build(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/refresh", nil)
		rec := httptest.NewRecorder()
		handler.Refresh(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}
