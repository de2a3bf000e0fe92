package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stockportfoliotracker/backend/internal/config"
	"github.com/stockportfoliotracker/backend/internal/model"
	"github.com/stockportfoliotracker/backend/internal/repository"
	"github.com/stockportfoliotracker/backend/internal/service"
	"github.com/stockportfoliotracker/backend/internal/testutil"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	quotes := testutil.NewMockQuoteClient().WithQuote("AAPL", 150)

	transactionRepo := repository.NewTransactionRepository(db)
	settingsService := service.NewSettingsService(repository.NewSettingsRepository(db), config.QuotesConfig{APIKey: "test-key"})

	cfg := &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	return NewRouter(
		service.NewSystemService(db),
		service.NewTransactionService(transactionRepo),
		service.NewPortfolioService(transactionRepo),
		service.NewRefreshService(transactionRepo, quotes, settingsService, time.Second, 4),
		service.NewStockService(repository.NewStockRepository(db), quotes, quotes, settingsService),
		settingsService,
		cfg,
	)
}

func TestRouter_TransactionLifecycle(t *testing.T) {
	router := setupRouter(t)

	body := `{"ticker":"AAPL","quantity":10,"purchasePrice":150.0,"lastPrice":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/transaction/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created model.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var summary model.PortfolioSummary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if summary.TotalSpent != 1500 {
		t.Errorf("Expected total spent 1500, got %f", summary.TotalSpent)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/portfolio/refresh", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result model.RefreshResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.UpdatedCount != 1 || len(result.FailedTickers) != 0 {
		t.Errorf("Unexpected refresh result: %+v", result)
	}
}

func TestRouter_Health(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}
