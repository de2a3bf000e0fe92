package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockportfoliotracker/backend/internal/api/response"
	"github.com/stockportfoliotracker/backend/internal/apperrors"
	"github.com/stockportfoliotracker/backend/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio valuation and price
// refresh endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	refreshService   *service.RefreshService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependencies.
func NewPortfolioHandler(portfolioService *service.PortfolioService, refreshService *service.RefreshService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		refreshService:   refreshService,
	}
}

// Summary handles GET requests for the aggregated portfolio metrics.
// All figures are recomputed from the current ledger snapshot.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.Summary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute portfolio summary", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Position handles GET requests for a single ticker's valuation.
//
// Endpoint: GET /api/portfolio/position/{ticker}
// Response: 200 OK with Position
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *PortfolioHandler) Position(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	position, err := h.portfolioService.Position(r.Context(), ticker)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// Refresh handles POST requests to fetch the latest prices for all tickers
// in the ledger. Tickers whose lookup fails are reported in the result, they
// never fail the refresh as a whole.
//
// Endpoint: POST /api/portfolio/refresh
// Response: 200 OK with RefreshResult
// Error: 400 Bad Request if no quote API key is configured
// Error: 500 Internal Server Error if the ledger cannot be read or written
func (h *PortfolioHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.refreshService.RefreshPortfolio(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrAPIKeyNotSet) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrAPIKeyNotSet.Error(), nil)
			return
		}
		if errors.Is(err, context.Canceled) {
			// Client went away; nothing was written back.
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh prices", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
