package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockportfoliotracker/backend/internal/api/request"
	"github.com/stockportfoliotracker/backend/internal/api/response"
	"github.com/stockportfoliotracker/backend/internal/apperrors"
	"github.com/stockportfoliotracker/backend/internal/service"
	"github.com/stockportfoliotracker/backend/internal/validation"
)

// StockHandler handles HTTP requests for watchlist endpoints.
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new StockHandler with the provided service dependency.
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// AllStocks handles GET requests to list the watchlist.
//
// Endpoint: GET /api/stock
// Response: 200 OK with array of Stock
func (h *StockHandler) AllStocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.stockService.All(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve stocks", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stocks)
}

// GetStock handles GET requests for a single watchlist entry.
//
// Endpoint: GET /api/stock/{ticker}
// Response: 200 OK with Stock
// Error: 404 Not Found if the ticker is not on the watchlist
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	stock, err := h.stockService.Get(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve stock", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// AddStock handles POST requests to add a watchlist entry. The entry's name,
// price and change are looked up at the quote provider.
//
// Endpoint: POST /api/stock
// Request Body: AddStockRequest (ticker, optional quantity and purchasePrice)
// Response: 201 Created with Stock
// Error: 400 Bad Request if validation fails or no API key is configured
// Error: 404 Not Found if the quote provider does not know the ticker
func (h *StockHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AddStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAddStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	stock, err := h.stockService.Add(r.Context(), req.Ticker, req.Quantity, req.PurchasePrice)
	if err != nil {
		if errors.Is(err, apperrors.ErrSymbolNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSymbolNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrAPIKeyNotSet) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrAPIKeyNotSet.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to add stock", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, stock)
}

// DeleteStock handles DELETE requests to remove a watchlist entry.
//
// Endpoint: DELETE /api/stock/{ticker}
// Response: 204 No Content
// Error: 404 Not Found if the ticker is not on the watchlist
func (h *StockHandler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	removed, err := h.stockService.Delete(r.Context(), ticker)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to delete stock", err.Error())
		return
	}
	if removed == 0 {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// RefreshStocks handles POST requests to re-fetch quotes for the whole
// watchlist. Failed tickers are reported, not fatal.
//
// Endpoint: POST /api/stock/refresh
// Response: 200 OK with RefreshResult
// Error: 400 Bad Request if no quote API key is configured
func (h *StockHandler) RefreshStocks(w http.ResponseWriter, r *http.Request) {
	result, err := h.stockService.RefreshAll(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrAPIKeyNotSet) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrAPIKeyNotSet.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh stocks", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// StockHistory handles GET requests for a ticker's daily price history.
//
// Endpoint: GET /api/stock/{ticker}/history
// Response: 200 OK with array of HistoricalPrice
// Error: 404 Not Found if the quote provider does not know the ticker
func (h *StockHandler) StockHistory(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	history, err := h.stockService.History(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrSymbolNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSymbolNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrAPIKeyNotSet) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrAPIKeyNotSet.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve price history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}
