package handlers

import (
	"errors"
	"net/http"

	"github.com/stockportfoliotracker/backend/internal/api/request"
	"github.com/stockportfoliotracker/backend/internal/api/response"
	"github.com/stockportfoliotracker/backend/internal/apperrors"
	"github.com/stockportfoliotracker/backend/internal/model"
	"github.com/stockportfoliotracker/backend/internal/service"
	"github.com/stockportfoliotracker/backend/internal/validation"
)

// TransactionHandler handles HTTP requests for ledger endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// AllTransactions handles GET requests to retrieve the full ledger in
// insertion order.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.All(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by id.
//
// Endpoint: GET /api/transaction/{id}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if the id is not numeric
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid transaction id", err.Error())
		return
	}

	transaction, err := h.transactionService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to append a transaction to the
// ledger. Sells beyond the ticker's net open quantity are rejected.
//
// Endpoint: POST /api/transaction
// Request Body: TransactionRequest (ticker, quantity, purchasePrice, lastPrice)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or the sell exceeds the net quantity
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.TransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.Create(r.Context(), model.Transaction{
		Ticker:        req.Ticker,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		LastPrice:     req.LastPrice,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrOversell) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrOversell.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to replace an existing transaction
// in full.
//
// Endpoint: PUT /api/transaction/{id}
// Request Body: TransactionRequest
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if the id is not numeric, validation fails or the
// edited sell exceeds the net quantity
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid transaction id", err.Error())
		return
	}

	req, err := parseJSON[request.TransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.Update(r.Context(), model.Transaction{
		ID:            id,
		Ticker:        req.Ticker,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		LastPrice:     req.LastPrice,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), nil)
			return
		}
		if errors.Is(err, apperrors.ErrOversell) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrOversell.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
// Removal is immediate and permanent.
//
// Endpoint: DELETE /api/transaction/{id}
// Response: 204 No Content
// Error: 400 Bad Request if the id is not numeric
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid transaction id", err.Error())
		return
	}

	if err := h.transactionService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
