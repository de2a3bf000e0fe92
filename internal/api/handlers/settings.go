package handlers

import (
	"net/http"
	"strings"

	"github.com/stockportfoliotracker/backend/internal/api/request"
	"github.com/stockportfoliotracker/backend/internal/api/response"
	"github.com/stockportfoliotracker/backend/internal/service"
)

// SettingsHandler handles HTTP requests for runtime settings.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the provided service dependency.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// SetAPIKey handles PUT requests to store a quote provider API key override.
// The key is encrypted before it reaches the database and never echoed back.
//
// Endpoint: PUT /api/settings/apikey
// Request Body: SetAPIKeyRequest
// Response: 204 No Content
// Error: 400 Bad Request if the key is empty
// Error: 500 Internal Server Error if encryption or storage fails
func (h *SettingsHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetAPIKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "apiKey is required")
		return
	}

	if err := h.settingsService.SetAPIKey(r.Context(), req.APIKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store API key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// APIKeyStatus handles GET requests reporting whether an API key override is
// stored. The key itself is never returned.
//
// Endpoint: GET /api/settings/apikey
// Response: 200 OK with {"configured": bool}
func (h *SettingsHandler) APIKeyStatus(w http.ResponseWriter, r *http.Request) {
	stored, err := h.settingsService.HasStoredAPIKey(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to read settings", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]bool{"configured": stored})
}
