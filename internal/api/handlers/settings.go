package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/arambaladev/StockPortfolio/internal/api/request"
	"github.com/arambaladev/StockPortfolio/internal/api/response"
	"github.com/arambaladev/StockPortfolio/internal/service"
)

// SettingHandler handles HTTP requests for system settings.
type SettingHandler struct {
	settingService *service.SettingService
}

// NewSettingHandler creates a new SettingHandler with the provided service dependency.
func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
	}
}

// UpdateMarketDataKey handles PUT requests to store the fallback market-data
// provider API key. The key is encrypted before it touches the database.
//
// Endpoint: PUT /api/settings/market-data
// Request Body: UpdateMarketDataKeyRequest (apiKey)
// Response: 204 No Content on success
// Error: 400 Bad Request if the key is empty
// Error: 500 Internal Server Error if encryption is not configured or the write fails
func (h *SettingHandler) UpdateMarketDataKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateMarketDataKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "apiKey is required", "")
		return
	}

	if err := h.settingService.SetMarketDataAPIKey(r.Context(), req.APIKey); err != nil {
		if errors.Is(err, service.ErrEncryptionNotConfigured) {
			response.RespondError(w, http.StatusInternalServerError, service.ErrEncryptionNotConfigured.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to store API key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
