package handlers

import (
	"net/http"

	"github.com/arambaladev/StockPortfolio/internal/api/response"
	"github.com/arambaladev/StockPortfolio/internal/service"
)

// SystemHandler handles system-related HTTP requests.
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// Health checks database connectivity and reports overall system health.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthStatus, 503 Service Unavailable when degraded
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	status := h.systemService.Health()

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}

	response.RespondJSON(w, code, status)
}

// Version reports the application version and Go runtime version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfo
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.systemService.Version())
}
