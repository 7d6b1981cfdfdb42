package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arambaladev/StockPortfolio/internal/api/request"
	"github.com/arambaladev/StockPortfolio/internal/api/response"
	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/service"
	"github.com/arambaladev/StockPortfolio/internal/validation"
)

// StockHandler handles HTTP requests for the stock catalog.
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new StockHandler with the provided service dependency.
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// AllStocks handles GET requests to retrieve every registered stock.
//
// Endpoint: GET /api/stock
// Response: 200 OK with array of Stock
// Error: 500 Internal Server Error if retrieval fails
func (h *StockHandler) AllStocks(w http.ResponseWriter, _ *http.Request) {
	stocks, err := h.stockService.GetAllStocks()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStocks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stocks)
}

// GetStock handles GET requests to retrieve a single stock by ID.
//
// Endpoint: GET /api/stock/{uuid}
// Response: 200 OK with Stock
// Error: 404 Not Found if the stock does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "uuid")

	stock, err := h.stockService.GetStock(stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStocks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// CreateStock handles POST requests to register a new stock. The ticker is
// validated against the market-data provider before the record is stored.
//
// Endpoint: POST /api/stock
// Request Body: CreateStockRequest
// Response: 201 Created with Stock
// Error: 400 Bad Request if validation fails or the ticker is unknown to the provider
// Error: 409 Conflict if the ticker is already registered
// Error: 500 Internal Server Error if creation fails
func (h *StockHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	stock, err := h.stockService.CreateStock(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicateTicker):
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateTicker.Error(), err.Error())
		case errors.Is(err, apperrors.ErrUnknownTicker):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnknownTicker.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create stock", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, stock)
}

// UpdateStock handles PUT requests to edit a stock. A ticker change is
// re-validated against the provider and checked for duplicates.
//
// Endpoint: PUT /api/stock/{uuid}
// Request Body: UpdateStockRequest (all fields optional)
// Response: 200 OK with updated Stock
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the stock does not exist
// Error: 409 Conflict if the new ticker is already registered
// Error: 500 Internal Server Error if the update fails
func (h *StockHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	stock, err := h.stockService.UpdateStock(r.Context(), stockID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrStockNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDuplicateTicker):
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateTicker.Error(), err.Error())
		case errors.Is(err, apperrors.ErrUnknownTicker):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnknownTicker.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update stock", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// DeleteStock handles DELETE requests to remove a stock from the catalog.
// Deletion is rejected while transactions still reference the ticker.
//
// Endpoint: DELETE /api/stock/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if the stock does not exist
// Error: 409 Conflict if transactions reference the ticker
// Error: 500 Internal Server Error if deletion fails
func (h *StockHandler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "uuid")

	err := h.stockService.DeleteStock(r.Context(), stockID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrStockNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrStockInUse):
			response.RespondError(w, http.StatusConflict, apperrors.ErrStockInUse.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to delete stock", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
