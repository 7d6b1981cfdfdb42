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

// PriceHandler handles HTTP requests for price observations.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// Prices handles GET requests to list price observations, optionally filtered
// by ticker.
//
// Endpoint: GET /api/price?ticker={symbol}
// Response: 200 OK with array of Price
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) Prices(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")

	prices, err := h.priceService.GetPrices(ticker)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prices)
}

// UpsertPrice handles POST requests to record a price observation. Writing the
// same (ticker, date) pair twice overwrites the earlier value.
//
// Endpoint: POST /api/price
// Request Body: UpsertPriceRequest (ticker, date, price)
// Response: 201 Created with Price
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the ticker is not registered
// Error: 500 Internal Server Error if the write fails
func (h *PriceHandler) UpsertPrice(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpsertPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertPrice(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	price, err := h.priceService.UpsertPrice(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to record price", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, price)
}

// DeletePrice handles DELETE requests to remove a price observation.
//
// Endpoint: DELETE /api/price/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the price ID is invalid (validated by middleware)
// Error: 404 Not Found if the observation does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *PriceHandler) DeletePrice(w http.ResponseWriter, r *http.Request) {
	priceID := chi.URLParam(r, "uuid")

	err := h.priceService.DeletePrice(r.Context(), priceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPriceNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPriceNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete price", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// RefreshPrices handles POST requests to fetch the latest close for every
// registered stock and upsert it as today's observation. Per-ticker provider
// failures are reported in the result but do not abort the refresh.
//
// Endpoint: POST /api/price/refresh
// Response: 200 OK with RefreshResult (updated count, failed tickers)
// Error: 500 Internal Server Error if the stock list cannot be read
func (h *PriceHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	result, err := h.priceService.RefreshAllPrices(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
