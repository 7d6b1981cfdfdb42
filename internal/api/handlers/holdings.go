package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arambaladev/StockPortfolio/internal/api/response"
	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/service"
)

// HoldingHandler handles HTTP requests for computed holdings, lot breakdowns
// and sell availability checks.
type HoldingHandler struct {
	holdingService     *service.HoldingService
	transactionService *service.TransactionService
}

// NewHoldingHandler creates a new HoldingHandler with the provided service dependencies.
func NewHoldingHandler(holdingService *service.HoldingService, transactionService *service.TransactionService) *HoldingHandler {
	return &HoldingHandler{
		holdingService:     holdingService,
		transactionService: transactionService,
	}
}

// Holdings handles GET requests to compute an owner's holdings report. Each
// position carries FIFO cost basis, realized and unrealized gain, money-weighted
// return, and its share of the portfolio; the report totals across positions
// and groups value by sector and currency.
//
// Endpoint: GET /api/holdings/{uuid}
// Response: 200 OK with HoldingsReport
// Error: 400 Bad Request if the owner ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if the report cannot be computed
func (h *HoldingHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "uuid")

	report, err := h.holdingService.GetHoldings(ownerID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// LotBreakdown handles GET requests to show the FIFO lot detail behind one
// position: every lot with its remaining quantity, plus the sales matched
// against it and their per-sale returns.
//
// Endpoint: GET /api/holdings/{uuid}/{ticker}/lots
// Response: 200 OK with LotBreakdown
// Error: 400 Bad Request if the owner ID is invalid (validated by middleware)
//	or the ledger oversells the ticker
// Error: 404 Not Found if the ticker is not registered
// Error: 500 Internal Server Error if the breakdown cannot be computed
func (h *HoldingHandler) LotBreakdown(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "uuid")
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	breakdown, err := h.holdingService.GetLotBreakdown(ownerID, ticker)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrStockNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInsufficientShares):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientShares.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeHoldings.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, breakdown)
}

// CanSell handles GET requests that ask whether a sell of a given size on a
// given date could be satisfied by the owner's holdings as of that date. The
// optional exclude parameter removes one transaction from the check, which is
// how edit forms re-validate an existing sell.
//
// Endpoint: GET /api/holdings/{uuid}/can-sell?ticker=&quantity=&date=&exclude=
// Response: 200 OK with SellCheck
// Error: 400 Bad Request if the owner ID, ticker, quantity or date is invalid
// Error: 500 Internal Server Error if the check fails
func (h *HoldingHandler) CanSell(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "uuid")
	query := r.URL.Query()

	ticker := strings.ToUpper(strings.TrimSpace(query.Get("ticker")))
	if ticker == "" {
		response.RespondError(w, http.StatusBadRequest, "ticker is required", "")
		return
	}

	quantity, err := strconv.ParseInt(query.Get("quantity"), 10, 64)
	if err != nil || quantity <= 0 {
		response.RespondError(w, http.StatusBadRequest, "quantity must be a positive integer", "")
		return
	}

	date := time.Now().UTC()
	if raw := query.Get("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", err.Error())
			return
		}
	}

	check, err := h.transactionService.CheckSell(ownerID, ticker, quantity, date, query.Get("exclude"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to check sell availability", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, check)
}
