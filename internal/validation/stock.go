package validation

import (
	"strings"

	"github.com/arambaladev/StockPortfolio/internal/api/request"
)

// ValidateCreateStock validates a stock creation request.
// Only the ticker is required; descriptive fields left empty are filled from
// provider metadata.
func ValidateCreateStock(req request.CreateStockRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateStock validates a stock update request.
// Provided fields must be non-blank where the schema requires a value.
func ValidateUpdateStock(req request.UpdateStockRequest) error {
	errors := make(map[string]string)

	if req.Ticker != nil && strings.TrimSpace(*req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
