package validation

import (
	"strings"
	"time"

	"github.com/arambaladev/StockPortfolio/internal/api/request"
)

// ValidateUpsertPrice validates a price upsert request.
func ValidateUpsertPrice(req request.UpsertPriceRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if req.Price < 0 {
		errors["price"] = "price must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
