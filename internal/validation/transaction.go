package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/arambaladev/StockPortfolio/internal/api/request"
	"github.com/arambaladev/StockPortfolio/internal/model"
)

// ValidOperation contains the allowed transaction operation values.
var ValidOperation = map[string]bool{
	model.OperationBuy: true, model.OperationSell: true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - ownerId: Must be a valid UUID
//   - ticker: Must be non-empty
//   - operation: Must be Buy or Sell
//   - quantity: Must be a positive integer
//   - date: Must be in YYYY-MM-DD format
//   - price: Must not be negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.OwnerID); err != nil {
		errors["ownerId"] = err.Error()
	}

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	validateOperation(errors, req.Operation)
	validateDate(errors, req.Date)

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Price < 0 {
		errors["price"] = "price must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Ticker != nil && strings.TrimSpace(*req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}
	if req.Operation != nil {
		validateOperation(errors, *req.Operation)
	}
	if req.Date != nil {
		validateDate(errors, *req.Date)
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Price != nil && *req.Price < 0 {
		errors["price"] = "price must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateOperation(errors map[string]string, operation string) {
	if strings.TrimSpace(operation) == "" {
		errors["operation"] = "operation is required"
	} else if !ValidOperation[operation] {
		errors["operation"] = fmt.Sprintf("invalid operation: %s", operation)
	}
}

func validateDate(errors map[string]string, date string) {
	if strings.TrimSpace(date) == "" {
		errors["date"] = "date is required"
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		errors["date"] = err.Error()
	}
}
