package validation_test

import (
	"errors"
	"testing"

	"github.com/arambaladev/StockPortfolio/internal/api/request"
	"github.com/arambaladev/StockPortfolio/internal/validation"
)

func validCreateRequest() request.CreateTransactionRequest {
	return request.CreateTransactionRequest{
		OwnerID:   "550e8400-e29b-41d4-a716-446655440000",
		Ticker:    "AAPL",
		Operation: "Buy",
		Quantity:  10,
		Date:      "2024-01-02",
		Price:     150.0,
	}
}

// TestValidateCreateTransaction tests field-level request validation.
//
// WHY: The validator is the only gate between client JSON and the write path.
// Each rejected field must be reported under its own name so forms can
// attribute errors, and a fully valid request must pass untouched.
func TestValidateCreateTransaction(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		if err := validation.ValidateCreateTransaction(validCreateRequest()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*request.CreateTransactionRequest)
		field  string
	}{
		{
			name:   "missing owner",
			mutate: func(r *request.CreateTransactionRequest) { r.OwnerID = "" },
			field:  "ownerId",
		},
		{
			name:   "malformed owner UUID",
			mutate: func(r *request.CreateTransactionRequest) { r.OwnerID = "not-a-uuid" },
			field:  "ownerId",
		},
		{
			name:   "missing ticker",
			mutate: func(r *request.CreateTransactionRequest) { r.Ticker = "  " },
			field:  "ticker",
		},
		{
			name:   "unknown operation",
			mutate: func(r *request.CreateTransactionRequest) { r.Operation = "Transfer" },
			field:  "operation",
		},
		{
			name:   "missing operation",
			mutate: func(r *request.CreateTransactionRequest) { r.Operation = "" },
			field:  "operation",
		},
		{
			name:   "zero quantity",
			mutate: func(r *request.CreateTransactionRequest) { r.Quantity = 0 },
			field:  "quantity",
		},
		{
			name:   "negative quantity",
			mutate: func(r *request.CreateTransactionRequest) { r.Quantity = -3 },
			field:  "quantity",
		},
		{
			name:   "malformed date",
			mutate: func(r *request.CreateTransactionRequest) { r.Date = "02-01-2024" },
			field:  "date",
		},
		{
			name:   "missing date",
			mutate: func(r *request.CreateTransactionRequest) { r.Date = "" },
			field:  "date",
		},
		{
			name:   "negative price",
			mutate: func(r *request.CreateTransactionRequest) { r.Price = -1 },
			field:  "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			err := validation.ValidateCreateTransaction(req)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}

			var vErr *validation.Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *validation.Error, got %T", err)
			}
			if _, ok := vErr.Fields[tt.field]; !ok {
				t.Errorf("Expected error on field %q, got %v", tt.field, vErr.Fields)
			}
		})
	}

	t.Run("multiple failures are reported together", func(t *testing.T) {
		req := validCreateRequest()
		req.Ticker = ""
		req.Quantity = 0

		err := validation.ValidateCreateTransaction(req)
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %T", err)
		}
		if len(vErr.Fields) != 2 {
			t.Errorf("Expected 2 field errors, got %v", vErr.Fields)
		}
	})
}

// TestValidateUpdateTransaction tests optional-field validation on edits.
//
// WHY: Update requests carry only the fields being changed. Absent fields
// must not trigger errors, while present fields follow the same rules as
// creation.
func TestValidateUpdateTransaction(t *testing.T) {
	t.Run("empty request passes", func(t *testing.T) {
		if err := validation.ValidateUpdateTransaction(request.UpdateTransactionRequest{}); err != nil {
			t.Errorf("Expected no error for empty update, got %v", err)
		}
	})

	t.Run("provided fields are validated", func(t *testing.T) {
		operation := "Transfer"
		quantity := int64(0)

		err := validation.ValidateUpdateTransaction(request.UpdateTransactionRequest{
			Operation: &operation,
			Quantity:  &quantity,
		})
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}

		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %T", err)
		}
		if _, ok := vErr.Fields["operation"]; !ok {
			t.Errorf("Expected operation error, got %v", vErr.Fields)
		}
		if _, ok := vErr.Fields["quantity"]; !ok {
			t.Errorf("Expected quantity error, got %v", vErr.Fields)
		}
	})

	t.Run("valid partial update passes", func(t *testing.T) {
		price := 155.0
		if err := validation.ValidateUpdateTransaction(request.UpdateTransactionRequest{Price: &price}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}
