package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arambaladev/StockPortfolio/internal/api/request"
	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/testutil"
)

// TestStockService_CreateStock tests stock registration.
//
// WHY: Registration gates everything downstream; a ticker admitted here is
// trusted by the ledger and the price refresh. These cases pin ticker
// normalization, the provider validation, metadata enrichment, and duplicate
// rejection.
func TestStockService_CreateStock(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes ticker and enriches from provider", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockYahooClient())

		// Execute: lowercase ticker, no descriptive fields
		stock, err := svc.CreateStock(ctx, request.CreateStockRequest{
			Ticker: " aapl ",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateStock() returned unexpected error: %v", err)
		}
		if stock.Ticker != "AAPL" {
			t.Errorf("Expected ticker normalized to AAPL, got %s", stock.Ticker)
		}
		if stock.Name != "Test Stock Inc." {
			t.Errorf("Expected provider name, got %q", stock.Name)
		}
		if stock.Exchange != "NASDAQ" {
			t.Errorf("Expected provider exchange, got %q", stock.Exchange)
		}
		if stock.Currency != "USD" {
			t.Errorf("Expected provider currency, got %q", stock.Currency)
		}
	})

	t.Run("caller-supplied fields are not overwritten", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockYahooClient())

		stock, err := svc.CreateStock(ctx, request.CreateStockRequest{
			Name:     "My Name",
			Ticker:   "AAPL",
			Exchange: "NYSE",
			Currency: "EUR",
		})
		if err != nil {
			t.Fatalf("CreateStock() returned unexpected error: %v", err)
		}
		if stock.Name != "My Name" || stock.Exchange != "NYSE" || stock.Currency != "EUR" {
			t.Errorf("Expected caller fields preserved, got %+v", stock)
		}
	})

	t.Run("duplicate ticker is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockYahooClient())
		testutil.CreateStock(t, db, "AAPL")

		_, err := svc.CreateStock(ctx, request.CreateStockRequest{Ticker: "aapl"})
		if !errors.Is(err, apperrors.ErrDuplicateTicker) {
			t.Errorf("Expected ErrDuplicateTicker, got %v", err)
		}
	})

	t.Run("ticker unknown to the provider is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient().WithError(errors.New("no results"))
		svc := testutil.NewTestStockService(t, db, mock)

		_, err := svc.CreateStock(ctx, request.CreateStockRequest{Ticker: "NOPE"})
		if !errors.Is(err, apperrors.ErrUnknownTicker) {
			t.Errorf("Expected ErrUnknownTicker, got %v", err)
		}
	})
}

// TestStockService_UpdateStock tests stock edits.
func TestStockService_UpdateStock(t *testing.T) {
	ctx := context.Background()

	t.Run("changing the ticker to an existing one is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockYahooClient())
		testutil.CreateStock(t, db, "AAPL")
		msft := testutil.CreateStock(t, db, "MSFT")

		ticker := "aapl"
		_, err := svc.UpdateStock(ctx, msft.ID, request.UpdateStockRequest{Ticker: &ticker})
		if !errors.Is(err, apperrors.ErrDuplicateTicker) {
			t.Errorf("Expected ErrDuplicateTicker, got %v", err)
		}
	})

	t.Run("updates descriptive fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockYahooClient())
		stock := testutil.CreateStock(t, db, "AAPL")

		sector := "Energy"
		updated, err := svc.UpdateStock(ctx, stock.ID, request.UpdateStockRequest{Sector: &sector})
		if err != nil {
			t.Fatalf("UpdateStock() returned unexpected error: %v", err)
		}
		if updated.Sector != "Energy" {
			t.Errorf("Expected sector Energy, got %q", updated.Sector)
		}
		if updated.Ticker != "AAPL" {
			t.Errorf("Expected ticker unchanged, got %q", updated.Ticker)
		}
	})

	t.Run("missing stock returns ErrStockNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockYahooClient())

		_, err := svc.UpdateStock(ctx, testutil.MakeID(), request.UpdateStockRequest{})
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Errorf("Expected ErrStockNotFound, got %v", err)
		}
	})
}

// TestStockService_DeleteStock tests the referential guard on deletion.
//
// WHY: Deleting a stock whose ticker the ledger still references would leave
// transactions pointing at nothing. The guard must block deletion while any
// transaction exists and allow it once the history is gone.
func TestStockService_DeleteStock(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects deletion while transactions reference the ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockYahooClient())
		stock := testutil.CreateStock(t, db, "AAPL")
		testutil.CreateBuy(t, db, testutil.MakeID(), stock.Ticker, 10, "2024-01-02", 100.0)

		err := svc.DeleteStock(ctx, stock.ID)
		if !errors.Is(err, apperrors.ErrStockInUse) {
			t.Errorf("Expected ErrStockInUse, got %v", err)
		}

		// Still present
		if _, err := svc.GetStock(stock.ID); err != nil {
			t.Errorf("Expected stock to survive rejected deletion, got %v", err)
		}
	})

	t.Run("deletes a stock with no transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockYahooClient())
		stock := testutil.CreateStock(t, db, "AAPL")

		if err := svc.DeleteStock(ctx, stock.ID); err != nil {
			t.Fatalf("DeleteStock() returned unexpected error: %v", err)
		}

		_, err := svc.GetStock(stock.ID)
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Errorf("Expected ErrStockNotFound after deletion, got %v", err)
		}
	})
}
