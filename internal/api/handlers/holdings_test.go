package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arambaladev/StockPortfolio/internal/model"
	"github.com/arambaladev/StockPortfolio/internal/testutil"
)

func TestHoldingHandler_Holdings(t *testing.T) {
	setupHandler := func(t *testing.T) (*HoldingHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		hs := testutil.NewTestHoldingService(t, db)
		ts := testutil.NewTestTransactionService(t, db)
		return NewHoldingHandler(hs, ts), db
	}

	t.Run("returns the valuation report", func(t *testing.T) {
		handler, db := setupHandler(t)
		owner := testutil.MakeID()

		stock := testutil.CreateStock(t, db, "AAPL")
		testutil.CreateBuy(t, db, owner, stock.Ticker, 10, "2024-01-02", 100.0)
		testutil.CreatePrice(t, db, stock.Ticker, "2024-03-01", 150.0)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/holdings/"+owner,
			map[string]string{"uuid": owner})
		w := httptest.NewRecorder()

		handler.Holdings(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var report model.HoldingsReport
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&report)

		if len(report.Holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(report.Holdings))
		}
		if report.Holdings[0].MarketValue != 1500.0 {
			t.Errorf("Expected market value 1500.0, got %v", report.Holdings[0].MarketValue)
		}
	})

	t.Run("empty owner gets an empty report", func(t *testing.T) {
		handler, _ := setupHandler(t)
		owner := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/holdings/"+owner,
			map[string]string{"uuid": owner})
		w := httptest.NewRecorder()

		handler.Holdings(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var report model.HoldingsReport
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&report)

		if len(report.Holdings) != 0 {
			t.Errorf("Expected no holdings, got %+v", report.Holdings)
		}
	})
}

func TestHoldingHandler_CanSell(t *testing.T) {
	setupHandler := func(t *testing.T) (*HoldingHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		hs := testutil.NewTestHoldingService(t, db)
		ts := testutil.NewTestTransactionService(t, db)
		return NewHoldingHandler(hs, ts), db
	}

	canSell := func(handler *HoldingHandler, owner string, query map[string]string) *httptest.ResponseRecorder {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/holdings/"+owner+"/can-sell", query)
		req = testutil.NewRequestWithURLParams(http.MethodGet, req.URL.String(), map[string]string{"uuid": owner})
		w := httptest.NewRecorder()
		handler.CanSell(w, req)
		return w
	}

	t.Run("answers allowed within the position", func(t *testing.T) {
		handler, db := setupHandler(t)
		owner := testutil.MakeID()
		stock := testutil.CreateStock(t, db, "AAPL")
		testutil.CreateBuy(t, db, owner, stock.Ticker, 10, "2024-01-02", 100.0)

		w := canSell(handler, owner, map[string]string{
			"ticker":   stock.Ticker,
			"quantity": "5",
			"date":     "2024-03-01",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var check model.SellCheck
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&check)

		if !check.Allowed || check.Available != 10 {
			t.Errorf("Expected allowed with 10 available, got %+v", check)
		}
	})

	t.Run("answers rejected beyond the position", func(t *testing.T) {
		handler, db := setupHandler(t)
		owner := testutil.MakeID()
		stock := testutil.CreateStock(t, db, "AAPL")
		testutil.CreateBuy(t, db, owner, stock.Ticker, 10, "2024-01-02", 100.0)

		w := canSell(handler, owner, map[string]string{
			"ticker":   stock.Ticker,
			"quantity": "11",
			"date":     "2024-03-01",
		})

		var check model.SellCheck
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&check)

		if check.Allowed {
			t.Errorf("Expected rejection, got %+v", check)
		}
	})

	t.Run("returns 400 for missing ticker", func(t *testing.T) {
		handler, _ := setupHandler(t)

		w := canSell(handler, testutil.MakeID(), map[string]string{"quantity": "5"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for non-positive quantity", func(t *testing.T) {
		handler, _ := setupHandler(t)

		w := canSell(handler, testutil.MakeID(), map[string]string{
			"ticker":   "AAPL",
			"quantity": "0",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestHoldingHandler_LotBreakdown(t *testing.T) {
	setupHandler := func(t *testing.T) (*HoldingHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		hs := testutil.NewTestHoldingService(t, db)
		ts := testutil.NewTestTransactionService(t, db)
		return NewHoldingHandler(hs, ts), db
	}

	t.Run("returns the lot detail", func(t *testing.T) {
		handler, db := setupHandler(t)
		owner := testutil.MakeID()
		stock := testutil.CreateStock(t, db, "AAPL")
		testutil.CreateBuy(t, db, owner, stock.Ticker, 10, "2024-01-02", 10.0)
		testutil.CreateSell(t, db, owner, stock.Ticker, 4, "2024-02-01", 20.0)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/holdings/"+owner+"/"+stock.Ticker+"/lots",
			map[string]string{"uuid": owner, "ticker": stock.Ticker})
		w := httptest.NewRecorder()

		handler.LotBreakdown(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var breakdown model.LotBreakdown
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&breakdown)

		if len(breakdown.Lots) != 1 || breakdown.Lots[0].Remaining != 6 {
			t.Errorf("Expected one lot with 6 remaining, got %+v", breakdown.Lots)
		}
		if breakdown.RealizedGain != 40.0 {
			t.Errorf("Expected realized gain 40.0, got %v", breakdown.RealizedGain)
		}
	})

	t.Run("returns 404 for an unregistered ticker", func(t *testing.T) {
		handler, _ := setupHandler(t)
		owner := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/holdings/"+owner+"/NOPE/lots",
			map[string]string{"uuid": owner, "ticker": "NOPE"})
		w := httptest.NewRecorder()

		handler.LotBreakdown(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
