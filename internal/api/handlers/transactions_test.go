package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arambaladev/StockPortfolio/internal/model"
	"github.com/arambaladev/StockPortfolio/internal/testutil"
)

func TestTransactionHandler_AllTransactions(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	t.Run("returns empty array when no transactions exist", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d transactions", len(response))
		}
	})

	t.Run("filters by owner", func(t *testing.T) {
		handler, db := setupHandler(t)

		stock := testutil.CreateStock(t, db, "AAPL")
		owner := testutil.MakeID()
		other := testutil.MakeID()
		mine := testutil.CreateBuy(t, db, owner, stock.Ticker, 10, "2024-01-02", 100.0)
		testutil.CreateBuy(t, db, other, stock.Ticker, 5, "2024-01-02", 100.0)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"owner": owner})
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 || response[0].ID != mine.ID {
			t.Errorf("Expected only the owner's transaction, got %+v", response)
		}
	})

	t.Run("returns 400 for malformed owner filter", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"owner": "not-a-uuid"})
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	post := func(body string) (*httptest.ResponseRecorder, *http.Request) {
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return httptest.NewRecorder(), req
	}

	t.Run("creates a buy and returns 201", func(t *testing.T) {
		handler, db := setupHandler(t)
		stock := testutil.CreateStock(t, db, "AAPL")
		owner := testutil.MakeID()

		w, req := post(`{
			"ownerId": "` + owner + `",
			"ticker": "` + stock.Ticker + `",
			"operation": "Buy",
			"quantity": 10,
			"date": "2024-01-02",
			"price": 150.0
		}`)

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&created)

		if created.ID == "" || created.Quantity != 10 {
			t.Errorf("Unexpected created transaction: %+v", created)
		}
	})

	t.Run("returns 400 for malformed body", func(t *testing.T) {
		handler, _ := setupHandler(t)

		w, req := post(`{not json`)
		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for validation failure", func(t *testing.T) {
		handler, _ := setupHandler(t)

		w, req := post(`{
			"ownerId": "not-a-uuid",
			"ticker": "",
			"operation": "Transfer",
			"quantity": 0,
			"date": "nope",
			"price": -1
		}`)
		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for an oversell", func(t *testing.T) {
		handler, db := setupHandler(t)
		stock := testutil.CreateStock(t, db, "AAPL")
		owner := testutil.MakeID()
		testutil.CreateBuy(t, db, owner, stock.Ticker, 5, "2024-01-02", 100.0)

		w, req := post(`{
			"ownerId": "` + owner + `",
			"ticker": "` + stock.Ticker + `",
			"operation": "Sell",
			"quantity": 6,
			"date": "2024-02-01",
			"price": 110.0
		}`)
		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for unregistered ticker", func(t *testing.T) {
		handler, _ := setupHandler(t)
		owner := testutil.MakeID()

		w, req := post(`{
			"ownerId": "` + owner + `",
			"ticker": "NOPE",
			"operation": "Buy",
			"quantity": 10,
			"date": "2024-01-02",
			"price": 150.0
		}`)
		handler.CreateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	t.Run("deletes and returns 204", func(t *testing.T) {
		handler, db := setupHandler(t)
		stock := testutil.CreateStock(t, db, "AAPL")
		buy := testutil.CreateBuy(t, db, testutil.MakeID(), stock.Ticker, 10, "2024-01-02", 100.0)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/transaction/"+buy.ID,
			map[string]string{"uuid": buy.ID})
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for missing transaction", func(t *testing.T) {
		handler, _ := setupHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/transaction/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
