package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/arambaladev/StockPortfolio/internal/repository"
	"github.com/arambaladev/StockPortfolio/internal/service"
	"github.com/arambaladev/StockPortfolio/internal/yahoo"
)

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestStockService(t *testing.T, db *sql.DB, yahooClient yahoo.Client) *service.StockService {
	t.Helper()

	stockRepo := repository.NewStockRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewStockService(
		stockRepo,
		transactionRepo,
		yahooClient,
	)
}

func NewTestPriceService(t *testing.T, db *sql.DB, yahooClient yahoo.Client) *service.PriceService {
	t.Helper()

	priceRepo := repository.NewPriceRepository(db)
	stockRepo := repository.NewStockRepository(db)
	settingService := NewTestSettingService(t, db)

	return service.NewPriceService(
		priceRepo,
		stockRepo,
		settingService,
		yahooClient,
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	stockRepo := repository.NewStockRepository(db)

	return service.NewTransactionService(
		db,
		transactionRepo,
		priceRepo,
		portfolioRepo,
		stockRepo,
	)
}

func NewTestHoldingService(t *testing.T, db *sql.DB) *service.HoldingService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	stockRepo := repository.NewStockRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	return service.NewHoldingService(
		transactionRepo,
		stockRepo,
		priceRepo,
	)
}

// TestSecretKey is a fixed base64 fernet key for tests that exercise the
// encrypted settings path.
const TestSecretKey = "cGFzc3BocmFzZXdoaWNobmVlZHN0b2JlMzJieXRlcyE="

func NewTestSettingService(t *testing.T, db *sql.DB) *service.SettingService {
	t.Helper()

	settingRepo := repository.NewSettingRepository(db)

	settingService, err := service.NewSettingService(settingRepo, TestSecretKey)
	if err != nil {
		t.Fatalf("Failed to create setting service: %v", err)
	}
	return settingService
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeTicker generates a unique ticker symbol for testing.
//
// Example usage:
//
//	ticker := testutil.MakeTicker("AAPL")
//	// Returns: "AAPL1A2B"
func MakeTicker(base string) string {
	if base == "" {
		base = "TST"
	}
	return base + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
