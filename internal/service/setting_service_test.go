package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arambaladev/StockPortfolio/internal/apperrors"
	"github.com/arambaladev/StockPortfolio/internal/repository"
	"github.com/arambaladev/StockPortfolio/internal/service"
	"github.com/arambaladev/StockPortfolio/internal/testutil"
)

// TestSettingService_MarketDataAPIKey tests the encrypted credential round trip.
//
// WHY: The provider key must never be stored in the clear, and the service
// must degrade cleanly when no secret key is configured rather than write
// plaintext.
func TestSettingService_MarketDataAPIKey(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips through encryption", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSettingService(t, db)

		// Execute
		if err := svc.SetMarketDataAPIKey(ctx, "demo-key-123"); err != nil {
			t.Fatalf("SetMarketDataAPIKey() returned unexpected error: %v", err)
		}

		got, err := svc.MarketDataAPIKey()
		if err != nil {
			t.Fatalf("MarketDataAPIKey() returned unexpected error: %v", err)
		}

		// Assert
		if got != "demo-key-123" {
			t.Errorf("Expected round-tripped key, got %q", got)
		}
	})

	t.Run("stored value is not plaintext", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSettingService(t, db)

		if err := svc.SetMarketDataAPIKey(ctx, "demo-key-123"); err != nil {
			t.Fatalf("SetMarketDataAPIKey() returned unexpected error: %v", err)
		}

		var stored string
		row := db.QueryRow(`SELECT value FROM system_setting WHERE "key" = ?`, "marketdata_api_key")
		if err := row.Scan(&stored); err != nil {
			t.Fatalf("Failed to read stored setting: %v", err)
		}
		if stored == "demo-key-123" {
			t.Error("API key stored in the clear")
		}
	})

	t.Run("overwriting replaces the stored key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSettingService(t, db)

		for _, key := range []string{"first", "second"} {
			if err := svc.SetMarketDataAPIKey(ctx, key); err != nil {
				t.Fatalf("SetMarketDataAPIKey() returned unexpected error: %v", err)
			}
		}

		got, err := svc.MarketDataAPIKey()
		if err != nil {
			t.Fatalf("MarketDataAPIKey() returned unexpected error: %v", err)
		}
		if got != "second" {
			t.Errorf("Expected latest key, got %q", got)
		}
	})

	t.Run("missing key returns ErrSettingNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSettingService(t, db)

		_, err := svc.MarketDataAPIKey()
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound, got %v", err)
		}
	})

	t.Run("without a secret key the feature is disabled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		settingRepo := repository.NewSettingRepository(db)

		svc, err := service.NewSettingService(settingRepo, "")
		if err != nil {
			t.Fatalf("NewSettingService() returned unexpected error: %v", err)
		}

		if err := svc.SetMarketDataAPIKey(ctx, "demo"); !errors.Is(err, service.ErrEncryptionNotConfigured) {
			t.Errorf("Expected ErrEncryptionNotConfigured on write, got %v", err)
		}
		if _, err := svc.MarketDataAPIKey(); !errors.Is(err, service.ErrEncryptionNotConfigured) {
			t.Errorf("Expected ErrEncryptionNotConfigured on read, got %v", err)
		}
	})

	t.Run("garbage secret key fails construction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		settingRepo := repository.NewSettingRepository(db)

		if _, err := service.NewSettingService(settingRepo, "not-a-key"); err == nil {
			t.Error("Expected error for undecodable secret key")
		}
	})
}
