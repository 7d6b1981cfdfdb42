package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/arambaladev/StockPortfolio/internal/repository"
)

// settingMarketDataAPIKey is the system_setting key holding the encrypted
// Alpha Vantage API key.
const settingMarketDataAPIKey = "marketdata_api_key"

// ErrEncryptionNotConfigured indicates that no settings secret key was
// provided, so encrypted settings cannot be stored or read.
var ErrEncryptionNotConfigured = errors.New("settings encryption key not configured")

// SettingService stores and retrieves system settings. Secret values are
// fernet-encrypted at rest with the key from configuration.
type SettingService struct {
	settingRepo *repository.SettingRepository
	keys        []*fernet.Key
}

// NewSettingService creates a SettingService. secretKey is a base64 fernet
// key; when empty, encrypted settings are disabled but the service still
// constructs, so the rest of the application keeps working without it.
func NewSettingService(settingRepo *repository.SettingRepository, secretKey string) (*SettingService, error) {
	s := &SettingService{settingRepo: settingRepo}

	if secretKey != "" {
		keys, err := fernet.DecodeKeys(secretKey)
		if err != nil {
			return nil, fmt.Errorf("invalid settings secret key: %w", err)
		}
		s.keys = keys
	}

	return s, nil
}

// SetMarketDataAPIKey encrypts and stores the fallback provider API key.
func (s *SettingService) SetMarketDataAPIKey(ctx context.Context, apiKey string) error {
	if len(s.keys) == 0 {
		return ErrEncryptionNotConfigured
	}

	token, err := fernet.EncryptAndSign([]byte(apiKey), s.keys[0])
	if err != nil {
		return fmt.Errorf("failed to encrypt API key: %w", err)
	}

	return s.settingRepo.SetSetting(ctx, settingMarketDataAPIKey, string(token))
}

// MarketDataAPIKey decrypts and returns the stored fallback provider API key.
// Returns apperrors.ErrSettingNotFound (wrapped) when no key has been stored.
func (s *SettingService) MarketDataAPIKey() (string, error) {
	if len(s.keys) == 0 {
		return "", ErrEncryptionNotConfigured
	}

	token, err := s.settingRepo.GetSetting(settingMarketDataAPIKey)
	if err != nil {
		return "", err
	}

	// TTL 0 disables token expiry; the key does not age out.
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, s.keys)
	if msg == nil {
		return "", fmt.Errorf("failed to decrypt stored API key")
	}

	return string(msg), nil
}
