package service

import (
	"context"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/stockportfoliotracker/backend/internal/apperrors"
	"github.com/stockportfoliotracker/backend/internal/config"
	"github.com/stockportfoliotracker/backend/internal/repository"
)

// settingQuoteAPIKey is the setting row holding the runtime override for the
// quote provider API key.
const settingQuoteAPIKey = "quote_api_key"

// SettingsService manages runtime configuration overrides. The quote API key
// set through the API takes precedence over the key from the environment and
// is stored fernet-encrypted at rest.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	cfg          config.QuotesConfig
}

// NewSettingsService creates a new SettingsService with the provided dependencies.
func NewSettingsService(settingsRepo *repository.SettingsRepository, cfg config.QuotesConfig) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		cfg:          cfg,
	}
}

// APIKey resolves the quote provider API key: the stored override if one
// exists, otherwise the configured key. Returns apperrors.ErrAPIKeyNotSet
// when neither is available.
func (s *SettingsService) APIKey(ctx context.Context) (string, error) {
	stored, ok, err := s.settingsRepo.Get(ctx, settingQuoteAPIKey)
	if err != nil {
		return "", err
	}

	if ok {
		key, err := s.decrypt(stored)
		if err != nil {
			return "", err
		}
		return key, nil
	}

	if s.cfg.APIKey == "" {
		return "", apperrors.ErrAPIKeyNotSet
	}

	return s.cfg.APIKey, nil
}

// SetAPIKey stores a new quote provider API key, encrypted at rest.
// Requires a configured fernet key.
func (s *SettingsService) SetAPIKey(ctx context.Context, apiKey string) error {
	key, err := s.fernetKey()
	if err != nil {
		return err
	}

	token, err := fernet.EncryptAndSign([]byte(apiKey), key)
	if err != nil {
		return fmt.Errorf("failed to encrypt API key: %w", err)
	}

	return s.settingsRepo.Set(ctx, settingQuoteAPIKey, string(token))
}

// HasStoredAPIKey reports whether a runtime override is stored.
func (s *SettingsService) HasStoredAPIKey(ctx context.Context) (bool, error) {
	_, ok, err := s.settingsRepo.Get(ctx, settingQuoteAPIKey)
	return ok, err
}

func (s *SettingsService) decrypt(token string) (string, error) {
	key, err := s.fernetKey()
	if err != nil {
		return "", err
	}

	msg := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{key})
	if msg == nil {
		return "", fmt.Errorf("failed to decrypt stored API key")
	}

	return string(msg), nil
}

func (s *SettingsService) fernetKey() (*fernet.Key, error) {
	if s.cfg.FernetKey == "" {
		return nil, fmt.Errorf("SETTINGS_FERNET_KEY is not configured")
	}

	key, err := fernet.DecodeKey(s.cfg.FernetKey)
	if err != nil {
		return nil, fmt.Errorf("invalid SETTINGS_FERNET_KEY: %w", err)
	}

	return key, nil
}
