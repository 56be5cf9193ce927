package services

import (
	"fmt"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages persisted settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves stored settings. Missing or empty values take their defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotConfigured
	}
	defaults := domain.DefaultSettings()

	return &domain.Settings{
		API: domain.APISettings{
			URL:             s.getString(domain.KeyAPIURL, defaults.API.URL),
			Token:           s.configStore.GetString(domain.KeyAPIToken),
			TokenFile:       s.configStore.GetString(domain.KeyAPITokenFile),
			RateLimit:       s.getFloat(domain.KeyAPIRateLimit, defaults.API.RateLimit),
			FoldersEndpoint: s.getString(domain.KeyFoldersEndpoint, defaults.API.FoldersEndpoint),
		},
		Callback: domain.CallbackSettings{
			Port: s.getInt(domain.KeyCallbackPort, defaults.Callback.Port),
			Path: s.getString(domain.KeyCallbackPath, defaults.Callback.Path),
		},
		UI: domain.UISettings{
			Locale:        s.getString(domain.KeyLocale, defaults.UI.Locale),
			SettingsRoute: s.getString(domain.KeySettingsRoute, defaults.UI.SettingsRoute),
		},
		Telemetry: domain.TelemetrySettings{
			OTelEndpoint: s.configStore.GetString(domain.KeyOTelEndpoint),
		},
		Drive: domain.DriveSettings{
			AccessToken: s.configStore.GetString(domain.KeyDriveToken),
		},
	}, nil
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotConfigured
	}
	parsed, err := domain.ParseSetting(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Unset removes key from the store.
func (s *SettingsService) Unset(key string) error {
	if s.configStore == nil {
		return domain.ErrNotConfigured
	}
	if !domain.IsSettingKey(key) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
	if err := s.configStore.Unset(key); err != nil {
		return fmt.Errorf("unset %s: %w", key, err)
	}
	return nil
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}
