package driving

import "github.com/custodia-labs/drivelink-cli/internal/core/domain"

// SettingsService manages persisted drivelink settings.
type SettingsService interface {
	// Get returns stored settings with defaults filled in.
	Get() (*domain.Settings, error)

	// Set validates and persists a single setting given as a string.
	Set(key, value string) error

	// Unset removes a stored setting so its default applies again.
	Unset(key string) error

	// Path returns where settings are persisted.
	Path() string
}
