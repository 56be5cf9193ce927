package driven

// ConfigStore provides access to persisted configuration.
// Keys use dot notation ("api.url"); implementations handle persistence
// and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value. Returns "" if missing or not a string.
	GetString(key string) string

	// GetInt retrieves an integer value. Returns 0 if missing or not an integer.
	GetInt(key string) int

	// GetFloat retrieves a number. Integers are converted.
	// Returns 0 if missing or not a number.
	GetFloat(key string) float64

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Unset removes a key and persists immediately. Missing keys are ignored.
	Unset(key string) error

	// Keys returns all stored keys, sorted.
	Keys() []string

	// Save persists the current configuration.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
