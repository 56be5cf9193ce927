package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Settings defaults.
const (
	DefaultAPIURL          = "http://localhost:8080"
	DefaultRateLimit       = 5.0
	DefaultFoldersEndpoint = "/api/channels/drive-folders/generate"
	DefaultCallbackPort    = 8765
	DefaultCallbackPath    = "/google-drive/callback"
	DefaultLocale          = "en"
	DefaultSettingsRoute   = "/settings"
)

// Setting keys in dot notation, as stored in the config file.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyAPIURL          = "api.url"
	KeyAPIToken        = "api.token"
	KeyAPITokenFile    = "api.token_file"
	KeyAPIRateLimit    = "api.rate_limit"
	KeyFoldersEndpoint = "api.folders_endpoint"
	KeyCallbackPort    = "callback.port"
	KeyCallbackPath    = "callback.path"
	KeyLocale          = "ui.locale"
	KeySettingsRoute   = "ui.settings_route"
	KeyOTelEndpoint    = "telemetry.otel_endpoint"
	KeyDriveToken      = "drive.access_token"
)

// APISettings configures the application server connection.
type APISettings struct {
	// URL is the application base URL.
	URL string

	// Token is the application bearer token.
	Token string

	// TokenFile is a file holding the bearer token. It is re-read on change.
	TokenFile string

	// RateLimit is the request rate in requests per second. Negative disables limiting.
	RateLimit float64

	// FoldersEndpoint is the folder-generation endpoint path.
	FoldersEndpoint string
}

// CallbackSettings configures the loopback OAuth redirect receiver.
type CallbackSettings struct {
	Port int
	Path string
}

// UISettings configures presentation.
type UISettings struct {
	// Locale selects the message catalog, e.g. "en" or "ru".
	Locale string

	// SettingsRoute is where a finished callback flow navigates.
	SettingsRoute string
}

// TelemetrySettings configures trace export.
type TelemetrySettings struct {
	// OTelEndpoint is the OTLP/HTTP collector endpoint. Empty disables export.
	OTelEndpoint string
}

// DriveSettings configures direct Google Drive access for folder checks.
type DriveSettings struct {
	// AccessToken is a Google OAuth access token with Drive read scope.
	AccessToken string
}

// Settings holds all drivelink settings.
type Settings struct {
	API       APISettings
	Callback  CallbackSettings
	UI        UISettings
	Telemetry TelemetrySettings
	Drive     DriveSettings
}

// DefaultSettings returns settings with defaults applied.
func DefaultSettings() Settings {
	return Settings{
		API: APISettings{
			URL:             DefaultAPIURL,
			RateLimit:       DefaultRateLimit,
			FoldersEndpoint: DefaultFoldersEndpoint,
		},
		Callback: CallbackSettings{
			Port: DefaultCallbackPort,
			Path: DefaultCallbackPath,
		},
		UI: UISettings{
			Locale:        DefaultLocale,
			SettingsRoute: DefaultSettingsRoute,
		},
	}
}

// SettingKeys returns every recognised setting key in display order.
func SettingKeys() []string {
	return []string{
		KeyAPIURL,
		KeyAPIToken,
		KeyAPITokenFile,
		KeyAPIRateLimit,
		KeyFoldersEndpoint,
		KeyCallbackPort,
		KeyCallbackPath,
		KeyLocale,
		KeySettingsRoute,
		KeyOTelEndpoint,
		KeyDriveToken,
	}
}

// IsSettingKey reports whether key is a recognised setting key.
func IsSettingKey(key string) bool {
	for _, k := range SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Value returns the string form of the setting stored under key.
func (s Settings) Value(key string) (string, error) {
	switch key {
	case KeyAPIURL:
		return s.API.URL, nil
	case KeyAPIToken:
		return s.API.Token, nil
	case KeyAPITokenFile:
		return s.API.TokenFile, nil
	case KeyAPIRateLimit:
		return strconv.FormatFloat(s.API.RateLimit, 'g', -1, 64), nil
	case KeyFoldersEndpoint:
		return s.API.FoldersEndpoint, nil
	case KeyCallbackPort:
		return strconv.Itoa(s.Callback.Port), nil
	case KeyCallbackPath:
		return s.Callback.Path, nil
	case KeyLocale:
		return s.UI.Locale, nil
	case KeySettingsRoute:
		return s.UI.SettingsRoute, nil
	case KeyOTelEndpoint:
		return s.Telemetry.OTelEndpoint, nil
	case KeyDriveToken:
		return s.Drive.AccessToken, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
}

// ParseSetting converts a raw string value for key into its stored type.
// Numbers are returned as int or float64, everything else as string.
func ParseSetting(key, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch key {
	case KeyAPIRateLimit:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidSetting, key)
		}
		return v, nil
	case KeyCallbackPort:
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 65535 {
			return nil, fmt.Errorf("%w: %s must be a port between 0 and 65535", ErrInvalidSetting, key)
		}
		return v, nil
	case KeyAPIURL:
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			return nil, fmt.Errorf("%w: %s must be an http(s) URL", ErrInvalidSetting, key)
		}
		return strings.TrimRight(raw, "/"), nil
	case KeyFoldersEndpoint, KeyCallbackPath, KeySettingsRoute:
		if !strings.HasPrefix(raw, "/") {
			return nil, fmt.Errorf("%w: %s must start with /", ErrInvalidSetting, key)
		}
		return raw, nil
	case KeyAPIToken, KeyAPITokenFile, KeyLocale, KeyOTelEndpoint, KeyDriveToken:
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
}
