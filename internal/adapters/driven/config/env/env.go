// Package env overlays settings with DRIVELINK_* environment variables.
package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

// Overrides holds raw environment values. Nil fields were not set.
type Overrides struct {
	APIURL          *string  `env:"DRIVELINK_API_URL"`
	Token           *string  `env:"DRIVELINK_TOKEN"`
	TokenFile       *string  `env:"DRIVELINK_TOKEN_FILE"`
	RateLimit       *float64 `env:"DRIVELINK_RATE_LIMIT"`
	FoldersEndpoint *string  `env:"DRIVELINK_FOLDERS_ENDPOINT"`
	CallbackPort    *int     `env:"DRIVELINK_CALLBACK_PORT"`
	Locale          *string  `env:"DRIVELINK_LOCALE"`
	OTelEndpoint    *string  `env:"DRIVELINK_OTEL_ENDPOINT"`
	DriveToken      *string  `env:"DRIVELINK_DRIVE_TOKEN"`
}

// Load parses the process environment.
func Load() (Overrides, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Overrides, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Overrides, error) {
	var o Overrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Apply writes every set override into s.
func (o Overrides) Apply(s *domain.Settings) {
	setString(&s.API.URL, o.APIURL)
	setString(&s.API.Token, o.Token)
	setString(&s.API.TokenFile, o.TokenFile)
	setString(&s.API.FoldersEndpoint, o.FoldersEndpoint)
	setString(&s.UI.Locale, o.Locale)
	setString(&s.Telemetry.OTelEndpoint, o.OTelEndpoint)
	setString(&s.Drive.AccessToken, o.DriveToken)
	if o.RateLimit != nil {
		s.API.RateLimit = *o.RateLimit
	}
	if o.CallbackPort != nil {
		s.Callback.Port = *o.CallbackPort
	}
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}
