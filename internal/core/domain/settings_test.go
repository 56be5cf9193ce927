package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "http://localhost:8080", s.API.URL)
	assert.Equal(t, 5.0, s.API.RateLimit)
	assert.Equal(t, 8765, s.Callback.Port)
	assert.Equal(t, "/google-drive/callback", s.Callback.Path)
	assert.Equal(t, "/settings", s.UI.SettingsRoute)
	assert.Empty(t, s.API.Token)
	assert.Empty(t, s.Telemetry.OTelEndpoint)
}

func TestSettings_ValueCoversEveryKey(t *testing.T) {
	s := DefaultSettings()
	for _, key := range SettingKeys() {
		_, err := s.Value(key)
		assert.NoError(t, err, key)
		assert.True(t, IsSettingKey(key))
	}

	_, err := s.Value("search.mode")
	assert.ErrorIs(t, err, ErrUnknownSetting)
	assert.False(t, IsSettingKey("search.mode"))
}

func TestParseSetting(t *testing.T) {
	tests := []struct {
		key     string
		raw     string
		want    any
		wantErr error
	}{
		{KeyAPIRateLimit, "2.5", 2.5, nil},
		{KeyAPIRateLimit, "fast", nil, ErrInvalidSetting},
		{KeyCallbackPort, " 9000 ", 9000, nil},
		{KeyCallbackPort, "70000", nil, ErrInvalidSetting},
		{KeyAPIURL, "https://app.example.com/", "https://app.example.com", nil},
		{KeyAPIURL, "app.example.com", nil, ErrInvalidSetting},
		{KeyCallbackPath, "/cb", "/cb", nil},
		{KeySettingsRoute, "settings", nil, ErrInvalidSetting},
		{KeyLocale, "ru", "ru", nil},
		{"nope", "x", nil, ErrUnknownSetting},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.raw, func(t *testing.T) {
			got, err := ParseSetting(tt.key, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
