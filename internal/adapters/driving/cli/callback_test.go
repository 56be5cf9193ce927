package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/oauth"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

func TestCallbackCmd_Use(t *testing.T) {
	assert.Equal(t, "callback <redirect-url>", callbackCmd.Use)
}

func TestCallbackCmd_ConfirmsCodeAndPrintsStatus(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "callback", "http://127.0.0.1:8765/google-drive/callback?code=4/abc&scope=drive")

	require.NoError(t, err)
	assert.Equal(t, []string{"4/abc"}, ts.api.confirmed())
	assert.Contains(t, out, "Google Drive connected")
	assert.Contains(t, out, "You will be redirected to settings...")
	assert.Contains(t, out, "Connected as user@example.com")
}

func TestCallbackCmd_ProviderErrorNeverConfirms(t *testing.T) {
	ts := setupTestServices(t)

	_, err := execute(t, "callback", "?error=access_denied&code=ignored")

	require.Error(t, err)
	assert.Equal(t, "Authorization error: access_denied", err.Error())
	assert.True(t, domain.IsValidation(err, domain.ReasonProviderError))
	assert.Empty(t, ts.api.confirmed())
}

func TestCallbackCmd_MissingCode(t *testing.T) {
	ts := setupTestServices(t)

	_, err := execute(t, "callback", "state=xyz")

	require.Error(t, err)
	assert.Equal(t, "Authorization code not received.", err.Error())
	assert.Empty(t, ts.api.confirmed())
}

func TestCallbackCmd_ConfirmFailure(t *testing.T) {
	ts := setupTestServices(t)
	ts.api.confirmFn = func(context.Context, string) (*domain.IntegrationStatus, error) {
		return nil, &domain.ServerError{Status: 400, Code: "invalid_grant", Message: "code expired"}
	}

	out, err := execute(t, "callback", "code=c")

	require.Error(t, err)
	assert.Equal(t, "code expired", err.Error())
	assert.NotContains(t, out, "Google Drive connected")
}

func TestCallbackCmd_EmptyRedirect(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "callback", "  ")

	assert.ErrorIs(t, err, oauth.ErrEmptyRedirect)
}

func TestCallbackCmd_RequiresArgument(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "callback")

	assert.Error(t, err)
}

func TestRouteWaiter_DropsExtraRoutes(t *testing.T) {
	w := newRouteWaiter()

	w.Navigate("/settings")
	w.Navigate("/other")

	assert.Equal(t, "/settings", <-w)
	assert.Empty(t, w)
}
