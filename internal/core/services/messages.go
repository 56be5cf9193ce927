package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

// Message keys rendered through driven.Localizer.
const (
	KeyRouteNotFound           = "error.route_not_found"
	KeyDriveNotConnected       = "error.drive_not_connected"
	KeyInsufficientPermissions = "error.insufficient_permissions"
	KeyChannelNameEmpty        = "error.channel_name_empty"
	KeyInvalidChannelUUID      = "error.invalid_channel_uuid"
	KeyTokenUnavailable        = "error.token_unavailable"
	KeyTokenExpired            = "error.token_expired"
	KeyStatusLoadFailed        = "error.status_load_failed"
	KeyAuthURLFailed           = "error.auth_url_failed"
	KeyConnectFailed           = "error.connect_failed"
	KeyDisconnectFailed        = "error.disconnect_failed"
	KeyFoldersFailed           = "error.folders_failed"
	KeyUnknown                 = "error.unknown"
	KeyProviderError           = "callback.provider_error"
	KeyMissingCode             = "callback.missing_code"
	KeyDisconnectPrompt        = "panel.disconnect_prompt"
)

// keyText renders message keys verbatim when no localizer is wired.
type keyText struct{}

func (keyText) Text(key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return fmt.Sprint(append([]any{key + ": "}, args...)...)
}

func localizerOrKeys(l driven.Localizer) driven.Localizer {
	if l == nil {
		return keyText{}
	}
	return l
}

// codeKeys maps server codes that have their own localized text.
var codeKeys = map[domain.Code]string{
	domain.CodeRouteNotFound:           KeyRouteNotFound,
	domain.CodeDriveNotConnected:       KeyDriveNotConnected,
	domain.CodeInsufficientPermissions: KeyInsufficientPermissions,
	domain.CodeInvalidChannelName:      KeyChannelNameEmpty,
}

// Describe renders err for the user. Known codes and reasons are localized;
// anything else passes its raw message through, and an empty message falls
// back to fallbackKey.
func Describe(text driven.Localizer, err error, fallbackKey string) string {
	text = localizerOrKeys(text)
	if err == nil {
		return ""
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		switch ve.Reason {
		case domain.ReasonEmptyChannelName:
			return text.Text(KeyChannelNameEmpty)
		case domain.ReasonDriveNotConnected:
			return text.Text(KeyDriveNotConnected)
		case domain.ReasonInvalidChannelUUID:
			return text.Text(KeyInvalidChannelUUID, ve.Detail)
		case domain.ReasonMissingCode:
			return text.Text(KeyMissingCode)
		case domain.ReasonProviderError:
			return text.Text(KeyProviderError, ve.Detail)
		}
	}

	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return text.Text(KeyTokenExpired)
	case errors.Is(err, domain.ErrTokenUnavailable):
		return text.Text(KeyTokenUnavailable)
	}

	if key, ok := codeKeys[domain.CodeOf(err)]; ok {
		return text.Text(key)
	}

	// Servers sometimes bury the code in the message text.
	lower := strings.ToLower(messageOf(err))
	switch {
	case strings.Contains(lower, strings.ToLower(string(domain.CodeDriveNotConnected))):
		return text.Text(KeyDriveNotConnected)
	case strings.Contains(lower, strings.ToLower(string(domain.CodeInsufficientPermissions))):
		return text.Text(KeyInsufficientPermissions)
	}

	if msg := messageOf(err); msg != "" {
		return msg
	}
	return text.Text(fallbackKey)
}

// messageOf returns the server's message for server errors and err.Error()
// otherwise. A server error without a message yields "".
func messageOf(err error) string {
	var se *domain.ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
