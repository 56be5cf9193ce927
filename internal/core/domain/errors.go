package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent failures that do not originate from the server.
var (
	// ErrTokenUnavailable indicates no bearer token could be obtained.
	ErrTokenUnavailable = errors.New("auth token unavailable")

	// ErrTokenExpired indicates the configured bearer token has expired.
	ErrTokenExpired = errors.New("auth token expired")

	// ErrOperationInProgress indicates the control is disabled because a
	// request for the same action is still in flight.
	ErrOperationInProgress = errors.New("operation in progress")

	// ErrDisconnectNotConfirmed indicates the user declined the disconnect prompt.
	ErrDisconnectNotConfirmed = errors.New("disconnect not confirmed")

	// ErrClosed indicates the state machine was closed before the action completed.
	ErrClosed = errors.New("closed")

	// ErrNotConfigured indicates a required collaborator was not wired.
	ErrNotConfigured = errors.New("not configured")

	// ErrUnknownSetting indicates a setting key that drivelink does not recognise.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrInvalidSetting indicates a setting value that failed validation.
	ErrInvalidSetting = errors.New("invalid setting")
)

// Code is a machine-readable error code as sent by the server.
type Code string

// Well-known codes.
const (
	CodeRouteNotFound           Code = "ROUTE_NOT_FOUND"
	CodeDriveNotConnected       Code = "GOOGLE_DRIVE_NOT_CONNECTED"
	CodeInsufficientPermissions Code = "INSUFFICIENT_PERMISSIONS"
	CodeInvalidChannelName      Code = "INVALID_CHANNEL_NAME"
	CodeFailedToGetStatus       Code = "FAILED_TO_GET_STATUS"
	CodeFailedToGenerateAuthURL Code = "FAILED_TO_GENERATE_AUTH_URL"
	CodeFailedToConnect         Code = "FAILED_TO_CONNECT"
	CodeFailedToDisconnect      Code = "FAILED_TO_DISCONNECT"
	CodeFailedToGenerateFolders Code = "FAILED_TO_GENERATE_FOLDERS"
	CodeUnknown                 Code = "UNKNOWN_ERROR"
)

// IntegrationError is the closed set of failures produced by integration
// calls and local validation: *RouteNotFoundError, *ServerError and
// *ValidationError.
type IntegrationError interface {
	error
	// ErrorCode returns the machine-readable code for message lookup.
	ErrorCode() Code
	integrationError()
}

// RouteNotFoundError is returned for any 404 response.
type RouteNotFoundError struct {
	Endpoint string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("route not found: %s", e.Endpoint)
}

// ErrorCode implements IntegrationError.
func (e *RouteNotFoundError) ErrorCode() Code { return CodeRouteNotFound }

func (*RouteNotFoundError) integrationError() {}

// ServerError is returned for non-2xx responses other than 404, and for
// 2xx folder results that report failure.
type ServerError struct {
	Status  int
	Code    Code
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// ErrorCode implements IntegrationError.
func (e *ServerError) ErrorCode() Code { return e.Code }

func (*ServerError) integrationError() {}

// Reason identifies why local validation rejected an action.
type Reason string

// Validation reasons.
const (
	ReasonEmptyChannelName   Reason = "empty_channel_name"
	ReasonDriveNotConnected  Reason = "drive_not_connected"
	ReasonInvalidChannelUUID Reason = "invalid_channel_uuid"
	ReasonMissingCode        Reason = "missing_code"
	ReasonProviderError      Reason = "provider_error"
)

// ValidationError is a local rejection that never reached the network.
type ValidationError struct {
	Reason Reason
	// Detail carries the offending value, e.g. the provider's error parameter.
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("validation failed: %s: %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// ErrorCode implements IntegrationError.
func (e *ValidationError) ErrorCode() Code {
	switch e.Reason {
	case ReasonEmptyChannelName:
		return CodeInvalidChannelName
	case ReasonDriveNotConnected:
		return CodeDriveNotConnected
	default:
		return Code("VALIDATION_" + string(e.Reason))
	}
}

func (*ValidationError) integrationError() {}

// CodeOf extracts the code from an error chain.
// Returns the empty code when err carries no IntegrationError.
func CodeOf(err error) Code {
	var ie IntegrationError
	if errors.As(err, &ie) {
		return ie.ErrorCode()
	}
	return ""
}

// IsRouteNotFound reports whether err is a RouteNotFoundError.
func IsRouteNotFound(err error) bool {
	var rnf *RouteNotFoundError
	return errors.As(err, &rnf)
}

// IsValidation reports whether err is a ValidationError with the given reason.
func IsValidation(err error, reason Reason) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason == reason
	}
	return false
}
