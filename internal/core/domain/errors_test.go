package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrTokenUnavailable", ErrTokenUnavailable},
		{"ErrTokenExpired", ErrTokenExpired},
		{"ErrOperationInProgress", ErrOperationInProgress},
		{"ErrDisconnectNotConfirmed", ErrDisconnectNotConfirmed},
		{"ErrClosed", ErrClosed},
		{"ErrNotConfigured", ErrNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestIntegrationError_ClosedSet(t *testing.T) {
	var _ IntegrationError = (*RouteNotFoundError)(nil)
	var _ IntegrationError = (*ServerError)(nil)
	var _ IntegrationError = (*ValidationError)(nil)
}

func TestRouteNotFoundError(t *testing.T) {
	err := &RouteNotFoundError{Endpoint: "/api/google-drive-integration/oauth/url"}

	assert.Equal(t, CodeRouteNotFound, err.ErrorCode())
	assert.Contains(t, err.Error(), "/oauth/url")
	assert.True(t, IsRouteNotFound(fmt.Errorf("get auth url: %w", err)))
	assert.False(t, IsRouteNotFound(errors.New("other")))
}

func TestServerError(t *testing.T) {
	t.Run("message wins", func(t *testing.T) {
		err := &ServerError{Status: 500, Code: "BOOM", Message: "it broke"}
		assert.Equal(t, "it broke", err.Error())
		assert.Equal(t, Code("BOOM"), err.ErrorCode())
	})

	t.Run("code when message empty", func(t *testing.T) {
		err := &ServerError{Status: 400, Code: CodeFailedToConnect}
		assert.Equal(t, "FAILED_TO_CONNECT", err.Error())
	})
}

func TestValidationError_ErrorCode(t *testing.T) {
	tests := []struct {
		reason Reason
		want   Code
	}{
		{ReasonEmptyChannelName, CodeInvalidChannelName},
		{ReasonDriveNotConnected, CodeDriveNotConnected},
		{ReasonMissingCode, Code("VALIDATION_missing_code")},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			err := &ValidationError{Reason: tt.reason}
			assert.Equal(t, tt.want, err.ErrorCode())
		})
	}
}

func TestValidationError_Detail(t *testing.T) {
	err := &ValidationError{Reason: ReasonProviderError, Detail: "access_denied"}
	assert.Contains(t, err.Error(), "access_denied")
	assert.True(t, IsValidation(err, ReasonProviderError))
	assert.False(t, IsValidation(err, ReasonMissingCode))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeRouteNotFound, CodeOf(fmt.Errorf("wrap: %w", &RouteNotFoundError{})))
	assert.Equal(t, Code("X"), CodeOf(&ServerError{Code: "X"}))
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestFolderGenerationResult_Complete(t *testing.T) {
	tests := []struct {
		name   string
		result FolderGenerationResult
		want   bool
	}{
		{"both ids", FolderGenerationResult{Success: true, RootFolderID: "r", ArchiveFolderID: "a"}, true},
		{"missing archive", FolderGenerationResult{Success: true, RootFolderID: "r"}, false},
		{"not success", FolderGenerationResult{RootFolderID: "r", ArchiveFolderID: "a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Complete())
		})
	}
}

func TestNormaliseChannelName(t *testing.T) {
	assert.Equal(t, "Cooking", NormaliseChannelName("  Cooking\t"))
	assert.Equal(t, "", NormaliseChannelName("   "))
}

func TestFolderInspection_Healthy(t *testing.T) {
	root := DriveFolder{ID: "root", MimeType: FolderMimeType}
	archive := DriveFolder{ID: "arc", MimeType: FolderMimeType, Parents: []string{"root"}}

	assert.True(t, FolderInspection{Root: root, Archive: archive}.Healthy())

	orphan := archive
	orphan.Parents = []string{"elsewhere"}
	assert.False(t, FolderInspection{Root: root, Archive: orphan}.Healthy())

	trashed := root
	trashed.Trashed = true
	assert.False(t, FolderInspection{Root: trashed, Archive: archive}.Healthy())

	file := archive
	file.MimeType = "text/plain"
	assert.False(t, FolderInspection{Root: root, Archive: file}.Healthy())
}
