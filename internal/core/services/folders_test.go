package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

func connectedDrive() *mockStatusProvider {
	return &mockStatusProvider{status: domain.ProviderStatus{Connected: true}}
}

func TestFolderService_Generate_Success(t *testing.T) {
	api := &mockFolderAPI{}
	svc := NewFolderService(api, connectedDrive(), nil)

	folders, err := svc.Generate(context.Background(), domain.FolderRequest{
		ChannelName: "  Cooking  ",
		ChannelUUID: "6f1c2a9e-3b4d-4e5f-8a7b-1c2d3e4f5a6b",
	})

	require.NoError(t, err)
	assert.Equal(t, "root-1", folders.RootFolderID)
	assert.Equal(t, "archive-1", folders.ArchiveFolderID)
	require.Len(t, api.requests, 1)
	assert.Equal(t, "Cooking", api.requests[0].ChannelName)
	assert.Equal(t, "6f1c2a9e-3b4d-4e5f-8a7b-1c2d3e4f5a6b", api.requests[0].ChannelUUID)
}

func TestFolderService_Generate_ValidationNeverCallsServer(t *testing.T) {
	tests := []struct {
		name   string
		status domain.ProviderStatus
		req    domain.FolderRequest
		reason domain.Reason
	}{
		{"empty name", domain.ProviderStatus{Connected: true}, domain.FolderRequest{}, domain.ReasonEmptyChannelName},
		{"whitespace name", domain.ProviderStatus{Connected: true}, domain.FolderRequest{ChannelName: " \t\n"}, domain.ReasonEmptyChannelName},
		{"drive not connected", domain.ProviderStatus{}, domain.FolderRequest{ChannelName: "Cooking"}, domain.ReasonDriveNotConnected},
		{"bad uuid", domain.ProviderStatus{Connected: true}, domain.FolderRequest{ChannelName: "Cooking", ChannelUUID: "nope"}, domain.ReasonInvalidChannelUUID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockFolderAPI{}
			svc := NewFolderService(api, &mockStatusProvider{status: tt.status}, nil)

			_, err := svc.Generate(context.Background(), tt.req)

			assert.True(t, domain.IsValidation(err, tt.reason), "got %v", err)
			assert.Empty(t, api.requests)
		})
	}
}

func TestFolderService_Generate_StatusLoading(t *testing.T) {
	api := &mockFolderAPI{}
	svc := NewFolderService(api, &mockStatusProvider{status: domain.ProviderStatus{Loading: true}}, nil)

	_, err := svc.Generate(context.Background(), domain.FolderRequest{ChannelName: "Cooking"})

	assert.ErrorIs(t, err, domain.ErrOperationInProgress)
	assert.Empty(t, api.requests)
}

func TestFolderService_Generate_NotConfigured(t *testing.T) {
	svc := NewFolderService(&mockFolderAPI{}, nil, nil)

	_, err := svc.Generate(context.Background(), domain.FolderRequest{ChannelName: "Cooking"})

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestFolderService_Generate_IncompleteResult(t *testing.T) {
	tests := []struct {
		name     string
		result   domain.FolderGenerationResult
		wantCode domain.Code
		wantMsg  string
	}{
		{
			name:     "server error code",
			result:   domain.FolderGenerationResult{Error: "INSUFFICIENT_PERMISSIONS", Message: "scope missing"},
			wantCode: domain.CodeInsufficientPermissions,
			wantMsg:  "scope missing",
		},
		{
			name:     "error only",
			result:   domain.FolderGenerationResult{Error: "QUOTA"},
			wantCode: "QUOTA",
			wantMsg:  "QUOTA",
		},
		{
			name:     "success without archive",
			result:   domain.FolderGenerationResult{Success: true, RootFolderID: "r"},
			wantCode: domain.CodeFailedToGenerateFolders,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockFolderAPI{
				generateFn: func(context.Context, domain.FolderRequest) (*domain.FolderGenerationResult, error) {
					result := tt.result
					return &result, nil
				},
			}
			svc := NewFolderService(api, connectedDrive(), nil)

			_, err := svc.Generate(context.Background(), domain.FolderRequest{ChannelName: "Cooking"})

			var se *domain.ServerError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.wantCode, se.Code)
			assert.Equal(t, tt.wantMsg, se.Message)
		})
	}
}

func TestFolderService_Generate_TransportError(t *testing.T) {
	api := &mockFolderAPI{
		generateFn: func(context.Context, domain.FolderRequest) (*domain.FolderGenerationResult, error) {
			return nil, &domain.ServerError{Status: 403, Code: domain.CodeDriveNotConnected}
		},
	}
	svc := NewFolderService(api, connectedDrive(), nil)

	_, err := svc.Generate(context.Background(), domain.FolderRequest{ChannelName: "Cooking"})

	assert.Equal(t, domain.CodeDriveNotConnected, domain.CodeOf(err))
}

func TestFolderService_Verify(t *testing.T) {
	folders := domain.ProvisionedFolders{RootFolderID: "r", ArchiveFolderID: "a"}

	t.Run("no inspector", func(t *testing.T) {
		svc := NewFolderService(nil, nil, nil)
		_, err := svc.Verify(context.Background(), folders)
		assert.ErrorIs(t, err, domain.ErrNotConfigured)
	})

	t.Run("missing ids", func(t *testing.T) {
		inspector := &mockInspector{}
		svc := NewFolderService(nil, nil, inspector)
		_, err := svc.Verify(context.Background(), domain.ProvisionedFolders{RootFolderID: "r"})
		assert.ErrorIs(t, err, ErrFolderIDsRequired)
		assert.Equal(t, 0, inspector.calls)
	})

	t.Run("inspected", func(t *testing.T) {
		want := &domain.FolderInspection{Root: domain.DriveFolder{ID: "r"}}
		svc := NewFolderService(nil, nil, &mockInspector{inspection: want})
		got, err := svc.Verify(context.Background(), folders)
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("inspector error", func(t *testing.T) {
		svc := NewFolderService(nil, nil, &mockInspector{err: errors.New("404 file not found")})
		_, err := svc.Verify(context.Background(), folders)
		assert.ErrorContains(t, err, "404 file not found")
	})
}
