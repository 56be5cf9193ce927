package driven

import (
	"context"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

// IntegrationAPI is the application server's Google Drive integration surface.
// Every method issues exactly one request and never retries.
type IntegrationAPI interface {
	// Status fetches the current connection state.
	Status(ctx context.Context) (*domain.IntegrationStatus, error)

	// AuthURL fetches the provider authorization URL.
	AuthURL(ctx context.Context) (string, error)

	// ConfirmCode exchanges the authorization code server-side.
	ConfirmCode(ctx context.Context, code string) (*domain.IntegrationStatus, error)

	// Disconnect revokes the server-side connection.
	Disconnect(ctx context.Context) error
}

// FolderAPI provisions Drive folders for a channel.
type FolderAPI interface {
	// GenerateFolders creates the root and archive folders for a channel.
	// A 2xx response is returned as-is; callers inspect Success and the IDs.
	GenerateFolders(ctx context.Context, req domain.FolderRequest) (*domain.FolderGenerationResult, error)
}

// IntegrationsStatusProvider is the application's shared integrations status
// source, consumed read-only.
type IntegrationsStatusProvider interface {
	// GoogleDrive returns the Drive entry of the shared status.
	GoogleDrive(ctx context.Context) domain.ProviderStatus
}

// FolderInspector checks provisioned folders directly against Google Drive.
type FolderInspector interface {
	// Inspect verifies that both folders exist and that archive sits under root.
	Inspect(ctx context.Context, folders domain.ProvisionedFolders) (*domain.FolderInspection, error)
}
