package driving

import (
	"context"
	"net/url"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

// IntegrationService exposes the Google Drive integration operations.
type IntegrationService interface {
	// Status returns the server-side connection state.
	Status(ctx context.Context) (*domain.IntegrationStatus, error)

	// AuthURL returns the provider authorization URL to send the user to.
	AuthURL(ctx context.Context) (string, error)

	// ConfirmCode exchanges an authorization code and returns the new state.
	ConfirmCode(ctx context.Context, code string) (*domain.IntegrationStatus, error)

	// Disconnect revokes the connection. Callers are responsible for
	// confirming intent first.
	Disconnect(ctx context.Context) error
}

// FolderService provisions and verifies channel folders.
type FolderService interface {
	// Generate validates the request, checks the Drive gate and asks the
	// server for the folder pair. Validation failures never reach the network.
	Generate(ctx context.Context, req domain.FolderRequest) (*domain.ProvisionedFolders, error)

	// Verify inspects a folder pair on Google Drive.
	// Returns domain.ErrNotConfigured when no inspector is wired.
	Verify(ctx context.Context, folders domain.ProvisionedFolders) (*domain.FolderInspection, error)
}

// StatusPanel is the integration status panel state machine.
type StatusPanel interface {
	// Mount fetches the status and settles into connected or not_connected.
	Mount(ctx context.Context) error

	// Connect fetches the authorization URL and opens it.
	// The panel stays in the connecting sub-state on success.
	Connect(ctx context.Context) (string, error)

	// AbortConnect leaves the connecting sub-state, optionally recording err.
	AbortConnect(err error)

	// Disconnect confirms with the user, disconnects and refetches status.
	Disconnect(ctx context.Context) error

	// DismissError clears the error slot.
	DismissError()

	// Snapshot returns a copy of the observable state.
	Snapshot() domain.PanelSnapshot

	// Close cancels in-flight requests; later results are discarded.
	Close()
}

// CallbackHandler is the OAuth redirect callback state machine.
type CallbackHandler interface {
	// Handle processes the redirect query parameters once.
	Handle(ctx context.Context, params url.Values) error

	// ReturnToSettings navigates back immediately.
	ReturnToSettings()

	// Snapshot returns a copy of the observable state.
	Snapshot() domain.CallbackSnapshot

	// Close cancels the pending navigation and any in-flight confirmation.
	Close()
}

// FolderWizard is the folder-provisioning wizard step.
type FolderWizard interface {
	// Generate runs one folder-generation attempt.
	Generate(ctx context.Context) error

	// SetChannel updates the channel the step provisions for.
	SetChannel(name, uuid string)

	// DismissError clears the error slot.
	DismissError()

	// Snapshot returns a copy of the observable state.
	Snapshot(ctx context.Context) domain.WizardSnapshot

	// Close cancels the pending completion callback and in-flight requests.
	Close()
}
