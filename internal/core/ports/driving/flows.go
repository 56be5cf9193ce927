package driving

import (
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

// Surface carries the capabilities a user-facing adapter lends to the flows
// it drives. Any field may be nil.
type Surface struct {
	Opener    driven.BrowserOpener
	Confirmer driven.Confirmer
	Navigator driven.Navigator
}

// Flows creates fresh state machines, one per mount.
type Flows interface {
	// StatusPanel creates an unmounted status panel.
	StatusPanel(surface Surface) StatusPanel

	// CallbackHandler creates a handler in the loading state.
	CallbackHandler(surface Surface) CallbackHandler

	// FolderWizard creates a wizard step for one channel.
	FolderWizard(channelName, channelUUID string, onComplete func(domain.ProvisionedFolders)) FolderWizard
}
