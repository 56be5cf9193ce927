// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewIntegration is the Google Drive status panel.
	ViewIntegration
	// ViewCallback completes a connection from a pasted redirect URL.
	ViewCallback
	// ViewWizard is the channel folder step.
	ViewWizard
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewIntegration:
		return "integration"
	case ViewCallback:
		return "callback"
	case ViewWizard:
		return "wizard"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// PanelUpdated is sent when a status panel operation finishes.
// The panel snapshot already carries the outcome; Err is kept for logging.
type PanelUpdated struct {
	Err error
}

// AuthURLReady is sent after the panel fetched and tried to open the
// authorization URL.
type AuthURLReady struct {
	URL string
	Err error
}

// CallbackHandled is sent when the callback handler finished confirming a code.
type CallbackHandled struct {
	Err error
}

// FoldersGenerated is sent when a wizard generation attempt finishes.
type FoldersGenerated struct {
	Err error
}

// FoldersProvisioned is sent when the wizard completion delay elapsed.
type FoldersProvisioned struct {
	Folders domain.ProvisionedFolders
}

// StatusRefreshed is sent after the shared integrations status was reloaded.
type StatusRefreshed struct {
	Err error
}

// Navigated is sent when a flow asks to leave the current screen.
type Navigated struct {
	Route string
}

// ConfirmRequested asks the user a yes/no question on behalf of a flow.
// Exactly one value must be sent on Reply.
type ConfirmRequested struct {
	Prompt string
	Reply  chan<- bool
}
