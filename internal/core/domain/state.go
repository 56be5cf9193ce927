package domain

// PanelState is the settled state of the integration status panel.
type PanelState string

const (
	// PanelLoading is shown while the status is being fetched.
	PanelLoading PanelState = "loading"
	// PanelConnected means the server reports an active Drive connection.
	PanelConnected PanelState = "connected"
	// PanelNotConnected means no Drive connection exists (or status is unknown).
	PanelNotConnected PanelState = "not_connected"
)

// PanelSnapshot is a copy of the status panel's observable state.
type PanelSnapshot struct {
	State         PanelState
	Status        *IntegrationStatus
	Connecting    bool
	Disconnecting bool
	// Error is the localized message in the dismissible error slot.
	Error string
	// Err is the underlying error behind Error.
	Err error
}

// CallbackState is the state of the OAuth callback handler.
type CallbackState string

const (
	// CallbackLoading is the initial state while the code is confirmed.
	CallbackLoading CallbackState = "loading"
	// CallbackSuccess is terminal; navigation back to settings is scheduled.
	CallbackSuccess CallbackState = "success"
	// CallbackError is terminal; the user may navigate back manually.
	CallbackError CallbackState = "error"
)

// CallbackSnapshot is a copy of the callback handler's observable state.
type CallbackSnapshot struct {
	State  CallbackState
	Status *IntegrationStatus
	Error  string
	Err    error
}

// WizardState is the state of the folder-provisioning wizard step.
type WizardState string

const (
	// WizardBlocked means Google Drive is not connected; generation is unavailable.
	WizardBlocked WizardState = "blocked"
	// WizardIdle means the step is waiting for the user to generate folders.
	WizardIdle WizardState = "idle"
	// WizardGenerating means a folder-generation request is in flight.
	WizardGenerating WizardState = "generating"
	// WizardSuccess means both folders were created.
	WizardSuccess WizardState = "success"
)

// WizardSnapshot is a copy of the wizard step's observable state.
type WizardSnapshot struct {
	State       WizardState
	ChannelName string
	ChannelUUID string
	Folders     *ProvisionedFolders
	// StatusLoading mirrors the external status source; the generate control is disabled while true.
	StatusLoading bool
	Error         string
	Err           error
}
