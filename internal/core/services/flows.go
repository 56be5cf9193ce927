package services

import (
	"time"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
)

// Ensure Flows implements the interface.
var _ driving.Flows = (*Flows)(nil)

// FlowsConfig holds what every state machine shares.
type FlowsConfig struct {
	API             driven.IntegrationAPI
	Folders         driving.FolderService
	Status          driven.IntegrationsStatusProvider
	Clock           driven.Clock
	Text            driven.Localizer
	SettingsRoute   string
	CallbackDelay   time.Duration
	CompletionDelay time.Duration
}

// Flows creates fresh state machines bound to shared dependencies.
type Flows struct {
	cfg FlowsConfig
}

// NewFlows creates a new flow factory.
func NewFlows(cfg FlowsConfig) *Flows {
	return &Flows{cfg: cfg}
}

// StatusPanel creates an unmounted status panel.
func (f *Flows) StatusPanel(surface driving.Surface) driving.StatusPanel {
	return NewStatusPanel(f.cfg.API, surface.Opener, surface.Confirmer, f.cfg.Text)
}

// CallbackHandler creates a handler in the loading state.
func (f *Flows) CallbackHandler(surface driving.Surface) driving.CallbackHandler {
	return NewCallbackHandler(f.cfg.API, surface.Navigator, f.cfg.Clock, f.cfg.Text, CallbackOptions{
		SettingsRoute: f.cfg.SettingsRoute,
		Delay:         f.cfg.CallbackDelay,
	})
}

// FolderWizard creates a wizard step for one channel.
func (f *Flows) FolderWizard(
	channelName, channelUUID string,
	onComplete func(domain.ProvisionedFolders),
) driving.FolderWizard {
	return NewFolderWizard(WizardConfig{
		Folders:    f.cfg.Folders,
		Status:     f.cfg.Status,
		Clock:      f.cfg.Clock,
		Text:       f.cfg.Text,
		Delay:      f.cfg.CompletionDelay,
		OnComplete: onComplete,
	}, channelName, channelUUID)
}

// SettingsRoute returns the route the callback flow returns to.
func (f *Flows) SettingsRoute() string {
	if f.cfg.SettingsRoute == "" {
		return DefaultSettingsRoute
	}
	return f.cfg.SettingsRoute
}
