// Package tui provides an interactive terminal user interface for drivelink.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
)

// Ports aggregates what the TUI needs from the core.
type Ports struct {
	// Flows creates the panel, callback and wizard state machines.
	Flows driving.Flows

	// Text renders user-facing messages.
	Text driven.Localizer

	// Opener opens the authorization URL. Optional; the URL is always shown.
	Opener driven.BrowserOpener

	// Folders verifies provisioned folders on Drive. Optional.
	Folders driving.FolderService

	// RefreshStatus reloads the shared integrations status. Optional.
	RefreshStatus func(ctx context.Context) error

	// ChannelName and ChannelUUID pre-fill the folder step.
	ChannelName string
	ChannelUUID string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Flows == nil {
		return ErrMissingFlows
	}
	if p.Text == nil {
		return ErrMissingLocalizer
	}
	return nil
}
