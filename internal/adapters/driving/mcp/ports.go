package mcp

import (
	"context"

	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
type Ports struct {
	// Integration provides the Drive integration calls.
	Integration driving.IntegrationService

	// Folders provisions channel folders. Optional; the tool reports
	// not configured when nil.
	Folders driving.FolderService

	// RefreshStatus refreshes the shared integrations status before folder
	// generation. Optional.
	RefreshStatus func(ctx context.Context) error
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Integration == nil {
		return ErrMissingIntegrationService
	}
	return nil
}
