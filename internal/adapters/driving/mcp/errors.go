// Package mcp provides an MCP (Model Context Protocol) server adapter for drivelink.
// It lets AI assistants check and manage the Google Drive integration.
package mcp

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

// ErrMissingIntegrationService is returned when the integration service is not provided.
var ErrMissingIntegrationService = errors.New("mcp: integration service is required")

// ErrConfirmRequired is returned when drive_disconnect is called without confirm: true.
var ErrConfirmRequired = errors.New("mcp: disconnect requires confirm: true")

// toolError annotates err with its integration code so callers can branch on it.
func toolError(op string, err error) error {
	if code := domain.CodeOf(err); code != "" {
		return fmt.Errorf("%s [%s]: %w", op, code, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
