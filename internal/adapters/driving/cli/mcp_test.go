package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/mcp"
)

func TestMCPCmd_Structure(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.Equal(t, "serve", mcpServeCmd.Use)
	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)
}

func TestMCPServeCmd_HelpListsTools(t *testing.T) {
	for _, tool := range []string{"drive_status", "drive_auth_url", "drive_confirm_code", "drive_disconnect", "drive_generate_folders"} {
		assert.Contains(t, mcpServeCmd.Long, tool)
	}
}

func TestMCPServeCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	integrationService = nil

	_, err := execute(t, "mcp", "serve")

	assert.ErrorIs(t, err, mcp.ErrMissingIntegrationService)
}
