package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can check and
manage the Google Drive integration.

Tools:
  drive_status            - Connection status and account email
  drive_auth_url          - Authorization URL to open in a browser
  drive_confirm_code      - Confirm an authorization code
  drive_disconnect        - Disconnect (requires confirm: true)
  drive_generate_folders  - Create the folders for a channel

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  drivelink mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  drivelink mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "drivelink": {
        "command": "/path/to/drivelink",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Integration:   integrationService,
		Folders:       folderService,
		RefreshStatus: refreshStatus,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
