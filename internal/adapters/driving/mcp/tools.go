package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

// StatusInput is the (empty) input of drive_status and drive_auth_url.
type StatusInput struct{}

// StatusOutput reports the Drive connection.
type StatusOutput struct {
	Connected bool   `json:"connected"`
	Email     string `json:"email,omitempty"`
}

// AuthURLOutput carries the provider authorization URL.
type AuthURLOutput struct {
	AuthURL string `json:"auth_url"`
}

// ConfirmCodeInput is the input schema for drive_confirm_code.
type ConfirmCodeInput struct {
	Code string `json:"code" jsonschema:"the authorization code from the provider redirect"`
}

// DisconnectInput is the input schema for drive_disconnect.
type DisconnectInput struct {
	Confirm bool `json:"confirm" jsonschema:"must be true; disconnecting revokes Drive access for the whole application"`
}

// DisconnectOutput reports a completed disconnect.
type DisconnectOutput struct {
	Disconnected bool `json:"disconnected"`
}

// GenerateFoldersInput is the input schema for drive_generate_folders.
type GenerateFoldersInput struct {
	ChannelName string `json:"channel_name" jsonschema:"display name of the channel; must not be blank"`
	ChannelUUID string `json:"channel_uuid,omitempty" jsonschema:"optional channel UUID"`
}

// GenerateFoldersOutput carries the provisioned folder pair.
type GenerateFoldersOutput struct {
	RootFolderID    string `json:"root_folder_id"`
	ArchiveFolderID string `json:"archive_folder_id"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_status",
		Description: "Report whether Google Drive is connected and which account is used",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_auth_url",
		Description: "Get the Google authorization URL the user must open to connect Drive",
	}, s.handleAuthURL)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_confirm_code",
		Description: "Complete the connection with the code from the authorization redirect",
	}, s.handleConfirmCode)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_disconnect",
		Description: "Disconnect Google Drive. Requires confirm: true",
	}, s.handleDisconnect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_generate_folders",
		Description: "Create the root and archive Drive folders for a channel",
	}, s.handleGenerateFolders)
}

func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	status, err := s.ports.Integration.Status(ctx)
	if err != nil {
		return nil, StatusOutput{}, toolError("get status", err)
	}
	return nil, statusOutput(status), nil
}

func (s *Server) handleAuthURL(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, AuthURLOutput, error) {
	authURL, err := s.ports.Integration.AuthURL(ctx)
	if err != nil {
		return nil, AuthURLOutput{}, toolError("get auth url", err)
	}
	return nil, AuthURLOutput{AuthURL: authURL}, nil
}

func (s *Server) handleConfirmCode(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConfirmCodeInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	status, err := s.ports.Integration.ConfirmCode(ctx, input.Code)
	if err != nil {
		return nil, StatusOutput{}, toolError("confirm code", err)
	}
	return nil, statusOutput(status), nil
}

func (s *Server) handleDisconnect(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DisconnectInput,
) (*mcp.CallToolResult, DisconnectOutput, error) {
	if !input.Confirm {
		return nil, DisconnectOutput{}, ErrConfirmRequired
	}
	if err := s.ports.Integration.Disconnect(ctx); err != nil {
		return nil, DisconnectOutput{}, toolError("disconnect", err)
	}
	return nil, DisconnectOutput{Disconnected: true}, nil
}

func (s *Server) handleGenerateFolders(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateFoldersInput,
) (*mcp.CallToolResult, GenerateFoldersOutput, error) {
	if s.ports.Folders == nil {
		return nil, GenerateFoldersOutput{}, toolError("generate folders", domain.ErrNotConfigured)
	}
	if s.ports.RefreshStatus != nil {
		if err := s.ports.RefreshStatus(ctx); err != nil {
			return nil, GenerateFoldersOutput{}, toolError("refresh status", err)
		}
	}

	folders, err := s.ports.Folders.Generate(ctx, domain.FolderRequest{
		ChannelName: input.ChannelName,
		ChannelUUID: input.ChannelUUID,
	})
	if err != nil {
		return nil, GenerateFoldersOutput{}, toolError("generate folders", err)
	}
	return nil, GenerateFoldersOutput{
		RootFolderID:    folders.RootFolderID,
		ArchiveFolderID: folders.ArchiveFolderID,
	}, nil
}

func statusOutput(status *domain.IntegrationStatus) StatusOutput {
	if status == nil {
		return StatusOutput{}
	}
	return StatusOutput{Connected: status.Connected, Email: status.Email}
}
