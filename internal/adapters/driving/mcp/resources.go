package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for drivelink resources.
const uriScheme = "drivelink://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "google-drive/status",
		Name:        "google-drive-status",
		Description: "Current Google Drive connection state",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	status, err := s.ports.Integration.Status(ctx)
	if err != nil {
		return nil, toolError("get status", err)
	}

	data, err := json.Marshal(statusOutput(status))
	if err != nil {
		return nil, fmt.Errorf("marshal status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
