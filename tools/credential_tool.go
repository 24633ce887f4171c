package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/genielabs-com/leapter-mcp/leapter"
)

func registerCredentialTool(s *server.MCPServer, client *leapter.Client) {
	s.AddTool(
		mcp.NewTool("validate_credentials",
			mcp.WithDescription("Check that the configured Leapter API key is accepted by the platform"),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if err := client.ValidateKey(ctx); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText("Credentials are valid."), nil
		},
	)
}
