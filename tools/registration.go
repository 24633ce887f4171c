package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/genielabs-com/leapter-mcp/leapter"
)

// RegisterAll registers the static tool surface with the MCP server.
// Dynamic per-blueprint tools are registered separately by
// RegisterBlueprintTools when enabled.
func RegisterAll(s *server.MCPServer, client *leapter.Client) {
	registerProjectTools(s, client)
	registerRunTool(s, client)
	registerCredentialTool(s, client)
}
