package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/genielabs-com/leapter-mcp/internal"
	"github.com/genielabs-com/leapter-mcp/leapter"
)

// RegisterBlueprintTools exposes every discoverable blueprint as its own
// MCP tool with a typed input schema projected from the spec. Names are
// sanitized and deduplicated across all projects in encounter order.
func RegisterBlueprintTools(ctx context.Context, s *server.MCPServer, client *leapter.Client) error {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}

	type entry struct {
		blueprint leapter.Blueprint
		project   string
	}
	var entries []entry
	for _, p := range projects {
		blueprints, err := client.ListOperations(ctx, p.Selector())
		if err != nil {
			internal.Errorf("listing blueprints for %s: %v", p.ProjectName, err)
			continue
		}
		for _, b := range blueprints {
			entries = append(entries, entry{blueprint: b, project: p.ProjectName})
		}
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = SanitizeToolName(e.blueprint.Name)
	}
	names = DedupeToolNames(names)

	for i, e := range entries {
		schema, err := json.Marshal(e.blueprint.Schema)
		if err != nil {
			internal.Errorf("encoding schema for %s: %v", e.blueprint.Name, err)
			continue
		}

		desc := e.blueprint.Description
		if desc == "" {
			desc = fmt.Sprintf("Run the %q blueprint from project %s", e.blueprint.Name, e.project)
		}

		op := e.blueprint.Selector()
		s.AddTool(
			mcp.NewToolWithRawSchema(names[i], desc, schema),
			func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				params := filterReservedArgs(req.GetArguments())
				res, err := client.Run(ctx, op, params, "")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				data, _ := json.MarshalIndent(res.Payload(), "", "  ")
				return mcp.NewToolResultText(string(data)), nil
			},
		)
	}

	internal.Logf("registered %d blueprint tools across %d projects", len(entries), len(projects))
	return nil
}
