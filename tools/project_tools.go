package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/genielabs-com/leapter-mcp/leapter"
)

func registerProjectTools(s *server.MCPServer, client *leapter.Client) {
	s.AddTool(
		mcp.NewTool("list_projects",
			mcp.WithDescription("List the Leapter projects available to the configured API key. Returns each project's name and a selector string to pass to list_blueprints and run_blueprint."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListProjects(ctx, client)
		},
	)

	s.AddTool(
		mcp.NewTool("list_blueprints",
			mcp.WithDescription("List the blueprints (callable AI operations) of a project. Returns each blueprint's name, description, parameter names, and a selector string to pass to run_blueprint."),
			mcp.WithString("project", mcp.Required(), mcp.Description("Project selector from list_projects")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListBlueprints(ctx, client, mcp.ParseString(req, "project", ""))
		},
	)

	s.AddTool(
		mcp.NewTool("describe_blueprint",
			mcp.WithDescription("Describe a blueprint's input form: one field per request-body property with its type, label, required flag, and enum options."),
			mcp.WithString("project", mcp.Required(), mcp.Description("Project selector from list_projects")),
			mcp.WithString("blueprint", mcp.Required(), mcp.Description("Blueprint selector from list_blueprints")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			project := mcp.ParseString(req, "project", "")
			blueprint := mcp.ParseString(req, "blueprint", "")
			return handleDescribeBlueprint(ctx, client, project, blueprint)
		},
	)
}

func handleListProjects(ctx context.Context, client *leapter.Client) (*mcp.CallToolResult, error) {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	type projectInfo struct {
		Name     string `json:"name"`
		ID       string `json:"id"`
		Selector string `json:"selector"`
	}

	out := make([]projectInfo, 0, len(projects))
	for _, p := range projects {
		sel, err := p.Selector().Encode()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("project %q: %v", p.ProjectName, err)), nil
		}
		out = append(out, projectInfo{Name: p.ProjectName, ID: p.ProjectID, Selector: sel})
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleListBlueprints(ctx context.Context, client *leapter.Client, projectSel string) (*mcp.CallToolResult, error) {
	if projectSel == "" {
		return mcp.NewToolResultError("project is required"), nil
	}
	project, err := leapter.DecodeProjectSelector(projectSel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	blueprints, err := client.ListOperations(ctx, project)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	type blueprintInfo struct {
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		Parameters  []string `json:"parameters,omitempty"`
		Selector    string   `json:"selector"`
	}

	out := make([]blueprintInfo, 0, len(blueprints))
	for _, b := range blueprints {
		sel, err := b.Selector().Encode()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("blueprint %q: %v", b.Name, err)), nil
		}
		out = append(out, blueprintInfo{
			Name:        b.Name,
			Description: b.Description,
			Parameters:  b.ParamNames,
			Selector:    sel,
		})
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleDescribeBlueprint(ctx context.Context, client *leapter.Client, projectSel, blueprintSel string) (*mcp.CallToolResult, error) {
	if projectSel == "" || blueprintSel == "" {
		return mcp.NewToolResultError("project and blueprint are required"), nil
	}
	project, err := leapter.DecodeProjectSelector(projectSel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	op, err := leapter.DecodeOperationSelector(blueprintSel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields, err := client.DescribeFields(ctx, project, op.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(fields) == 0 {
		return mcp.NewToolResultText("This blueprint takes no input."), nil
	}

	data, _ := json.MarshalIndent(fields, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}
