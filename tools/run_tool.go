package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/genielabs-com/leapter-mcp/leapter"
)

func registerRunTool(s *server.MCPServer, client *leapter.Client) {
	s.AddTool(
		mcp.NewTool("run_blueprint",
			mcp.WithDescription("Execute a Leapter blueprint. Pass the blueprint selector from list_blueprints, or just name the blueprint (or supply its parameters) and the call is routed to the best match. Parameters may be a single object or an array of objects; arrays run item by item, in order."),
			mcp.WithString("project", mcp.Required(), mcp.Description("Project selector from list_projects")),
			mcp.WithString("blueprint", mcp.Description("Blueprint selector from list_blueprints, or a blueprint name")),
			mcp.WithString("action", mcp.Description("Free-form operation name, used for routing when no blueprint selector is given")),
			mcp.WithObject("parameters", mcp.Description("Blueprint input parameters. Also accepts an array of parameter objects, or a JSON string")),
			mcp.WithBoolean("continue_on_failure", mcp.Description("When running multiple items, record a failed item's error and keep going instead of aborting")),
			mcp.WithString("execution_id", mcp.Description("Correlation identifier forwarded with every call")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRunBlueprint(ctx, req, client)
		},
	)
}

func handleRunBlueprint(ctx context.Context, req mcp.CallToolRequest, client *leapter.Client) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	projectSel := mcp.ParseString(req, "project", "")
	if projectSel == "" {
		return mcp.NewToolResultError("project is required"), nil
	}
	project, err := leapter.DecodeProjectSelector(projectSel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	items, single, err := parseParameters(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	op, err := resolveOperation(ctx, client, project, req, items)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	executionID := mcp.ParseString(req, "execution_id", "")
	continueOnFailure := mcp.ParseBoolean(req, "continue_on_failure", false)

	if single {
		res, err := client.Run(ctx, op, items[0], executionID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		data, _ := json.MarshalIndent(res.Payload(), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}

	results, err := client.RunBatch(ctx, op, items, executionID, continueOnFailure)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

// resolveOperation turns the blueprint argument into an operation
// selector: a decodable selector is taken verbatim, anything else goes
// through name matching and overlap scoring against the project's
// blueprints.
func resolveOperation(ctx context.Context, client *leapter.Client, project leapter.ProjectSelector, req mcp.CallToolRequest, items []map[string]any) (leapter.OperationSelector, error) {
	blueprint := mcp.ParseString(req, "blueprint", "")
	if blueprint != "" {
		if op, err := leapter.DecodeOperationSelector(blueprint); err == nil {
			return op, nil
		}
	}

	action := mcp.ParseString(req, "action", "")
	if action == "" {
		action = blueprint
	}

	candidates, err := client.ListOperations(ctx, project)
	if err != nil {
		return leapter.OperationSelector{}, err
	}

	scoringArgs := map[string]any{}
	if len(items) > 0 {
		scoringArgs = items[0]
	}
	match, err := matchBlueprint(action, scoringArgs, candidates)
	if err != nil {
		return leapter.OperationSelector{}, err
	}
	return match.Selector(), nil
}

// parseParameters normalizes the parameters argument into a list of item
// parameter objects. The single flag distinguishes one object from a
// one-element batch.
func parseParameters(args map[string]any) (items []map[string]any, single bool, err error) {
	raw, ok := args["parameters"]
	if !ok || raw == nil {
		// Free-form invocation: the leftover argument keys are the
		// parameter object itself.
		return []map[string]any{filterReservedArgs(args)}, true, nil
	}

	if s, ok := raw.(string); ok {
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err != nil {
			return nil, false, fmt.Errorf("parameters is not valid JSON: %v", err)
		}
		raw = parsed
	}

	switch v := raw.(type) {
	case map[string]any:
		return []map[string]any{normalizeItem(v)}, true, nil
	case []any:
		items := make([]map[string]any, 0, len(v))
		for i, entry := range v {
			m, ok := entry.(map[string]any)
			if !ok {
				return nil, false, fmt.Errorf("parameters[%d] is not an object", i)
			}
			items = append(items, normalizeItem(m))
		}
		return items, false, nil
	default:
		return nil, false, fmt.Errorf("parameters must be an object or an array of objects")
	}
}

// normalizeItem applies visual-mode gathering when the keys carry the
// body. prefix of form fields; pre-structured objects pass verbatim.
func normalizeItem(params map[string]any) map[string]any {
	for key := range params {
		if strings.HasPrefix(key, "body.") {
			return leapter.GatherBodyParams(params)
		}
	}
	return params
}
