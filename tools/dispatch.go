package tools

import (
	"github.com/genielabs-com/leapter-mcp/leapter"
)

// reservedArgKeys are host-injected argument keys that are never
// blueprint parameters. Single point of change for platform reserved
// names.
var reservedArgKeys = map[string]struct{}{
	"action":              {},
	"blueprint":           {},
	"project":             {},
	"parameters":          {},
	"continue_on_failure": {},
	"execution_id":        {},
	"sessionId":           {},
	"chatInput":           {},
}

func filterReservedArgs(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		if _, reserved := reservedArgKeys[k]; reserved {
			continue
		}
		out[k] = v
	}
	return out
}

// matchBlueprint routes a free-form invocation to one of the candidate
// blueprints. An exact sanitized action-name match wins outright; a lone
// candidate is selected unconditionally; otherwise candidates are scored
// by argument-key overlap plus the fraction of their own schema covered,
// first maximum winning. Candidates with no parameters are never picked
// by scoring.
func matchBlueprint(action string, args map[string]any, candidates []leapter.Blueprint) (*leapter.Blueprint, error) {
	if len(candidates) == 0 {
		return nil, &leapter.NoMatchingOperationError{}
	}

	if action != "" {
		want := SanitizeToolName(action)
		for i := range candidates {
			if SanitizeToolName(candidates[i].Name) == want {
				return &candidates[i], nil
			}
		}
	}

	if len(candidates) == 1 {
		return &candidates[0], nil
	}

	keys := filterReservedArgs(args)

	best := -1
	var bestScore float64
	for i, c := range candidates {
		if len(c.ParamNames) == 0 {
			continue
		}
		overlap := 0
		for _, name := range c.ParamNames {
			if _, ok := keys[name]; ok {
				overlap++
			}
		}
		score := float64(overlap) + float64(overlap)/float64(len(c.ParamNames))
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	if best == -1 {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name
		}
		return nil, &leapter.NoMatchingOperationError{Candidates: names}
	}
	return &candidates[best], nil
}
