package tools

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/genielabs-com/leapter-mcp/leapter"
)

func TestMatchBlueprintByArgumentOverlap(t *testing.T) {
	candidates := []leapter.Blueprint{
		{Name: "weather", ParamNames: []string{"city"}},
		{Name: "search", ParamNames: []string{"query"}},
	}

	match, err := matchBlueprint("", map[string]any{"city": "Paris"}, candidates)
	require.NoError(t, err)
	require.Equal(t, "weather", match.Name)
}

func TestMatchBlueprintExactActionName(t *testing.T) {
	candidates := []leapter.Blueprint{
		{Name: "Summarize Text", ParamNames: []string{"text"}},
		{Name: "Translate Text", ParamNames: []string{"text"}},
	}

	// Sanitization applies to both sides of the comparison.
	match, err := matchBlueprint("translate text", map[string]any{"text": "hi"}, candidates)
	require.NoError(t, err)
	require.Equal(t, "Translate Text", match.Name)
}

func TestMatchBlueprintSingleCandidateFallback(t *testing.T) {
	// A lone candidate is selected even with an empty schema and no
	// action match.
	candidates := []leapter.Blueprint{{Name: "only"}}

	match, err := matchBlueprint("something else", map[string]any{"x": 1}, candidates)
	require.NoError(t, err)
	require.Equal(t, "only", match.Name)
}

func TestMatchBlueprintCoverageBreaksOverlapTies(t *testing.T) {
	candidates := []leapter.Blueprint{
		{Name: "wide", ParamNames: []string{"a", "b"}},
		{Name: "narrow", ParamNames: []string{"a"}},
	}

	// Equal raw overlap; the fully covered schema scores higher.
	match, err := matchBlueprint("", map[string]any{"a": 1}, candidates)
	require.NoError(t, err)
	require.Equal(t, "narrow", match.Name)
}

func TestMatchBlueprintTieKeepsEncounterOrder(t *testing.T) {
	// Pins current behavior: exact ties resolve to the first candidate,
	// not the smaller schema.
	candidates := []leapter.Blueprint{
		{Name: "first", ParamNames: []string{"x", "y"}},
		{Name: "second", ParamNames: []string{"x", "z"}},
	}

	match, err := matchBlueprint("", map[string]any{"x": 1}, candidates)
	require.NoError(t, err)
	require.Equal(t, "first", match.Name)
}

func TestMatchBlueprintSkipsEmptySchemasInScoring(t *testing.T) {
	candidates := []leapter.Blueprint{
		{Name: "empty"},
		{Name: "real", ParamNames: []string{"query"}},
	}

	match, err := matchBlueprint("", map[string]any{"unrelated": 1}, candidates)
	require.NoError(t, err)
	require.Equal(t, "real", match.Name)
}

func TestMatchBlueprintNoScorableCandidates(t *testing.T) {
	candidates := []leapter.Blueprint{{Name: "alpha"}, {Name: "beta"}}

	_, err := matchBlueprint("", map[string]any{"x": 1}, candidates)
	var noMatch *leapter.NoMatchingOperationError
	require.ErrorAs(t, err, &noMatch)
	require.Equal(t, []string{"alpha", "beta"}, noMatch.Candidates)
}

func TestMatchBlueprintNoCandidates(t *testing.T) {
	_, err := matchBlueprint("anything", map[string]any{}, nil)
	var noMatch *leapter.NoMatchingOperationError
	require.ErrorAs(t, err, &noMatch)
}

func TestMatchBlueprintIgnoresReservedKeys(t *testing.T) {
	candidates := []leapter.Blueprint{
		{Name: "session", ParamNames: []string{"sessionId"}},
		{Name: "weather", ParamNames: []string{"city"}},
	}

	match, err := matchBlueprint("", map[string]any{"sessionId": "abc", "city": "Paris"}, candidates)
	require.NoError(t, err)
	require.Equal(t, "weather", match.Name)
}
