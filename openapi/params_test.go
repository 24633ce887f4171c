package openapi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const paramsDoc = `{
	"openapi": "3.0.0",
	"servers": [{"url": "https://api.example.com"}],
	"paths": {"/models/m1/runs": {"post": {
		"requestBody": {"content": {"application/json": {"schema": {
			"type": "object",
			"required": ["outer", "kind"],
			"properties": {
				"kind": {"type": "string", "enum": ["a", "b"]},
				"outer": {
					"type": "object",
					"required": ["inner"],
					"properties": {
						"inner": {"type": "string"},
						"extra": {"type": "integer"}
					}
				},
				"blob": {"type": "object"},
				"names": {"type": "array", "items": {"type": "string"}},
				"things": {"type": "array"},
				"mystery": {"description": "untyped"}
			}
		}}}}
	}}}
}`

func projectTestParams(t *testing.T) *ToolSchema {
	t.Helper()
	doc := mustDoc(t, paramsDoc)
	op := doc.Paths["/models/m1/runs"].Post

	schema, err := ProjectParameters(op, doc)
	require.NoError(t, err)
	return schema
}

func TestProjectParametersTopLevel(t *testing.T) {
	schema := projectTestParams(t)

	require.Equal(t, "object", schema.Type)
	require.Equal(t, []string{"outer", "kind"}, schema.Required)
	require.Len(t, schema.Properties, 6)
}

func TestProjectParametersNestedRequired(t *testing.T) {
	schema := projectTestParams(t)

	outer := schema.Properties["outer"]
	require.Equal(t, "object", outer.Type)
	// The nested object's own required list governs its own children,
	// independently of the parent's.
	require.Equal(t, []string{"inner"}, outer.Required)
	require.Equal(t, "string", outer.Properties["inner"].Type)
	require.Equal(t, "number", outer.Properties["extra"].Type)
}

func TestProjectParametersEnum(t *testing.T) {
	schema := projectTestParams(t)

	kind := schema.Properties["kind"]
	require.Equal(t, "string", kind.Type)
	require.Equal(t, []any{"a", "b"}, kind.Enum)
}

func TestProjectParametersOpenObject(t *testing.T) {
	schema := projectTestParams(t)

	blob := schema.Properties["blob"]
	require.Equal(t, "object", blob.Type)
	require.Equal(t, true, blob.AdditionalProperties)
	require.Empty(t, blob.Properties)
}

func TestProjectParametersArrays(t *testing.T) {
	schema := projectTestParams(t)

	names := schema.Properties["names"]
	require.Equal(t, "array", names.Type)
	require.Equal(t, "string", names.Items.Type)

	// Item type defaults to string when the spec omits it.
	things := schema.Properties["things"]
	require.Equal(t, "array", things.Type)
	require.Equal(t, "string", things.Items.Type)
}

func TestProjectParametersUntypedFallback(t *testing.T) {
	schema := projectTestParams(t)

	mystery := schema.Properties["mystery"]
	require.Equal(t, "string", mystery.Type)
	require.Equal(t, "untyped", mystery.Description)
}

func TestParameterNamesSortedForStableListings(t *testing.T) {
	schema := projectTestParams(t)

	require.Equal(t,
		[]string{"blob", "kind", "mystery", "names", "outer", "things"},
		schema.ParameterNames())
}

func TestProjectParametersNoBody(t *testing.T) {
	doc := mustDoc(t, `{"openapi":"3.0.0","paths":{"/x":{"post":{"summary":"s"}}}}`)

	schema, err := ProjectParameters(doc.Paths["/x"].Post, doc)
	require.NoError(t, err)
	require.Equal(t, "object", schema.Type)
	require.Empty(t, schema.Properties)
	require.Empty(t, schema.ParameterNames())
}
