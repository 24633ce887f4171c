package openapi

import "sort"

// ToolSchema is the JSON-Schema shape handed to the tool-calling surface.
// It marshals directly into a tool's input schema.
type ToolSchema struct {
	Type                 string                 `json:"type"`
	Description          string                 `json:"description,omitempty"`
	Enum                 []any                  `json:"enum,omitempty"`
	Properties           map[string]*ToolSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Items                *ToolSchema            `json:"items,omitempty"`
	AdditionalProperties any                    `json:"additionalProperties,omitempty"`
}

// ProjectParameters converts an operation's request-body schema into a
// typed parameter schema. Required/optional status is applied per nesting
// level: a nested object's own required list governs its own children.
func ProjectParameters(op *Operation, doc *Document) (*ToolSchema, error) {
	out := &ToolSchema{Type: "object", Properties: map[string]*ToolSchema{}}

	body, err := Resolve(op.BodySchema(), doc)
	if err != nil {
		return nil, err
	}
	if body == nil || body.Properties.Len() == 0 {
		return out, nil
	}

	for _, name := range body.Properties.Keys() {
		conv, err := convertSchema(body.Properties.Get(name), doc)
		if err != nil {
			return nil, err
		}
		out.Properties[name] = conv
	}
	out.Required = append([]string(nil), body.Required...)
	return out, nil
}

func convertSchema(s *Schema, doc *Document) (*ToolSchema, error) {
	s, err := Resolve(s, doc)
	if err != nil {
		return nil, err
	}

	t := &ToolSchema{Description: s.Description}
	switch s.Type {
	case "string":
		t.Type = "string"
		if len(s.Enum) > 0 {
			t.Enum = s.Enum
		}
	case "integer", "number":
		t.Type = "number"
	case "boolean":
		t.Type = "boolean"
	case "array":
		t.Type = "array"
		if s.Items != nil {
			t.Items, err = convertSchema(s.Items, doc)
			if err != nil {
				return nil, err
			}
		} else {
			t.Items = &ToolSchema{Type: "string"}
		}
	case "object":
		t.Type = "object"
		if s.Properties.Len() > 0 {
			t.Properties = make(map[string]*ToolSchema, s.Properties.Len())
			for _, name := range s.Properties.Keys() {
				conv, err := convertSchema(s.Properties.Get(name), doc)
				if err != nil {
					return nil, err
				}
				t.Properties[name] = conv
			}
			t.Required = append([]string(nil), s.Required...)
		} else {
			// No declared properties: treat as an open key-value map.
			t.AdditionalProperties = true
		}
	default:
		t.Type = "string"
	}
	return t, nil
}

// ParameterNames returns the top-level parameter names of a projected
// schema, used to score free-form invocations against candidates and
// surfaced in blueprint listings. Sorted so repeated listings agree.
func (t *ToolSchema) ParameterNames() []string {
	if t == nil || len(t.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(t.Properties))
	for name := range t.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
