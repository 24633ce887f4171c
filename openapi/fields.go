package openapi

import "fmt"

// FieldType classifies the widget a form field renders as.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldObject  FieldType = "object"
	FieldArray   FieldType = "array"
	FieldOptions FieldType = "options"
)

// Option is one selectable value of an options field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field is a single form-field descriptor projected from a request-body
// property.
type Field struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Default  string    `json:"default,omitempty"`
	Options  []Option  `json:"options,omitempty"`
}

// ProjectFields flattens a request-body schema into form fields, one per
// top-level property, in document order. Arrays are never expanded into
// per-item fields; they render as a free-text field seeded with a JSON
// array literal.
func ProjectFields(body *Schema, doc *Document) ([]Field, error) {
	body, err := Resolve(body, doc)
	if err != nil {
		return nil, err
	}
	if body == nil || body.Properties.Len() == 0 {
		return nil, nil
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	var fields []Field
	for _, name := range body.Properties.Keys() {
		prop, err := Resolve(body.Properties.Get(name), doc)
		if err != nil {
			return nil, err
		}

		f := Field{
			ID:       "body." + name,
			Label:    fieldLabel(name, prop),
			Required: required[name],
		}

		switch {
		case len(prop.Enum) > 0:
			f.Type = FieldOptions
			for _, v := range prop.Enum {
				lit := enumLiteral(v)
				f.Options = append(f.Options, Option{Label: lit, Value: lit})
			}
		case prop.Type == "array":
			f.Type = FieldString
			f.Default, err = arrayPlaceholder(prop, doc)
			if err != nil {
				return nil, err
			}
		default:
			f.Type = fieldType(prop.Type)
		}

		fields = append(fields, f)
	}
	return fields, nil
}

func fieldLabel(name string, prop *Schema) string {
	if prop.Description != "" {
		return name + " - " + prop.Description
	}
	return name
}

func fieldType(schemaType string) FieldType {
	switch schemaType {
	case "string":
		return FieldString
	case "integer", "number":
		return FieldNumber
	case "boolean":
		return FieldBoolean
	case "object":
		return FieldObject
	case "array":
		return FieldArray
	default:
		return FieldString
	}
}

// arrayPlaceholder seeds the free-text field for an array property with
// an example literal matching the item type.
func arrayPlaceholder(prop *Schema, doc *Document) (string, error) {
	if prop.Items != nil {
		items, err := Resolve(prop.Items, doc)
		if err != nil {
			return "", err
		}
		if items != nil && items.Type == "string" {
			return `["value1", "value2"]`, nil
		}
	}
	return `[1,2,3]`, nil
}

func enumLiteral(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
