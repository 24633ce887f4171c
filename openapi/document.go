package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Document is the subset of an OpenAPI 3.0 document the plugin consumes.
// Alongside the typed fields it keeps the original JSON bytes, which $ref
// resolution walks key-by-key. Resolution must hand the target's own
// bytes to the Schema decoder: anything routed through a generic Go map
// would come back with its properties alphabetized.
type Document struct {
	OpenAPI    string              `json:"openapi"`
	Servers    []Server            `json:"servers"`
	Paths      map[string]PathItem `json:"paths"`
	Components Components          `json:"components"`

	raw json.RawMessage
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = Document(a)
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

type Server struct {
	URL string `json:"url"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas"`
}

// PathItem exposes only the POST operation. Blueprints are always invoked
// via POST; any other method on a path is ignored outright.
type PathItem struct {
	Post *Operation `json:"post"`
}

type Operation struct {
	Summary     string       `json:"summary"`
	Description string       `json:"description"`
	OperationID string       `json:"operationId"`
	Deprecated  bool         `json:"deprecated"`
	RequestBody *RequestBody `json:"requestBody"`
}

type RequestBody struct {
	Content map[string]MediaType `json:"content"`
}

type MediaType struct {
	Schema *Schema `json:"schema"`
}

// BodySchema returns the operation's JSON request-body schema, or nil if
// the operation takes no input.
func (o *Operation) BodySchema() *Schema {
	if o == nil || o.RequestBody == nil {
		return nil
	}
	if mt, ok := o.RequestBody.Content["application/json"]; ok {
		return mt.Schema
	}
	return nil
}

// DisplayName is what operation is called in dropdowns and tool names:
// the summary, falling back to the operationId, falling back to the path.
func (o *Operation) DisplayName(path string) string {
	if o.Summary != "" {
		return o.Summary
	}
	if o.OperationID != "" {
		return o.OperationID
	}
	return path
}

// Schema is a recursive JSON Schema node. A node with Ref set carries no
// other usable fields until it has been passed through Resolve.
type Schema struct {
	Ref         string      `json:"$ref"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Enum        []any       `json:"enum"`
	Properties  *Properties `json:"properties"`
	Required    []string    `json:"required"`
	Items       *Schema     `json:"items"`
}

// Properties is an insertion-ordered property map. Form fields must come
// out in document order, which a plain Go map would scramble.
type Properties struct {
	keys   []string
	values map[string]*Schema
}

func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil // JSON null
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	p.values = make(map[string]*Schema)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var s Schema
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("properties[%s]: %w", key, err)
		}
		p.keys = append(p.keys, key)
		p.values[key] = &s
	}
	_, err = dec.Token() // closing brace
	return err
}

// Keys returns the property names in document order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return p.keys
}

func (p *Properties) Get(name string) *Schema {
	if p == nil {
		return nil
	}
	return p.values[name]
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// ServerURL returns the authoritative server base URL (first entry,
// trailing slash stripped).
func (d *Document) ServerURL() string {
	if len(d.Servers) == 0 {
		return ""
	}
	return strings.TrimSuffix(d.Servers[0].URL, "/")
}

// PathOperation pairs a path with its POST operation.
type PathOperation struct {
	Path string
	Op   *Operation
}

// PostOperations returns the callable operations of the document:
// POST only, deprecated excluded. Order follows the sorted path list so
// repeated calls agree; callers re-sort by display name for listings.
func (d *Document) PostOperations() []PathOperation {
	paths := make([]string, 0, len(d.Paths))
	for path := range d.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var out []PathOperation
	for _, path := range paths {
		op := d.Paths[path].Post
		if op == nil || op.Deprecated {
			continue
		}
		out = append(out, PathOperation{Path: path, Op: op})
	}
	return out
}
