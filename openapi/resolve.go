package openapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxRefDepth bounds chained $ref resolution. Platform-authored specs are
// acyclic, but a malformed document must not recurse forever.
const maxRefDepth = 32

// DanglingReferenceError reports a $ref whose path does not exist in the
// document.
type DanglingReferenceError struct {
	Ref string
	Key string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("unresolvable $ref %q: key %q not found", e.Ref, e.Key)
}

// ReferenceCycleError reports a $ref chain longer than maxRefDepth.
type ReferenceCycleError struct {
	Ref string
}

func (e *ReferenceCycleError) Error() string {
	return fmt.Sprintf("$ref chain at %q exceeds depth %d, likely circular", e.Ref, maxRefDepth)
}

// Resolve dereferences a schema node against the document. Nodes without
// a $ref come back unchanged; references are followed key-by-key from the
// document root, chained refs included.
func Resolve(s *Schema, doc *Document) (*Schema, error) {
	for depth := 0; s != nil && s.Ref != ""; depth++ {
		if depth >= maxRefDepth {
			return nil, &ReferenceCycleError{Ref: s.Ref}
		}
		node, err := doc.lookup(s.Ref)
		if err != nil {
			return nil, err
		}
		next := &Schema{}
		if err := json.Unmarshal(node, next); err != nil {
			return nil, fmt.Errorf("decoding $ref %q target: %w", s.Ref, err)
		}
		s = next
	}
	return s, nil
}

// lookup walks the document's raw bytes one object level per key and
// returns the target node's original bytes, untouched, so downstream
// decoding still sees document property order.
func (d *Document) lookup(ref string) (json.RawMessage, error) {
	keys := strings.Split(strings.TrimPrefix(ref, "#/"), "/")

	node := d.raw
	for _, key := range keys {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(node, &obj); err != nil {
			return nil, &DanglingReferenceError{Ref: ref, Key: key}
		}
		next, ok := obj[key]
		if !ok {
			return nil, &DanglingReferenceError{Ref: ref, Key: key}
		}
		node = next
	}
	return node, nil
}
