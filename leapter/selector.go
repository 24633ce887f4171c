package leapter

import (
	"fmt"
	"strings"
)

// selectorSeparator joins the facts encoded in a selector value. Parts
// containing the separator are rejected at encode time instead of being
// silently corrupted at decode time.
const selectorSeparator = "::"

// ProjectSelector carries everything a later call needs to know about a
// selected project, so no second lookup is required.
type ProjectSelector struct {
	ID            string
	SpecURL       string
	EditorBaseURL string
	Name          string
}

func (s ProjectSelector) Encode() (string, error) {
	return encodeSelector(s.ID, s.SpecURL, s.EditorBaseURL, s.Name)
}

func DecodeProjectSelector(value string) (ProjectSelector, error) {
	parts := strings.Split(value, selectorSeparator)
	if len(parts) != 4 {
		return ProjectSelector{}, fmt.Errorf("malformed project selector %q: want 4 parts, got %d", value, len(parts))
	}
	return ProjectSelector{ID: parts[0], SpecURL: parts[1], EditorBaseURL: parts[2], Name: parts[3]}, nil
}

// OperationSelector carries the derived facts of a selected operation.
// Method is always "post".
type OperationSelector struct {
	Method        string
	Path          string
	URL           string
	EditorBaseURL string
	Name          string
}

func (s OperationSelector) Encode() (string, error) {
	method := s.Method
	if method == "" {
		method = "post"
	}
	return encodeSelector(method, s.Path, s.URL, s.EditorBaseURL, s.Name)
}

func DecodeOperationSelector(value string) (OperationSelector, error) {
	parts := strings.Split(value, selectorSeparator)
	if len(parts) != 5 {
		return OperationSelector{}, fmt.Errorf("malformed operation selector %q: want 5 parts, got %d", value, len(parts))
	}
	return OperationSelector{Method: parts[0], Path: parts[1], URL: parts[2], EditorBaseURL: parts[3], Name: parts[4]}, nil
}

func encodeSelector(parts ...string) (string, error) {
	for _, p := range parts {
		if strings.Contains(p, selectorSeparator) {
			return "", fmt.Errorf("selector part %q contains the reserved separator %q", p, selectorSeparator)
		}
	}
	return strings.Join(parts, selectorSeparator), nil
}
