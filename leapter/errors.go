package leapter

import (
	"fmt"
	"strings"
)

// AuthError reports rejected credentials (HTTP 401/403). Never retried.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (HTTP %d): check the configured API key", e.Status)
}

// EmptyResultError reports a listing that came back empty.
type EmptyResultError struct {
	What string
	Hint string
}

func (e *EmptyResultError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("no %s available: %s", e.What, e.Hint)
	}
	return fmt.Sprintf("no %s available", e.What)
}

// UpstreamError reports an unexpected platform response outside blueprint
// execution.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("platform request failed with HTTP %d", e.Status)
}

// InvalidSpecError reports a fetched OpenAPI document missing mandatory
// structure.
type InvalidSpecError struct {
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return "invalid OpenAPI document: " + e.Reason
}

// MissingServerError reports a spec that declares no usable server URL.
type MissingServerError struct {
	SpecURL string
}

func (e *MissingServerError) Error() string {
	return fmt.Sprintf("spec %s declares no absolute server URL", e.SpecURL)
}

// UpstreamHTTPError is a 4xx/5xx from a blueprint call. It is recoverable
// at the batch level: with continue-on-failure it becomes the item's
// error record.
type UpstreamHTTPError struct {
	Status  int
	Message string
}

func (e *UpstreamHTTPError) Error() string {
	return e.Message
}

// NoMatchingOperationError reports a free-form invocation that could not
// be routed to any blueprint.
type NoMatchingOperationError struct {
	Candidates []string
}

func (e *NoMatchingOperationError) Error() string {
	if len(e.Candidates) == 0 {
		return "no blueprints available to route this call to"
	}
	return "could not match the call to a blueprint; known blueprints: " + strings.Join(e.Candidates, ", ")
}
