package leapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// RunMetadata is attached under the _metadata key of every successful
// blueprint response, so it can never collide with blueprint output keys.
type RunMetadata struct {
	RunID      string `json:"runId"`
	EditorLink string `json:"editorLink"`
}

// RunResult is one successful blueprint execution.
type RunResult struct {
	Output   any
	Metadata RunMetadata
}

// Payload returns the blueprint output with metadata attached. Map
// outputs keep their own keys untouched; anything else is wrapped.
func (r *RunResult) Payload() any {
	if m, ok := r.Output.(map[string]any); ok {
		out := make(map[string]any, len(m)+1)
		for k, v := range m {
			out[k] = v
		}
		out["_metadata"] = r.Metadata
		return out
	}
	return map[string]any{"output": r.Output, "_metadata": r.Metadata}
}

// ItemResult tags one batch item's outcome with its input index.
type ItemResult struct {
	Index    int          `json:"index"`
	Output   any          `json:"output,omitempty"`
	Metadata *RunMetadata `json:"_metadata,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// Blueprint operation paths look like /models/<id>/runs; the model id
// feeds the editor deep link.
var modelPathRe = regexp.MustCompile(`^/models/([^/]+)/runs`)

// Run executes one blueprint call. HTTP error statuses come back as
// *UpstreamHTTPError rather than transport errors, so the caller gets a
// uniform classification. No retries: blueprint runs may have side
// effects and a silent retry could duplicate them.
func (c *Client) Run(ctx context.Context, op OperationSelector, params map[string]any, executionID string) (*RunResult, error) {
	if params == nil {
		params = map[string]any{}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encoding parameters: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, op.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Execution-Id", executionID)
	c.auth.Apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing blueprint call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &UpstreamHTTPError{
			Status:  resp.StatusCode,
			Message: upstreamMessage(respBody, resp.StatusCode),
		}
	}

	var output any
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &output); err != nil {
			output = string(respBody)
		}
	}

	return &RunResult{
		Output: output,
		Metadata: RunMetadata{
			RunID:      resp.Header.Get("X-Run-Id"),
			EditorLink: editorLink(op),
		},
	}, nil
}

// RunBatch executes items strictly in order: item N goes out only after
// item N-1 is fully classified. With continueOnFailure a failed item
// becomes an error record and the rest still run; otherwise the first
// failure aborts the remainder.
func (c *Client) RunBatch(ctx context.Context, op OperationSelector, items []map[string]any, executionID string, continueOnFailure bool) ([]ItemResult, error) {
	results := make([]ItemResult, 0, len(items))
	for i, params := range items {
		res, err := c.Run(ctx, op, params, executionID)
		if err != nil {
			if continueOnFailure {
				results = append(results, ItemResult{Index: i, Error: err.Error()})
				continue
			}
			return results, fmt.Errorf("item %d: %w", i, err)
		}
		meta := res.Metadata
		results = append(results, ItemResult{Index: i, Output: res.Output, Metadata: &meta})
	}
	return results, nil
}

// GatherBodyParams converts visual-mode field values ("body.<name>" keys)
// into the request parameter object. String values that look like JSON
// arrays or objects are parsed; on parse failure the original string is
// kept as-is.
func GatherBodyParams(values map[string]any) map[string]any {
	params := make(map[string]any, len(values))
	for key, val := range values {
		name := strings.TrimPrefix(key, "body.")
		s, ok := val.(string)
		if !ok {
			params[name] = val
			continue
		}
		if looksLikeJSON(s) {
			var parsed any
			if err := json.Unmarshal([]byte(s), &parsed); err == nil {
				params[name] = parsed
				continue
			}
		}
		params[name] = s
	}
	return params
}

func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"))
}

// upstreamMessage extracts a human error message from a failed call,
// preferring detail, then error, then message.
func upstreamMessage(body []byte, status int) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			if s, ok := payload[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func editorLink(op OperationSelector) string {
	if m := modelPathRe.FindStringSubmatch(op.Path); m != nil {
		return strings.TrimSuffix(op.EditorBaseURL, "/") + "/" + m[1]
	}
	return op.EditorBaseURL
}
