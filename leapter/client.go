package leapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/genielabs-com/leapter-mcp/internal"
	"github.com/genielabs-com/leapter-mcp/openapi"
)

// Client talks to the Leapter platform. Every authenticated call carries
// the API key via the AuthStrategy; nothing is cached between calls.
type Client struct {
	baseURL string
	auth    AuthStrategy
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		auth:    &HeaderAuth{Header: "X-API-Key", Key: apiKey},
		http:    &http.Client{Timeout: timeout},
	}
}

// ListProjects fetches the account's projects, sorted by display name
// (case-insensitive).
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	body, _, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/v1/n8n/projects", nil)
	if err != nil {
		return nil, err
	}

	var parsed projectsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding project list: %w", err)
	}
	if len(parsed.Projects) == 0 {
		return nil, &EmptyResultError{
			What: "projects",
			Hint: "publish a blueprint in the Leapter editor first",
		}
	}

	sort.SliceStable(parsed.Projects, func(i, j int) bool {
		return strings.ToLower(parsed.Projects[i].ProjectName) < strings.ToLower(parsed.Projects[j].ProjectName)
	})
	return parsed.Projects, nil
}

// FetchSpec retrieves and decodes a project's OpenAPI document. Fetched
// fresh on every call: specs change rarely, and a shared cache would cost
// more than the extra request.
func (c *Client) FetchSpec(ctx context.Context, specURL string) (*openapi.Document, error) {
	data, _, err := c.do(ctx, http.MethodGet, specURL, nil)
	if err != nil {
		return nil, err
	}

	doc := &openapi.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &InvalidSpecError{Reason: err.Error()}
	}
	if doc.OpenAPI == "" {
		return nil, &InvalidSpecError{Reason: "missing openapi version field"}
	}
	if doc.Paths == nil {
		return nil, &InvalidSpecError{Reason: "missing paths"}
	}
	if !hasAbsoluteServer(doc) {
		return nil, &MissingServerError{SpecURL: specURL}
	}

	// Structural validation is advisory only; some published specs have
	// minor issues that must not block execution.
	if kdoc, err := openapi3.NewLoader().LoadFromData(data); err != nil {
		internal.Warnf("spec validation %s: %v", specURL, err)
	} else if err := kdoc.Validate(ctx); err != nil {
		internal.Warnf("spec validation %s: %v", specURL, err)
	}

	return doc, nil
}

func hasAbsoluteServer(doc *openapi.Document) bool {
	base := doc.ServerURL()
	if base == "" {
		return false
	}
	u, err := url.Parse(base)
	return err == nil && u.IsAbs()
}

// ListOperations derives a project's callable blueprints from its spec:
// POST only, deprecated excluded, sorted by display name.
func (c *Client) ListOperations(ctx context.Context, project ProjectSelector) ([]Blueprint, error) {
	doc, err := c.FetchSpec(ctx, project.SpecURL)
	if err != nil {
		return nil, err
	}

	base := doc.ServerURL()
	var blueprints []Blueprint
	for _, po := range doc.PostOperations() {
		schema, err := openapi.ProjectParameters(po.Op, doc)
		if err != nil {
			return nil, fmt.Errorf("projecting parameters for %s: %w", po.Path, err)
		}
		blueprints = append(blueprints, Blueprint{
			Name:          po.Op.DisplayName(po.Path),
			Path:          po.Path,
			URL:           base + po.Path,
			EditorBaseURL: project.EditorBaseURL,
			Description:   po.Op.Description,
			Schema:        schema,
			ParamNames:    schema.ParameterNames(),
		})
	}
	if len(blueprints) == 0 {
		return nil, &EmptyResultError{
			What: "blueprints",
			Hint: fmt.Sprintf("project %q exposes no POST operations", project.Name),
		}
	}

	sort.SliceStable(blueprints, func(i, j int) bool {
		return strings.ToLower(blueprints[i].Name) < strings.ToLower(blueprints[j].Name)
	})
	return blueprints, nil
}

// DescribeFields projects an operation's request body into form-field
// descriptors, in document property order.
func (c *Client) DescribeFields(ctx context.Context, project ProjectSelector, path string) ([]openapi.Field, error) {
	doc, err := c.FetchSpec(ctx, project.SpecURL)
	if err != nil {
		return nil, err
	}
	item, ok := doc.Paths[path]
	if !ok || item.Post == nil {
		return nil, fmt.Errorf("no POST operation at %s", path)
	}
	return openapi.ProjectFields(item.Post.BodySchema(), doc)
}

// ValidateKey probes the credential-validation endpoint with the stored
// API key.
func (c *Client) ValidateKey(ctx context.Context) error {
	key := ""
	if h, ok := c.auth.(*HeaderAuth); ok {
		key = h.Key
	}
	payload, err := json.Marshal(map[string]string{"apiKey": key})
	if err != nil {
		return err
	}
	_, _, err = c.do(ctx, http.MethodPost, c.baseURL+"/api/api-keys/validate", payload)
	return err
}

// do issues an authenticated request and classifies auth and upstream
// failures. Used for platform calls; blueprint execution has its own path
// because HTTP error statuses there are data, not errors.
func (c *Client) do(ctx context.Context, method, rawURL string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.auth.Apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, resp.StatusCode, &AuthError{Status: resp.StatusCode}
	case resp.StatusCode >= 400:
		return nil, resp.StatusCode, &UpstreamError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, resp.StatusCode, nil
}
