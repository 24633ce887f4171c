package leapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testClient(srvURL string) *Client {
	return NewClient(srvURL, "test-key", 5*time.Second)
}

func TestListProjectsSortsAndAuthenticates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/n8n/projects", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		json.NewEncoder(w).Encode(map[string]any{
			"accountId": "acc1",
			"projects": []map[string]string{
				{"projectId": "p2", "projectName": "zeta", "specUrl": "s2", "editorBaseUrl": "e2"},
				{"projectId": "p1", "projectName": "Alpha", "specUrl": "s1", "editorBaseUrl": "e1"},
			},
		})
	}))
	defer srv.Close()

	projects, err := testClient(srv.URL).ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "Alpha", projects[0].ProjectName)
	require.Equal(t, "zeta", projects[1].ProjectName)
}

func TestListProjectsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListProjects(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusUnauthorized, authErr.Status)
}

func TestListProjectsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"accountId": "acc1", "projects": []any{}})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListProjects(context.Background())
	var empty *EmptyResultError
	require.ErrorAs(t, err, &empty)
}

func specServer(t *testing.T, spec string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		fmt.Fprint(w, spec)
	}))
}

func TestFetchSpecInvalid(t *testing.T) {
	srv := specServer(t, `{"paths": {}}`)
	defer srv.Close()

	_, err := testClient(srv.URL).FetchSpec(context.Background(), srv.URL+"/spec.json")
	var invalid *InvalidSpecError
	require.ErrorAs(t, err, &invalid)
}

func TestFetchSpecMissingServer(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"no servers", `{"openapi":"3.0.0","paths":{}}`},
		{"relative server", `{"openapi":"3.0.0","servers":[{"url":"/api"}],"paths":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := specServer(t, tt.spec)
			defer srv.Close()

			_, err := testClient(srv.URL).FetchSpec(context.Background(), srv.URL+"/spec.json")
			var missing *MissingServerError
			require.ErrorAs(t, err, &missing)
		})
	}
}

const operationsSpec = `{
	"openapi": "3.0.0",
	"servers": [{"url": "https://api.example.com/"}],
	"paths": {
		"/models/translate/runs": {
			"post": {
				"summary": "Translate",
				"requestBody": {"content": {"application/json": {"schema": {
					"type": "object",
					"properties": {"text": {"type": "string"}}
				}}}}
			},
			"get": {"summary": "ignored"}
		},
		"/models/old/runs": {"post": {"summary": "Old", "deprecated": true}},
		"/models/summarize/runs": {"post": {"operationId": "summarizeText"}}
	}
}`

func TestListOperations(t *testing.T) {
	srv := specServer(t, operationsSpec)
	defer srv.Close()

	project := ProjectSelector{ID: "p1", SpecURL: srv.URL + "/spec.json", EditorBaseURL: "https://editor", Name: "P1"}
	blueprints, err := testClient(srv.URL).ListOperations(context.Background(), project)
	require.NoError(t, err)

	// Deprecated and non-POST operations are excluded; the rest sort by
	// display name.
	require.Len(t, blueprints, 2)
	require.Equal(t, "summarizeText", blueprints[0].Name)
	require.Equal(t, "Translate", blueprints[1].Name)

	// Server trailing slash is stripped when deriving the operation URL.
	require.Equal(t, "https://api.example.com/models/translate/runs", blueprints[1].URL)
	require.Equal(t, []string{"text"}, blueprints[1].ParamNames)
	require.Empty(t, blueprints[0].ParamNames)
}

func TestListOperationsEmpty(t *testing.T) {
	srv := specServer(t, `{"openapi":"3.0.0","servers":[{"url":"https://api.example.com"}],"paths":{"/x":{"get":{}}}}`)
	defer srv.Close()

	project := ProjectSelector{SpecURL: srv.URL + "/spec.json"}
	_, err := testClient(srv.URL).ListOperations(context.Background(), project)
	var empty *EmptyResultError
	require.ErrorAs(t, err, &empty)
}

func TestDescribeFields(t *testing.T) {
	srv := specServer(t, operationsSpec)
	defer srv.Close()

	project := ProjectSelector{SpecURL: srv.URL + "/spec.json"}
	fields, err := testClient(srv.URL).DescribeFields(context.Background(), project, "/models/translate/runs")
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Equal(t, "body.text", fields[0].ID)
}

func TestValidateKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/api-keys/validate", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "test-key", body["apiKey"])
	}))
	defer srv.Close()

	require.NoError(t, testClient(srv.URL).ValidateKey(context.Background()))
}

func TestValidateKeyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := testClient(srv.URL).ValidateKey(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}
