package leapter

import "github.com/genielabs-com/leapter-mcp/openapi"

// Project is one Leapter project as returned by the project listing.
type Project struct {
	ProjectID     string `json:"projectId"`
	ProjectName   string `json:"projectName"`
	SpecURL       string `json:"specUrl"`
	EditorBaseURL string `json:"editorBaseUrl"`
}

func (p Project) Selector() ProjectSelector {
	return ProjectSelector{ID: p.ProjectID, SpecURL: p.SpecURL, EditorBaseURL: p.EditorBaseURL, Name: p.ProjectName}
}

type projectsResponse struct {
	AccountID string    `json:"accountId"`
	Projects  []Project `json:"projects"`
}

// Blueprint is one callable operation of a project, with everything
// derived from the spec that later stages need. Recomputed on every
// fetch, never persisted.
type Blueprint struct {
	Name          string
	Path          string
	URL           string
	EditorBaseURL string
	Description   string
	Schema        *openapi.ToolSchema
	ParamNames    []string
}

func (b Blueprint) Selector() OperationSelector {
	return OperationSelector{Method: "post", Path: b.Path, URL: b.URL, EditorBaseURL: b.EditorBaseURL, Name: b.Name}
}
