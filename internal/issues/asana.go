package issues

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/logger"
)

const (
	asanaAPIBase     = "https://app.asana.com/api/1.0"
	asanaPATEnvVar   = "ASANA_PAT"
	asanaHTTPTimeout = 30 * time.Second
)

// AsanaProject represents an Asana project with its GID and name.
type AsanaProject struct {
	GID  string
	Name string
}

// AsanaProvider lists incomplete tasks of one Asana project through the
// REST API. It authenticates with a personal access token from ASANA_PAT.
type AsanaProvider struct {
	project    string
	httpClient *http.Client
	apiBase    string // Override for testing; defaults to asanaAPIBase
}

// NewAsanaProvider creates a provider for the project GID.
func NewAsanaProvider(projectGID string) *AsanaProvider {
	return NewAsanaProviderWithClient(projectGID, &http.Client{Timeout: asanaHTTPTimeout}, "")
}

// NewAsanaProviderWithClient creates a provider with a custom HTTP client and API base URL (for testing).
func NewAsanaProviderWithClient(projectGID string, client *http.Client, apiBase string) *AsanaProvider {
	if apiBase == "" {
		apiBase = asanaAPIBase
	}
	return &AsanaProvider{
		project:    projectGID,
		httpClient: client,
		apiBase:    apiBase,
	}
}

func (p *AsanaProvider) Name() string   { return "Asana Tasks" }
func (p *AsanaProvider) Source() Source { return SourceAsana }

// IsConfigured requires both ASANA_PAT and a project GID.
func (p *AsanaProvider) IsConfigured() bool {
	return os.Getenv(asanaPATEnvVar) != "" && p.project != ""
}

type asanaTask struct {
	GID       string `json:"gid"`
	Name      string `json:"name"`
	Notes     string `json:"notes"`
	Permalink string `json:"permalink_url"`
}

type asanaRef struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// asanaList is the envelope of every Asana list endpoint.
type asanaList[T any] struct {
	Data []T `json:"data"`
}

// get fetches path and decodes the JSON envelope into out.
func (p *AsanaProvider) get(ctx context.Context, path string, query url.Values, out any) error {
	pat := os.Getenv(asanaPATEnvVar)
	if pat == "" {
		return errors.E(errors.Op("asana.Get"), errors.KindConfig, "ASANA_PAT environment variable not set")
	}

	u := p.apiBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+pat)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.E(errors.Op("asana.Get"), errors.KindNetwork, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return errors.E(errors.Op("asana.Get"), errors.KindPermission,
			"Asana API returned 403 Forbidden - check that your ASANA_PAT has access to this project")
	case resp.StatusCode != http.StatusOK:
		return errors.E(errors.Op("asana.Get"), errors.KindNetwork, fmt.Sprintf("Asana API returned status %d for %s", resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse Asana response: %w", err)
	}
	return nil
}

// FetchIssues retrieves incomplete tasks from the project.
func (p *AsanaProvider) FetchIssues(ctx context.Context) ([]Issue, error) {
	if p.project == "" {
		return nil, errors.E(errors.Op("asana.FetchIssues"), errors.KindConfig, "Asana project GID not configured for this repository")
	}

	var resp asanaList[asanaTask]
	query := url.Values{
		"opt_fields":      {"gid,name,notes,permalink_url"},
		"completed_since": {"now"},
	}
	if err := p.get(ctx, "/projects/"+p.project+"/tasks", query, &resp); err != nil {
		return nil, err
	}

	issues := make([]Issue, len(resp.Data))
	for i, task := range resp.Data {
		issues[i] = Issue{
			ID:     task.GID,
			Title:  task.Name,
			Body:   task.Notes,
			URL:    task.Permalink,
			Source: SourceAsana,
		}
	}
	logger.ComponentLogger("asana").Debug("fetched tasks", "project", p.project, "count", len(issues))
	return issues, nil
}

// FetchProjects retrieves all projects accessible to the user.
// If the user belongs to a single workspace, project names are returned directly.
// If multiple workspaces exist, names are prefixed with "WorkspaceName / ProjectName".
func (p *AsanaProvider) FetchProjects(ctx context.Context) ([]AsanaProject, error) {
	var workspaces asanaList[asanaRef]
	if err := p.get(ctx, "/workspaces", nil, &workspaces); err != nil {
		return nil, err
	}
	multiWorkspace := len(workspaces.Data) > 1

	var all []AsanaProject
	for _, ws := range workspaces.Data {
		var projects asanaList[asanaRef]
		query := url.Values{"opt_fields": {"gid,name"}, "limit": {"100"}}
		if err := p.get(ctx, "/workspaces/"+ws.GID+"/projects", query, &projects); err != nil {
			return nil, fmt.Errorf("failed to fetch projects for workspace %q: %w", ws.Name, err)
		}
		for _, proj := range projects.Data {
			name := proj.Name
			if multiWorkspace {
				name = ws.Name + " / " + proj.Name
			}
			all = append(all, AsanaProject{GID: proj.GID, Name: name})
		}
	}
	return all, nil
}

// PRLinkText adds the task URL; Asana has no close-on-merge keywords.
func (p *AsanaProvider) PRLinkText(issue Issue) string {
	return git.GetPRLinkText(string(SourceAsana), issue.ID, issue.URL)
}

// AsanaTokenSet reports whether ASANA_PAT is present in the environment.
func AsanaTokenSet() bool {
	return os.Getenv(asanaPATEnvVar) != ""
}
