// Package issues fetches work items from task boards so workflows can name
// branches and link pull requests after them.
package issues

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/git"
)

// Source identifies a task board.
type Source string

const (
	SourceGitHub Source = "github"
	SourceAsana  Source = "asana"
)

// Issue is a task from any board.
type Issue struct {
	ID     string
	Title  string
	Body   string
	URL    string
	Source Source
}

// Label is the menu text for the issue.
func (i Issue) Label() string {
	if i.Source == SourceGitHub {
		return fmt.Sprintf("#%s %s", i.ID, i.Title)
	}
	return i.Title
}

// Provider lists open tasks from one board.
type Provider interface {
	Name() string
	Source() Source
	IsConfigured() bool
	FetchIssues(ctx context.Context) ([]Issue, error)
	// PRLinkText is appended to a PR body that resolves the issue.
	PRLinkText(issue Issue) string
}

// ForSettings returns the provider selected by the merged configuration,
// or nil when the repo has no task source.
func ForSettings(s config.Settings, gitSvc *git.GitService, repoPath string) Provider {
	switch s.TaskSource {
	case config.TaskSourceAsana:
		return NewAsanaProvider(s.AsanaProject)
	case config.TaskSourceGitHub:
		return NewGitHubProvider(gitSvc, repoPath, "")
	default:
		return nil
	}
}

// Find returns the issue with id, searching the provider's open issues.
func Find(ctx context.Context, p Provider, id string) (Issue, error) {
	list, err := p.FetchIssues(ctx)
	if err != nil {
		return Issue{}, err
	}
	id = strings.TrimPrefix(id, "#")
	for _, issue := range list {
		if issue.ID == id {
			return issue, nil
		}
	}
	return Issue{}, fmt.Errorf("%s has no open task %q", p.Name(), id)
}
