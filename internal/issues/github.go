package issues

import (
	"context"
	"strconv"

	"github.com/zhubert/grove/internal/git"
)

// GitHubProvider lists open issues through the gh CLI.
type GitHubProvider struct {
	git      *git.GitService
	repoPath string
	label    string
}

// NewGitHubProvider returns a provider for the repository at repoPath,
// optionally restricted to issues carrying label.
func NewGitHubProvider(gitSvc *git.GitService, repoPath, label string) *GitHubProvider {
	return &GitHubProvider{git: gitSvc, repoPath: repoPath, label: label}
}

func (p *GitHubProvider) Name() string   { return "GitHub Issues" }
func (p *GitHubProvider) Source() Source { return SourceGitHub }

// IsConfigured requires the gh CLI.
func (p *GitHubProvider) IsConfigured() bool {
	_, err := p.git.Executor().LookPath("gh")
	return err == nil
}

func (p *GitHubProvider) FetchIssues(ctx context.Context) ([]Issue, error) {
	list, err := p.git.FetchGitHubIssues(ctx, p.repoPath, p.label)
	if err != nil {
		return nil, err
	}
	issues := make([]Issue, len(list))
	for i, gh := range list {
		issues[i] = Issue{
			ID:     strconv.Itoa(gh.Number),
			Title:  gh.Title,
			Body:   gh.Body,
			URL:    gh.URL,
			Source: SourceGitHub,
		}
	}
	return issues, nil
}

// PRLinkText closes the issue when the PR merges.
func (p *GitHubProvider) PRLinkText(issue Issue) string {
	return git.GetPRLinkText(string(SourceGitHub), issue.ID, issue.URL)
}
