package git

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/logger"
)

// GitHubIssue represents a GitHub issue fetched via the gh CLI
type GitHubIssue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"url"`
}

// FetchGitHubIssues fetches open issues using the gh CLI, optionally
// filtered by label. The repoPath determines which repo to query.
func (s *GitService) FetchGitHubIssues(ctx context.Context, repoPath, label string) ([]GitHubIssue, error) {
	args := []string{"issue", "list", "--json", "number,title,body,url", "--state", "open"}
	if label != "" {
		args = append(args, "--label", label)
	}
	output, err := s.executor.Output(ctx, repoPath, "gh", args...)
	if err != nil {
		return nil, fmt.Errorf("gh issue list failed: %w", err)
	}

	var issues []GitHubIssue
	if err := json.Unmarshal(output, &issues); err != nil {
		return nil, fmt.Errorf("failed to parse issues: %w", err)
	}
	return issues, nil
}

// Push pushes branch to origin and sets its upstream.
func (s *GitService) Push(ctx context.Context, repoPath, branch string) error {
	if !s.HasRemoteOrigin(ctx, repoPath) {
		return errors.E(errors.Op("git.Push"), errors.KindGit, "repository has no origin remote")
	}
	_, err := s.git(ctx, repoPath, "push", "-u", "origin", branch)
	return err
}

// PROptions describes a pull request to open.
type PROptions struct {
	Base  string
	Head  string
	Title string
	Body  string
	Draft bool
}

// CreatePR opens a pull request with the gh CLI and returns its URL.
func (s *GitService) CreatePR(ctx context.Context, repoPath string, opts PROptions) (string, error) {
	log := logger.ComponentLogger("git")
	if _, err := s.executor.LookPath("gh"); err != nil {
		return "", errors.CLINotFound("gh")
	}

	args := []string{"pr", "create",
		"--base", opts.Base,
		"--head", opts.Head,
		"--title", opts.Title,
		"--body", opts.Body,
	}
	if opts.Draft {
		args = append(args, "--draft")
	}
	log.Info("creating PR", "base", opts.Base, "head", opts.Head, "draft", opts.Draft)

	out, err := s.executor.Output(ctx, repoPath, "gh", args...)
	if err != nil {
		return "", errors.E(errors.Op("git.CreatePR"), errors.KindGit, "gh pr create failed", err)
	}

	// gh prints progress lines before the URL
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	url := strings.TrimSpace(lines[len(lines)-1])
	log.Info("PR created", "url", url)
	return url, nil
}

// GetPRLinkText returns the text appended to a PR body for the task source.
// GitHub issues get "Fixes #N" so merging closes them; Asana tasks get a plain link.
func GetPRLinkText(source, id, url string) string {
	switch source {
	case "github":
		return fmt.Sprintf("\n\nFixes #%s", id)
	case "asana":
		if url == "" {
			return ""
		}
		return fmt.Sprintf("\n\nAsana: %s", url)
	default:
		return ""
	}
}
