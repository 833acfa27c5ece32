package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	pexec "github.com/zhubert/grove/internal/exec"
	"github.com/zhubert/grove/internal/logger"
)

// MaxDiffSize caps the diff text handed to text generation.
const MaxDiffSize = 50000

// GitService runs git and gh through a CommandExecutor.
type GitService struct {
	executor pexec.CommandExecutor
}

// NewGitService returns a service that runs real commands.
func NewGitService() *GitService {
	return &GitService{executor: pexec.NewRealExecutor()}
}

// NewGitServiceWithExecutor returns a service using the given executor.
func NewGitServiceWithExecutor(executor pexec.CommandExecutor) *GitService {
	return &GitService{executor: executor}
}

// Executor exposes the executor so sibling services can share it.
func (s *GitService) Executor() pexec.CommandExecutor {
	return s.executor
}

func (s *GitService) git(ctx context.Context, repoPath string, args ...string) (string, error) {
	out, err := s.executor.Output(ctx, repoPath, "git", args...)
	if err != nil {
		return string(out), errors.GitCommandFailed(strings.Join(args, " "), err)
	}
	return string(out), nil
}

// RepoRoot returns the top-level directory of the repository containing dir.
func (s *GitService) RepoRoot(ctx context.Context, dir string) (string, error) {
	out, err := s.executor.Output(ctx, dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.GitNotRepo(dir)
	}
	return strings.TrimSpace(string(out)), nil
}

// HasRemoteOrigin checks if the repository has a remote named "origin"
func (s *GitService) HasRemoteOrigin(ctx context.Context, repoPath string) bool {
	return s.executor.Run(ctx, repoPath, "git", "remote", "get-url", "origin") == nil
}

// GetDefaultBranch returns the default branch name (main or master)
func (s *GitService) GetDefaultBranch(ctx context.Context, repoPath string) string {
	// Output is like "refs/remotes/origin/main"
	if out, err := s.executor.Output(ctx, repoPath, "git", "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		ref := strings.TrimSpace(string(out))
		if i := strings.LastIndex(ref, "/"); i >= 0 && i < len(ref)-1 {
			return ref[i+1:]
		}
	}

	// Fallback: check if main exists, otherwise use master
	if s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", "main") == nil {
		return "main"
	}
	return "master"
}

// GetCurrentBranch returns the checked out branch. A detached HEAD is an error.
func (s *GitService) GetCurrentBranch(ctx context.Context, repoPath string) (string, error) {
	out, err := s.git(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(out)
	if branch == "HEAD" {
		return "", errors.E(errors.Op("git.GetCurrentBranch"), errors.KindGit, "HEAD is detached")
	}
	return branch, nil
}

// FileChange is one entry of `git status`.
type FileChange struct {
	Path   string
	Status string // two-letter porcelain code, e.g. " M", "A ", "??"
}

// Staged reports whether the index holds a change for the file.
func (f FileChange) Staged() bool {
	x := f.Status[0]
	return x != ' ' && x != '?'
}

// Label is a short human description of the status code.
func (f FileChange) Label() string {
	code := strings.TrimSpace(f.Status)
	switch {
	case code == "??":
		return "new"
	case strings.Contains(code, "D"):
		return "deleted"
	case strings.Contains(code, "R"):
		return "renamed"
	case strings.Contains(code, "A"):
		return "added"
	case strings.Contains(code, "U"):
		return "conflict"
	default:
		return "modified"
	}
}

// WorktreeStatus summarizes uncommitted changes.
type WorktreeStatus struct {
	HasChanges bool
	Summary    string
	Files      []string
	Changes    []FileChange
	Diff       string
}

// GetWorktreeStatus lists changed files (untracked included) and the diff
// against HEAD.
func (s *GitService) GetWorktreeStatus(ctx context.Context, repoPath string) (*WorktreeStatus, error) {
	log := logger.ComponentLogger("git")

	out, err := s.git(ctx, repoPath, "status", "--porcelain", "-uall")
	if err != nil {
		return nil, err
	}
	changes := parsePorcelain(out)

	status := &WorktreeStatus{HasChanges: len(changes) > 0, Changes: changes}
	for _, c := range changes {
		status.Files = append(status.Files, c.Path)
	}
	switch len(changes) {
	case 0:
		status.Summary = "No changes"
		return status, nil
	case 1:
		status.Summary = "1 file changed"
	default:
		status.Summary = fmt.Sprintf("%d files changed", len(changes))
	}

	// HEAD doesn't exist before the first commit
	diff, err := s.git(ctx, repoPath, "diff", "--no-ext-diff", "HEAD")
	if err != nil {
		log.Debug("diff against HEAD failed, using index diff", "error", err)
		diff, _ = s.git(ctx, repoPath, "diff", "--no-ext-diff")
	}
	status.Diff = truncateDiff(diff)
	return status, nil
}

// parsePorcelain parses `git status --porcelain` v1 output.
func parsePorcelain(out string) []FileChange {
	var changes []FileChange
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		if strings.HasPrefix(path, `"`) {
			if unq, err := strconv.Unquote(path); err == nil {
				path = unq
			}
		}
		changes = append(changes, FileChange{Path: path, Status: line[:2]})
	}
	return changes
}

// StagedDiff returns the diff of the index against HEAD.
func (s *GitService) StagedDiff(ctx context.Context, repoPath string) (string, error) {
	diff, err := s.git(ctx, repoPath, "diff", "--no-ext-diff", "--cached")
	if err != nil {
		return "", err
	}
	return truncateDiff(diff), nil
}

// CommitLog returns one line per commit on branch that isn't on base.
func (s *GitService) CommitLog(ctx context.Context, repoPath, base, branch string) (string, error) {
	out, err := s.git(ctx, repoPath, "log", fmt.Sprintf("%s..%s", base, branch), "--oneline")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// BranchDiff returns the diff of branch against its merge base with base.
func (s *GitService) BranchDiff(ctx context.Context, repoPath, base, branch string) (string, error) {
	diff, err := s.git(ctx, repoPath, "diff", "--no-ext-diff", fmt.Sprintf("%s...%s", base, branch))
	if err != nil {
		return "", err
	}
	return truncateDiff(diff), nil
}

func truncateDiff(diff string) string {
	if len(diff) > MaxDiffSize {
		return diff[:MaxDiffSize] + "\n... (diff truncated)"
	}
	return diff
}
