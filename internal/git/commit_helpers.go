package git

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/logger"
)

// StageFiles adds the given paths (including deletions) to the index.
func (s *GitService) StageFiles(ctx context.Context, repoPath string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "-A", "--"}, paths...)
	_, err := s.git(ctx, repoPath, args...)
	return err
}

// UnstageAll empties the index without touching the working tree.
func (s *GitService) UnstageAll(ctx context.Context, repoPath string) error {
	if s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", "HEAD") != nil {
		// Nothing committed yet; the index is all there is
		_, err := s.git(ctx, repoPath, "rm", "-r", "-q", "--cached", "--ignore-unmatch", ".")
		return err
	}
	_, err := s.git(ctx, repoPath, "reset", "-q")
	return err
}

// Commit records the index with message.
func (s *GitService) Commit(ctx context.Context, repoPath, message string) error {
	logger.ComponentLogger("git").Info("committing", "repo", repoPath, "subject", firstLine(message))
	_, err := s.git(ctx, repoPath, "commit", "-m", message)
	return err
}

// CommitAll stages everything and commits it.
func (s *GitService) CommitAll(ctx context.Context, repoPath, message string) error {
	if _, err := s.git(ctx, repoPath, "add", "-A"); err != nil {
		return err
	}
	return s.Commit(ctx, repoPath, message)
}

// GenerateCommitMessage builds a commit message from the file list alone.
// It is the fallback when text generation is unavailable.
func (s *GitService) GenerateCommitMessage(ctx context.Context, repoPath string) (string, error) {
	status, err := s.GetWorktreeStatus(ctx, repoPath)
	if err != nil {
		return "", err
	}
	if !status.HasChanges {
		return "", errors.E(errors.Op("git.GenerateCommitMessage"), errors.KindInvalid, "no changes to commit")
	}
	return DescribeChanges(status.Changes), nil
}

// DescribeChanges writes a subject summarizing changes followed by one
// bullet per file.
func DescribeChanges(changes []FileChange) string {
	var subject string
	if len(changes) == 1 {
		c := changes[0]
		subject = fmt.Sprintf("Update %s", path.Base(c.Path))
		if c.Label() == "new" || c.Label() == "added" {
			subject = fmt.Sprintf("Add %s", path.Base(c.Path))
		}
	} else {
		dirs := make(map[string]bool)
		for _, c := range changes {
			dirs[path.Dir(c.Path)] = true
		}
		if len(dirs) == 1 {
			for d := range dirs {
				if d != "." {
					subject = fmt.Sprintf("Update %d files in %s", len(changes), d)
				}
			}
		}
		if subject == "" {
			subject = fmt.Sprintf("Update %d files", len(changes))
		}
	}

	lines := make([]string, 0, len(changes))
	for _, c := range changes {
		lines = append(lines, fmt.Sprintf("- %s (%s)", c.Path, c.Label()))
	}
	sort.Strings(lines)

	count := "1 file changed"
	if len(changes) != 1 {
		count = fmt.Sprintf("%d files changed", len(changes))
	}
	return subject + "\n\n" + count + ":\n" + strings.Join(lines, "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
