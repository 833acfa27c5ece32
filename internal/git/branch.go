package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/logger"
)

// MaxBranchNameLength bounds the sanitized part of a branch name.
const MaxBranchNameLength = 50

// SanitizeBranchName turns free text into a lowercase, hyphenated ref
// component. Characters other than letters, digits and hyphens are dropped.
func SanitizeBranchName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '\t':
			b.WriteRune('-')
		}
	}

	result := b.String()
	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	result = strings.Trim(result, "-")
	if len(result) > MaxBranchNameLength {
		result = strings.TrimRight(result[:MaxBranchNameLength], "-")
	}
	return result
}

// BranchName joins prefix and the sanitized name.
func BranchName(prefix, name string) string {
	sanitized := SanitizeBranchName(name)
	if sanitized == "" {
		return ""
	}
	return prefix + sanitized
}

// BranchExists reports whether a local branch exists.
func (s *GitService) BranchExists(ctx context.Context, repoPath, branch string) bool {
	return s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", "--quiet", "refs/heads/"+branch) == nil
}

// UniqueBranchName appends -2, -3, ... until the name is free.
func (s *GitService) UniqueBranchName(ctx context.Context, repoPath, branch string) string {
	if !s.BranchExists(ctx, repoPath, branch) {
		return branch
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", branch, i)
		if !s.BranchExists(ctx, repoPath, candidate) {
			return candidate
		}
	}
}

// CreateBranch creates branch from base (HEAD when empty) and checks it out.
func (s *GitService) CreateBranch(ctx context.Context, repoPath, branch, base string) error {
	logger.ComponentLogger("git").Info("creating branch", "branch", branch, "base", base)
	args := []string{"checkout", "-b", branch}
	if base != "" {
		args = append(args, base)
	}
	if _, err := s.git(ctx, repoPath, args...); err != nil {
		return errors.BranchCreateFailed(branch, err)
	}
	return nil
}

// CheckoutBranch switches to an existing branch.
func (s *GitService) CheckoutBranch(ctx context.Context, repoPath, branch string) error {
	_, err := s.git(ctx, repoPath, "checkout", branch)
	return err
}

func branchConfigKey(branch, key string) string {
	return fmt.Sprintf("branch.%s.%s", branch, key)
}

// SetBranchConfig stores a value in the branch's git config section.
func (s *GitService) SetBranchConfig(ctx context.Context, repoPath, branch, key, value string) error {
	_, err := s.git(ctx, repoPath, "config", "--local", branchConfigKey(branch, key), value)
	return err
}

// GetBranchConfig reads a value from the branch's git config section.
// Unset keys return "".
func (s *GitService) GetBranchConfig(ctx context.Context, repoPath, branch, key string) string {
	out, err := s.executor.Output(ctx, repoPath, "git", "config", "--local", "--get", branchConfigKey(branch, key))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
