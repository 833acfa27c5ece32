package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/git"
)

const branchPrompt = `Suggest %d short git branch names for the following work.

Rules:
1. Output a numbered list, one name per line, nothing else
2. Use lowercase words separated by hyphens, at most 5 words
3. Start with a type word when it fits: feat, fix, docs, refactor, chore, test

Work description:
%s`

// BranchNames asks for up to n branch name candidates. Returned names are
// sanitized and unique. On failure it returns the heuristic name and the
// generation error.
func (g *Generator) BranchNames(ctx context.Context, dir, description string, n int) ([]string, error) {
	reply, err := g.complete(ctx, dir, "branch names", fmt.Sprintf(branchPrompt, n, description))
	if err != nil {
		g.log.Warn("branch name generation failed, using fallback", "error", err)
		return fallbackBranch(description), err
	}

	names := sanitizeAll(parseList(reply), n)
	if len(names) == 0 {
		return fallbackBranch(description), nil
	}
	return names, nil
}

func sanitizeAll(items []string, n int) []string {
	seen := make(map[string]bool)
	var names []string
	for _, item := range items {
		name := git.SanitizeBranchName(item)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
		if len(names) == n {
			break
		}
	}
	return names
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "to": true, "of": true, "for": true,
	"and": true, "in": true, "on": true, "with": true, "when": true, "is": true,
}

func fallbackBranch(description string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(description)) {
		if stopWords[w] {
			continue
		}
		words = append(words, w)
		if len(words) == 5 {
			break
		}
	}
	if name := git.SanitizeBranchName(strings.Join(words, " ")); name != "" {
		return []string{name}
	}
	return nil
}
