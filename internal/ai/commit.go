package ai

import (
	"context"
	"fmt"
	"strings"
)

const conventionalRules = `1. First line MUST follow conventional commit format: <type>[optional scope]: <description>
   - type: feat, fix, docs, style, refactor, perf, test, build, ci, chore, revert
   - description: imperative mood, lowercase, no period at end
   - Keep the first line under %d characters
2. Leave a blank line, then explain what changed and why in a few lines
3. Output only the commit message, no preamble, no code fences`

const plainRules = `1. First line is a short summary in imperative mood, under %d characters
2. Leave a blank line, then explain what changed and why in a few lines
3. Output only the commit message, no preamble, no code fences`

// CommitStyle selects the subject line format.
type CommitStyle string

const (
	Conventional CommitStyle = "conventional"
	Plain        CommitStyle = "plain"
)

// CommitMessage writes a commit message for a staged diff.
func (g *Generator) CommitMessage(ctx context.Context, dir, diff string, style CommitStyle, maxSubject int) (string, error) {
	rules := conventionalRules
	if style == Plain {
		rules = plainRules
	}
	prompt := fmt.Sprintf("Write a git commit message for the following staged changes.\n\nRules:\n"+rules+"\n\nDiff:\n%s",
		maxSubject, diff)

	reply, err := g.complete(ctx, dir, "commit message", prompt)
	if err != nil {
		return "", err
	}
	return shortenSubject(stripFence(reply), maxSubject), nil
}

// shortenSubject truncates the first line at a word boundary.
func shortenSubject(msg string, max int) string {
	if max <= 0 {
		return msg
	}
	subject, rest, hasRest := strings.Cut(msg, "\n")
	if len(subject) <= max {
		return msg
	}
	cut := subject[:max]
	if i := strings.LastIndexByte(cut, ' '); i > max/2 {
		cut = cut[:i]
	}
	if hasRest {
		return cut + "\n" + rest
	}
	return cut
}
