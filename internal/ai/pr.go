package ai

import (
	"context"
	"fmt"
	"strings"
)

const (
	titleMarker = "---TITLE---"
	bodyMarker  = "---BODY---"
)

const prPrompt = `Generate a GitHub pull request title and body for the following changes.

Output format (use exactly this format with the markers):
---TITLE---
Your PR title here in conventional commit format
---BODY---
## Summary
Brief description of what this PR does

## Changes
- Bullet points of key changes

## Test plan
- How to test these changes

Rules:
1. Title MUST follow conventional commit format and stay under 72 characters
2. Body should explain the purpose and changes clearly
3. Do NOT include any preamble - start directly with ---TITLE---

Commits in this branch:
%s

Diff:
%s`

// PRTitleAndBody writes a pull request title and body from the branch's
// commit log and diff.
func (g *Generator) PRTitleAndBody(ctx context.Context, dir, commitLog, diff string) (title, body string, err error) {
	reply, err := g.complete(ctx, dir, "PR description", fmt.Sprintf(prPrompt, commitLog, diff))
	if err != nil {
		return "", "", err
	}
	title, body = parsePR(reply)
	if title == "" {
		return "", "", fmt.Errorf("generated PR title is empty")
	}
	return title, body, nil
}

// parsePR splits a reply on the title/body markers, or uses the first line
// as the title when the markers are missing.
func parsePR(reply string) (title, body string) {
	titleStart := strings.Index(reply, titleMarker)
	bodyStart := strings.Index(reply, bodyMarker)

	if titleStart == -1 || bodyStart == -1 || bodyStart < titleStart {
		lines := strings.SplitN(strings.TrimSpace(reply), "\n", 2)
		title = strings.TrimSpace(lines[0])
		if len(lines) > 1 {
			body = strings.TrimSpace(lines[1])
		}
		return title, body
	}
	title = strings.TrimSpace(reply[titleStart+len(titleMarker) : bodyStart])
	body = strings.TrimSpace(reply[bodyStart+len(bodyMarker):])
	return title, body
}

// FallbackPR builds a title and body from `git log --oneline` output.
func FallbackPR(branch, commitLog string) (title, body string) {
	var subjects []string
	for _, line := range strings.Split(strings.TrimSpace(commitLog), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Drop the abbreviated hash
		if _, subject, ok := strings.Cut(line, " "); ok {
			line = subject
		}
		subjects = append(subjects, line)
	}

	switch len(subjects) {
	case 0:
		title = branch
	case 1:
		title = subjects[0]
	default:
		// git log lists newest first; the oldest commit usually names the work
		title = subjects[len(subjects)-1]
	}

	var b strings.Builder
	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("Changes from `%s`.\n", branch))
	if len(subjects) > 0 {
		b.WriteString("\n## Changes\n\n")
		for i := len(subjects) - 1; i >= 0; i-- {
			b.WriteString("- " + subjects[i] + "\n")
		}
	}
	return title, strings.TrimSpace(b.String())
}

// ApplyTemplate fills {{summary}} and {{changes}} in a repo PR template.
// An empty template returns body unchanged.
func ApplyTemplate(template, body string) string {
	if template == "" {
		return body
	}
	summary, changes := body, ""
	if i := strings.Index(body, "## Changes"); i >= 0 {
		summary = strings.TrimSpace(body[:i])
		changes = strings.TrimSpace(strings.TrimPrefix(body[i:], "## Changes"))
	}
	summary = strings.TrimSpace(strings.TrimPrefix(summary, "## Summary"))

	out := strings.ReplaceAll(template, "{{summary}}", summary)
	return strings.ReplaceAll(out, "{{changes}}", changes)
}
