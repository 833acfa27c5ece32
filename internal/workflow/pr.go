package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/ai"
	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/prompt"
	"github.com/zhubert/grove/internal/selection"
)

// PROptions configures PullRequest.
type PROptions struct {
	Base  string // overrides pr.base and the detected default branch
	Draft bool   // preselects the draft choice
	Copy  bool   // copy the PR URL to the clipboard
}

const (
	confirmCreate = "create"
	confirmDraft  = "draft"
	confirmCancel = "cancel"
)

// PullRequest drafts a title and body for the current branch, lets the user
// edit them, pushes the branch and opens the pull request. It returns the
// PR URL.
func (r *Runner) PullRequest(ctx context.Context, opts PROptions) (string, error) {
	log := r.logger()

	branch, err := r.Git.GetCurrentBranch(ctx, r.RepoPath)
	if err != nil {
		return "", err
	}
	base := opts.Base
	if base == "" {
		base = r.Settings.PRBase
	}
	if base == "" {
		base = r.Git.GetDefaultBranch(ctx, r.RepoPath)
	}
	if branch == base {
		return "", errors.E(errors.Op("workflow.PullRequest"), errors.KindInvalid,
			fmt.Sprintf("already on %s; create a branch first", base))
	}

	commitLog, err := r.Git.CommitLog(ctx, r.RepoPath, base, branch)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(commitLog) == "" {
		return "", errors.E(errors.Op("workflow.PullRequest"), errors.KindInvalid,
			fmt.Sprintf("%s has no commits ahead of %s", branch, base))
	}
	diff, err := r.Git.BranchDiff(ctx, r.RepoPath, base, branch)
	if err != nil {
		return "", err
	}

	var title, body string
	err = r.spin(ctx, "Writing pull request", func(ctx context.Context) error {
		var err error
		title, body, err = r.AI.PRTitleAndBody(ctx, r.RepoPath, commitLog, diff)
		return err
	})
	if err != nil {
		log.Warn("PR generation failed, using commit log", "error", err)
		r.warn("description generation failed, starting from the commit log: %v", err)
		title, body = ai.FallbackPR(branch, commitLog)
	}
	body = ai.ApplyTemplate(r.Settings.PRTemplate, body)
	if task, ok := r.linkedTask(ctx, branch); ok {
		body += git.GetPRLinkText(string(task.Source), task.ID, task.URL)
	}

	res, err := r.UI.InlineEditor(ctx, title+"\n\n"+body, "Pull request", "md")
	if err != nil {
		return "", err
	}
	text, err := saved(res)
	if err != nil {
		return "", err
	}
	title, body = splitTitle(text)
	if title == "" {
		r.warn("empty title, aborting")
		return "", prompt.ErrCancelled
	}

	draft, err := r.confirmPR(ctx, base, branch, opts.Draft || r.Settings.PRDraft)
	if err != nil {
		return "", err
	}

	var url string
	err = r.spin(ctx, "Pushing "+branch, func(ctx context.Context) error {
		if err := r.Git.Push(ctx, r.RepoPath, branch); err != nil {
			return err
		}
		var err error
		url, err = r.Git.CreatePR(ctx, r.RepoPath, git.PROptions{
			Base:  base,
			Head:  branch,
			Title: title,
			Body:  body,
			Draft: draft,
		})
		return err
	})
	if err != nil {
		return "", err
	}
	log.Info("opened PR", "branch", branch, "url", url, "draft", draft)

	if opts.Copy {
		r.copyText("PR URL", url)
	}
	if r.Notify != nil && r.Settings.Notifications {
		if err := r.Notify(branch, url); err != nil {
			log.Warn("notification failed", "error", err)
		}
	}
	r.success("Opened %s", url)
	return url, nil
}

func (r *Runner) confirmPR(ctx context.Context, base, branch string, draft bool) (bool, error) {
	options := []selection.Option{
		{Label: "Create pull request", Value: confirmCreate},
		{Label: "Create as draft", Value: confirmDraft},
		{Label: "Cancel", Value: confirmCancel},
	}
	if draft {
		options[0], options[1] = options[1], options[0]
	}
	res, err := r.UI.SingleSelect(ctx, fmt.Sprintf("Open %s → %s?", branch, base), options)
	if err != nil {
		return false, err
	}
	choice, err := selected(res)
	if err != nil {
		return false, err
	}
	switch choice {
	case confirmCreate:
		return false, nil
	case confirmDraft:
		return true, nil
	default:
		return false, prompt.ErrCancelled
	}
}

// splitTitle takes the first non-blank line as the title and the rest as
// the body.
func splitTitle(text string) (title, body string) {
	text = strings.TrimLeft(text, "\n")
	title, body, _ = strings.Cut(text, "\n")
	return strings.TrimSpace(title), strings.TrimSpace(body)
}
