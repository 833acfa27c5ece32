package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/issues"
	"github.com/zhubert/grove/internal/prompt"
	"github.com/zhubert/grove/internal/selection"
)

// branchCandidates is how many names are requested from the generator.
const branchCandidates = 4

const customValue = "\x00custom"

// BranchOptions configures NewBranch.
type BranchOptions struct {
	Description string // skips the description prompt
	TaskID      string // looks the task up instead of prompting
	FromTask    bool   // pick the task from a menu
	Base        string // start point, HEAD when empty
}

// NewBranch suggests names for a piece of work, lets the user pick or type
// one and creates the branch. It returns the created branch name.
func (r *Runner) NewBranch(ctx context.Context, opts BranchOptions) (string, error) {
	log := r.logger()

	var task *issues.Issue
	description := strings.TrimSpace(opts.Description)
	switch {
	case opts.TaskID != "":
		if err := r.requireTasks(); err != nil {
			return "", err
		}
		var issue issues.Issue
		err := r.spin(ctx, "Fetching "+r.Tasks.Name(), func(ctx context.Context) error {
			var err error
			issue, err = issues.Find(ctx, r.Tasks, opts.TaskID)
			return err
		})
		if err != nil {
			return "", err
		}
		task = &issue
	case opts.FromTask:
		issue, err := r.PickTask(ctx)
		if err != nil {
			return "", err
		}
		task = &issue
	}
	if task != nil && description == "" {
		description = strings.TrimSpace(task.Title + "\n\n" + task.Body)
	}

	if description == "" {
		res, err := r.UI.ReadLine(ctx, "What are you working on?")
		if err != nil {
			return "", err
		}
		text, err := saved(res)
		if err != nil {
			return "", err
		}
		description = strings.TrimSpace(text)
		if description == "" {
			return "", prompt.ErrCancelled
		}
	}

	var names []string
	err := r.spin(ctx, "Suggesting branch names", func(ctx context.Context) error {
		var err error
		names, err = r.AI.BranchNames(ctx, r.RepoPath, description, branchCandidates)
		return err
	})
	if err != nil {
		if len(names) == 0 {
			return "", err
		}
		log.Warn("using fallback branch name", "error", err)
		r.warn("name generation failed, using a fallback: %v", err)
	}

	name, err := r.chooseBranchName(ctx, names)
	if err != nil {
		return "", err
	}

	branch := git.BranchName(r.Settings.BranchPrefix, name)
	branch = r.Git.UniqueBranchName(ctx, r.RepoPath, branch)
	if err := r.Git.CreateBranch(ctx, r.RepoPath, branch, opts.Base); err != nil {
		return "", err
	}
	log.Info("created branch", "branch", branch, "base", opts.Base)

	if task != nil {
		if err := r.Git.SetBranchConfig(ctx, r.RepoPath, branch, taskKey, encodeTask(*task)); err != nil {
			log.Warn("failed to link task to branch", "branch", branch, "error", err)
		}
	}

	r.success("Switched to new branch %s", branch)
	return branch, nil
}

func (r *Runner) chooseBranchName(ctx context.Context, names []string) (string, error) {
	options := make([]selection.Option, 0, len(names)+1)
	for _, n := range names {
		options = append(options, selection.Option{Label: git.BranchName(r.Settings.BranchPrefix, n), Value: n})
	}
	options = append(options, selection.Option{Label: "Write my own…", Value: customValue})

	res, err := r.UI.SingleSelect(ctx, "Branch name", options)
	if err != nil {
		return "", err
	}
	choice, err := selected(res)
	if err != nil {
		return "", err
	}
	if choice != customValue {
		return choice, nil
	}

	line, err := r.UI.ReadLine(ctx, "Branch name")
	if err != nil {
		return "", err
	}
	text, err := saved(line)
	if err != nil {
		return "", err
	}
	name := git.SanitizeBranchName(text)
	if name == "" {
		return "", errors.E(errors.Op("workflow.NewBranch"), errors.KindInvalid,
			fmt.Sprintf("%q is not usable as a branch name", text))
	}
	return name, nil
}

// linkedTask returns the task stored on branch by NewBranch.
func (r *Runner) linkedTask(ctx context.Context, branch string) (issues.Issue, bool) {
	return decodeTask(r.Git.GetBranchConfig(ctx, r.RepoPath, branch, taskKey))
}
