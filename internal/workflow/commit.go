package workflow

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zhubert/grove/internal/ai"
	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/prompt"
	"github.com/zhubert/grove/internal/selection"
)

// CommitOptions configures Commit.
type CommitOptions struct {
	All     bool   // stage every change without asking
	Copy    bool   // copy the final message to the clipboard
	Message string // starting message; skips generation
}

// Commit stages the chosen changes, drafts a message and commits after the
// user has reviewed it in the inline editor.
func (r *Runner) Commit(ctx context.Context, opts CommitOptions) error {
	log := r.logger()

	status, err := r.Git.GetWorktreeStatus(ctx, r.RepoPath)
	if err != nil {
		return err
	}
	if !status.HasChanges {
		return errors.E(errors.Op("workflow.Commit"), errors.KindInvalid, "nothing to commit")
	}

	paths := status.Files
	if !opts.All {
		res, err := r.UI.MultiSelect(ctx, "Files to commit", fileOptions(status.Changes), prompt.WithChecked(status.Files...))
		if err != nil {
			return err
		}
		paths, err = selectedMany(res)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return prompt.ErrCancelled
		}
	}

	if err := r.Git.UnstageAll(ctx, r.RepoPath); err != nil {
		return err
	}
	if err := r.Git.StageFiles(ctx, r.RepoPath, paths); err != nil {
		return err
	}
	log.Debug("staged files", "count", len(paths))

	message := opts.Message
	if message == "" {
		message, err = r.draftCommitMessage(ctx, chosenChanges(status.Changes, paths))
		if err != nil {
			return err
		}
	}

	res, err := r.UI.InlineEditor(ctx, message, "Commit message", "gitcommit")
	if err != nil {
		return err
	}
	message, err = saved(res)
	if err != nil {
		return err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		r.warn("empty commit message, aborting")
		return prompt.ErrCancelled
	}

	if err := r.Git.Commit(ctx, r.RepoPath, message); err != nil {
		return err
	}
	log.Info("committed", "files", len(paths))

	if opts.Copy {
		r.copyText("commit message", message)
	}
	r.success("Committed %s", subject(message))
	return nil
}

func (r *Runner) draftCommitMessage(ctx context.Context, changes []git.FileChange) (string, error) {
	diff, err := r.Git.StagedDiff(ctx, r.RepoPath)
	if err != nil {
		return "", err
	}

	var message string
	err = r.spin(ctx, "Writing commit message", func(ctx context.Context) error {
		var err error
		message, err = r.AI.CommitMessage(ctx, r.RepoPath, diff, ai.CommitStyle(r.Settings.CommitStyle), r.Settings.MaxSubject)
		return err
	})
	if err != nil {
		r.logger().Warn("commit message generation failed, using summary", "error", err)
		r.warn("message generation failed, starting from a summary: %v", err)
		return git.DescribeChanges(changes), nil
	}
	return message, nil
}

// fileOptions lists changes as menu items. When they span more than one
// directory, each directory gets a header that toggles its files.
func fileOptions(changes []git.FileChange) []selection.Option {
	byDir := make(map[string][]git.FileChange)
	var dirs []string
	for _, c := range changes {
		dir := filepath.Dir(c.Path)
		if _, ok := byDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], c)
	}
	sort.Strings(dirs)

	var options []selection.Option
	for _, dir := range dirs {
		group := byDir[dir]
		if len(dirs) > 1 {
			children := make([]string, len(group))
			for i, c := range group {
				children[i] = c.Path
			}
			label := dir + "/"
			if dir == "." {
				label = "./"
			}
			options = append(options, selection.Option{Label: label, Value: "dir:" + dir, Children: children})
		}
		for _, c := range group {
			options = append(options, selection.Option{
				Label: filepath.Base(c.Path) + " (" + c.Label() + ")",
				Value: c.Path,
			})
		}
	}
	return options
}

func chosenChanges(changes []git.FileChange, paths []string) []git.FileChange {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[p] = true
	}
	var out []git.FileChange
	for _, c := range changes {
		if want[c.Path] {
			out = append(out, c)
		}
	}
	return out
}

func subject(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}
