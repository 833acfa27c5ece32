// Package workflow composes the interactive prompts with git, text
// generation and task boards into the branch, commit and pull request flows.
package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/zhubert/grove/internal/ai"
	"github.com/zhubert/grove/internal/clipboard"
	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/editor"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/issues"
	"github.com/zhubert/grove/internal/logger"
	"github.com/zhubert/grove/internal/prompt"
	"github.com/zhubert/grove/internal/selection"
	"github.com/zhubert/grove/internal/ui"
)

// Prompter is the interactive surface the flows drive. *prompt.Terminal
// implements it.
type Prompter interface {
	SingleSelect(ctx context.Context, prompt string, options []selection.Option) (selection.Result, error)
	MultiSelect(ctx context.Context, prompt string, options []selection.Option, opts ...prompt.MultiOption) (selection.MultiResult, error)
	InlineEditor(ctx context.Context, initialText, label, syntaxHint string) (editor.Result, error)
	ReadLine(ctx context.Context, prompt string) (editor.Result, error)
}

// SpinFunc runs fn while showing title as in-progress.
type SpinFunc func(ctx context.Context, title string, fn func(ctx context.Context) error) error

// Runner holds everything the flows need for one repository.
type Runner struct {
	UI       Prompter
	Git      *git.GitService
	AI       *ai.Generator
	Tasks    issues.Provider // nil when the repo has no task source
	Settings config.Settings
	RepoPath string
	Out      io.Writer

	// Optional hooks; nil disables them.
	Copy   clipboard.Writer
	Notify func(branch, url string) error
	Spin   SpinFunc

	log *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.log == nil {
		r.log = logger.ComponentLogger("workflow")
	}
	return r.log
}

func (r *Runner) spin(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	if r.Spin == nil {
		return fn(ctx)
	}
	return r.Spin(ctx, title, fn)
}

func (r *Runner) success(format string, args ...any) {
	fmt.Fprintf(r.Out, "%s %s\n", ui.SuccessStyle.Render("✓"), fmt.Sprintf(format, args...))
}

func (r *Runner) warn(format string, args ...any) {
	fmt.Fprintf(r.Out, "%s %s\n", ui.WarningStyle.Render("!"), fmt.Sprintf(format, args...))
}

func (r *Runner) copyText(what, text string) {
	if r.Copy == nil {
		return
	}
	if err := r.Copy(text); err != nil {
		r.warn("could not copy %s: %v", what, err)
		return
	}
	r.success("Copied %s to clipboard", what)
}

// selected converts a menu outcome into a value or a sentinel error.
func selected(res selection.Result) (string, error) {
	switch res.Outcome {
	case selection.Selected:
		return res.Value, nil
	case selection.Quit:
		return "", prompt.ErrQuit
	default:
		return "", prompt.ErrCancelled
	}
}

func selectedMany(res selection.MultiResult) ([]string, error) {
	switch res.Outcome {
	case selection.Selected:
		return res.Values, nil
	case selection.Quit:
		return nil, prompt.ErrQuit
	default:
		return nil, prompt.ErrCancelled
	}
}

// saved converts an editor or line outcome into text or a sentinel error.
func saved(res editor.Result) (string, error) {
	switch res.Outcome {
	case editor.Saved:
		return res.Text, nil
	case editor.Quit:
		return "", prompt.ErrQuit
	default:
		return "", prompt.ErrCancelled
	}
}
