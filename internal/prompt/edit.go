package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/editor"
	"github.com/zhubert/grove/internal/ui"
)

// InlineEditor opens initialText in the modal editor. The result carries
// the trimmed text when saved; Escape discards every edit.
func (t *Terminal) InlineEditor(ctx context.Context, initialText, label, syntaxHint string) (editor.Result, error) {
	s, err := t.Acquire()
	if err != nil {
		return editor.Result{}, err
	}
	defer s.Release()

	ed := editor.New(initialText, label, syntaxHint)
	if err := s.run(ctx, "editor", ed, ed.View, ed.Cancel); err != nil {
		return editor.Result{Outcome: editor.Cancelled}, err
	}

	res := ed.Result()
	s.log.Debug("editor resolved", "outcome", res.Outcome.String(), "bytes", len(res.Text))
	return res, s.finish(editSummary(label, res))
}

func editSummary(label string, res editor.Result) string {
	if label == "" {
		label = "Edit"
	}
	head := ui.PromptStyle.Render("? " + label)
	switch res.Outcome {
	case editor.Saved:
		n := 0
		if res.Text != "" {
			n = strings.Count(res.Text, "\n") + 1
		}
		return head + " " + ui.SuccessStyle.Render(fmt.Sprintf("saved (%d lines)", n))
	case editor.Quit:
		return head + " " + ui.MutedStyle.Render("quit")
	default:
		return head + " " + ui.MutedStyle.Render("discarded")
	}
}
