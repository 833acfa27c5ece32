package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/editor"
	"github.com/zhubert/grove/internal/keys"
	"github.com/zhubert/grove/internal/ui"
)

// lineState is the simple non-modal prompt: one line submitted with Enter,
// or several lines submitted with Ctrl-D.
type lineState struct {
	buf       *editor.Buffer
	multiline bool
	outcome   editor.Outcome
}

func (l *lineState) Handle(ev keys.Event) {
	if l.outcome != editor.Pending {
		return
	}
	b := l.buf
	switch ev.Kind {
	case keys.Enter:
		if l.multiline {
			b.Newline()
		} else {
			l.outcome = editor.Saved
		}
	case keys.Escape:
		l.outcome = editor.Cancelled
	case keys.Left:
		b.Left()
	case keys.Right:
		b.Right()
	case keys.Up:
		b.Up()
	case keys.Down:
		b.Down()
	case keys.WordLeft:
		b.WordLeft()
	case keys.WordRight:
		b.WordRight()
	case keys.LineStart:
		b.Home()
	case keys.LineEnd:
		b.End()
	case keys.Backspace:
		b.Backspace()
	case keys.Delete:
		b.Delete()
	case keys.Tab:
		b.Insert(editor.Indent)
	case keys.Printable:
		b.InsertRune(ev.Rune)
	case keys.Ctrl:
		switch ev.Code {
		case keys.CtrlC:
			l.outcome = editor.Quit
		case keys.CtrlD:
			if l.multiline {
				l.outcome = editor.Saved
			}
		case keys.CtrlU:
			b.DeleteLine()
		case keys.CtrlA:
			b.Home()
		case keys.CtrlE:
			b.End()
		}
	}
}

func (l *lineState) Done() bool { return l.outcome != editor.Pending }

// endOfInput submits whatever was typed.
func (l *lineState) endOfInput() {
	if l.outcome == editor.Pending {
		l.outcome = editor.Saved
	}
}

func (l *lineState) result() editor.Result {
	if l.outcome != editor.Saved {
		return editor.Result{Outcome: l.outcome}
	}
	return editor.Result{Outcome: editor.Saved, Text: l.buf.Text()}
}

func (l *lineState) view(prompt string) []string {
	head := ui.PromptStyle.Render("? " + prompt)
	row, col := l.buf.Cursor()

	if !l.multiline {
		return []string{head + " " + withCursor(l.buf.Line(0), col)}
	}

	lines := []string{head + " " + ui.MutedStyle.Render("(ctrl+d to finish, esc to cancel)")}
	for i := 0; i < l.buf.LineCount(); i++ {
		text := l.buf.Line(i)
		if i == row {
			text = withCursor(text, col)
		}
		lines = append(lines, "  "+text)
	}
	return lines
}

func withCursor(text string, col int) string {
	runes := []rune(text)
	if col >= len(runes) {
		return text + ui.CursorCellStyle.Render(" ")
	}
	return string(runes[:col]) + ui.CursorCellStyle.Render(string(runes[col])) + string(runes[col+1:])
}

// ReadLine reads one line. End of input submits what was typed so far.
// The result is Saved on submit, Cancelled on Escape and Quit on Ctrl-C.
func (t *Terminal) ReadLine(ctx context.Context, prompt string) (editor.Result, error) {
	return t.readLines(ctx, prompt, false)
}

// ReadMultiline reads lines until Ctrl-D.
func (t *Terminal) ReadMultiline(ctx context.Context, prompt string) (editor.Result, error) {
	return t.readLines(ctx, prompt, true)
}

func (t *Terminal) readLines(ctx context.Context, prompt string, multiline bool) (editor.Result, error) {
	s, err := t.Acquire()
	if err != nil {
		return editor.Result{}, err
	}
	defer s.Release()

	l := &lineState{buf: editor.NewBuffer(""), multiline: multiline}
	kind := "line"
	if multiline {
		kind = "multiline"
	}
	view := func(int, int) []string { return l.view(prompt) }
	if err := s.run(ctx, kind, l, view, l.endOfInput); err != nil {
		return editor.Result{Outcome: editor.Cancelled}, err
	}

	res := l.result()
	s.log.Debug("line prompt resolved", "outcome", res.Outcome.String())
	return res, s.finish(lineSummary(prompt, res))
}

func lineSummary(prompt string, res editor.Result) string {
	head := ui.PromptStyle.Render("? " + prompt)
	switch {
	case res.Outcome != editor.Saved:
		return head + " " + ui.MutedStyle.Render(res.Outcome.String())
	case strings.Contains(res.Text, "\n"):
		return head + " " + ui.SuccessStyle.Render(fmt.Sprintf("%d lines", strings.Count(res.Text, "\n")+1))
	default:
		return head + " " + ui.SuccessStyle.Render(res.Text)
	}
}
