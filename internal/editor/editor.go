// Package editor implements the modal inline text editor: a multi-line
// buffer driven by key events, rendered with syntax highlighting into a
// scrolling viewport with a status footer.
package editor

import (
	"github.com/zhubert/grove/internal/highlight"
	"github.com/zhubert/grove/internal/keys"
)

// Outcome is how an editing session ended.
type Outcome int

const (
	Pending Outcome = iota
	// Saved means the user confirmed the text.
	Saved
	// Cancelled means the edits were discarded.
	Cancelled
	// Quit means the user asked to stop the whole program.
	Quit
)

func (o Outcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case Cancelled:
		return "cancelled"
	case Quit:
		return "quit"
	default:
		return "pending"
	}
}

// Result is the outcome of an editing session. Text is set only when Saved.
type Result struct {
	Outcome Outcome
	Text    string
}

// Editor is one inline editing session.
type Editor struct {
	buf      *Buffer
	label    string
	category highlight.Category
	outcome  Outcome
}

// New creates an editor over initialText. syntaxHint selects highlighting
// (an extension, file name or language name).
func New(initialText, label, syntaxHint string) *Editor {
	return &Editor{
		buf:      NewBuffer(initialText),
		label:    label,
		category: highlight.Resolve(syntaxHint),
	}
}

// Buffer exposes the underlying buffer.
func (e *Editor) Buffer() *Buffer { return e.buf }

// Category returns the highlight category in use.
func (e *Editor) Category() highlight.Category { return e.category }

// Handle applies one key event. Events after the session ended are ignored.
func (e *Editor) Handle(ev keys.Event) {
	if e.outcome != Pending {
		return
	}

	b := e.buf
	switch ev.Kind {
	case keys.Escape:
		e.outcome = Cancelled
	case keys.Up:
		b.Up()
	case keys.Down:
		b.Down()
	case keys.Left:
		b.Left()
	case keys.Right:
		b.Right()
	case keys.WordLeft:
		b.WordLeft()
	case keys.WordRight:
		b.WordRight()
	case keys.LineStart:
		b.Home()
	case keys.LineEnd:
		b.End()
	case keys.Enter:
		b.Newline()
	case keys.Backspace:
		b.Backspace()
	case keys.Delete:
		b.Delete()
	case keys.Tab:
		b.Insert(Indent)
	case keys.Printable:
		b.InsertRune(ev.Rune)
	case keys.Ctrl:
		switch ev.Code {
		case keys.CtrlS:
			e.outcome = Saved
		case keys.CtrlC:
			e.outcome = Quit
		case keys.CtrlK:
			b.DeleteLine()
		case keys.CtrlA:
			b.Home()
		case keys.CtrlE:
			b.End()
		}
	}
}

// Done reports whether the session ended.
func (e *Editor) Done() bool { return e.outcome != Pending }

// Cancel ends the session without saving, e.g. on end of input.
func (e *Editor) Cancel() {
	if e.outcome == Pending {
		e.outcome = Cancelled
	}
}

// Result returns the outcome, with the trimmed text when saved.
func (e *Editor) Result() Result {
	if e.outcome != Saved {
		return Result{Outcome: e.outcome}
	}
	return Result{Outcome: Saved, Text: e.buf.Text()}
}
