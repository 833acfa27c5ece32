package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/grove/internal/highlight"
	"github.com/zhubert/grove/internal/ui"
)

const (
	// reservedRows are the label and footer lines around the text.
	reservedRows = 3
	minRows      = 3
	maxRows      = 30
	// defaultRows is used when the terminal height is unknown.
	defaultRows = 12

	gutterWidth = 6 // line number, separator and a space
)

// ViewportRows returns how many text rows fit in a terminal of the given
// height.
func ViewportRows(height int) int {
	if height <= 0 {
		return defaultRows
	}
	return clamp(height-reservedRows, minRows, maxRows)
}

// Anchor returns the first visible row. The viewport ends at the cursor row
// once the cursor moves past the bottom.
func Anchor(cursorRow, rows int) int {
	return max(0, cursorRow-rows+1)
}

// View renders the editor for a terminal of the given size.
func (e *Editor) View(width, height int) []string {
	rows := ViewportRows(height)
	row, col := e.buf.Cursor()
	top := Anchor(row, rows)
	textWidth := max(width-gutterWidth-1, 1)

	lines := make([]string, 0, rows+2)
	lines = append(lines, e.header())

	for i := top; i < top+rows; i++ {
		if i >= e.buf.LineCount() {
			lines = append(lines, ui.GutterStyle.Render(fmt.Sprintf("%4s ", "~")))
			continue
		}
		gutter := ui.GutterStyle.Render(fmt.Sprintf("%4d│", i+1)) + " "
		line := e.buf.lines[i]
		spans := highlight.Tokenize(string(line), e.category)
		if i == row {
			start := scrollStart(line, col, textWidth)
			lines = append(lines, gutter+renderLine(line, spans, start, textWidth, col))
		} else {
			lines = append(lines, gutter+renderLine(line, spans, 0, textWidth, -1))
		}
	}

	lines = append(lines, e.footer(width))
	return lines
}

func (e *Editor) header() string {
	label := e.label
	if label == "" {
		label = "Edit"
	}
	info := fmt.Sprintf("%s · %d lines", e.category, e.buf.LineCount())
	return ui.EditorLabelStyle.Render(label) + " " + ui.MutedStyle.Render(info)
}

func (e *Editor) footer(width int) string {
	row, col := e.buf.Cursor()
	pos := ui.EditorFooterStyle.Render(fmt.Sprintf("Ln %d, Col %d", row+1, col+1))
	hints := strings.Join([]string{
		ui.Hint("ctrl+s", "save"),
		ui.Hint("esc", "cancel"),
		ui.Hint("ctrl+k", "clear line"),
	}, "  ")

	gap := width - 1 - ansi.StringWidth(hints) - ansi.StringWidth(pos)
	if gap < 2 {
		return pos + "  " + hints
	}
	return hints + strings.Repeat(" ", gap) + pos
}

// scrollStart returns the first rune shown on the cursor line so the cursor
// cell fits inside width.
func scrollStart(line []rune, col, width int) int {
	cells := 1 // the cursor cell itself
	start := col
	for start > 0 {
		w := cellWidth(line[start-1])
		if cells+w > width {
			break
		}
		cells += w
		start--
	}
	return start
}

// renderLine draws line from rune start, at most width cells, with
// highlighting and, if cursor >= 0, a reverse-video cursor cell.
func renderLine(line []rune, spans []highlight.Span, start, width, cursor int) string {
	var b strings.Builder
	var run strings.Builder
	runClass := highlight.Class(-1)

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runClass > 0 {
			b.WriteString(runClass.Style().Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}

	cells := 0
	for i := start; i < len(line); i++ {
		r := line[i]
		w := cellWidth(r)
		if cells+w > width {
			break
		}
		cells += w
		if i == cursor {
			flush()
			b.WriteString(ui.CursorCellStyle.Render(string(displayRune(r))))
			runClass = -1
			continue
		}
		class := highlight.StyleAt(spans, i)
		if class != runClass {
			flush()
			runClass = class
		}
		run.WriteRune(displayRune(r))
	}
	flush()

	if cursor == len(line) && cells < width {
		b.WriteString(ui.CursorCellStyle.Render(" "))
	}
	return b.String()
}

func displayRune(r rune) rune {
	if r < 0x20 || r == 0x7f {
		return ' '
	}
	return r
}

func cellWidth(r rune) int {
	if w := runewidth.RuneWidth(displayRune(r)); w > 0 {
		return w
	}
	return 1
}
