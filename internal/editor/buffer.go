package editor

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Indent is inserted by Tab.
const Indent = "  "

// Buffer is a multi-line text buffer with a 2D cursor. Columns count runes;
// the cursor may sit one past the last rune of a line.
type Buffer struct {
	lines [][]rune
	row   int
	col   int
	// goal is the column vertical movement tries to return to.
	goal int
}

// NewBuffer creates a buffer holding text with the cursor at the very end.
func NewBuffer(text string) *Buffer {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	b := &Buffer{lines: make([][]rune, len(parts))}
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.row = len(b.lines) - 1
	b.col = len(b.lines[b.row])
	b.goal = b.col
	return b
}

// Cursor returns the cursor row and column.
func (b *Buffer) Cursor() (row, col int) {
	return b.row, b.col
}

// SetCursor moves the cursor, clamping it into the buffer.
func (b *Buffer) SetCursor(row, col int) {
	b.row = clamp(row, 0, len(b.lines)-1)
	b.col = clamp(col, 0, len(b.lines[b.row]))
	b.goal = b.col
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i.
func (b *Buffer) Line(i int) string {
	return string(b.lines[i])
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Text returns the lines joined by newlines with surrounding whitespace trimmed.
func (b *Buffer) Text() string {
	return strings.TrimSpace(strings.Join(b.Lines(), "\n"))
}

func (b *Buffer) current() []rune {
	return b.lines[b.row]
}

// Insert inserts s at the cursor. Newlines in s split the line.
func (b *Buffer) Insert(s string) {
	for _, r := range s {
		if r == '\n' {
			b.Newline()
			continue
		}
		b.InsertRune(r)
	}
}

// InsertRune inserts a single rune at the cursor.
func (b *Buffer) InsertRune(r rune) {
	line := b.current()
	line = append(line[:b.col], append([]rune{r}, line[b.col:]...)...)
	b.lines[b.row] = line
	b.col++
	b.goal = b.col
}

// Newline splits the current line at the cursor.
func (b *Buffer) Newline() {
	line := b.current()
	head := append([]rune(nil), line[:b.col]...)
	tail := append([]rune(nil), line[b.col:]...)

	b.lines[b.row] = head
	b.lines = append(b.lines, nil)
	copy(b.lines[b.row+2:], b.lines[b.row+1:])
	b.lines[b.row+1] = tail

	b.row++
	b.col = 0
	b.goal = 0
}

// Backspace deletes the grapheme before the cursor, or joins the line onto
// the previous one when the cursor is at column 0.
func (b *Buffer) Backspace() {
	if b.col > 0 {
		start := prevBoundary(b.current(), b.col)
		b.lines[b.row] = append(b.current()[:start], b.current()[b.col:]...)
		b.col = start
		b.goal = b.col
		return
	}
	if b.row == 0 {
		return
	}
	prev := b.lines[b.row-1]
	join := len(prev)
	b.lines[b.row-1] = append(prev, b.current()...)
	b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
	b.row--
	b.col = join
	b.goal = join
}

// Delete deletes the grapheme under the cursor, or joins the next line onto
// this one when the cursor is at the end of the line.
func (b *Buffer) Delete() {
	line := b.current()
	if b.col < len(line) {
		end := nextBoundary(line, b.col)
		b.lines[b.row] = append(line[:b.col], line[end:]...)
		return
	}
	if b.row == len(b.lines)-1 {
		return
	}
	b.lines[b.row] = append(line, b.lines[b.row+1]...)
	b.lines = append(b.lines[:b.row+1], b.lines[b.row+2:]...)
}

// DeleteLine clears the current line's text, keeping the line itself.
func (b *Buffer) DeleteLine() {
	b.lines[b.row] = b.lines[b.row][:0]
	b.col = 0
	b.goal = 0
}

// Left moves one grapheme left, wrapping to the end of the previous line.
func (b *Buffer) Left() {
	switch {
	case b.col > 0:
		b.col = prevBoundary(b.current(), b.col)
	case b.row > 0:
		b.row--
		b.col = len(b.current())
	}
	b.goal = b.col
}

// Right moves one grapheme right, wrapping to the start of the next line.
func (b *Buffer) Right() {
	switch {
	case b.col < len(b.current()):
		b.col = nextBoundary(b.current(), b.col)
	case b.row < len(b.lines)-1:
		b.row++
		b.col = 0
	}
	b.goal = b.col
}

// Up moves to the previous line, keeping the goal column where possible.
func (b *Buffer) Up() {
	if b.row == 0 {
		return
	}
	b.row--
	b.col = min(b.goal, len(b.current()))
}

// Down moves to the next line, keeping the goal column where possible.
func (b *Buffer) Down() {
	if b.row == len(b.lines)-1 {
		return
	}
	b.row++
	b.col = min(b.goal, len(b.current()))
}

// Home moves to column 0.
func (b *Buffer) Home() {
	b.col = 0
	b.goal = 0
}

// End moves past the last rune of the line.
func (b *Buffer) End() {
	b.col = len(b.current())
	b.goal = b.col
}

// WordLeft moves to the start of the word before the cursor.
func (b *Buffer) WordLeft() {
	line := b.current()
	i := b.col
	for i > 0 && !isWord(line[i-1]) {
		i--
	}
	for i > 0 && isWord(line[i-1]) {
		i--
	}
	b.col = i
	b.goal = i
}

// WordRight moves to the start of the next word.
func (b *Buffer) WordRight() {
	line := b.current()
	i := b.col
	for i < len(line) && isWord(line[i]) {
		i++
	}
	for i < len(line) && !isWord(line[i]) {
		i++
	}
	b.col = i
	b.goal = i
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// boundaries returns the rune offsets of grapheme cluster boundaries in
// line, including 0 and len(line).
func boundaries(line []rune) []int {
	out := []int{0}
	g := uniseg.NewGraphemes(string(line))
	pos := 0
	for g.Next() {
		pos += len(g.Runes())
		out = append(out, pos)
	}
	return out
}

func prevBoundary(line []rune, col int) int {
	prev := 0
	for _, b := range boundaries(line) {
		if b >= col {
			break
		}
		prev = b
	}
	return prev
}

func nextBoundary(line []rune, col int) int {
	for _, b := range boundaries(line) {
		if b > col {
			return b
		}
	}
	return len(line)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
