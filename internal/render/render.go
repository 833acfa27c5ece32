// Package render repaints an in-place terminal frame.
//
// A Renderer remembers how many lines the previous frame occupied. Each Paint
// moves the cursor back up over that frame, erases to the end of the screen
// and writes the new frame, all in a single write. The screen is never
// cleared as a whole, so content printed above the frame stays put.
//
// The terminal width is re-queried on every Paint. A resize between frames is
// not detected; the next keypress repaints at the new width.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/grove/internal/errors"
)

// DefaultWidth is used when the terminal size cannot be determined.
const DefaultWidth = 80

// Frame is the only render state carried between paints.
type Frame struct {
	// Lines is how many lines the last paint left on screen.
	Lines int
}

// Renderer writes frames to out.
type Renderer struct {
	out   io.Writer
	size  func() (width, height int, err error)
	frame Frame
}

// New creates a renderer. size reports the terminal dimensions and may be nil.
func New(out io.Writer, size func() (int, int, error)) *Renderer {
	return &Renderer{out: out, size: size}
}

// Width returns the current terminal width.
func (r *Renderer) Width() int {
	w, _ := r.Size()
	return w
}

// Size returns the current terminal dimensions; 0 height means unknown.
func (r *Renderer) Size() (int, int) {
	if r.size == nil {
		return DefaultWidth, 0
	}
	w, h, err := r.size()
	if err != nil || w <= 0 {
		return DefaultWidth, h
	}
	return w, h
}

// Frame returns the state of the last paint.
func (r *Renderer) Frame() Frame {
	return r.frame
}

// Paint replaces the previous frame with lines. Lines are truncated to the
// terminal width so the frame never wraps and the line count stays exact.
func (r *Renderer) Paint(lines []string) error {
	width := r.Width()

	var b strings.Builder
	b.WriteString(r.rewind())
	for _, line := range lines {
		b.WriteString(Fit(line, width-1))
		b.WriteString("\r\n")
	}

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return errors.RenderFailed(err)
	}
	r.frame.Lines = len(lines)
	return nil
}

// Clear erases the previous frame and leaves the cursor where it started.
func (r *Renderer) Clear() error {
	if r.frame.Lines == 0 {
		return nil
	}
	if _, err := io.WriteString(r.out, r.rewind()); err != nil {
		return errors.RenderFailed(err)
	}
	r.frame.Lines = 0
	return nil
}

// Commit keeps the last frame on screen; the next Paint starts below it.
func (r *Renderer) Commit() {
	r.frame.Lines = 0
}

func (r *Renderer) rewind() string {
	var b strings.Builder
	b.WriteByte('\r')
	if r.frame.Lines > 0 {
		b.WriteString(ansi.CursorUp(r.frame.Lines))
	}
	b.WriteString(ansi.EraseScreenBelow)
	return b.String()
}

// Fit truncates s to width display cells, ending it with an ellipsis when
// anything was cut. Styled text keeps its escape sequences.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// Pad right-pads s with spaces to width display cells.
func Pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
