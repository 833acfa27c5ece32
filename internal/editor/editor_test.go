package editor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/grove/internal/highlight"
	"github.com/zhubert/grove/internal/keys"
)

// feed runs raw input through a decoder into the editor, expiring the
// escape window at the end as the event loop would.
func feed(e *Editor, input string) {
	d := keys.NewDecoder()
	for _, ev := range d.Feed([]byte(input)) {
		e.Handle(ev)
	}
	for _, ev := range d.Expire() {
		e.Handle(ev)
	}
}

func TestEditor_TypeThenSave(t *testing.T) {
	e := New("", "Commit message", "gitcommit")
	feed(e, "abc\x13")

	got := e.Result()
	if got.Outcome != Saved || got.Text != "abc" {
		t.Errorf("Result() = %+v, want saved \"abc\"", got)
	}
}

func TestEditor_TypeThenEscapeDiscards(t *testing.T) {
	e := New("", "Commit message", "")
	feed(e, "abc\x1b")

	got := e.Result()
	if got.Outcome != Cancelled {
		t.Fatalf("Outcome = %v, want cancelled", got.Outcome)
	}
	if got.Text != "" {
		t.Errorf("cancelled result must carry no text, got %q", got.Text)
	}
}

func TestEditor_EscapeSequenceIsNotCancel(t *testing.T) {
	e := New("ab", "", "")
	feed(e, "\x1b[Dx\x13")

	got := e.Result()
	if got.Outcome != Saved || got.Text != "axb" {
		t.Errorf("Result() = %+v, want saved \"axb\"", got)
	}
}

func TestEditor_Keys(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		input   string
		want    string
	}{
		{"enter splits", "hello", "\x1b[D\x1b[D\r", "hel\nlo"},
		{"tab indents", "a\nb", "\x01\t", "a\n  b"},
		{"ctrl-e ends line", "ab", "\x01\x05c", "abc"},
		{"home and end sequences", "mid", "\x1b[H<\x1b[F>", "<mid>"},
		{"delete key", "abc", "\x01\x1b[3~", "bc"},
		{"backspace joins", "one\ntwo", "\x1b[A\x1b[B\x01\x7f", "onetwo"},
		{"ctrl-k clears line", "keep\ndrop\nkeep2", "\x1b[A\x0b", "keep\n\nkeep2"},
		{"word jumps", "foo bar baz", "\x1b[1;5D\x1b[1;5D|", "foo |bar baz"},
		{"alt word jumps", "foo bar", "\x01\x1bf|", "foo |bar"},
		{"unknown sequence dropped", "x", "\x1b[15~y", "xy"},
		{"multibyte input", "", "héllo wörld", "héllo wörld"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.initial, "", "")
			feed(e, tt.input+"\x13")
			got := e.Result()
			if got.Outcome != Saved {
				t.Fatalf("Outcome = %v, want saved", got.Outcome)
			}
			if got.Text != tt.want {
				t.Errorf("Text = %q, want %q", got.Text, tt.want)
			}
		})
	}
}

func TestEditor_CtrlCQuits(t *testing.T) {
	e := New("draft", "", "")
	feed(e, "more\x03")
	if got := e.Result(); got.Outcome != Quit || got.Text != "" {
		t.Errorf("Result() = %+v, want quit", got)
	}
}

func TestEditor_EventsAfterDoneIgnored(t *testing.T) {
	e := New("", "", "")
	feed(e, "a\x13bcd")
	if got := e.Result(); got.Text != "a" {
		t.Errorf("Text = %q, want a", got.Text)
	}
}

func TestEditor_CancelIsNoopOnceDone(t *testing.T) {
	e := New("x", "", "")
	feed(e, "\x13")
	e.Cancel()
	if e.Result().Outcome != Saved {
		t.Error("Cancel should not override a saved result")
	}

	e = New("x", "", "")
	e.Cancel()
	if e.Result().Outcome != Cancelled {
		t.Error("Cancel should end a pending session")
	}
}

func TestEditor_Category(t *testing.T) {
	if got := New("", "", "main.go").Category(); got != highlight.CFamily {
		t.Errorf("Category() = %v, want c-family", got)
	}
	if got := New("", "", "").Category(); got != highlight.Plain {
		t.Errorf("Category() = %v, want plain", got)
	}
}

func TestViewportRows(t *testing.T) {
	tests := []struct{ height, want int }{
		{0, defaultRows},
		{4, minRows},
		{20, 17},
		{200, maxRows},
	}
	for _, tt := range tests {
		if got := ViewportRows(tt.height); got != tt.want {
			t.Errorf("ViewportRows(%d) = %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestAnchor(t *testing.T) {
	tests := []struct{ row, rows, want int }{
		{0, 5, 0},
		{4, 5, 0},
		{5, 5, 1},
		{12, 5, 8},
	}
	for _, tt := range tests {
		if got := Anchor(tt.row, tt.rows); got != tt.want {
			t.Errorf("Anchor(%d, %d) = %d, want %d", tt.row, tt.rows, got, tt.want)
		}
	}
}

func TestView_Layout(t *testing.T) {
	e := New("package main\n\nfunc main() {}", "main.go", "go")
	lines := e.View(80, 10)

	// header + 7 text rows + footer
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	plain := make([]string, len(lines))
	for i, l := range lines {
		plain[i] = ansi.Strip(l)
	}
	if !strings.HasPrefix(plain[0], " main.go ") || !strings.Contains(plain[0], "3 lines") {
		t.Errorf("header = %q", plain[0])
	}
	if !strings.Contains(plain[1], "1│ package main") {
		t.Errorf("first row = %q", plain[1])
	}
	if !strings.Contains(plain[4], "~") {
		t.Errorf("rows past the end should show ~, got %q", plain[4])
	}
	footer := plain[len(plain)-1]
	if !strings.Contains(footer, "Ln 3, Col 15") || !strings.Contains(footer, "ctrl+s save") {
		t.Errorf("footer = %q", footer)
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w > 80 {
			t.Errorf("line %d is %d cells wide", i, w)
		}
	}
}

func TestView_ScrollsToKeepCursorVisible(t *testing.T) {
	var text []string
	for i := 1; i <= 40; i++ {
		text = append(text, "line")
	}
	e := New(strings.Join(text, "\n"), "", "")
	lines := e.View(80, 10) // 7 rows, cursor on line 40

	first := ansi.Strip(lines[1])
	last := ansi.Strip(lines[len(lines)-2])
	if !strings.Contains(first, "34│") || !strings.Contains(last, "40│") {
		t.Errorf("viewport = %q .. %q, want lines 34..40", first, last)
	}
}

func TestView_HorizontalScrollOnCursorLine(t *testing.T) {
	long := strings.Repeat("abcdefghij", 10) + "END"
	e := New(long, "", "")
	lines := e.View(40, 10)
	row := ansi.Strip(lines[1])
	if !strings.Contains(row, "END") {
		t.Errorf("cursor line should scroll to show the cursor: %q", row)
	}
	if w := ansi.StringWidth(lines[1]); w > 40 {
		t.Errorf("row is %d cells wide", w)
	}
}

func TestRenderLine_CursorCell(t *testing.T) {
	line := []rune("ab")
	out := renderLine(line, nil, 0, 10, 2)
	if ansi.Strip(out) != "ab " {
		t.Errorf("cursor at end should draw a trailing cell: %q", ansi.Strip(out))
	}
	if out == "ab " {
		t.Error("cursor cell should be styled")
	}

	out = renderLine(line, nil, 0, 10, -1)
	if out != "ab" {
		t.Errorf("line without cursor = %q", out)
	}
}

func TestRenderLine_HighlightKeepsText(t *testing.T) {
	src := `return "x" // done`
	line := []rune(src)
	spans := highlight.Tokenize(src, highlight.CFamily)
	out := renderLine(line, spans, 0, 80, 3)
	if ansi.Strip(out) != src {
		t.Errorf("rendered text = %q, want %q", ansi.Strip(out), src)
	}
}

func TestScrollStart(t *testing.T) {
	line := []rune(strings.Repeat("x", 50))
	if got := scrollStart(line, 5, 20); got != 0 {
		t.Errorf("scrollStart near the start = %d, want 0", got)
	}
	if got := scrollStart(line, 50, 20); got != 31 {
		t.Errorf("scrollStart at end = %d, want 31", got)
	}
	wide := []rune("世界世界世界")
	if got := scrollStart(wide, 6, 5); got != 4 {
		t.Errorf("scrollStart with wide runes = %d, want 4", got)
	}
}
