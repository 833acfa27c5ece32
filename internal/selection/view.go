package selection

import (
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/render"
	"github.com/zhubert/grove/internal/ui"
)

// gutter is the space reserved left of a label: cursor, checkbox and indent.
const gutter = 7

// View renders the menu as frame lines for the given terminal width.
func (s *State) View(prompt string, width int) []string {
	var lines []string

	header := ui.PromptStyle.Render("? " + prompt)
	switch s.mode {
	case Search:
		header += " " + ui.SearchStyle.Render("/"+string(s.query)+"▏")
	case Range:
		header += " " + ui.RangeStyle.Render("#"+string(s.rng)+"▏")
	}
	if s.multi {
		header += " " + ui.MutedStyle.Render(fmt.Sprintf("(%d selected)", len(s.checked)))
	}
	lines = append(lines, header)

	if len(s.filtered) == 0 {
		lines = append(lines, ui.IndicatorStyle.Render("  no matches"))
		return append(lines, s.hints())
	}

	end := min(s.offset+s.height, len(s.filtered))
	if s.offset > 0 {
		lines = append(lines, ui.IndicatorStyle.Render(fmt.Sprintf("  ↑ %d more", s.offset)))
	}
	labelWidth := width - gutter
	if s.mode == Range {
		labelWidth -= 4
	}
	for row := s.offset; row < end; row++ {
		lines = append(lines, s.viewRow(row, labelWidth))
	}
	if hidden := len(s.filtered) - end; hidden > 0 {
		lines = append(lines, ui.IndicatorStyle.Render(fmt.Sprintf("  ↓ %d more", hidden)))
	}

	return append(lines, s.hints())
}

func (s *State) viewRow(row, labelWidth int) string {
	idx := s.filtered[row]
	it := s.items[idx]
	active := row == s.cursor

	var b strings.Builder
	if active {
		b.WriteString(ui.CursorStyle.Render(ui.CursorGlyph))
	} else {
		b.WriteString(" ")
	}
	b.WriteString(" ")

	if s.mode == Range {
		b.WriteString(ui.RangeStyle.Render(fmt.Sprintf("%3d ", idx+1)))
	}

	if s.multi {
		if s.grouped[it.Value] && !it.IsGroup() {
			b.WriteString("  ")
		}
		b.WriteString(ui.CheckStyle.Render(s.glyph(it)))
		b.WriteString(" ")
	}

	label := render.Fit(it.Label, labelWidth)
	switch {
	case it.Disabled:
		b.WriteString(ui.ItemDisabledStyle.Render(label))
	case active:
		b.WriteString(ui.ItemActiveStyle.Render(label))
	default:
		b.WriteString(ui.ItemStyle.Render(label))
	}
	return b.String()
}

func (s *State) glyph(it Option) string {
	if it.IsGroup() {
		switch s.GroupState(it) {
		case AllChecked:
			return ui.CheckedGlyph
		case SomeChecked:
			return ui.PartialGlyph
		default:
			return ui.UncheckedGlyph
		}
	}
	if s.checked[it.Value] {
		return ui.CheckedGlyph
	}
	return ui.UncheckedGlyph
}

func (s *State) hints() string {
	var parts []string
	switch s.mode {
	case Search:
		parts = []string{ui.Hint("↑↓", "move"), ui.Hint("enter", "confirm"), ui.Hint("esc", "clear search")}
		if s.multi {
			parts = append(parts, ui.Hint("tab", "toggle"))
		}
	case Range:
		parts = []string{ui.Hint("1-5 8", "numbers"), ui.Hint("enter", "add and confirm"), ui.Hint("esc", "back")}
	default:
		parts = []string{ui.Hint("↑↓/jk", "move")}
		if s.multi {
			parts = append(parts,
				ui.Hint("space", "toggle"),
				ui.Hint("a/n", "all/none"),
				ui.Hint("#", "range"))
		}
		parts = append(parts,
			ui.Hint("/", "search"),
			ui.Hint("enter", "confirm"),
			ui.Hint("esc", "cancel"),
			ui.Hint("q", "quit"))
	}
	return "  " + strings.Join(parts, "  ")
}

// Summary is the single line left on screen once the menu resolved.
func (s *State) Summary(prompt string) string {
	head := ui.PromptStyle.Render("? " + prompt)
	switch s.outcome {
	case Selected:
		if s.multi {
			return head + " " + ui.SuccessStyle.Render(fmt.Sprintf("%d selected", len(s.MultiResult().Values)))
		}
		if i, ok := s.index[s.value]; ok {
			return head + " " + ui.SuccessStyle.Render(s.items[i].Label)
		}
		return head + " " + ui.SuccessStyle.Render(s.value)
	case Quit:
		return head + " " + ui.MutedStyle.Render("quit")
	default:
		return head + " " + ui.MutedStyle.Render("cancelled")
	}
}
