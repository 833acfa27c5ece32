// Package selection implements the single- and multi-select menu state
// machine: cursor movement with wrap-around, a scrolling viewport, live
// search, numeric range input and tri-state group headers.
//
// State is pure: it consumes key events and is rendered by View. It never
// touches the terminal.
package selection

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/grove/internal/keys"
)

// DefaultHeight is the number of items visible at once.
const DefaultHeight = 15

// Option is one selectable row. A row with Children is a group header: its
// value never appears in a result and its checked state is derived from the
// children it names.
type Option struct {
	Label    string
	Value    string
	Disabled bool
	Children []string
}

// IsGroup reports whether o is a group header.
func (o Option) IsGroup() bool {
	return len(o.Children) > 0
}

// Mode is the input mode of a menu.
type Mode int

const (
	Normal Mode = iota
	Search
	Range
)

func (m Mode) String() string {
	switch m {
	case Search:
		return "search"
	case Range:
		return "range"
	default:
		return "normal"
	}
}

// Outcome is how an interaction ended.
type Outcome int

const (
	// Pending means no terminal event has been handled yet.
	Pending Outcome = iota
	// Selected means the user confirmed a choice.
	Selected
	// Cancelled means the user backed out; the caller carries on.
	Cancelled
	// Quit means the user asked to stop the whole program.
	Quit
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Cancelled:
		return "cancelled"
	case Quit:
		return "quit"
	default:
		return "pending"
	}
}

// Result is the outcome of a single-select menu. Value is set only when
// Outcome is Selected.
type Result struct {
	Outcome Outcome
	Value   string
}

// MultiResult is the outcome of a multi-select menu. Values holds the
// checked leaf values in item order.
type MultiResult struct {
	Outcome Outcome
	Values  []string
}

// Tri is the derived state of a group header.
type Tri int

const (
	NoneChecked Tri = iota
	SomeChecked
	AllChecked
)

// StateOption configures a State.
type StateOption func(*State)

// Multi turns the menu into a multi-select.
func Multi() StateOption {
	return func(s *State) { s.multi = true }
}

// Height sets the viewport height. Values below 1 are ignored.
func Height(n int) StateOption {
	return func(s *State) {
		if n > 0 {
			s.height = n
		}
	}
}

// Checked preselects leaf values in a multi-select. Unknown, disabled and
// group-header values are ignored.
func Checked(values ...string) StateOption {
	return func(s *State) { s.preset = append(s.preset, values...) }
}

// State is one menu invocation.
type State struct {
	items []Option
	multi bool

	filtered []int // indices into items
	cursor   int   // index into filtered
	offset   int
	height   int

	mode  Mode
	query []rune
	rng   []rune

	checked map[string]bool
	index   map[string]int // value -> item index
	grouped map[string]bool
	preset  []string

	outcome Outcome
	value   string
}

// New creates a menu over items. The slice is borrowed and must not be
// modified while the menu is active.
func New(items []Option, opts ...StateOption) *State {
	s := &State{
		items:   items,
		height:  DefaultHeight,
		checked: make(map[string]bool),
		index:   make(map[string]int, len(items)),
		grouped: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, it := range items {
		if _, dup := s.index[it.Value]; !dup {
			s.index[it.Value] = i
		}
		for _, c := range it.Children {
			s.grouped[c] = true
		}
	}
	for _, v := range s.preset {
		if s.checkable(v) {
			s.checked[v] = true
		}
	}
	s.preset = nil
	s.refilter()
	return s
}

// checkable reports whether v names an enabled leaf item.
func (s *State) checkable(v string) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	it := s.items[i]
	return !it.Disabled && !it.IsGroup()
}

// Handle applies one key event. Events after the menu resolved are ignored.
func (s *State) Handle(ev keys.Event) {
	if s.outcome != Pending {
		return
	}
	if ev.Is(keys.CtrlC) {
		s.outcome = Quit
		return
	}

	switch s.mode {
	case Search:
		s.handleSearch(ev)
	case Range:
		s.handleRange(ev)
	default:
		s.handleNormal(ev)
	}
}

func (s *State) handleNormal(ev keys.Event) {
	switch ev.Kind {
	case keys.Up:
		s.MoveUp()
	case keys.Down:
		s.MoveDown()
	case keys.Enter:
		s.resolve()
	case keys.Escape:
		s.outcome = Cancelled
	case keys.Tab:
		if s.multi {
			s.ToggleCurrent()
		}
	case keys.Printable:
		switch ev.Rune {
		case 'k':
			s.MoveUp()
		case 'j':
			s.MoveDown()
		case 'q':
			s.outcome = Quit
		case '/':
			s.mode = Search
		case '#':
			if s.multi {
				s.mode = Range
				s.rng = s.rng[:0]
			}
		case ' ':
			if s.multi {
				s.ToggleCurrent()
			}
		case 'a':
			if s.multi {
				s.CheckAll()
			}
		case 'n':
			if s.multi {
				s.ClearAll()
			}
		}
	}
}

func (s *State) handleSearch(ev keys.Event) {
	switch ev.Kind {
	case keys.Up:
		s.MoveUp()
	case keys.Down:
		s.MoveDown()
	case keys.Enter:
		s.resolve()
	case keys.Tab:
		if s.multi {
			s.ToggleCurrent()
		}
	case keys.Escape:
		s.query = s.query[:0]
		s.mode = Normal
		s.refilter()
	case keys.Backspace:
		if len(s.query) == 0 {
			s.mode = Normal
			return
		}
		s.query = s.query[:len(s.query)-1]
		s.refilter()
	case keys.Printable:
		s.query = append(s.query, ev.Rune)
		s.refilter()
	}
}

func (s *State) handleRange(ev keys.Event) {
	switch ev.Kind {
	case keys.Enter:
		s.ApplyRange(string(s.rng))
		s.rng = s.rng[:0]
		s.mode = Normal
		s.resolve()
	case keys.Escape:
		s.rng = s.rng[:0]
		s.mode = Normal
	case keys.Backspace:
		if len(s.rng) > 0 {
			s.rng = s.rng[:len(s.rng)-1]
		}
	case keys.Printable:
		r := ev.Rune
		if (r >= '0' && r <= '9') || r == ' ' || r == '-' || r == ',' {
			s.rng = append(s.rng, r)
		}
	}
}

func (s *State) resolve() {
	if s.multi {
		s.outcome = Selected
		return
	}
	it, ok := s.Current()
	if !ok || it.Disabled || it.IsGroup() {
		return
	}
	s.value = it.Value
	s.outcome = Selected
}

// MoveUp moves the cursor up, wrapping to the last item.
func (s *State) MoveUp() {
	n := len(s.filtered)
	if n == 0 {
		return
	}
	s.cursor = (s.cursor - 1 + n) % n
	s.scroll()
}

// MoveDown moves the cursor down, wrapping to the first item.
func (s *State) MoveDown() {
	n := len(s.filtered)
	if n == 0 {
		return
	}
	s.cursor = (s.cursor + 1) % n
	s.scroll()
}

// scroll moves the viewport the minimum distance that keeps the cursor visible.
func (s *State) scroll() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.height {
		s.offset = s.cursor - s.height + 1
	}
	if limit := len(s.filtered) - s.height; s.offset > limit {
		s.offset = limit
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// refilter recomputes the filtered view from the query and puts the cursor
// on the first match.
func (s *State) refilter() {
	s.filtered = s.filtered[:0]
	q := strings.ToLower(string(s.query))
	for i, it := range s.items {
		if q == "" || strings.Contains(strings.ToLower(ansi.Strip(it.Label)), q) {
			s.filtered = append(s.filtered, i)
		}
	}
	s.cursor = 0
	s.offset = 0
}

// ToggleCurrent toggles the item under the cursor.
func (s *State) ToggleCurrent() {
	if len(s.filtered) == 0 {
		return
	}
	s.Toggle(s.filtered[s.cursor])
}

// Toggle flips the item at index i of the full list. A group header checks
// all its children unless they are all checked already, in which case it
// clears them.
func (s *State) Toggle(i int) {
	if i < 0 || i >= len(s.items) {
		return
	}
	it := s.items[i]
	if it.Disabled {
		return
	}
	if !it.IsGroup() {
		if s.checked[it.Value] {
			delete(s.checked, it.Value)
		} else {
			s.checked[it.Value] = true
		}
		return
	}

	check := s.GroupState(it) != AllChecked
	for _, c := range it.Children {
		if !s.checkable(c) {
			continue
		}
		if check {
			s.checked[c] = true
		} else {
			delete(s.checked, c)
		}
	}
}

// CheckAll checks every enabled leaf.
func (s *State) CheckAll() {
	for _, it := range s.items {
		if !it.Disabled && !it.IsGroup() {
			s.checked[it.Value] = true
		}
	}
}

// ClearAll unchecks everything.
func (s *State) ClearAll() {
	clear(s.checked)
}

// ApplyRange adds the items named by a range expression to the checked set.
// It never removes a check.
func (s *State) ApplyRange(expr string) {
	for _, i := range ParseRange(expr, len(s.items)) {
		it := s.items[i]
		if it.Disabled {
			continue
		}
		if !it.IsGroup() {
			s.checked[it.Value] = true
			continue
		}
		for _, c := range it.Children {
			if s.checkable(c) {
				s.checked[c] = true
			}
		}
	}
}

// GroupState derives a header's tri-state from its enabled children.
func (s *State) GroupState(header Option) Tri {
	total, on := 0, 0
	for _, c := range header.Children {
		if !s.checkable(c) {
			continue
		}
		total++
		if s.checked[c] {
			on++
		}
	}
	switch {
	case on == 0:
		return NoneChecked
	case on == total:
		return AllChecked
	default:
		return SomeChecked
	}
}

// IsChecked reports whether value is checked.
func (s *State) IsChecked(value string) bool {
	return s.checked[value]
}

// CheckedCount returns the number of checked leaves.
func (s *State) CheckedCount() int {
	return len(s.checked)
}

// Current returns the item under the cursor.
func (s *State) Current() (Option, bool) {
	if len(s.filtered) == 0 {
		return Option{}, false
	}
	return s.items[s.filtered[s.cursor]], true
}

// Cursor returns the cursor position within the filtered view.
func (s *State) Cursor() int { return s.cursor }

// Offset returns the first visible row of the filtered view.
func (s *State) Offset() int { return s.offset }

// Height returns the viewport height.
func (s *State) Height() int { return s.height }

// Mode returns the active input mode.
func (s *State) Mode() Mode { return s.mode }

// Query returns the search text.
func (s *State) Query() string { return string(s.query) }

// RangeQuery returns the range expression being typed.
func (s *State) RangeQuery() string { return string(s.rng) }

// IsMulti reports whether this is a multi-select.
func (s *State) IsMulti() bool { return s.multi }

// Filtered returns the visible items in order.
func (s *State) Filtered() []Option {
	out := make([]Option, len(s.filtered))
	for i, idx := range s.filtered {
		out[i] = s.items[idx]
	}
	return out
}

// Done reports whether a terminal event was handled.
func (s *State) Done() bool { return s.outcome != Pending }

// Outcome returns how the menu ended.
func (s *State) Outcome() Outcome { return s.outcome }

// Cancel resolves the menu as cancelled, e.g. on end of input.
func (s *State) Cancel() {
	if s.outcome == Pending {
		s.outcome = Cancelled
	}
}

// Result returns the single-select result.
func (s *State) Result() Result {
	if s.outcome != Selected {
		return Result{Outcome: s.outcome}
	}
	return Result{Outcome: Selected, Value: s.value}
}

// MultiResult returns the checked leaf values in item order. Group header
// values are never included.
func (s *State) MultiResult() MultiResult {
	if s.outcome != Selected {
		return MultiResult{Outcome: s.outcome}
	}
	values := make([]string, 0, len(s.checked))
	seen := make(map[string]bool, len(s.checked))
	for _, it := range s.items {
		if it.IsGroup() || !s.checked[it.Value] || seen[it.Value] {
			continue
		}
		seen[it.Value] = true
		values = append(values, it.Value)
	}
	return MultiResult{Outcome: Selected, Values: values}
}
