package prompt

import (
	"context"

	"github.com/zhubert/grove/internal/selection"
)

// SingleSelect shows a menu and returns the chosen value. An empty option
// list resolves as Cancelled without touching the terminal.
func (t *Terminal) SingleSelect(ctx context.Context, prompt string, options []selection.Option) (selection.Result, error) {
	if len(options) == 0 {
		return selection.Result{Outcome: selection.Cancelled}, nil
	}

	s, err := t.Acquire()
	if err != nil {
		return selection.Result{}, err
	}
	defer s.Release()

	st := selection.New(options, selection.Height(t.menuHeight))
	view := func(width, _ int) []string { return st.View(prompt, width) }
	if err := s.run(ctx, "single-select", st, view, st.Cancel); err != nil {
		return selection.Result{Outcome: selection.Cancelled}, err
	}

	res := st.Result()
	s.log.Debug("single-select resolved", "outcome", res.Outcome.String(), "value", res.Value)
	return res, s.finish(st.Summary(prompt))
}

// MultiOption configures MultiSelect.
type MultiOption func(*multiSettings)

type multiSettings struct {
	checked []string
}

// WithChecked preselects values.
func WithChecked(values ...string) MultiOption {
	return func(m *multiSettings) { m.checked = append(m.checked, values...) }
}

// MultiSelect shows a checkbox menu and returns the checked leaf values in
// item order. Group header values are never returned.
func (t *Terminal) MultiSelect(ctx context.Context, prompt string, options []selection.Option, opts ...MultiOption) (selection.MultiResult, error) {
	if len(options) == 0 {
		return selection.MultiResult{Outcome: selection.Cancelled}, nil
	}

	var settings multiSettings
	for _, opt := range opts {
		opt(&settings)
	}

	s, err := t.Acquire()
	if err != nil {
		return selection.MultiResult{}, err
	}
	defer s.Release()

	st := selection.New(options,
		selection.Multi(),
		selection.Height(t.menuHeight),
		selection.Checked(settings.checked...))
	view := func(width, _ int) []string { return st.View(prompt, width) }
	if err := s.run(ctx, "multi-select", st, view, st.Cancel); err != nil {
		return selection.MultiResult{Outcome: selection.Cancelled}, err
	}

	res := st.MultiResult()
	s.log.Debug("multi-select resolved", "outcome", res.Outcome.String(), "count", len(res.Values))
	return res, s.finish(st.Summary(prompt))
}
