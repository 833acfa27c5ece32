// Package progress shows a spinner on stderr while a slow step (text
// generation, push, API calls) runs between interactive prompts.
package progress

import (
	"context"
	"io"
	"os"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/zhubert/grove/internal/logger"
	"github.com/zhubert/grove/internal/ui"
)

type doneMsg struct{ err error }

type model struct {
	spinner spinner.Model
	title   string
	done    bool
	err     error
}

func newModel(title string) model {
	return model{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(ui.IndicatorStyle),
		),
		title: title,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() tea.View {
	var v tea.View
	v.SetContent(m.line())
	return v
}

func (m model) line() string {
	switch {
	case !m.done:
		return m.spinner.View() + " " + m.title
	case m.err != nil:
		return ui.ErrorStyle.Render("✗") + " " + m.title
	default:
		return ui.SuccessStyle.Render("✓") + " " + m.title
	}
}

// Run calls fn while a spinner labelled title animates on out. When out is
// not a terminal fn runs without any output.
func Run(ctx context.Context, out io.Writer, title string, fn func(ctx context.Context) error) error {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fn(ctx)
	}

	p := tea.NewProgram(newModel(title),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(out),
	)

	errc := make(chan error, 1)
	go func() {
		err := fn(ctx)
		errc <- err
		p.Send(doneMsg{err: err})
	}()

	if _, perr := p.Run(); perr != nil {
		logger.ComponentLogger("progress").Debug("spinner stopped", "error", perr)
	}
	return <-errc
}
