package workflow

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/grove/internal/ai"
	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/editor"
	pexec "github.com/zhubert/grove/internal/exec"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/issues"
	"github.com/zhubert/grove/internal/prompt"
	"github.com/zhubert/grove/internal/selection"
)

// fakeUI answers prompts from scripted queues and records what it was shown.
// A Selected single result with no value picks the first option; an edit
// func receives the initial text.
type fakeUI struct {
	singles []selection.Result
	multis  []selection.MultiResult
	edits   []func(initial string) editor.Result
	lines   []editor.Result

	singleOptions [][]selection.Option
	multiOptions  [][]selection.Option
	editInitial   []string
	editHints     []string
}

func (f *fakeUI) SingleSelect(_ context.Context, label string, options []selection.Option) (selection.Result, error) {
	f.singleOptions = append(f.singleOptions, options)
	if len(f.singles) == 0 {
		return selection.Result{}, fmt.Errorf("unexpected menu %q", label)
	}
	res := f.singles[0]
	f.singles = f.singles[1:]
	if res.Outcome == selection.Selected && res.Value == "" {
		res.Value = options[0].Value
	}
	return res, nil
}

func (f *fakeUI) MultiSelect(_ context.Context, label string, options []selection.Option, _ ...prompt.MultiOption) (selection.MultiResult, error) {
	f.multiOptions = append(f.multiOptions, options)
	if len(f.multis) == 0 {
		return selection.MultiResult{}, fmt.Errorf("unexpected menu %q", label)
	}
	res := f.multis[0]
	f.multis = f.multis[1:]
	return res, nil
}

func (f *fakeUI) InlineEditor(_ context.Context, initial, label, hint string) (editor.Result, error) {
	f.editInitial = append(f.editInitial, initial)
	f.editHints = append(f.editHints, hint)
	if len(f.edits) == 0 {
		return editor.Result{}, fmt.Errorf("unexpected editor %q", label)
	}
	fn := f.edits[0]
	f.edits = f.edits[1:]
	return fn(initial), nil
}

func (f *fakeUI) ReadLine(_ context.Context, label string) (editor.Result, error) {
	if len(f.lines) == 0 {
		return editor.Result{}, fmt.Errorf("unexpected line prompt %q", label)
	}
	res := f.lines[0]
	f.lines = f.lines[1:]
	return res, nil
}

func keep(initial string) editor.Result {
	return editor.Result{Outcome: editor.Saved, Text: initial}
}

func replaceWith(text string) func(string) editor.Result {
	return func(string) editor.Result { return editor.Result{Outcome: editor.Saved, Text: text} }
}

func line(text string) editor.Result {
	return editor.Result{Outcome: editor.Saved, Text: text}
}

func pick(value string) selection.Result {
	return selection.Result{Outcome: selection.Selected, Value: value}
}

// fakeProvider is an in-memory task board.
type fakeProvider struct {
	source issues.Source
	list   []issues.Issue
	err    error
}

func (p *fakeProvider) Name() string                   { return "Fake Tasks" }
func (p *fakeProvider) Source() issues.Source          { return p.source }
func (p *fakeProvider) IsConfigured() bool             { return true }
func (p *fakeProvider) PRLinkText(issues.Issue) string { return "" }

func (p *fakeProvider) FetchIssues(context.Context) ([]issues.Issue, error) {
	return p.list, p.err
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// createTestRepo creates a repository on main with one commit.
func createTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	writeFile(t, dir, "README.md", "# test\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "Initial commit")
	return dir
}

// newTestRunner wires a runner to a real repository. git runs for real;
// the generator CLI and gh go through the returned mock.
func newTestRunner(t *testing.T, ui *fakeUI) (*Runner, *pexec.MockExecutor, *bytes.Buffer) {
	t.Helper()
	repo := createTestRepo(t)
	mock := pexec.NewMockExecutor(pexec.NewRealExecutor())
	out := &bytes.Buffer{}
	r := &Runner{
		UI:       ui,
		Git:      git.NewGitServiceWithExecutor(mock),
		AI:       ai.NewGenerator(mock, "claude", ""),
		Settings: config.Settings{CommitStyle: config.CommitStyleConventional, MaxSubject: 72},
		RepoPath: repo,
		Out:      out,
	}
	return r, mock, out
}

func reply(mock *pexec.MockExecutor, text string) {
	mock.AddPrefixMatch("claude", []string{"--print"}, pexec.MockResponse{Stdout: []byte(text)})
}
