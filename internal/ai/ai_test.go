package ai

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/zhubert/grove/internal/errors"
	pexec "github.com/zhubert/grove/internal/exec"
)

var ctx = context.Background()

func mockClaude(reply string, err error) *pexec.MockExecutor {
	mock := pexec.NewMockExecutor(nil)
	mock.AddPrefixMatch("claude", []string{"--print"}, pexec.MockResponse{Stdout: []byte(reply), Err: err})
	return mock
}

func TestBranchNames(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		n     int
		want  []string
	}{
		{"numbered", "1. add new feature\n2. fix login bug\n3. simple-name\n", 3, []string{"add-new-feature", "fix-login-bug", "simple-name"}},
		{"paren delimiter", "1) refactor\n2) cleanup\n", 3, []string{"refactor", "cleanup"}},
		{"preamble skipped", "Here are the branch names:\n\n1. add-feature\nnot-a-valid-line\n2. fix-bug\n", 5, []string{"add-feature", "fix-bug"}},
		{"bullets and backticks", "- `feat/login-form`\n- fix_crash\n", 5, []string{"featlogin-form", "fix-crash"}},
		{"duplicates collapsed", "1. Fix Bug\n2. fix-bug\n3. other\n", 5, []string{"fix-bug", "other"}},
		{"limited to n", "1. a\n2. b\n3. c\n", 2, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(mockClaude(tt.reply, nil), "claude", "")
			got, err := g.BranchNames(ctx, "/repo", "whatever", tt.n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BranchNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBranchNames_Fallback(t *testing.T) {
	g := NewGenerator(mockClaude("", fmt.Errorf("rate limited")), "claude", "")
	got, err := g.BranchNames(ctx, "/repo", "Fix the crash when the config is missing", 3)
	if err == nil {
		t.Error("generation error should be reported")
	}
	if want := []string{"fix-crash-config-missing"}; !reflect.DeepEqual(got, want) {
		t.Errorf("fallback = %v, want %v", got, want)
	}
}

func TestBranchNames_CLIMissing(t *testing.T) {
	mock := pexec.NewMockExecutor(nil)
	mock.SetMissing("claude")
	g := NewGenerator(mock, "claude", "")

	if g.Available() {
		t.Error("Available() should be false")
	}
	_, err := g.BranchNames(ctx, "/repo", "add login", 3)
	if !errors.Is(err, errors.KindNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
	if len(mock.Calls()) != 0 {
		t.Error("missing CLI should not be run")
	}
}

func TestModelFlag(t *testing.T) {
	mock := mockClaude("1. x", nil)
	g := NewGenerator(mock, "claude", "haiku")
	if _, err := g.BranchNames(ctx, "/repo", "x", 1); err != nil {
		t.Fatal(err)
	}
	args := mock.Calls()[0].Args
	if args[1] != "--model" || args[2] != "haiku" || args[3] != "-p" {
		t.Errorf("args = %v", args)
	}
}

func TestCommitMessage(t *testing.T) {
	reply := "```\nfeat(auth): add login form\n\nAdds the form.\n```"
	g := NewGenerator(mockClaude(reply, nil), "claude", "")

	msg, err := g.CommitMessage(ctx, "/repo", "diff", Conventional, 72)
	if err != nil {
		t.Fatalf("CommitMessage failed: %v", err)
	}
	if msg != "feat(auth): add login form\n\nAdds the form." {
		t.Errorf("msg = %q", msg)
	}
}

func TestCommitMessage_PromptFollowsStyle(t *testing.T) {
	mock := mockClaude("Add things", nil)
	g := NewGenerator(mock, "claude", "")
	if _, err := g.CommitMessage(ctx, "/repo", "the-diff", Plain, 50); err != nil {
		t.Fatal(err)
	}
	args := mock.Calls()[0].Args
	prompt := args[len(args)-1]
	if strings.Contains(prompt, "conventional") || !strings.Contains(prompt, "under 50") || !strings.Contains(prompt, "the-diff") {
		t.Errorf("unexpected prompt:\n%s", prompt)
	}
}

func TestShortenSubject(t *testing.T) {
	tests := []struct {
		msg  string
		max  int
		want string
	}{
		{"short", 72, "short"},
		{"feat: a rather long subject line here", 20, "feat: a rather long"},
		{"feat: a rather long subject\n\nbody", 20, "feat: a rather long\n\nbody"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := shortenSubject(tt.msg, tt.max); got != tt.want {
			t.Errorf("shortenSubject(%q, %d) = %q, want %q", tt.msg, tt.max, got, tt.want)
		}
	}
}

func TestPRTitleAndBody(t *testing.T) {
	reply := "---TITLE---\nfeat: add login\n---BODY---\n## Summary\nAdds login.\n"
	g := NewGenerator(mockClaude(reply, nil), "claude", "")

	title, body, err := g.PRTitleAndBody(ctx, "/repo", "abc123 add login", "diff")
	if err != nil {
		t.Fatalf("PRTitleAndBody failed: %v", err)
	}
	if title != "feat: add login" {
		t.Errorf("title = %q", title)
	}
	if body != "## Summary\nAdds login." {
		t.Errorf("body = %q", body)
	}
}

func TestParsePR_NoMarkers(t *testing.T) {
	title, body := parsePR("fix: crash\n\nDetails here")
	if title != "fix: crash" || body != "Details here" {
		t.Errorf("parsePR() = %q, %q", title, body)
	}
}

func TestFallbackPR(t *testing.T) {
	title, body := FallbackPR("feature", "bbb2222 Add tests\naaa1111 Add login form")
	if title != "Add login form" {
		t.Errorf("title = %q, want oldest subject", title)
	}
	if !strings.Contains(body, "- Add login form\n- Add tests") {
		t.Errorf("changes should be oldest first:\n%s", body)
	}

	title, _ = FallbackPR("feature", "")
	if title != "feature" {
		t.Errorf("empty log title = %q, want branch name", title)
	}
}

func TestApplyTemplate(t *testing.T) {
	body := "## Summary\nAdds login.\n\n## Changes\n- form\n- handler"
	got := ApplyTemplate("What: {{summary}}\nHow:\n{{changes}}", body)
	want := "What: Adds login.\nHow:\n- form\n- handler"
	if got != want {
		t.Errorf("ApplyTemplate() = %q, want %q", got, want)
	}
	if ApplyTemplate("", body) != body {
		t.Error("empty template should return body")
	}
}
