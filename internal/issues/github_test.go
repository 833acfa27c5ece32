package issues

import (
	"context"
	"testing"

	"github.com/zhubert/grove/internal/config"
	pexec "github.com/zhubert/grove/internal/exec"
	"github.com/zhubert/grove/internal/git"
)

func TestGitHubProvider_FetchIssues(t *testing.T) {
	mock := pexec.NewMockExecutor(nil)
	mock.AddPrefixMatch("gh", []string{"issue", "list"}, pexec.MockResponse{
		Stdout: []byte(`[{"number":42,"title":"Crash on start","body":"","url":"https://github.com/o/r/issues/42"}]`),
	})

	p := NewGitHubProvider(git.NewGitServiceWithExecutor(mock), "/repo", "")
	issues, err := p.FetchIssues(context.Background())
	if err != nil {
		t.Fatalf("FetchIssues failed: %v", err)
	}
	if len(issues) != 1 || issues[0].ID != "42" || issues[0].Source != SourceGitHub {
		t.Fatalf("issues = %+v", issues)
	}
	if issues[0].Label() != "#42 Crash on start" {
		t.Errorf("Label() = %q", issues[0].Label())
	}
	if p.PRLinkText(issues[0]) != "\n\nFixes #42" {
		t.Errorf("PRLinkText() = %q", p.PRLinkText(issues[0]))
	}

	found, err := Find(context.Background(), p, "#42")
	if err != nil || found.Title != "Crash on start" {
		t.Errorf("Find() = %+v, %v", found, err)
	}
	if _, err := Find(context.Background(), p, "7"); err == nil {
		t.Error("Find() should fail for an unknown id")
	}
}

func TestGitHubProvider_IsConfigured(t *testing.T) {
	mock := pexec.NewMockExecutor(nil)
	mock.SetMissing("gh")
	if NewGitHubProvider(git.NewGitServiceWithExecutor(mock), "/repo", "").IsConfigured() {
		t.Error("IsConfigured should be false without gh")
	}
}

func TestForSettings(t *testing.T) {
	svc := git.NewGitServiceWithExecutor(pexec.NewMockExecutor(nil))
	tests := []struct {
		source string
		want   Source
	}{
		{config.TaskSourceAsana, SourceAsana},
		{config.TaskSourceGitHub, SourceGitHub},
	}
	for _, tt := range tests {
		p := ForSettings(config.Settings{TaskSource: tt.source}, svc, "/repo")
		if p == nil || p.Source() != tt.want {
			t.Errorf("ForSettings(%q) = %v", tt.source, p)
		}
	}
	if ForSettings(config.Settings{}, svc, "/repo") != nil {
		t.Error("no task source should give no provider")
	}
}
