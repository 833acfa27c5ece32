package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/issues"
)

func tempConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	return cfg
}

func TestAnswersFrom_Defaults(t *testing.T) {
	a := answersFrom(tempConfig(t), "")
	if a.Theme != "dark-purple" || a.AICommand != "claude" {
		t.Errorf("answers = %+v", a)
	}
	if a.EscapeTimeout != "30" || a.MenuHeight != "15" {
		t.Errorf("timing = %q, %q", a.EscapeTimeout, a.MenuHeight)
	}
}

func TestApplyInit(t *testing.T) {
	cfg := tempConfig(t)
	repo := t.TempDir()

	a := answersFrom(cfg, repo)
	a.Theme = "nord"
	a.BranchPrefix = "me/"
	a.AIModel = "sonnet"
	a.Notifications = true
	a.EscapeTimeout = "50"
	a.MenuHeight = "8"
	a.AsanaProject = "12345"
	a.WriteRepo = true

	if err := applyInit(cfg, a, repo); err != nil {
		t.Fatalf("applyInit: %v", err)
	}

	loaded, err := config.LoadFrom(cfg.FilePath())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.GetTheme() != "nord" || loaded.GetDefaultBranchPrefix() != "me/" || loaded.GetAIModel() != "sonnet" {
		t.Errorf("saved config = %+v", loaded)
	}
	if loaded.AICommand != "" {
		t.Errorf("default command should not be written, got %q", loaded.AICommand)
	}
	if loaded.GetMenuHeight() != 8 || loaded.GetEscapeTimeout().Milliseconds() != 50 {
		t.Errorf("timing = %d, %v", loaded.GetMenuHeight(), loaded.GetEscapeTimeout())
	}
	if loaded.GetAsanaProject(repo) != "12345" {
		t.Errorf("asana project = %q", loaded.GetAsanaProject(repo))
	}

	repoCfg, err := config.LoadRepo(repo)
	if err != nil {
		t.Fatalf("LoadRepo: %v", err)
	}
	if repoCfg.Tasks.Source != config.TaskSourceAsana || repoCfg.Commit.Style != config.CommitStyleConventional {
		t.Errorf("repo config = %+v", repoCfg)
	}
}

func TestApplyInit_KeepsExistingRepoFile(t *testing.T) {
	cfg := tempConfig(t)
	repo := t.TempDir()
	path := filepath.Join(repo, config.RepoFileName)
	if err := os.WriteFile(path, []byte("branch_prefix = \"team/\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	a := answersFrom(cfg, repo)
	a.WriteRepo = true
	if err := applyInit(cfg, a, repo); err != nil {
		t.Fatalf("applyInit: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "branch_prefix = \"team/\"\n" {
		t.Errorf("existing file rewritten: %q", data)
	}
}

func TestApplyInit_RejectsBadPrefix(t *testing.T) {
	cfg := tempConfig(t)
	a := answersFrom(cfg, "")
	a.BranchPrefix = "bad prefix"
	if err := applyInit(cfg, a, ""); err == nil {
		t.Error("expected validation error")
	}
	if _, err := os.Stat(cfg.FilePath()); !os.IsNotExist(err) {
		t.Error("invalid config should not be saved")
	}
}

func TestValidateInt(t *testing.T) {
	v := validateInt(5, 10)
	for in, ok := range map[string]bool{"5": true, "10": true, "4": false, "11": false, "x": false, "": false} {
		if err := v(in); (err == nil) != ok {
			t.Errorf("validateInt(5,10)(%q) error = %v", in, err)
		}
	}
}

func TestInitForm_Builds(t *testing.T) {
	a := answersFrom(tempConfig(t), "/repo")
	projects := []issues.AsanaProject{{GID: "1", Name: "Roadmap"}}
	if initForm(&a, "/repo", projects) == nil {
		t.Fatal("initForm returned nil")
	}
	if initForm(&a, "", nil) == nil {
		t.Fatal("initForm without repo returned nil")
	}
}
