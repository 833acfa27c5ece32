package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/zhubert/grove/internal/errors"
)

func TestLoad_NewConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Load should return defaults when none exists
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.RepoAsanaProject == nil {
		t.Error("RepoAsanaProject should be initialized")
	}
	if cfg.GetAICommand() != DefaultAICommand {
		t.Errorf("GetAICommand() = %q, want %q", cfg.GetAICommand(), DefaultAICommand)
	}
	if cfg.GetEscapeTimeout() != 30*time.Millisecond {
		t.Errorf("GetEscapeTimeout() = %v, want 30ms", cfg.GetEscapeTimeout())
	}
	if cfg.GetMenuHeight() != DefaultMenuHeight {
		t.Errorf("GetMenuHeight() = %d, want %d", cfg.GetMenuHeight(), DefaultMenuHeight)
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	groveDir := filepath.Join(tmpDir, ".grove")
	if err := os.MkdirAll(groveDir, 0755); err != nil {
		t.Fatalf("Failed to create grove dir: %v", err)
	}
	configData := `{
		"default_branch_prefix": "zh/",
		"ai_model": "haiku",
		"theme": "nord",
		"escape_timeout_ms": 50,
		"menu_height": 8,
		"repo_asana_project": {"/path/to/repo": "12345"}
	}`
	if err := os.WriteFile(filepath.Join(groveDir, "config.json"), []byte(configData), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.GetDefaultBranchPrefix() != "zh/" {
		t.Errorf("branch prefix = %q", cfg.GetDefaultBranchPrefix())
	}
	if cfg.GetAIModel() != "haiku" {
		t.Errorf("ai model = %q", cfg.GetAIModel())
	}
	if cfg.GetEscapeTimeout() != 50*time.Millisecond {
		t.Errorf("escape timeout = %v", cfg.GetEscapeTimeout())
	}
	if cfg.GetMenuHeight() != 8 {
		t.Errorf("menu height = %d", cfg.GetMenuHeight())
	}
	if !cfg.HasAsanaProject("/path/to/repo") {
		t.Error("expected Asana project for /path/to/repo")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("invalid json"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadFrom(path)
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("LoadFrom() error = %v, want a config error", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"empty config", &Config{}, false},
		{"known theme", &Config{Theme: "nord"}, false},
		{"unknown theme", &Config{Theme: "neon"}, true},
		{"escape timeout in range", &Config{EscapeTimeoutMS: 100}, false},
		{"escape timeout too small", &Config{EscapeTimeoutMS: 1}, true},
		{"escape timeout too large", &Config{EscapeTimeoutMS: 5000}, true},
		{"menu height too small", &Config{MenuHeight: 1}, true},
		{"menu height in range", &Config{MenuHeight: 20}, false},
		{"prefix with slash", &Config{DefaultBranchPrefix: "zh/"}, false},
		{"prefix with space", &Config{DefaultBranchPrefix: "my prefix/"}, true},
		{"prefix with dots", &Config{DefaultBranchPrefix: "a..b"}, true},
		{"empty asana gid", &Config{RepoAsanaProject: map[string]string{"/repo": ""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	cfg.SetDefaultBranchPrefix("feat/")
	cfg.SetTheme("dracula")
	cfg.SetNotificationsEnabled(true)
	cfg.SetAsanaProject("/repo", "999")
	cfg.SetMenuHeight(10)
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() after save failed: %v", err)
	}
	if loaded.GetDefaultBranchPrefix() != "feat/" {
		t.Errorf("prefix = %q", loaded.GetDefaultBranchPrefix())
	}
	if loaded.GetTheme() != "dracula" {
		t.Errorf("theme = %q", loaded.GetTheme())
	}
	if !loaded.GetNotificationsEnabled() {
		t.Error("notifications should persist")
	}
	if loaded.GetAsanaProject("/repo") != "999" {
		t.Errorf("asana project = %q", loaded.GetAsanaProject("/repo"))
	}
	if loaded.GetMenuHeight() != 10 {
		t.Errorf("menu height = %d", loaded.GetMenuHeight())
	}
}

func TestConfig_AsanaProject(t *testing.T) {
	cfg := &Config{}

	// GetAsanaProject should handle nil map gracefully
	if cfg.HasAsanaProject("/repo") {
		t.Error("HasAsanaProject should be false for nil map")
	}

	cfg.SetAsanaProject("/repo", "42")
	if cfg.GetAsanaProject("/repo") != "42" {
		t.Errorf("GetAsanaProject = %q, want 42", cfg.GetAsanaProject("/repo"))
	}

	// Clearing removes the entry
	cfg.SetAsanaProject("/repo", "")
	if _, exists := cfg.RepoAsanaProject["/repo"]; exists {
		t.Error("entry should be removed when cleared")
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := &Config{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg.SetMenuHeight(10)
			cfg.SetAsanaProject("/repo", "1")
		}()
		go func() {
			defer wg.Done()
			_ = cfg.GetMenuHeight()
			_ = cfg.HasAsanaProject("/repo")
		}()
	}
	wg.Wait()
}
