package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/ui"
)

// Defaults applied when a field is unset.
const (
	DefaultAICommand       = "claude"
	DefaultEscapeTimeoutMS = 30
	DefaultMenuHeight      = 15

	minEscapeTimeoutMS = 5
	maxEscapeTimeoutMS = 1000
	minMenuHeight      = 3
	maxMenuHeight      = 50
)

// Config holds the user configuration
type Config struct {
	DefaultBranchPrefix  string `json:"default_branch_prefix,omitempty"` // Prefix for branch names (e.g., "zhubert/")
	AICommand            string `json:"ai_command,omitempty"`            // CLI used for text generation
	AIModel              string `json:"ai_model,omitempty"`              // Model passed to the CLI, if any
	LogPath              string `json:"log_path,omitempty"`              // Debug log file
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification when a PR is opened
	EscapeTimeoutMS      int    `json:"escape_timeout_ms,omitempty"`     // ESC debounce window
	MenuHeight           int    `json:"menu_height,omitempty"`           // Visible items in menus

	RepoAsanaProject map[string]string `json:"repo_asana_project,omitempty"` // Per-repo Asana project GID mapping

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".grove"), nil
}

// Path returns the path to the user config file
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the user config from ~/.grove/config.json, or returns defaults
// if it doesn't exist
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, errors.ConfigLoadFailed("~/.grove/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	// Must happen before Validate() since Validate() only reads
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized ensures maps are initialized (not nil).
//
// Thread-safety: only called from LoadFrom before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.RepoAsanaProject == nil {
		c.RepoAsanaProject = make(map[string]string)
	}
}

// Validate checks that the config values are usable.
// This is a read-only operation - call ensureInitialized() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Theme != "" {
		if _, ok := ui.BuiltinThemes[ui.ThemeName(c.Theme)]; !ok {
			return errors.ConfigInvalid(fmt.Sprintf("unknown theme %q", c.Theme))
		}
	}
	if c.EscapeTimeoutMS != 0 && (c.EscapeTimeoutMS < minEscapeTimeoutMS || c.EscapeTimeoutMS > maxEscapeTimeoutMS) {
		return errors.ConfigInvalid(fmt.Sprintf("escape_timeout_ms must be between %d and %d", minEscapeTimeoutMS, maxEscapeTimeoutMS))
	}
	if c.MenuHeight != 0 && (c.MenuHeight < minMenuHeight || c.MenuHeight > maxMenuHeight) {
		return errors.ConfigInvalid(fmt.Sprintf("menu_height must be between %d and %d", minMenuHeight, maxMenuHeight))
	}
	if err := ValidateBranchPrefix(c.DefaultBranchPrefix); err != nil {
		return err
	}
	for repo, gid := range c.RepoAsanaProject {
		if repo == "" || gid == "" {
			return errors.ConfigInvalid("repo_asana_project has an empty entry")
		}
	}
	return nil
}

// ValidateBranchPrefix rejects prefixes git would refuse in a ref name.
func ValidateBranchPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if strings.ContainsAny(prefix, " ~^:?*[\\") || strings.Contains(prefix, "..") || strings.HasPrefix(prefix, "/") {
		return errors.ConfigInvalid(fmt.Sprintf("branch prefix %q is not a valid ref component", prefix))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		path, err := Path()
		if err != nil {
			return errors.ConfigSaveFailed("~/.grove/config.json", err)
		}
		c.filePath = path
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// FilePath returns where the config is saved
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetDefaultBranchPrefix returns the default branch prefix
func (c *Config) GetDefaultBranchPrefix() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DefaultBranchPrefix
}

// SetDefaultBranchPrefix sets the default branch prefix
func (c *Config) SetDefaultBranchPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DefaultBranchPrefix = prefix
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetAICommand returns the text generation CLI, defaulting to "claude"
func (c *Config) GetAICommand() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.AICommand == "" {
		return DefaultAICommand
	}
	return c.AICommand
}

// SetAICommand sets the text generation CLI
func (c *Config) SetAICommand(command string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AICommand = command
}

// GetAIModel returns the model name, empty for the CLI default
func (c *Config) GetAIModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AIModel
}

// SetAIModel sets the model name
func (c *Config) SetAIModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AIModel = model
}

// GetLogPath returns the debug log path, empty for the default
func (c *Config) GetLogPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LogPath
}

// GetEscapeTimeout returns the ESC debounce window
func (c *Config) GetEscapeTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ms := c.EscapeTimeoutMS
	if ms == 0 {
		ms = DefaultEscapeTimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}

// SetEscapeTimeoutMS sets the ESC debounce window in milliseconds
func (c *Config) SetEscapeTimeoutMS(ms int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.EscapeTimeoutMS = ms
}

// GetMenuHeight returns how many items menus show at once
func (c *Config) GetMenuHeight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.MenuHeight == 0 {
		return DefaultMenuHeight
	}
	return c.MenuHeight
}

// SetMenuHeight sets how many items menus show at once
func (c *Config) SetMenuHeight(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MenuHeight = n
}

// GetAsanaProject returns the Asana project GID for a repo, or empty string if not configured
func (c *Config) GetAsanaProject(repoPath string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.RepoAsanaProject == nil {
		return ""
	}
	return c.RepoAsanaProject[repoPath]
}

// SetAsanaProject sets the Asana project GID for a repo
func (c *Config) SetAsanaProject(repoPath, projectGID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.RepoAsanaProject == nil {
		c.RepoAsanaProject = make(map[string]string)
	}
	if projectGID == "" {
		delete(c.RepoAsanaProject, repoPath)
	} else {
		c.RepoAsanaProject[repoPath] = projectGID
	}
}

// HasAsanaProject returns true if the repo has an Asana project configured
func (c *Config) HasAsanaProject(repoPath string) bool {
	return c.GetAsanaProject(repoPath) != ""
}
