package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/zhubert/grove/internal/errors"
)

// RepoFileName is the per-repository config file, read from the repo root.
const RepoFileName = ".grove.toml"

// Commit styles.
const (
	CommitStyleConventional = "conventional"
	CommitStylePlain        = "plain"
)

// Task sources.
const (
	TaskSourceNone   = ""
	TaskSourceAsana  = "asana"
	TaskSourceGitHub = "github"
)

// RepoConfig is the optional per-repository configuration.
type RepoConfig struct {
	BranchPrefix string       `toml:"branch_prefix"`
	Commit       CommitConfig `toml:"commit"`
	PR           PRConfig     `toml:"pr"`
	Tasks        TasksConfig  `toml:"tasks"`
}

type CommitConfig struct {
	Style      string `toml:"style"`
	MaxSubject int    `toml:"max_subject"`
}

type PRConfig struct {
	Base     string `toml:"base"`
	Draft    bool   `toml:"draft"`
	Template string `toml:"template"` // body template, {{summary}} and {{changes}} are filled in
}

type TasksConfig struct {
	Source       string `toml:"source"`
	AsanaProject string `toml:"asana_project"`
}

func defaultRepoConfig() RepoConfig {
	return RepoConfig{
		Commit: CommitConfig{
			Style:      CommitStyleConventional,
			MaxSubject: 72,
		},
	}
}

// LoadRepo reads .grove.toml from root. A missing file yields defaults.
func LoadRepo(root string) (RepoConfig, error) {
	cfg := defaultRepoConfig()
	path := filepath.Join(root, RepoFileName)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.ConfigLoadFailed(path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.ConfigLoadFailed(path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveRepo writes cfg to root/.grove.toml.
func SaveRepo(root string, cfg RepoConfig) error {
	path := filepath.Join(root, RepoFileName)
	f, err := os.Create(path)
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}

// Validate checks enum fields and the branch prefix.
func (r RepoConfig) Validate() error {
	switch r.Commit.Style {
	case "", CommitStyleConventional, CommitStylePlain:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("commit.style must be %q or %q", CommitStyleConventional, CommitStylePlain))
	}
	switch r.Tasks.Source {
	case TaskSourceNone, TaskSourceAsana, TaskSourceGitHub:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("tasks.source %q is not supported", r.Tasks.Source))
	}
	if r.Commit.MaxSubject < 0 {
		return errors.ConfigInvalid("commit.max_subject must not be negative")
	}
	return ValidateBranchPrefix(r.BranchPrefix)
}

// Settings is the merged view of user and repo configuration used by
// workflows. Repo values win over user values.
type Settings struct {
	BranchPrefix  string
	CommitStyle   string
	MaxSubject    int
	PRBase        string
	PRDraft       bool
	PRTemplate    string
	TaskSource    string
	AsanaProject  string
	AICommand     string
	AIModel       string
	Notifications bool
}

// Merge combines the user config and the config of the repo at repoPath.
func Merge(user *Config, repo RepoConfig, repoPath string) Settings {
	s := Settings{
		BranchPrefix:  user.GetDefaultBranchPrefix(),
		CommitStyle:   repo.Commit.Style,
		MaxSubject:    repo.Commit.MaxSubject,
		PRBase:        repo.PR.Base,
		PRDraft:       repo.PR.Draft,
		PRTemplate:    repo.PR.Template,
		TaskSource:    repo.Tasks.Source,
		AsanaProject:  user.GetAsanaProject(repoPath),
		AICommand:     user.GetAICommand(),
		AIModel:       user.GetAIModel(),
		Notifications: user.GetNotificationsEnabled(),
	}
	if repo.BranchPrefix != "" {
		s.BranchPrefix = repo.BranchPrefix
	}
	if repo.Tasks.AsanaProject != "" {
		s.AsanaProject = repo.Tasks.AsanaProject
	}
	if s.CommitStyle == "" {
		s.CommitStyle = CommitStyleConventional
	}
	if s.MaxSubject == 0 {
		s.MaxSubject = 72
	}
	if s.TaskSource == TaskSourceNone && s.AsanaProject != "" {
		s.TaskSource = TaskSourceAsana
	}
	return s
}
