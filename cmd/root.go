package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/logger"
	"github.com/zhubert/grove/internal/prompt"
	"github.com/zhubert/grove/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "grove",
	Short: "Interactive git helpers for the terminal",
	Long: `Grove drives everyday git chores from inline terminal prompts: it suggests
branch names for a task, drafts commit messages and pull request descriptions,
and lets you review and edit them in place before anything is written.

Generated text comes from the claude CLI when it is installed; otherwise grove
falls back to summaries built from git itself.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context; an active prompt restores the terminal before returning.
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Close()

	logger.Info("grove %s: %v", version, os.Args[1:])
	err := rootCmd.ExecuteContext(ctx)
	logOutcome(err)
	return err
}

// logOutcome records how the command ended. Cancel and quit are ordinary
// endings, not failures.
func logOutcome(err error) {
	switch {
	case err == nil:
		logger.Debug("command finished")
	case Silent(err):
		logger.Info("command ended early: %v", err)
	default:
		logger.Error("command failed: %v", err)
	}
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("grove %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("grove %s\n", version)
}

// ExitCode maps the error returned by Execute to a process exit status:
// 0 on success, 130 when the user quit with q or Ctrl-C, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, prompt.ErrQuit), stderrors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

// Silent reports whether err ends the program without an error message.
func Silent(err error) bool {
	return stderrors.Is(err, prompt.ErrQuit) ||
		stderrors.Is(err, prompt.ErrCancelled) ||
		stderrors.Is(err, context.Canceled)
}

// loadUserConfig reads the user config and applies its logging and theme
// settings.
func loadUserConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if path := cfg.GetLogPath(); path != "" {
		if err := logger.Init(path); err != nil {
			logger.Warn("log_path unusable: %v", err)
			fmt.Fprintf(os.Stderr, "Warning: %v (logging to %s)\n", err, logger.Path())
		}
	}
	logger.Debug("user config %s, logging to %s", cfg.FilePath(), logger.Path())
	if theme := cfg.GetTheme(); theme != "" {
		ui.SetThemeByName(theme)
	}
	return cfg, nil
}

// terminalOptions turns the user config into prompt options.
func terminalOptions(cfg *config.Config) []prompt.Option {
	return []prompt.Option{
		prompt.WithEscapeTimeout(cfg.GetEscapeTimeout()),
		prompt.WithMenuHeight(cfg.GetMenuHeight()),
	}
}
