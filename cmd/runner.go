package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhubert/grove/internal/ai"
	"github.com/zhubert/grove/internal/clipboard"
	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/issues"
	"github.com/zhubert/grove/internal/logger"
	"github.com/zhubert/grove/internal/notification"
	"github.com/zhubert/grove/internal/progress"
	"github.com/zhubert/grove/internal/prompt"
	"github.com/zhubert/grove/internal/workflow"
)

// newRunner builds a workflow runner for the repository containing the
// working directory, with prompts on stdin/stderr.
func newRunner(ctx context.Context, cmd *cobra.Command) (*workflow.Runner, error) {
	cfg, err := loadUserConfig()
	if err != nil {
		return nil, err
	}

	gitSvc := git.NewGitService()
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := gitSvc.RepoRoot(ctx, wd)
	if err != nil {
		return nil, err
	}
	repoCfg, err := config.LoadRepo(root)
	if err != nil {
		return nil, err
	}
	settings := config.Merge(cfg, repoCfg, root)
	logger.ComponentLogger("cmd").Debug("settings resolved",
		"repo", root, "taskSource", settings.TaskSource, "commitStyle", settings.CommitStyle)

	return &workflow.Runner{
		UI:       prompt.Stdio(terminalOptions(cfg)...),
		Git:      gitSvc,
		AI:       ai.NewGenerator(gitSvc.Executor(), settings.AICommand, settings.AIModel),
		Tasks:    issues.ForSettings(settings, gitSvc, root),
		Settings: settings,
		RepoPath: root,
		Out:      cmd.OutOrStdout(),
		Copy:     clipboard.System,
		Notify:   notification.PROpened,
		Spin: func(ctx context.Context, title string, fn func(ctx context.Context) error) error {
			return progress.Run(ctx, os.Stderr, title, fn)
		},
	}, nil
}
