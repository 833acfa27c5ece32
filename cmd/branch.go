package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zhubert/grove/internal/issues"
	"github.com/zhubert/grove/internal/workflow"
)

var (
	branchTask       string
	branchFromAsana  bool
	branchFromGitHub bool
	branchBase       string
)

var branchCmd = &cobra.Command{
	Use:   "branch [description]",
	Short: "Create a branch with a generated name",
	Long: `Asks what you are working on (or reads it from a task), suggests branch
names, and creates and checks out the one you pick.

Examples:
  grove branch                          # Describe the work at the prompt
  grove branch "fix login redirect"     # Skip the prompt
  grove branch --task 42                # Name it after a task
  grove branch --from-github            # Pick an open GitHub issue`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBranch,
}

func init() {
	branchCmd.Flags().StringVar(&branchTask, "task", "", "Task or issue ID to name the branch after")
	branchCmd.Flags().BoolVar(&branchFromAsana, "from-asana", false, "Pick the task from the repo's Asana project")
	branchCmd.Flags().BoolVar(&branchFromGitHub, "from-github", false, "Pick the task from open GitHub issues")
	branchCmd.Flags().StringVar(&branchBase, "base", "", "Start point (defaults to HEAD)")
	branchCmd.MarkFlagsMutuallyExclusive("from-asana", "from-github")
	rootCmd.AddCommand(branchCmd)
}

func runBranch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	r, err := newRunner(ctx, cmd)
	if err != nil {
		return err
	}

	opts := workflow.BranchOptions{TaskID: branchTask, Base: branchBase}
	if len(args) == 1 {
		opts.Description = args[0]
	}
	switch {
	case branchFromAsana:
		r.Tasks = issues.NewAsanaProvider(r.Settings.AsanaProject)
		opts.FromTask = true
	case branchFromGitHub:
		r.Tasks = issues.NewGitHubProvider(r.Git, r.RepoPath, "")
		opts.FromTask = true
	}

	_, err = r.NewBranch(ctx, opts)
	return err
}
