package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zhubert/grove/internal/workflow"
)

var (
	commitAll     bool
	commitCopy    bool
	commitMessage string
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit chosen changes with a drafted message",
	Long: `Lists changed files grouped by directory (all checked), stages the ones you
keep, drafts a commit message from the staged diff and opens it in the inline
editor. Ctrl-S commits; Esc aborts without committing.

Commit style and subject length come from .grove.toml ([commit] style and
max_subject).`,
	Args: cobra.NoArgs,
	RunE: runCommit,
}

func init() {
	commitCmd.Flags().BoolVarP(&commitAll, "all", "a", false, "Stage every change without asking")
	commitCmd.Flags().BoolVar(&commitCopy, "copy", false, "Copy the final message to the clipboard")
	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "Start from this message instead of generating one")
	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r, err := newRunner(ctx, cmd)
	if err != nil {
		return err
	}
	return r.Commit(ctx, workflow.CommitOptions{
		All:     commitAll,
		Copy:    commitCopy,
		Message: commitMessage,
	})
}
