package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zhubert/grove/internal/workflow"
)

var (
	prBase  string
	prDraft bool
	prCopy  bool
)

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Open a pull request for the current branch",
	Long: `Drafts a pull request title and body from the branch's commits and diff,
opens them in the inline editor (first line is the title), then pushes the
branch and runs gh pr create.

A branch created from a task gets a link to it appended to the body.`,
	Args: cobra.NoArgs,
	RunE: runPR,
}

func init() {
	prCmd.Flags().StringVar(&prBase, "base", "", "Base branch (defaults to pr.base or the repo default)")
	prCmd.Flags().BoolVar(&prDraft, "draft", false, "Offer draft as the first choice")
	prCmd.Flags().BoolVar(&prCopy, "copy", false, "Copy the PR URL to the clipboard")
	rootCmd.AddCommand(prCmd)
}

func runPR(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r, err := newRunner(ctx, cmd)
	if err != nil {
		return err
	}
	_, err = r.PullRequest(ctx, workflow.PROptions{Base: prBase, Draft: prDraft, Copy: prCopy})
	return err
}
