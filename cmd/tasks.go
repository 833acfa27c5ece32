package cmd

import (
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Browse open tasks from the repo's task board",
	Long: `Lists open tasks from the source set in .grove.toml ([tasks] source, asana
or github) and prints the URL of the one you pick.`,
	Args: cobra.NoArgs,
	RunE: runTasks,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r, err := newRunner(ctx, cmd)
	if err != nil {
		return err
	}
	_, err = r.ListTasks(ctx)
	return err
}
