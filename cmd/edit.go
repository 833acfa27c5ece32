package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zhubert/grove/internal/prompt"
	"github.com/zhubert/grove/internal/workflow"
)

var editCmd = &cobra.Command{
	Use:   "edit FILE",
	Short: "Edit a small file inline",
	Long: `Opens FILE in the inline editor below the prompt. Ctrl-S saves, Esc
discards. Highlighting follows the file extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadUserConfig()
	if err != nil {
		return err
	}
	r := &workflow.Runner{
		UI:  prompt.Stdio(terminalOptions(cfg)...),
		Out: cmd.OutOrStdout(),
	}
	_, err = r.EditFile(cmd.Context(), args[0])
	return err
}
