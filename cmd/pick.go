package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/prompt"
	"github.com/zhubert/grove/internal/selection"
	"github.com/zhubert/grove/internal/workflow"
)

var (
	pickMulti  bool
	pickPrompt string
	pickAll    bool
)

var pickCmd = &cobra.Command{
	Use:   "pick [items...]",
	Short: "Choose from a list in scripts",
	Long: `Shows a menu of the given items, or of the lines read from stdin, and
prints the chosen value. A line of the form "label<TAB>value" shows the label
and prints the value.

With --multi the menu has checkboxes and every checked value is printed on its
own line. Exits 1 when the menu is cancelled and 130 on q or Ctrl-C.

Examples:
  grove pick staging production
  git branch --format='%(refname:short)' | grove pick --prompt Branch
  ls *.go | grove pick --multi --all`,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().BoolVar(&pickMulti, "multi", false, "Allow choosing several items")
	pickCmd.Flags().StringVarP(&pickPrompt, "prompt", "p", "Choose", "Prompt shown above the menu")
	pickCmd.Flags().BoolVar(&pickAll, "all", false, "With --multi, start with every item checked")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, err := loadUserConfig()
	if err != nil {
		return err
	}
	opts := terminalOptions(cfg)

	lines := args
	ui := prompt.Stdio(opts...)
	if len(args) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.E(errors.Op("cmd.Pick"), errors.KindInvalid, "no items: pass them as arguments or on stdin")
		}
		if lines, err = readLines(cmd.InOrStdin()); err != nil {
			return err
		}
		// stdin carried the items, so the menu reads keys from the tty
		tty, closeTTY, err := prompt.OpenTTY(opts...)
		if err != nil {
			return err
		}
		defer closeTTY()
		ui = tty
	}

	return pick(cmd.Context(), ui, cmd.OutOrStdout(), pickPrompt, lines, pickMulti, pickAll)
}

// pick shows items and writes the chosen values to out, one per line.
func pick(ctx context.Context, ui workflow.Prompter, out io.Writer, label string, lines []string, multi, all bool) error {
	options := parseItems(lines)
	if len(options) == 0 {
		return errors.E(errors.Op("cmd.Pick"), errors.KindInvalid, "no items to choose from")
	}

	if !multi {
		res, err := ui.SingleSelect(ctx, label, options)
		if err != nil {
			return err
		}
		switch res.Outcome {
		case selection.Selected:
			fmt.Fprintln(out, res.Value)
			return nil
		case selection.Quit:
			return prompt.ErrQuit
		default:
			return prompt.ErrCancelled
		}
	}

	var multiOpts []prompt.MultiOption
	if all {
		values := make([]string, len(options))
		for i, o := range options {
			values[i] = o.Value
		}
		multiOpts = append(multiOpts, prompt.WithChecked(values...))
	}
	res, err := ui.MultiSelect(ctx, label, options, multiOpts...)
	if err != nil {
		return err
	}
	switch res.Outcome {
	case selection.Selected:
		for _, v := range res.Values {
			fmt.Fprintln(out, v)
		}
		return nil
	case selection.Quit:
		return prompt.ErrQuit
	default:
		return prompt.ErrCancelled
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(errors.Op("cmd.Pick"), errors.KindIO, err)
	}
	return lines, nil
}

// parseItems skips blank lines and splits "label<TAB>value".
func parseItems(lines []string) []selection.Option {
	var options []selection.Option
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		label, value, ok := strings.Cut(line, "\t")
		if !ok {
			value = line
		}
		options = append(options, selection.Option{Label: label, Value: value})
	}
	return options
}
