package main

import (
	"fmt"
	"os"

	"github.com/zhubert/grove/cmd"
	"github.com/zhubert/grove/internal/ui"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	err := cmd.Execute()
	if err != nil && !cmd.Silent(err) {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.ErrorStyle.Render("Error:"), err)
	}
	os.Exit(cmd.ExitCode(err))
}
