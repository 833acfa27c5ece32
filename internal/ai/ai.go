// Package ai generates branch names, commit messages and pull request text
// by shelling out to the claude CLI. Every generator has a heuristic
// fallback so workflows keep working when the CLI is missing or fails.
package ai

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	pexec "github.com/zhubert/grove/internal/exec"
	"github.com/zhubert/grove/internal/logger"
)

// Generator calls the text generation CLI.
type Generator struct {
	executor pexec.CommandExecutor
	command  string
	model    string
	log      *slog.Logger
}

// NewGenerator returns a generator running command (e.g. "claude"),
// optionally pinned to model.
func NewGenerator(executor pexec.CommandExecutor, command, model string) *Generator {
	return &Generator{
		executor: executor,
		command:  command,
		model:    model,
		log:      logger.ComponentLogger("ai"),
	}
}

// Available reports whether the CLI is on PATH.
func (g *Generator) Available() bool {
	_, err := g.executor.LookPath(g.command)
	return err == nil
}

// complete runs one non-interactive prompt and returns the trimmed reply.
func (g *Generator) complete(ctx context.Context, dir, what, prompt string) (string, error) {
	if !g.Available() {
		return "", errors.CLINotFound(g.command)
	}
	args := []string{"--print"}
	if g.model != "" {
		args = append(args, "--model", g.model)
	}
	args = append(args, "-p", prompt)

	g.log.Debug("generating", "what", what, "promptBytes", len(prompt))
	out, err := g.executor.Output(ctx, dir, g.command, args...)
	if err != nil {
		return "", errors.GenerationFailed(what, err)
	}
	reply := strings.TrimSpace(string(out))
	if reply == "" {
		return "", errors.GenerationFailed(what, errors.E("empty response"))
	}
	return reply, nil
}

var listItem = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s+(.+)$`)

// parseList extracts the items of a numbered or bulleted list, skipping
// any preamble lines.
func parseList(reply string) []string {
	var items []string
	for _, line := range strings.Split(reply, "\n") {
		m := listItem.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		item := strings.Trim(strings.TrimSpace(m[1]), "`\"'")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// stripFence removes a surrounding ``` block, if the reply has one.
func stripFence(reply string) string {
	s := strings.TrimSpace(reply)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
