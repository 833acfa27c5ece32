// Package exec runs external commands (git, gh, claude) behind an interface
// so callers can be tested without the binaries installed.
package exec

import (
	"bytes"
	"context"
	"fmt"
	osexec "os/exec"
	"strings"
)

// CommandExecutor runs a command in a working directory.
type CommandExecutor interface {
	// Output runs the command and returns its stdout. On failure the error
	// includes stderr.
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
	// Run runs the command, discarding output.
	Run(ctx context.Context, dir, name string, args ...string) error
	// LookPath reports whether name is installed.
	LookPath(name string) (string, error)
}

// RealExecutor runs commands with os/exec.
type RealExecutor struct{}

// NewRealExecutor returns an executor that runs real processes.
func NewRealExecutor() *RealExecutor {
	return &RealExecutor{}
}

func (RealExecutor) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%w: %s", err, msg)
		}
		return out, err
	}
	return out, nil
}

func (e RealExecutor) Run(ctx context.Context, dir, name string, args ...string) error {
	_, err := e.Output(ctx, dir, name, args...)
	return err
}

func (RealExecutor) LookPath(name string) (string, error) {
	return osexec.LookPath(name)
}
