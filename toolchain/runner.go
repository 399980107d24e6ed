// Package toolchain wraps the external tools a scaffolded project is built with:
// the cargo package manager and git.
package toolchain

import (
	"context"
	"io"
	"os/exec"
	"strings"
)

// CmdResult holds the result of a command execution.
type CmdResult struct {
	ExitCode int
}

// RunOpts holds optional parameters for command execution.
type RunOpts struct {
	Dir    string    // working directory (optional)
	Stdout io.Writer // nil discards
	Stderr io.Writer // nil discards
}

// Runner runs external commands.
type Runner interface {
	// Run executes name with args and waits for it to exit.
	// A non-zero exit is reported in CmdResult, not as an error.
	// The error is reserved for failures to run at all (binary missing, ctx canceled).
	Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error)
}

// ExecRunner is the production Runner built on os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command, streaming its output to opts.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return CmdResult{ExitCode: exitErr.ExitCode()}, nil
		}
		return CmdResult{ExitCode: -1}, err
	}
	return CmdResult{}, nil
}

// commandLine renders name and args for messages.
func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
