// Package shell runs external commands for the scaffolder. Commands are
// executed synchronously; Run streams output to the configured writers while
// Output captures stdout for probes such as `node --version`.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string // working directory (optional)
}

// String renders the command line as a user would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner is the interface for running external commands.
// Implementations must be safe for stubbing in tests.
type Runner interface {
	// Run executes the command with inherited stdio and waits for it.
	// A non-zero exit status is returned as *ExitError.
	Run(ctx context.Context, c Command) error

	// Output executes the command and returns its trimmed stdout.
	Output(ctx context.Context, c Command) (string, error)
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command Command
	Code    int
	Stderr  string // populated by Output only
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	// Stdin, Stdout and Stderr can be set for testing; defaults to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns an ExecRunner wired to the process streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes c, streaming stdout/stderr and forwarding stdin so interactive
// child processes (login flows, project creation) work unchanged.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = r.stdin()
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	if err := cmd.Run(); err != nil {
		return classify(ctx, c, err, "")
	}
	return nil
}

// Output executes c and returns its stdout with surrounding whitespace removed.
func (r *ExecRunner) Output(ctx context.Context, c Command) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", classify(ctx, c, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// classify turns an exec error into an *ExitError when the process ran, and
// prefers the context error when the run was cancelled.
func classify(ctx context.Context, c Command, err error, stderr string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", c, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: c, Code: exitErr.ExitCode(), Stderr: stderr}
	}
	return fmt.Errorf("running %s: %w", c, err)
}

func (r *ExecRunner) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return os.Stdin
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
