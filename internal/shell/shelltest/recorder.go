// Package shelltest provides a recording shell.Runner for tests.
package shelltest

import (
	"context"
	"fmt"

	"github.com/nextkit-labs/create-nextkit/internal/shell"
)

// Recorder records every command it is asked to run. OnRun and OnOutput, when
// set, decide the outcome; otherwise Run succeeds and Output fails.
type Recorder struct {
	Calls    []shell.Command
	OnRun    func(c shell.Command) error
	OnOutput func(c shell.Command) (string, error)
}

// Run records c and delegates to OnRun.
func (r *Recorder) Run(ctx context.Context, c shell.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.Calls = append(r.Calls, c)
	if r.OnRun != nil {
		return r.OnRun(c)
	}
	return nil
}

// Output records c and delegates to OnOutput.
func (r *Recorder) Output(ctx context.Context, c shell.Command) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.Calls = append(r.Calls, c)
	if r.OnOutput != nil {
		return r.OnOutput(c)
	}
	return "", fmt.Errorf("no output scripted for %s", c)
}

// Lines returns the recorded command lines in order.
func (r *Recorder) Lines() []string {
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.String())
	}
	return out
}

// Count returns how many times the exact command line was run.
func (r *Recorder) Count(line string) int {
	n := 0
	for _, c := range r.Calls {
		if c.String() == line {
			n++
		}
	}
	return n
}

// Fail returns an *shell.ExitError for c with the given code.
func Fail(c shell.Command, code int) error {
	return &shell.ExitError{Command: c, Code: code}
}
