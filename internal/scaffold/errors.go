package scaffold

import (
	"errors"
	"fmt"

	"github.com/nextkit-labs/create-nextkit/internal/ui"
)

// Kind classifies scaffolding failures.
type Kind string

const (
	KindUnsupportedEnvironment Kind = "UnsupportedEnvironment"
	KindMissingArgument        Kind = "MissingArgument"
	KindInvalidName            Kind = "InvalidName"
	KindPathExists             Kind = "PathExists"
	KindScaffoldFailure        Kind = "ScaffoldFailure"
)

// Error is the error type returned by Orchestrator.Run. Only
// KindScaffoldFailure is raised after something was written to disk.
type Error struct {
	Kind    Kind
	Msg     string
	Details []string // extra lines, e.g. every naming error and warning
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, msg string, cause error, details ...string) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause, Details: details}
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// ExitCode returns the process exit status for err: 0 for nil, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Report prints err and its detail lines through r.
func Report(r *ui.Reporter, err error) {
	if err == nil {
		return
	}
	r.Error("%s", err)
	var se *Error
	if errors.As(err, &se) {
		for _, d := range se.Details {
			r.Detail("%s", d)
		}
	}
}
