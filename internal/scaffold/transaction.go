package scaffold

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nextkit-labs/create-nextkit/internal/session"
	"github.com/spf13/afero"
)

// Step is one stage of a run. It receives the current session and returns
// the updated one.
type Step struct {
	Name string
	Run  func(ctx context.Context, s session.Session) (session.Session, error)
}

// Transaction is the rollback boundary around the side-effecting steps.
// If any step fails, or the context is cancelled between steps, everything
// under Root that the run created is removed.
type Transaction struct {
	FS   afero.Fs
	Root string

	// KeepRoot keeps Root itself and the entries named in Preserve; only
	// entries created during the run are removed. Used when scaffolding into
	// an existing directory.
	KeepRoot bool
	Preserve []string

	// RollbackErr is set when a rollback ran and could not finish.
	RollbackErr error
}

// Run executes steps in order and returns the final session. On failure
// the returned error is a KindScaffoldFailure *Error and the rollback has
// already been attempted; a failed rollback is appended to its Details.
func (t *Transaction) Run(ctx context.Context, s session.Session, steps []Step) (session.Session, error) {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return s, t.abort(step.Name, err)
		}
		next, err := step.Run(ctx, s)
		if err != nil {
			return s, t.abort(step.Name, err)
		}
		s = next
	}
	return s, nil
}

func (t *Transaction) abort(step string, cause error) error {
	e := newError(KindScaffoldFailure, step+" failed", cause)
	if err := t.Rollback(); err != nil {
		t.RollbackErr = err
		e.Details = append(e.Details, fmt.Sprintf("could not remove %s: %v", t.Root, err))
	}
	return e
}

// Rollback removes what the run created under Root.
func (t *Transaction) Rollback() error {
	if !t.KeepRoot {
		return t.FS.RemoveAll(t.Root)
	}

	entries, err := afero.ReadDir(t.FS, t.Root)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return nil
		}
		return fmt.Errorf("listing %s: %w", t.Root, err)
	}

	keep := make(map[string]bool, len(t.Preserve))
	for _, name := range t.Preserve {
		keep[name] = true
	}

	var errs []error
	for _, entry := range entries {
		if keep[entry.Name()] {
			continue
		}
		if err := t.FS.RemoveAll(filepath.Join(t.Root, entry.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
