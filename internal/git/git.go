// Package git acquires the project template with the git CLI and detaches
// the result from the template's history.
package git

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nextkit-labs/create-nextkit/internal/shell"
	"github.com/spf13/afero"
)

// MetadataDir is the name of git's metadata directory.
const MetadataDir = ".git"

// CloneCommand returns the shallow clone command for url into dest.
func CloneCommand(url, dest string) shell.Command {
	return shell.Command{Name: "git", Args: []string{"clone", "--depth", "1", url, dest}}
}

// Clone performs a single-commit-depth clone of url into dest.
func Clone(ctx context.Context, r shell.Runner, url, dest string) error {
	if err := r.Run(ctx, CloneCommand(url, dest)); err != nil {
		return fmt.Errorf("cloning template %s: %w", url, err)
	}
	return nil
}

// RemoveMetadata deletes dir/.git so the project starts without the
// template's history.
func RemoveMetadata(fs afero.Fs, dir string) error {
	path := filepath.Join(dir, MetadataDir)
	if err := fs.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
