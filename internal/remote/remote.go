// Package remote provisions a hosted backend project by driving the
// hosted-service CLI (Supabase by default). Every call inherits the
// terminal so login and creation flows stay interactive.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nextkit-labs/create-nextkit/internal/shell"
)

// ErrEmptyProjectName is returned for a blank remote project name.
var ErrEmptyProjectName = errors.New("project name cannot be empty")

// Provisioner runs the hosted-service CLI.
type Provisioner struct {
	Runner shell.Runner
	CLI    string // binary name, e.g. "supabase"
	Dir    string // project directory the CLI runs in
}

// Login authenticates the CLI.
func (p *Provisioner) Login(ctx context.Context) error {
	return p.run(ctx, "logging in", "login")
}

// ListProjects prints the projects the account already owns.
func (p *Provisioner) ListProjects(ctx context.Context) error {
	return p.run(ctx, "listing projects", "projects", "list")
}

// CreateProject requests creation of a new project named name.
func (p *Provisioner) CreateProject(ctx context.Context, name string) error {
	if err := ValidateProjectName(name); err != nil {
		return err
	}
	return p.run(ctx, "creating project "+name, "projects", "create", strings.TrimSpace(name), "-i")
}

func (p *Provisioner) run(ctx context.Context, what string, args ...string) error {
	c := shell.Command{Name: p.CLI, Args: args, Dir: p.Dir}
	if err := p.Runner.Run(ctx, c); err != nil {
		return fmt.Errorf("%s with %s: %w", what, p.CLI, err)
	}
	return nil
}

// ValidateProjectName rejects blank names.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyProjectName
	}
	return nil
}
