package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/nextkit-labs/create-nextkit/internal/remote"
	"github.com/nextkit-labs/create-nextkit/internal/session"
)

// cssPlaceholder is listed so users see what is coming; it cannot be picked.
const cssPlaceholder = "tailwind (coming soon)"

// Questionnaire asks the scaffolding questions, taking answers from Preset
// when it has them.
type Questionnaire struct {
	Driver Driver
	Preset *Preset // optional
}

// PackageManager asks which package manager to use.
func (q *Questionnaire) PackageManager(ctx context.Context) (session.PackageManager, error) {
	if q.Preset != nil && q.Preset.PackageManager != "" {
		return session.ParsePackageManager(q.Preset.PackageManager)
	}
	options := stringsOf(session.PackageManagers)
	idx, err := q.Driver.Select(ctx, SelectConfig{
		Message: "Which package manager do you want to use?",
		Options: options,
	})
	if err != nil {
		return "", err
	}
	if err := checkIndex(idx, len(options)); err != nil {
		return "", err
	}
	return session.PackageManagers[idx], nil
}

// CSS asks which styling framework to add.
func (q *Questionnaire) CSS(ctx context.Context) (session.CSS, error) {
	if q.Preset != nil && q.Preset.CSS != "" {
		return session.ParseCSS(q.Preset.CSS)
	}
	options := append(stringsOf(session.CSSChoices), cssPlaceholder)
	idx, err := q.Driver.Select(ctx, SelectConfig{
		Message:  "Which CSS framework do you want to use?",
		Options:  options,
		Disabled: []int{len(options) - 1},
	})
	if err != nil {
		return "", err
	}
	if err := checkIndex(idx, len(session.CSSChoices)); err != nil {
		return "", err
	}
	return session.CSSChoices[idx], nil
}

// Backends asks which backend services to set up. An empty answer is valid.
func (q *Questionnaire) Backends(ctx context.Context) ([]session.Backend, error) {
	if q.Preset != nil && q.Preset.Backends != nil {
		return session.ParseBackends(*q.Preset.Backends)
	}
	options := stringsOf(session.Backends)
	indices, err := q.Driver.MultiSelect(ctx, SelectConfig{
		Message: "Which backend services do you want to set up?",
		Options: options,
		Help:    "Use space to select, enter to confirm. Select none to skip.",
	})
	if err != nil {
		return nil, err
	}
	var out []session.Backend
	for _, idx := range indices {
		if err := checkIndex(idx, len(options)); err != nil {
			return nil, err
		}
		out = append(out, session.Backends[idx])
	}
	return out, nil
}

// CreateRemoteProject asks whether to provision a hosted backend project.
func (q *Questionnaire) CreateRemoteProject(ctx context.Context) (bool, error) {
	if q.Preset != nil && q.Preset.Remote != nil {
		return q.Preset.Remote.Create, nil
	}
	return q.Driver.Confirm(ctx, ConfirmConfig{
		Message: "Do you want to create a new Supabase project?",
	})
}

// RemoteProjectName asks for the hosted project's name.
func (q *Questionnaire) RemoteProjectName(ctx context.Context) (string, error) {
	if q.Preset != nil && q.Preset.Remote != nil && q.Preset.Remote.ProjectName != "" {
		return q.Preset.Remote.ProjectName, nil
	}
	name, err := q.Driver.Input(ctx, InputConfig{
		Message:   "What should the Supabase project be called?",
		Validator: remote.ValidateProjectName,
	})
	if err != nil {
		return "", err
	}
	if err := remote.ValidateProjectName(name); err != nil {
		return "", err
	}
	return name, nil
}

// CheckUnattended fails when the driver cannot ask questions and the preset
// leaves one unanswered. Called before the run starts, it keeps a missing
// answer from surfacing after the hosted-service CLI has already run.
func (q *Questionnaire) CheckUnattended() error {
	if _, ok := q.Driver.(NonInteractive); !ok {
		return nil
	}
	p := q.Preset
	var missing []string
	switch {
	case p == nil:
		missing = []string{"package_manager", "css", "backends", "remote"}
	default:
		if p.PackageManager == "" {
			missing = append(missing, "package_manager")
		}
		if p.CSS == "" {
			missing = append(missing, "css")
		}
		if p.Backends == nil {
			missing = append(missing, "backends")
		}
		if p.Remote == nil {
			missing = append(missing, "remote")
		} else if p.Remote.Create && strings.TrimSpace(p.Remote.ProjectName) == "" {
			missing = append(missing, "remote.project_name")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w; preset is missing %s", ErrNoTerminal, strings.Join(missing, ", "))
	}
	return nil
}

func checkIndex(idx, n int) error {
	if idx < 0 || idx >= n {
		return fmt.Errorf("invalid selection %d", idx)
	}
	return nil
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
