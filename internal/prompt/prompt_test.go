package prompt_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nextkit-labs/create-nextkit/internal/prompt"
	"github.com/nextkit-labs/create-nextkit/internal/prompt/prompttest"
	"github.com/nextkit-labs/create-nextkit/internal/remote"
	"github.com/nextkit-labs/create-nextkit/internal/session"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPreset(t *testing.T) {
	path := writePreset(t, `
package_manager = "pnpm"
css = "chakraui"
backends = ["prisma", "supabase"]

[remote]
create = true
project_name = "my-app-db"
`)
	p, err := prompt.LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset() error: %v", err)
	}

	backends := []string{"prisma", "supabase"}
	want := &prompt.Preset{
		PackageManager: "pnpm",
		CSS:            "chakraui",
		Backends:       &backends,
		Remote:         &prompt.RemotePreset{Create: true, ProjectName: "my-app-db"},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("preset mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPresetErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown package manager", `package_manager = "bun"`},
		{"unknown css", `css = "bootstrap"`},
		{"unknown backend", `backends = ["mongo"]`},
		{"unknown field", `colour = "blue"`},
		{"blank remote name", "[remote]\ncreate = true\nproject_name = \"  \""},
		{"malformed", `package_manager = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := prompt.LoadPreset(writePreset(t, tt.content)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoadPresetMissingFile(t *testing.T) {
	if _, err := prompt.LoadPreset(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestQuestionnaireInteractive(t *testing.T) {
	script := &prompttest.Script{
		Selects:  []int{2, 1},
		Multi:    [][]int{{1, 0}},
		Confirms: []bool{true},
		Inputs:   []string{"db"},
	}
	q := &prompt.Questionnaire{Driver: script}
	ctx := context.Background()

	pm, err := q.PackageManager(ctx)
	if err != nil || pm != session.PNPM {
		t.Fatalf("PackageManager() = %q, %v", pm, err)
	}
	css, err := q.CSS(ctx)
	if err != nil || css != session.CSSChakraUI {
		t.Fatalf("CSS() = %q, %v", css, err)
	}
	backends, err := q.Backends(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]session.Backend{session.Supabase, session.Prisma}, backends); diff != "" {
		t.Errorf("Backends() mismatch (-want +got):\n%s", diff)
	}
	create, err := q.CreateRemoteProject(ctx)
	if err != nil || !create {
		t.Fatalf("CreateRemoteProject() = %v, %v", create, err)
	}
	name, err := q.RemoteProjectName(ctx)
	if err != nil || name != "db" {
		t.Fatalf("RemoteProjectName() = %q, %v", name, err)
	}
	if len(script.Asked) != 5 {
		t.Errorf("asked %d questions, want 5", len(script.Asked))
	}
}

func TestQuestionnaireRejectsPlaceholderIndex(t *testing.T) {
	q := &prompt.Questionnaire{Driver: &prompttest.Script{Selects: []int{2}}}
	if _, err := q.CSS(context.Background()); err == nil {
		t.Fatal("placeholder option should not be selectable")
	}
}

func TestQuestionnaireEmptyBackends(t *testing.T) {
	q := &prompt.Questionnaire{Driver: &prompttest.Script{Multi: [][]int{nil}}}
	backends, err := q.Backends(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(backends) != 0 {
		t.Errorf("Backends() = %v, want none", backends)
	}
}

func TestQuestionnaireBlankRemoteName(t *testing.T) {
	q := &prompt.Questionnaire{Driver: &prompttest.Script{Inputs: []string{" "}}}
	if _, err := q.RemoteProjectName(context.Background()); !errors.Is(err, remote.ErrEmptyProjectName) {
		t.Fatalf("expected ErrEmptyProjectName, got %v", err)
	}
}

func TestQuestionnairePresetSkipsQuestions(t *testing.T) {
	empty := []string{}
	script := &prompttest.Script{}
	q := &prompt.Questionnaire{
		Driver: script,
		Preset: &prompt.Preset{
			PackageManager: "yarn",
			CSS:            "none",
			Backends:       &empty,
			Remote:         &prompt.RemotePreset{Create: false},
		},
	}
	ctx := context.Background()

	if pm, _ := q.PackageManager(ctx); pm != session.Yarn {
		t.Errorf("PackageManager() = %q, want yarn", pm)
	}
	if css, _ := q.CSS(ctx); css != session.CSSNone {
		t.Errorf("CSS() = %q, want none", css)
	}
	if b, err := q.Backends(ctx); err != nil || len(b) != 0 {
		t.Errorf("Backends() = %v, %v", b, err)
	}
	if create, _ := q.CreateRemoteProject(ctx); create {
		t.Error("CreateRemoteProject() = true, want false")
	}
	if len(script.Asked) != 0 {
		t.Errorf("preset answers should not prompt, asked %v", script.Asked)
	}
}

func TestQuestionnairePartialPreset(t *testing.T) {
	script := &prompttest.Script{Selects: []int{0}}
	q := &prompt.Questionnaire{Driver: script, Preset: &prompt.Preset{PackageManager: "pnpm"}}

	if _, err := q.CSS(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(script.Asked) != 1 {
		t.Errorf("unset preset answers should be asked, asked %v", script.Asked)
	}
}

func TestNonInteractive(t *testing.T) {
	q := &prompt.Questionnaire{Driver: prompt.NonInteractive{}}
	if _, err := q.PackageManager(context.Background()); !errors.Is(err, prompt.ErrNoTerminal) {
		t.Fatalf("expected ErrNoTerminal, got %v", err)
	}
}

func TestCheckUnattended(t *testing.T) {
	backends := []string{}
	complete := func() *prompt.Preset {
		return &prompt.Preset{
			PackageManager: "npm",
			CSS:            "none",
			Backends:       &backends,
			Remote:         &prompt.RemotePreset{Create: true, ProjectName: "db"},
		}
	}

	tests := []struct {
		name    string
		driver  prompt.Driver
		preset  func() *prompt.Preset
		wantErr bool
	}{
		{name: "interactive without preset", driver: &prompttest.Script{}, preset: func() *prompt.Preset { return nil }},
		{name: "unattended without preset", driver: prompt.NonInteractive{}, preset: func() *prompt.Preset { return nil }, wantErr: true},
		{name: "unattended complete", driver: prompt.NonInteractive{}, preset: complete},
		{
			name:   "unattended remote declined",
			driver: prompt.NonInteractive{},
			preset: func() *prompt.Preset {
				p := complete()
				p.Remote = &prompt.RemotePreset{Create: false}
				return p
			},
		},
		{
			name:   "unattended remote without name",
			driver: prompt.NonInteractive{},
			preset: func() *prompt.Preset {
				p := complete()
				p.Remote.ProjectName = "  "
				return p
			},
			wantErr: true,
		},
		{
			name:   "unattended without backends",
			driver: prompt.NonInteractive{},
			preset: func() *prompt.Preset {
				p := complete()
				p.Backends = nil
				return p
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &prompt.Questionnaire{Driver: tt.driver, Preset: tt.preset()}
			err := q.CheckUnattended()
			if tt.wantErr != (err != nil) {
				t.Fatalf("CheckUnattended() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, prompt.ErrNoTerminal) {
				t.Errorf("got %v, want ErrNoTerminal", err)
			}
		})
	}
}
