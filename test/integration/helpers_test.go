//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nextkit-labs/create-nextkit/internal/prompt"
	"github.com/nextkit-labs/create-nextkit/internal/runtime"
	"github.com/nextkit-labs/create-nextkit/internal/scaffold"
	"github.com/nextkit-labs/create-nextkit/internal/shell"
	"github.com/nextkit-labs/create-nextkit/internal/ui"
	"github.com/spf13/afero"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	BinDir  string // stub git, node and package managers
	WorkDir string // where projects are created
	LogFile string // every stub appends its argv here
}

const templatePkg = `{
  "name": "nextkit-template",
  "private": true,
  "scripts": {
    "dev": "next dev",
    "init:prisma": "prisma init",
    "init:supabase": "supabase init"
  }
}`

// setupTestEnv puts shell stubs first on PATH so a real ExecRunner can drive
// the whole run without network access.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}

	env := &testEnv{BinDir: t.TempDir(), WorkDir: t.TempDir()}
	env.LogFile = filepath.Join(env.BinDir, "calls.log")

	writeStub(t, env, "git", `
if [ "$1" = "clone" ]; then
  for dest; do :; done
  mkdir -p "$dest/.git" || exit 1
  cat > "$dest/package.json" <<'PKG'
`+templatePkg+`
PKG
fi`)
	writeStub(t, env, "node", `echo v20.11.1`)
	writeStub(t, env, "npm", `[ "$STUB_FAIL" = "npm" ] && exit 3; exit 0`)
	writeStub(t, env, "yarn", `exit 0`)
	writeStub(t, env, "supabase", `exit 0`)

	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("NEXTKIT_NODE_VERSION", "")
	return env
}

func writeStub(t *testing.T, env *testEnv, name, body string) {
	t.Helper()
	script := "#!/bin/sh\necho \"" + name + " $*\" >> \"" + env.LogFile + "\"\n" + strings.TrimLeft(body, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(env.BinDir, name), []byte(script), 0o755); err != nil {
		t.Fatalf("writing stub %s: %v", name, err)
	}
}

// calls returns the stub invocations in order.
func (env *testEnv) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(env.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// newOrchestrator wires the production runner and filesystem with answers
// taken from preset.
func newOrchestrator(env *testEnv, preset *prompt.Preset, args ...string) (*scaffold.Orchestrator, *bytes.Buffer) {
	var out bytes.Buffer
	runner := &shell.ExecRunner{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &out}
	return &scaffold.Orchestrator{
		Runner:    runner,
		Questions: &prompt.Questionnaire{Driver: prompt.NonInteractive{}, Preset: preset},
		FS:        afero.NewOsFs(),
		Node:      &runtime.NodeProbe{Runner: runner},
		Reporter:  ui.New(&out, &out),
		Options: scaffold.Options{
			Args:         args,
			WorkDir:      env.WorkDir,
			TemplateURL:  "https://example.com/nextkit-template.git",
			MinNodeMajor: 14,
			RemoteCLI:    "supabase",
		},
	}, &out
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be absent, stat error: %v", path, err)
	}
}
