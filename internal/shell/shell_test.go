package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Name: "npm", Args: []string{"install"}}, "npm install"},
		{Command{Name: "git", Args: []string{"clone", "--depth", "1", "u", "p"}}, "git clone --depth 1 u p"},
		{Command{Name: "supabase"}, "supabase"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestExecRunner_RunStreamsOutput(t *testing.T) {
	requireSh(t)

	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stderr}

	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo out; echo err 1>&2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stdout.String(); got != "out\n" {
		t.Errorf("stdout = %q, want %q", got, "out\n")
	}
	if got := stderr.String(); got != "err\n" {
		t.Errorf("stderr = %q, want %q", got, "err\n")
	}
}

func TestExecRunner_RunUsesDir(t *testing.T) {
	requireSh(t)

	dir := t.TempDir()
	var stdout bytes.Buffer
	r := &ExecRunner{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &bytes.Buffer{}}

	if err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "pwd -P"}, Dir: dir}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(stdout.String()); got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireSh(t)

	r := &ExecRunner{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 42"}})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != 42 {
		t.Errorf("exit code = %d, want 42", exitErr.Code)
	}
}

func TestExecRunner_OutputCapturesStderrOnFailure(t *testing.T) {
	requireSh(t)

	r := NewExecRunner()
	_, err := r.Output(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo broken 1>&2; exit 3"}})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Stderr != "broken" {
		t.Errorf("Stderr = %q, want %q", exitErr.Stderr, "broken")
	}
	if !strings.Contains(err.Error(), "status 3") {
		t.Errorf("error should mention status, got: %v", err)
	}
}

func TestExecRunner_OutputTrimmed(t *testing.T) {
	requireSh(t)

	out, err := NewExecRunner().Output(context.Background(), Command{Name: "sh", Args: []string{"-c", "printf '  v18.2.0\\n\\n'"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "v18.2.0" {
		t.Errorf("Output() = %q, want %q", out, "v18.2.0")
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := NewExecRunner().Output(context.Background(), Command{Name: "definitely-not-a-real-binary-xyz"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected exec.ErrNotFound in chain, got: %v", err)
	}
}

func TestExecRunner_Cancelled(t *testing.T) {
	requireSh(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &ExecRunner{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
