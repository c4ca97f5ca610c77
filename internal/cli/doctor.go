package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/nextkit-labs/create-nextkit/internal/runtime"
	"github.com/nextkit-labs/create-nextkit/internal/shell"
)

var lookPath = exec.LookPath

// ErrDoctorFailed is returned when a required tool is missing or too old.
var ErrDoctorFailed = errors.New("environment is not ready to scaffold a project")

type tool struct {
	name     string
	required bool
}

type doctorRow struct {
	tool    string
	ok      bool
	status  string
	version string
}

// doctor reports which external tools a run needs are available.
type doctor struct {
	Runner    shell.Runner
	LookPath  func(string) (string, error)
	MinMajor  int
	RemoteCLI string
}

func (d *doctor) tools() []tool {
	return []tool{
		{name: "git", required: true},
		{name: "node", required: true},
		{name: "npm"},
		{name: "yarn"},
		{name: "pnpm"},
		{name: d.RemoteCLI},
	}
}

// Run checks every tool, prints the table to w and returns ErrDoctorFailed
// if a required tool is unusable.
func (d *doctor) Run(ctx context.Context, w io.Writer) error {
	var rows []doctorRow
	failed := false

	for _, t := range d.tools() {
		row := d.check(ctx, t)
		if !row.ok && t.required {
			failed = true
		}
		rows = append(rows, row)
	}

	printTable(w, rows)
	if failed {
		return ErrDoctorFailed
	}
	return nil
}

func (d *doctor) check(ctx context.Context, t tool) doctorRow {
	row := doctorRow{tool: t.name}
	path, err := d.LookPath(t.name)
	if err != nil {
		row.status = "missing"
		if !t.required {
			row.status = "not found (optional)"
		}
		return row
	}

	out, err := d.Runner.Output(ctx, shell.Command{Name: t.name, Args: []string{"--version"}})
	if err != nil {
		row.status = "found at " + path + ", version unknown"
		row.ok = !t.required
		return row
	}
	row.version = firstLine(out)
	row.status = "found at " + path
	row.ok = true

	if t.name == "node" {
		if _, err := runtime.CheckVersion(row.version, d.MinMajor); err != nil {
			row.ok = false
			row.status = err.Error()
		}
	}
	return row
}

func printTable(w io.Writer, rows []doctorRow) {
	toolWidth, versionWidth := runewidth.StringWidth("TOOL"), runewidth.StringWidth("VERSION")
	for _, r := range rows {
		toolWidth = max(toolWidth, runewidth.StringWidth(r.tool))
		versionWidth = max(versionWidth, runewidth.StringWidth(r.version))
	}

	fmt.Fprintf(w, "       %s  %s  %s\n",
		runewidth.FillRight("TOOL", toolWidth), runewidth.FillRight("VERSION", versionWidth), "STATUS")
	for _, r := range rows {
		mark := color.GreenString("[ OK ]")
		if !r.ok {
			mark = color.RedString("[FAIL]")
			if strings.HasSuffix(r.status, "(optional)") {
				mark = color.YellowString("[MISS]")
			}
		}
		fmt.Fprintf(w, "%s %s  %s  %s\n", mark,
			runewidth.FillRight(r.tool, toolWidth), runewidth.FillRight(r.version, versionWidth), r.status)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
