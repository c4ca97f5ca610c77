// Package ui prints progress, warnings and the final banner of a run.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

var (
	colorStep  = color.New(color.FgCyan, color.Bold).SprintFunc()
	colorWarn  = color.New(color.FgYellow, color.Bold).SprintFunc()
	colorError = color.New(color.FgHiRed, color.Bold).SprintFunc()
	colorGood  = color.New(color.FgGreen, color.Bold).SprintFunc()
	colorDim   = color.New(color.FgHiBlack).SprintFunc()

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 2)
)

// Reporter writes progress to Out and problems to Err.
type Reporter struct {
	Out io.Writer
	Err io.Writer
}

// New returns a Reporter writing to out and errOut.
func New(out, errOut io.Writer) *Reporter {
	return &Reporter{Out: out, Err: errOut}
}

// Step announces the start of a workflow step.
func (r *Reporter) Step(format string, args ...any) {
	fmt.Fprintf(r.Out, "%s %s\n", colorStep("›"), fmt.Sprintf(format, args...))
}

// Info prints a secondary line.
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.Out, "  %s\n", colorDim(fmt.Sprintf(format, args...)))
}

// Warn prints a warning to Err.
func (r *Reporter) Warn(format string, args ...any) {
	fmt.Fprintf(r.Err, "%s %s\n", colorWarn("warning:"), fmt.Sprintf(format, args...))
}

// Error prints an error to Err.
func (r *Reporter) Error(format string, args ...any) {
	fmt.Fprintf(r.Err, "%s %s\n", colorError("error:"), fmt.Sprintf(format, args...))
}

// Detail prints an indented list item to Err, under a preceding Error or Warn.
func (r *Reporter) Detail(format string, args ...any) {
	fmt.Fprintf(r.Err, "  - %s\n", fmt.Sprintf(format, args...))
}

// Success prints a bordered banner with a headline and follow-up lines.
func (r *Reporter) Success(headline string, lines ...string) {
	body := colorGood(headline)
	if len(lines) > 0 {
		body += "\n\n" + strings.Join(lines, "\n")
	}
	fmt.Fprintln(r.Out, bannerStyle.Render(body))
}
