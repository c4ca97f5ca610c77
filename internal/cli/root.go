package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nextkit-labs/create-nextkit/internal/branding"
	"github.com/nextkit-labs/create-nextkit/internal/config"
	"github.com/nextkit-labs/create-nextkit/internal/prompt"
	"github.com/nextkit-labs/create-nextkit/internal/runtime"
	"github.com/nextkit-labs/create-nextkit/internal/scaffold"
	"github.com/nextkit-labs/create-nextkit/internal/shell"
	"github.com/nextkit-labs/create-nextkit/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	presetPath   string
	templateFlag string
	doctorFlag   bool
)

func init() {
	rootCmd.Flags().StringVar(&presetPath, "preset", "", "TOML file with pre-recorded answers")
	rootCmd.Flags().StringVar(&templateFlag, "template", "", "Git URL of the project template")
	rootCmd.Flags().BoolVar(&doctorFlag, "doctor", false, "Check the tools a project needs and exit")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <project-name>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a new application from the official template:
it clones the template, asks for a package manager, styling and backend
services, installs dependencies and runs the backend generators.

Use "." as the project name to scaffold into the current directory.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		runner := shell.NewExecRunner()

		minMajor, err := config.MinNodeVersion()
		if err != nil {
			return err
		}

		if doctorFlag {
			d := &doctor{
				Runner:    runner,
				LookPath:  lookPath,
				MinMajor:  minMajor,
				RemoteCLI: config.RemoteCLI(),
			}
			return d.Run(cmd.Context(), cmd.OutOrStdout())
		}

		questions, err := newQuestionnaire(presetPath, os.Stdin)
		if err != nil {
			return err
		}
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}

		o := &scaffold.Orchestrator{
			Runner:    runner,
			Questions: questions,
			FS:        afero.NewOsFs(),
			Node:      &runtime.NodeProbe{Runner: runner},
			Reporter:  ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr()),
			Options: scaffold.Options{
				Args:         args,
				WorkDir:      wd,
				TemplateURL:  config.TemplateURL(templateFlag),
				MinNodeMajor: minMajor,
				RemoteCLI:    config.RemoteCLI(),
			},
		}
		_, err = o.Run(cmd.Context())
		return err
	},
}

// newQuestionnaire loads the optional preset and picks the survey driver
// when stdin is a terminal.
func newQuestionnaire(path string, stdin *os.File) (*prompt.Questionnaire, error) {
	q := &prompt.Questionnaire{Driver: prompt.NonInteractive{}}
	if term.IsTerminal(int(stdin.Fd())) {
		q.Driver = prompt.NewSurveyDriver()
	}
	if path != "" {
		p, err := prompt.LoadPreset(path)
		if err != nil {
			return nil, err
		}
		q.Preset = p
	}
	if err := q.CheckUnattended(); err != nil {
		return nil, err
	}
	return q, nil
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT and SIGTERM cancel the run, which rolls back a partial project.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	report(os.Stderr, err)
	return err
}

func report(w io.Writer, err error) {
	if err == nil {
		return
	}
	scaffold.Report(ui.New(w, w), err)
}
