// Package prompt asks the interactive questions of a scaffolding run. The
// Driver interface abstracts the terminal so the orchestrator can be tested
// with scripted answers, and Preset supplies answers from a TOML file.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/core"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var (
	// ErrAborted is returned when the user interrupts a prompt.
	ErrAborted = errors.New("prompt aborted")
	// ErrNoTerminal is returned when a question must be asked but stdin is not a terminal.
	ErrNoTerminal = errors.New("cannot prompt: stdin is not a terminal (use --preset to supply answers)")
)

// SelectConfig configures a single or multi-select prompt.
type SelectConfig struct {
	Message  string
	Options  []string
	Disabled []int // indices shown but not selectable
	Help     string
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
}

// InputConfig configures a text prompt.
type InputConfig struct {
	Message   string
	Default   string
	Validator func(string) error
}

// Driver abstracts the prompt implementation.
type Driver interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Input(ctx context.Context, cfg InputConfig) (string, error)
}

// SurveyDriver renders prompts in the terminal with survey.
type SurveyDriver struct{}

// NewSurveyDriver returns a terminal-backed Driver.
func NewSurveyDriver() *SurveyDriver {
	return &SurveyDriver{}
}

func (d *SurveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out string
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	var opts []survey.AskOpt
	if len(cfg.Disabled) > 0 {
		opts = append(opts, survey.WithValidator(rejectDisabled(cfg.Options, cfg.Disabled)))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return 0, translateSurveyErr(err)
	}
	return indexOf(cfg.Options, out), nil
}

func (d *SurveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	prompt := &survey.MultiSelect{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return nil, translateSurveyErr(err)
	}
	return indicesOf(cfg.Options, out), nil
}

func (d *SurveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *SurveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Default: cfg.Default,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return cfg.Validator(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

// NonInteractive fails every question with ErrNoTerminal.
type NonInteractive struct{}

func (NonInteractive) Select(context.Context, SelectConfig) (int, error) { return 0, ErrNoTerminal }
func (NonInteractive) MultiSelect(context.Context, SelectConfig) ([]int, error) { return nil, ErrNoTerminal }
func (NonInteractive) Confirm(context.Context, ConfirmConfig) (bool, error) { return false, ErrNoTerminal }
func (NonInteractive) Input(context.Context, InputConfig) (string, error) { return "", ErrNoTerminal }

func rejectDisabled(options []string, disabled []int) survey.Validator {
	return func(ans interface{}) error {
		choice, ok := ans.(core.OptionAnswer)
		if !ok {
			return nil
		}
		for _, idx := range disabled {
			if idx == choice.Index {
				return fmt.Errorf("%q is not available yet", options[idx])
			}
		}
		return nil
	}
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

func indicesOf(options, values []string) []int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := seen[option]; ok {
			out = append(out, i)
		}
	}
	return out
}
