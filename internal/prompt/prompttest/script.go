// Package prompttest provides a scripted prompt.Driver for tests.
package prompttest

import (
	"context"
	"errors"

	"github.com/nextkit-labs/create-nextkit/internal/prompt"
)

// Script answers prompts from queues in call order. Asked records the
// message of every question. When Abort is set every question fails with
// prompt.ErrAborted.
type Script struct {
	Selects  []int
	Multi    [][]int
	Confirms []bool
	Inputs   []string
	Abort    bool

	Asked []string
}

func (s *Script) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	s.Asked = append(s.Asked, cfg.Message)
	if s.Abort {
		return 0, prompt.ErrAborted
	}
	if len(s.Selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	v := s.Selects[0]
	s.Selects = s.Selects[1:]
	return v, nil
}

func (s *Script) MultiSelect(_ context.Context, cfg prompt.SelectConfig) ([]int, error) {
	s.Asked = append(s.Asked, cfg.Message)
	if s.Abort {
		return nil, prompt.ErrAborted
	}
	if len(s.Multi) == 0 {
		return nil, errors.New("no multiselect scripted")
	}
	v := s.Multi[0]
	s.Multi = s.Multi[1:]
	return v, nil
}

func (s *Script) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	s.Asked = append(s.Asked, cfg.Message)
	if s.Abort {
		return false, prompt.ErrAborted
	}
	if len(s.Confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

func (s *Script) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	s.Asked = append(s.Asked, cfg.Message)
	if s.Abort {
		return "", prompt.ErrAborted
	}
	if len(s.Inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	return v, nil
}
