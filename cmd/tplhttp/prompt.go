package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errPromptCancelled is returned when the user aborts a prompt.
var errPromptCancelled = errors.New("tplhttp: prompt cancelled")

// prompter asks the user for context values. It is swapped out in tests.
type prompter interface {
	Ask(ctx context.Context, key string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Ask(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: fmt.Sprintf("%s:", key),
		Help:    fmt.Sprintf("value for the %q template variable", key),
	}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errPromptCancelled
		}
		return "", fmt.Errorf("tplhttp: prompt %s: %w", key, err)
	}
	return out, nil
}
