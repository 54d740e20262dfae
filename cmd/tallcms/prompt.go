package main

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/tallcms/cms-installer/internal/messages"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// confirm asks a yes/no question on the terminal with yes preselected.
// Aborting the form counts as no.
func confirm(question string) (bool, error) {
	answer := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative(messages.PromptAffirmative).
				Negative(messages.PromptNegative).
				Value(&answer),
		),
	)
	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return answer, nil
}
