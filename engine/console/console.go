// Package console is the boundary to the interactive terminal. The
// resolution engine talks to a Console and never to the terminal directly,
// so non-interactive runs and tests can substitute their own
// implementation.
package console

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrCanceled is returned when the operator interrupts a prompt. It aborts
// the whole run; files already written are left in place.
var ErrCanceled = errors.New("canceled by operator")

// ErrNonInteractive is returned when a value would have to be prompted for
// but prompting is disabled.
var ErrNonInteractive = errors.New("input required but prompting is disabled")

// Console asks the operator for scalar values. Free-form answers are
// returned trimmed; choice answers are validated against the supplied set.
type Console interface {
	// Prompt asks for a free-form value. When required, empty answers
	// re-prompt; otherwise an empty answer is returned as-is.
	Prompt(message string, required bool) (string, error)

	// Choice asks for one of the given choices and re-prompts until the
	// answer is in the set.
	Choice(message string, choices []string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(message string) (bool, error)
}

// Terminal is the huh-backed Console used for interactive runs.
type Terminal struct{}

// NewTerminal returns a Console that prompts on the controlling terminal.
func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) Prompt(message string, required bool) (string, error) {
	var value string
	input := huh.NewInput().Title(message).Value(&value)
	if required {
		input.Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a value is required")
			}
			return nil
		})
	}
	if err := input.Run(); err != nil {
		return "", mapHuhErr(err)
	}
	return strings.TrimSpace(value), nil
}

func (t *Terminal) Choice(message string, choices []string) (string, error) {
	options := make([]huh.Option[string], 0, len(choices))
	for _, c := range choices {
		options = append(options, huh.NewOption(c, c))
	}
	var value string
	sel := huh.NewSelect[string]().
		Title(message).
		Options(options...).
		Value(&value)
	if err := sel.Run(); err != nil {
		return "", mapHuhErr(err)
	}
	return value, nil
}

func (t *Terminal) Confirm(message string) (bool, error) {
	var value bool
	confirm := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if err := confirm.Run(); err != nil {
		return false, mapHuhErr(err)
	}
	return value, nil
}

func mapHuhErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCanceled
	}
	return err
}

// NoInput is the Console used for --no-input runs: any attempt to prompt
// fails instead of blocking.
type NoInput struct{}

// NewNoInput returns a Console that refuses to prompt.
func NewNoInput() *NoInput {
	return &NoInput{}
}

func (n *NoInput) Prompt(string, bool) (string, error) {
	return "", ErrNonInteractive
}

func (n *NoInput) Choice(string, []string) (string, error) {
	return "", ErrNonInteractive
}

func (n *NoInput) Confirm(string) (bool, error) {
	return false, ErrNonInteractive
}
