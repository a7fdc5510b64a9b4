package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel targets for errors.Is checks across the resolution engine.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrMissingValue = errors.New("missing required value")
)

// InvalidInputError reports a field value that failed validation in a run
// where re-prompting is not allowed.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// MissingValueError reports a required field that never resolved.
type MissingValueError struct {
	Field string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing required value for %s", e.Field)
}

func (e *MissingValueError) Is(target error) bool {
	return target == ErrMissingValue
}

// ValidationError aggregates resolution failures. Outside dry-run mode it
// carries a single error; dry-run collects every failure before reporting.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Errors
}
