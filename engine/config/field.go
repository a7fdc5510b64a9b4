package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/forumkit/forumkit/engine/console"
	"github.com/forumkit/forumkit/pkg/logger"
)

// ValidateFunc checks one candidate value. A nil error accepts the value.
type ValidateFunc func(value string) error

// NormalizeFunc converts an accepted raw value into its resolved form
// (e.g. an engine code into its enum).
type NormalizeFunc func(value string) (any, error)

// AskFunc runs a field-specific prompt loop and returns the resolved
// value. Used where a plain prompt-and-validate cycle is not enough.
type AskFunc func(rc *ResolveContext) (any, error)

// Dependency gates a field on the resolved value of an earlier field.
// When the predicate is false the field is skipped entirely: never
// prompted, absent from the resolved output.
type Dependency struct {
	Field string
	When  func(value any) bool
}

// Field is one named, typed, defaulted configuration slot.
type Field struct {
	Name     string
	Prompt   string
	Default  string
	Required bool
	// Choices constrains interactive answers to a closed set.
	Choices   []string
	DependsOn *Dependency
	Validate  ValidateFunc
	// ValidateEach applies to items of list-valued fields.
	ValidateEach ValidateFunc
	Normalize    NormalizeFunc
	Ask          AskFunc
	// List marks a field whose raw input is a repeated flag.
	List bool
	// AlwaysInteractive forces a prompt even in use-defaults mode
	// (unless force is set). No built-in field sets it.
	AlwaysInteractive bool
}

// ResolveContext carries the collaborators and per-run switches a field
// needs while resolving. One context is built per invocation; nothing in
// it survives the run.
type ResolveContext struct {
	Console  console.Console
	Fs       afero.Fs
	Options  *Options
	Resolved *Resolved
	Log      logger.Logger
	DryRun   bool
	Force    bool
}

// applicable evaluates the dependency predicate against the values
// resolved so far.
func (f *Field) applicable(r *Resolved) bool {
	if f.DependsOn == nil {
		return true
	}
	v, ok := r.Get(f.DependsOn.Field)
	if !ok {
		return false
	}
	return f.DependsOn.When(v)
}

// resolve settles one field: a valid explicit value wins, an invalid one
// escalates to the console, and only then do the declared default (for
// optional fields) or the prompt loop apply.
func (f *Field) resolve(rc *ResolveContext) error {
	if !f.applicable(rc.Resolved) {
		return nil
	}
	if f.List {
		return f.resolveList(rc)
	}
	if raw, ok := rc.Options.Get(f.Name); ok {
		err := f.check(raw)
		if err == nil {
			return f.commit(rc, raw)
		}
		if rc.Log != nil {
			rc.Log.Warn("invalid value, asking again", "field", f.Name, "error", err)
		}
		return f.promptLoop(rc, true)
	}
	if !f.Required {
		return f.commit(rc, f.Default)
	}
	return f.promptLoop(rc, false)
}

func (f *Field) resolveList(rc *ResolveContext) error {
	if raw, ok := rc.Options.GetList(f.Name); ok {
		err := f.checkList(raw)
		if err == nil {
			rc.Resolved.set(f.Name, raw)
			return nil
		}
		if rc.Log != nil {
			rc.Log.Warn("invalid value, asking again", "field", f.Name, "error", err)
		}
		return f.promptListLoop(rc, true)
	}
	if !f.Required {
		if f.Default != "" {
			rc.Resolved.set(f.Name, splitList(f.Default))
		}
		return nil
	}
	return f.promptListLoop(rc, false)
}

func (f *Field) promptListLoop(rc *ResolveContext, hadRaw bool) error {
	for {
		answer, err := rc.Console.Prompt(f.Prompt, true)
		if err != nil {
			return f.mapPromptErr(err, hadRaw)
		}
		items := splitList(answer)
		if err := f.checkList(items); err != nil {
			if rc.Log != nil {
				rc.Log.Warn("invalid answer, asking again", "field", f.Name, "error", err)
			}
			continue
		}
		rc.Resolved.set(f.Name, items)
		return nil
	}
}

func (f *Field) promptLoop(rc *ResolveContext, hadRaw bool) error {
	for {
		var answer string
		var err error
		switch {
		case f.Ask != nil:
			value, askErr := f.Ask(rc)
			if askErr != nil {
				return f.mapPromptErr(askErr, hadRaw)
			}
			rc.Resolved.set(f.Name, value)
			return nil
		case len(f.Choices) > 0:
			answer, err = rc.Console.Choice(f.Prompt, f.Choices)
		default:
			answer, err = rc.Console.Prompt(f.Prompt, f.Required)
		}
		if err != nil {
			return f.mapPromptErr(err, hadRaw)
		}
		if checkErr := f.check(answer); checkErr != nil {
			if rc.Log != nil {
				rc.Log.Warn("invalid answer, asking again", "field", f.Name, "error", checkErr)
			}
			continue
		}
		return f.commit(rc, answer)
	}
}

// mapPromptErr turns a refused prompt into the right hard failure;
// cancellation passes through untouched.
func (f *Field) mapPromptErr(err error, hadRaw bool) error {
	if errors.Is(err, console.ErrNonInteractive) {
		if hadRaw {
			return &InvalidInputError{Field: f.Name, Reason: "value failed validation and prompting is disabled"}
		}
		return &MissingValueError{Field: f.Name}
	}
	return err
}

func (f *Field) check(value string) error {
	if f.Validate == nil {
		return nil
	}
	return f.Validate(value)
}

func (f *Field) checkList(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("at least one value is required")
	}
	if f.ValidateEach == nil {
		return nil
	}
	for _, v := range values {
		if err := f.ValidateEach(v); err != nil {
			return err
		}
	}
	return nil
}

func (f *Field) commit(rc *ResolveContext, value string) error {
	if f.Normalize != nil {
		normalized, err := f.Normalize(value)
		if err != nil {
			return &InvalidInputError{Field: f.Name, Reason: err.Error()}
		}
		rc.Resolved.set(f.Name, normalized)
		return nil
	}
	rc.Resolved.set(f.Name, value)
	return nil
}

func splitList(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
