package config

import (
	"fmt"
)

// Manager owns an ordered group of related fields sharing one theme.
// Resolution order is the declared field order: later fields' dependency
// predicates may reference earlier fields' resolved values, never the
// other way around.
type Manager struct {
	name     string
	fields   []*Field
	finalize func(*Resolved) error
}

// NewManager builds a manager and rejects dependency declarations that
// reference unknown or not-yet-declared fields, so the per-manager
// dependency graph is acyclic by construction.
func NewManager(name string, fields []*Field, opts ...ManagerOption) (*Manager, error) {
	declared := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("manager %s: field with empty name", name)
		}
		if declared[f.Name] {
			return nil, fmt.Errorf("manager %s: duplicate field %s", name, f.Name)
		}
		if f.DependsOn != nil && !declared[f.DependsOn.Field] {
			return nil, fmt.Errorf(
				"manager %s: field %s depends on %s, which is not declared before it",
				name, f.Name, f.DependsOn.Field,
			)
		}
		declared[f.Name] = true
	}
	m := &Manager{name: name, fields: fields}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// ManagerOption configures optional manager behavior.
type ManagerOption func(*Manager)

// WithFinalize registers a hook run after the manager's fields resolved,
// before the next manager starts.
func WithFinalize(fn func(*Resolved) error) ManagerOption {
	return func(m *Manager) {
		m.finalize = fn
	}
}

// Name returns the manager's theme name.
func (m *Manager) Name() string {
	return m.name
}

// Field returns the named field, for flag registration and tests.
func (m *Manager) Field(name string) *Field {
	for _, f := range m.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Defaults returns the declared non-empty defaults of this manager's
// fields, keyed by field name.
func (m *Manager) Defaults() map[string]string {
	defaults := make(map[string]string)
	for _, f := range m.fields {
		if f.Default != "" {
			defaults[f.Name] = f.Default
		}
	}
	return defaults
}

// Resolve settles every applicable field of this group. Outside dry-run
// the first failure stops the run; dry-run collects all failures.
func (m *Manager) Resolve(rc *ResolveContext) []error {
	var errs []error
	for _, f := range m.fields {
		if err := f.resolve(rc); err != nil {
			if !rc.DryRun {
				return []error{err}
			}
			errs = append(errs, err)
		}
	}
	if m.finalize != nil {
		if err := m.finalize(rc.Resolved); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
