package config

import (
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

// Resolved is the fully-validated configuration produced by a Collection.
// It is built once per invocation and treated as read-only by the planner
// and installer. Fields whose dependency predicate evaluated false are
// absent, not empty.
type Resolved struct {
	values map[string]any
}

func newResolved() *Resolved {
	return &Resolved{values: make(map[string]any)}
}

func (r *Resolved) set(name string, value any) {
	r.values[name] = value
}

func (r *Resolved) delete(name string) {
	delete(r.values, name)
}

// Has reports whether the named field resolved at all.
func (r *Resolved) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Get returns the resolved value for a field.
func (r *Resolved) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// String returns the resolved value as a string. Enum values are rendered
// through their Stringer.
func (r *Resolved) String(name string) string {
	v, ok := r.values[name]
	if !ok {
		return ""
	}
	switch typed := v.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// StringList returns the resolved value as a string slice.
func (r *Resolved) StringList(name string) []string {
	if v, ok := r.values[name].([]string); ok {
		return v
	}
	return nil
}

// DatabaseEngine returns the resolved database engine, or zero when the
// database manager has not contributed one.
func (r *Resolved) DatabaseEngine() DatabaseEngine {
	if v, ok := r.values["database_engine"].(DatabaseEngine); ok {
		return v
	}
	return 0
}

// CacheEngine returns the resolved cache engine, or zero.
func (r *Resolved) CacheEngine() CacheEngine {
	if v, ok := r.values["cache_engine"].(CacheEngine); ok {
		return v
	}
	return 0
}

// Names returns the resolved field names in sorted order.
func (r *Resolved) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns a fresh mapping with enum values flattened to the strings
// they render as. Used as template context and for the dry-run dump.
func (r *Resolved) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for name, v := range r.values {
		switch typed := v.(type) {
		case string, []string, int, bool:
			out[name] = typed
		case fmt.Stringer:
			out[name] = typed.String()
		default:
			out[name] = fmt.Sprintf("%v", typed)
		}
	}
	return out
}

// MarshalYAML renders the resolved configuration for dry-run inspection.
func (r *Resolved) MarshalYAML() ([]byte, error) {
	data, err := yaml.Marshal(r.Map())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resolved configuration: %w", err)
	}
	return data, nil
}
