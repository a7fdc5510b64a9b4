package config

import (
	"fmt"

	"dario.cat/mergo"
)

// Options is the raw, partially-populated option mapping produced by the
// flag parser. Values are unvalidated strings; list-valued options (cache
// nodes) are kept separately.
type Options struct {
	values map[string]string
	lists  map[string][]string
}

// NewOptions returns an empty option mapping.
func NewOptions() *Options {
	return &Options{
		values: make(map[string]string),
		lists:  make(map[string][]string),
	}
}

// Set stores a scalar option. Empty values are ignored so unset flags do
// not shadow prompts or defaults.
func (o *Options) Set(key, value string) {
	if value == "" {
		return
	}
	o.values[key] = value
}

// SetList stores a list-valued option.
func (o *Options) SetList(key string, values []string) {
	if len(values) == 0 {
		return
	}
	o.lists[key] = values
}

// Get returns a scalar option value.
func (o *Options) Get(key string) (string, bool) {
	v, ok := o.values[key]
	return v, ok
}

// GetList returns a list-valued option.
func (o *Options) GetList(key string) ([]string, bool) {
	v, ok := o.lists[key]
	return v, ok
}

// ApplyDefaults merges declared defaults underneath the explicit options:
// values the operator supplied always win.
func (o *Options) ApplyDefaults(defaults map[string]string) error {
	if err := mergo.Merge(&o.values, defaults); err != nil {
		return fmt.Errorf("failed to merge defaults: %w", err)
	}
	return nil
}
