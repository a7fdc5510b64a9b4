// Package config implements the configuration resolution engine: named,
// validated, defaulted fields grouped into managers, resolved from flags,
// prompts, and defaults into one immutable configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/forumkit/forumkit/engine/console"
	"github.com/forumkit/forumkit/pkg/logger"
)

// CollectionConfig carries the collaborators and per-run switches for one
// resolution pass. A fresh collection is constructed per invocation;
// nothing survives the run.
type CollectionConfig struct {
	Console     console.Console
	Fs          afero.Fs
	Log         logger.Logger
	UseDefaults bool
	DryRun      bool
	Force       bool
}

// Collection orchestrates all managers. Given partial input it returns a
// fully-resolved configuration or fails.
type Collection struct {
	cfg      CollectionConfig
	managers []*Manager
}

// NewCollection builds the manager set. Construction fails if any manager
// declares an invalid dependency graph.
func NewCollection(cfg CollectionConfig) (*Collection, error) {
	if cfg.Console == nil {
		return nil, fmt.Errorf("collection requires a console")
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	setup, err := newSetupManager(cfg.Fs)
	if err != nil {
		return nil, err
	}
	database, err := newDatabaseManager(cfg.Fs)
	if err != nil {
		return nil, err
	}
	cache, err := newCacheManager()
	if err != nil {
		return nil, err
	}
	return &Collection{
		cfg:      cfg,
		managers: []*Manager{setup, database, cache},
	}, nil
}

// Manager returns the named manager, or nil.
func (c *Collection) Manager(name string) *Manager {
	for _, m := range c.managers {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// Complete resolves every applicable field from the partial options,
// prompting through the console for anything missing. The result is
// immutable; a failed run returns a ValidationError, except operator
// cancellation which passes through untouched.
func (c *Collection) Complete(opts *Options) (*Resolved, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if c.cfg.UseDefaults {
		for _, m := range c.managers {
			if err := opts.ApplyDefaults(m.Defaults()); err != nil {
				return nil, err
			}
		}
	}
	rc := &ResolveContext{
		Console:  c.cfg.Console,
		Fs:       c.cfg.Fs,
		Options:  opts,
		Resolved: newResolved(),
		Log:      c.cfg.Log,
		DryRun:   c.cfg.DryRun,
		Force:    c.cfg.Force,
	}
	var errs []error
	for _, m := range c.managers {
		for _, err := range m.Resolve(rc) {
			if errors.Is(err, console.ErrCanceled) {
				return nil, err
			}
			errs = append(errs, err)
		}
		if len(errs) > 0 && !c.cfg.DryRun {
			break
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return rc.Resolved, nil
}
