// Package deploy computes and executes the file deployment plan: an
// ordered list of idempotent operations derived from the resolved
// configuration and a one-time snapshot of the target directory.
package deploy

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/forumkit/forumkit/engine/project"
)

// TargetState is the snapshot of the destination taken before planning.
// It is read exactly once; the plan is computed from this snapshot and
// never re-consults the filesystem.
type TargetState struct {
	// Exists reports whether the target directory is present at all.
	Exists bool
	// HasProject reports whether the target already contains a
	// recognizable prior deployment (the entry-point file at its root).
	HasProject bool
	// LocalSettingsExists reports whether the configured extra settings
	// file is present and can be appended.
	LocalSettingsExists bool
}

// DetectTargetState inspects the target directory once.
func DetectTargetState(fs afero.Fs, dir, localSettings string) (*TargetState, error) {
	state := &TargetState{}
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect target directory %s: %w", dir, err)
	}
	state.Exists = exists
	if exists {
		hasEntry, err := afero.Exists(fs, filepath.Join(dir, project.EntryPointFile))
		if err != nil {
			return nil, fmt.Errorf("failed to inspect target directory %s: %w", dir, err)
		}
		state.HasProject = hasEntry
	}
	if localSettings != "" {
		present, err := afero.Exists(fs, localSettings)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect settings file %s: %w", localSettings, err)
		}
		state.LocalSettingsExists = present
	}
	return state, nil
}
