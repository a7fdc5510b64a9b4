package deploy

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/forumkit/forumkit/engine/project"
	"github.com/forumkit/forumkit/pkg/logger"
)

const (
	dirPerm     os.FileMode = 0o755
	defaultPerm os.FileMode = 0o644
)

// Installer executes a deployment plan against a filesystem. Execution
// is idempotent: re-running the same plan against the same tree changes
// nothing and reports no errors.
type Installer struct {
	fs  afero.Fs
	log logger.Logger

	// render is swappable for tests.
	render func(name string, context map[string]any) (string, error)
	// rendered tracks destinations written by a render this run; an
	// append only fires after a fresh render of its destination.
	rendered map[string]bool
}

// NewInstaller builds an installer over fs. A nil log falls back to the
// package default.
func NewInstaller(fsys afero.Fs, log logger.Logger) *Installer {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Installer{
		fs:       fsys,
		log:      log,
		render:   project.Render,
		rendered: make(map[string]bool),
	}
}

// Execute runs the plan in order. The first filesystem error aborts the
// run; conflicts never do.
func (i *Installer) Execute(plan []Operation) error {
	for _, op := range plan {
		var err error
		switch op.Kind {
		case OpCreateDir:
			err = i.createDir(op)
		case OpTouch:
			err = i.touch(op)
		case OpCopy:
			err = i.copy(op)
		case OpRender:
			err = i.renderOp(op)
		case OpAppend:
			err = i.appendOp(op)
		default:
			err = fmt.Errorf("unknown operation kind %d", op.Kind)
		}
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", op, err)
		}
	}
	return nil
}

func (i *Installer) createDir(op Operation) error {
	exists, err := afero.DirExists(i.fs, op.Dst)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	i.log.Info("creating directory", "path", op.Dst)
	return i.fs.MkdirAll(op.Dst, dirPerm)
}

func (i *Installer) touch(op Operation) error {
	exists, err := afero.Exists(i.fs, op.Dst)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	i.log.Debug("creating empty file", "path", op.Dst)
	return afero.WriteFile(i.fs, op.Dst, nil, defaultPerm)
}

func (i *Installer) copy(op Operation) error {
	exists, err := afero.Exists(i.fs, op.Dst)
	if err != nil {
		return err
	}
	switch DecideCopy(op.Dst, exists) {
	case DecisionSkipSilent:
		return nil
	case DecisionAdvise:
		i.log.Warn("file already exists, merge the new content by hand",
			"path", op.Dst, "source", op.Src)
		return nil
	case DecisionOverwrite:
		i.log.Info("replacing file", "path", op.Dst)
	default:
		i.log.Debug("copying file", "path", op.Dst)
	}
	file, ok := project.Lookup(op.Src)
	if !ok {
		return fmt.Errorf("unknown skeleton file: %s", op.Src)
	}
	return afero.WriteFile(i.fs, op.Dst, []byte(file.Content), i.perm(file))
}

func (i *Installer) renderOp(op Operation) error {
	exists, err := afero.Exists(i.fs, op.Dst)
	if err != nil {
		return err
	}
	if DecideRender(exists) == DecisionAdvise {
		i.log.Warn("file already exists, it was left untouched", "path", op.Dst)
		return nil
	}
	content, err := i.render(op.Src, op.Context)
	if err != nil {
		return err
	}
	file, ok := project.Lookup(op.Src)
	if !ok {
		return fmt.Errorf("unknown skeleton file: %s", op.Src)
	}
	i.log.Debug("rendering file", "path", op.Dst)
	if err := afero.WriteFile(i.fs, op.Dst, []byte(content), i.perm(file)); err != nil {
		return err
	}
	i.rendered[op.Dst] = true
	return nil
}

// appendOp adds the operator's extra settings to a destination rendered
// this run. A destination that kept its prior content is never appended
// to, so re-runs do not duplicate the tail.
func (i *Installer) appendOp(op Operation) error {
	if !i.rendered[op.Dst] {
		i.log.Debug("skipping append, destination kept its prior content", "path", op.Dst)
		return nil
	}
	content, err := afero.ReadFile(i.fs, op.Src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", op.Src, err)
	}
	i.log.Info("appending extra settings", "path", op.Dst, "source", op.Src)
	handle, err := i.fs.OpenFile(op.Dst, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return err
	}
	if _, err := handle.Write(append([]byte("\n"), content...)); err != nil {
		handle.Close()
		return err
	}
	return handle.Close()
}

func (i *Installer) perm(file project.File) os.FileMode {
	if file.Permissions != 0 {
		return file.Permissions
	}
	return defaultPerm
}
