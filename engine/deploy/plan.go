package deploy

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/forumkit/forumkit/engine/config"
	"github.com/forumkit/forumkit/engine/project"
)

// OpKind tags a deployment operation.
type OpKind int

const (
	OpCreateDir OpKind = iota
	OpTouch
	OpCopy
	OpRender
	OpAppend
)

func (k OpKind) String() string {
	switch k {
	case OpCreateDir:
		return "create-dir"
	case OpTouch:
		return "touch"
	case OpCopy:
		return "copy"
	case OpRender:
		return "render"
	case OpAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Operation is one step of a deployment plan. Src names a skeleton file
// for Copy and Render; for Append it is a path on the local filesystem.
type Operation struct {
	Kind    OpKind
	Src     string
	Dst     string
	Context map[string]any
}

func (o Operation) String() string {
	switch o.Kind {
	case OpCreateDir, OpTouch:
		return fmt.Sprintf("%s %s", o.Kind, o.Dst)
	default:
		return fmt.Sprintf("%s %s -> %s", o.Kind, o.Src, o.Dst)
	}
}

// Mode selects which file set is planned.
type Mode int

const (
	// ModeStandard deploys the regular project and application files.
	ModeStandard Mode = iota
	// ModeContainerUWSGI additionally deploys the container process-
	// manager file set.
	ModeContainerUWSGI
	// ModeNone plans nothing.
	ModeNone
)

// ParseMode maps the --create-project selector onto a deploy mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(value) {
	case "", "django":
		return ModeStandard, nil
	case "container-uwsgi":
		return ModeContainerUWSGI, nil
	case "no", "none", "false", "0":
		return ModeNone, nil
	default:
		return 0, fmt.Errorf("unknown deployment mode %q (valid: django, container-uwsgi, none)", value)
	}
}

// Build computes the ordered operation list for one run. Destinations are
// computed here exactly once; the installer never derives paths itself.
// A target that already holds a prior deployment keeps its project-level
// files unless force is set.
func Build(cfg *config.Resolved, state *TargetState, mode Mode, force bool) ([]Operation, error) {
	if mode == ModeNone {
		return nil, nil
	}
	dir := cfg.String("dir_name")
	if dir == "" {
		return nil, fmt.Errorf("resolved configuration has no install directory")
	}
	app := cfg.String("app_name")
	if app == "" {
		return nil, fmt.Errorf("resolved configuration has no application name")
	}
	appDir := filepath.Join(dir, app)
	context := renderContext(cfg)

	var ops []Operation
	fresh := force || !state.HasProject
	if fresh {
		logDir := filepath.Join(dir, project.LogDirName)
		ops = append(ops,
			Operation{Kind: OpCreateDir, Dst: dir},
			Operation{Kind: OpCreateDir, Dst: logDir},
			Operation{Kind: OpTouch, Dst: filepath.Join(logDir, cfg.String("logfile_name"))},
		)
		for _, f := range project.ProjectFiles() {
			ops = append(ops, Operation{Kind: OpCopy, Src: f.Name, Dst: filepath.Join(dir, f.Name)})
		}
	}
	ops = append(ops, Operation{Kind: OpCreateDir, Dst: appDir})
	ops = append(ops, fileSetOps(project.AppFiles(), appDir, context)...)
	if mode == ModeContainerUWSGI {
		ops = append(ops, fileSetOps(project.ContainerFiles(), appDir, context)...)
	}
	if local := cfg.String("local_settings"); local != "" && state.LocalSettingsExists {
		ops = append(ops, Operation{
			Kind: OpAppend,
			Src:  local,
			Dst:  filepath.Join(appDir, project.SettingsFile),
		})
	}
	return ops, nil
}

func fileSetOps(files []project.File, dstDir string, context map[string]any) []Operation {
	ops := make([]Operation, 0, len(files))
	for _, f := range files {
		dst := filepath.Join(dstDir, f.Name)
		switch f.Kind {
		case project.KindRender:
			ops = append(ops, Operation{Kind: OpRender, Src: f.Name, Dst: dst, Context: context})
		default:
			ops = append(ops, Operation{Kind: OpCopy, Src: f.Name, Dst: dst})
		}
	}
	return ops
}

// renderContext builds the template context: the resolved configuration
// plus the hooks the settings template expects.
func renderContext(cfg *config.Resolved) map[string]any {
	context := cfg.Map()
	context["site_dir"] = cfg.String("dir_name")
	context["staticfiles_app"] = "'django.contrib.staticfiles',"
	context["auth_context_processor"] = "django.contrib.auth.context_processors.auth"
	return context
}
