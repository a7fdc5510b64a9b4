// Package project holds the file skeleton materialized into a target
// directory and the template renderer that specializes it with a resolved
// configuration.
package project

import (
	_ "embed"
	"os"
)

// Embedded skeleton files
//
//go:embed files/manage.py
var managePayload string

//go:embed files/init.py
var initPayload string

//go:embed files/urls.py
var urlsPayload string

//go:embed files/wsgi.py
var wsgiPayload string

//go:embed files/README.md
var readmePayload string

//go:embed files/settings.py.tmpl
var settingsTemplate string

//go:embed files/cron-forum.sh
var cronScriptPayload string

//go:embed files/prestart.sh
var prestartScriptPayload string

//go:embed files/prestart.py
var prestartPayload string

//go:embed files/crontab.tmpl
var crontabTemplate string

//go:embed files/uwsgi.ini.tmpl
var uwsgiTemplate string

// FileKind says whether a skeleton file is copied verbatim or rendered
// with the resolved configuration.
type FileKind int

const (
	KindCopy FileKind = iota
	KindRender
)

// File is one skeleton entry. Name is the destination basename.
type File struct {
	Name        string
	Content     string
	Kind        FileKind
	Permissions os.FileMode
}

const (
	// EntryPointFile marks an existing deployment when found at the
	// target root.
	EntryPointFile = "manage.py"

	// SettingsFile is always rendered, never copied.
	SettingsFile = "settings.py"

	// LogDirName is the log subdirectory created under the target root.
	LogDirName = "log"
)

// ProjectFiles are installed at the target root only for fresh deployments.
func ProjectFiles() []File {
	return []File{
		{Name: EntryPointFile, Content: managePayload, Kind: KindCopy, Permissions: 0o755},
	}
}

// AppFiles are installed into the application subdirectory on every run.
func AppFiles() []File {
	return []File{
		{Name: "__init__.py", Content: initPayload, Kind: KindCopy, Permissions: 0o644},
		{Name: "urls.py", Content: urlsPayload, Kind: KindCopy, Permissions: 0o644},
		{Name: "wsgi.py", Content: wsgiPayload, Kind: KindCopy, Permissions: 0o644},
		{Name: "README.md", Content: readmePayload, Kind: KindCopy, Permissions: 0o644},
		{Name: SettingsFile, Content: settingsTemplate, Kind: KindRender, Permissions: 0o600},
	}
}

// ContainerFiles are installed only for the container-uwsgi deploy mode.
func ContainerFiles() []File {
	return []File{
		{Name: "cron-forum.sh", Content: cronScriptPayload, Kind: KindCopy, Permissions: 0o755},
		{Name: "prestart.sh", Content: prestartScriptPayload, Kind: KindCopy, Permissions: 0o755},
		{Name: "prestart.py", Content: prestartPayload, Kind: KindCopy, Permissions: 0o644},
		{Name: "crontab", Content: crontabTemplate, Kind: KindRender, Permissions: 0o644},
		{Name: "uwsgi.ini", Content: uwsgiTemplate, Kind: KindRender, Permissions: 0o644},
	}
}

// ReservedNames lists destination basenames (and the log directory name)
// that an embedded-file database name must not collide with.
func ReservedNames() []string {
	names := []string{LogDirName}
	for _, set := range [][]File{ProjectFiles(), AppFiles(), ContainerFiles()} {
		for _, f := range set {
			names = append(names, f.Name)
		}
	}
	return names
}

// IsReservedName reports whether name collides with an installation file
// or the log directory.
func IsReservedName(name string) bool {
	for _, reserved := range ReservedNames() {
		if name == reserved {
			return true
		}
	}
	return false
}

// Lookup returns the skeleton file with the given destination basename.
func Lookup(name string) (File, bool) {
	for _, set := range [][]File{ProjectFiles(), AppFiles(), ContainerFiles()} {
		for _, f := range set {
			if f.Name == name {
				return f, true
			}
		}
	}
	return File{}, false
}
