// Package templates holds the embedded host project skeleton that every
// generated project starts from.
package templates

import (
	"embed"
	"io/fs"
)

// SettingsMarker is the line in the skeleton settings file that the
// scaffolder replaces with the generated app's install entry.
const SettingsMarker = "# SYNTHETIC_APP_INSTALL_MARKER"

// SettingsPath is the settings file location relative to a project root.
const SettingsPath = "project_placeholder/settings.py"

//go:embed all:hostproject
var hostFiles embed.FS

// HostProject returns the host skeleton with the project directory as its root.
func HostProject() (fs.FS, error) {
	return fs.Sub(hostFiles, "hostproject")
}

// GetSettings returns the skeleton settings file content.
func GetSettings() (string, error) {
	content, err := hostFiles.ReadFile("hostproject/" + SettingsPath)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
