package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/djinn/internal/templates"
)

var installedAppsRe = regexp.MustCompile(`(?s)(INSTALLED_APPS\s*=\s*\[.*?)(\])`)

// patchSettings installs the app into the project's settings file.
func patchSettings(projectDir, appName string) error {
	path := filepath.Join(projectDir, filepath.FromSlash(templates.SettingsPath))

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	patched, err := installApp(string(data), appName)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(patched), 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// installApp returns the settings content with the app's install entry
// added: the marker line is replaced when present, otherwise the entry
// is inserted before the INSTALLED_APPS closing bracket. Content with
// neither is an error.
func installApp(content, appName string) (string, error) {
	entry := fmt.Sprintf("    '%s', # Added by generator", appName)

	if strings.Contains(content, templates.SettingsMarker) {
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			if strings.Contains(line, templates.SettingsMarker) {
				lines[i] = entry
				break
			}
		}
		return strings.Join(lines, "\n"), nil
	}

	loc := installedAppsRe.FindStringSubmatchIndex(content)
	if loc == nil {
		return "", fmt.Errorf("settings file has neither the install marker nor an INSTALLED_APPS list")
	}
	at := loc[3] // end of the capture preceding the closing bracket
	return content[:at] + entry + "\n" + content[at:], nil
}
