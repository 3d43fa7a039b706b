package templates

import (
	"io/fs"
	"strings"
	"testing"
)

func TestHostProjectFiles(t *testing.T) {
	host, err := HostProject()
	if err != nil {
		t.Fatalf("HostProject() error = %v", err)
	}

	want := []string{
		"manage.py",
		"requirements.txt",
		"project_placeholder/__init__.py",
		"project_placeholder/settings.py",
		"project_placeholder/urls.py",
		"project_placeholder/wsgi.py",
		"project_placeholder/asgi.py",
	}
	for _, path := range want {
		if _, err := fs.Stat(host, path); err != nil {
			t.Errorf("skeleton missing %s: %v", path, err)
		}
	}
}

func TestSettingsCarriesMarker(t *testing.T) {
	content, err := GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}

	if !strings.Contains(content, SettingsMarker) {
		t.Errorf("settings skeleton does not contain marker %q", SettingsMarker)
	}
	if !strings.Contains(content, "INSTALLED_APPS = [") {
		t.Error("settings skeleton does not declare INSTALLED_APPS")
	}

	// The marker must sit inside the INSTALLED_APPS list so a plain
	// replacement installs the app.
	appsAt := strings.Index(content, "INSTALLED_APPS = [")
	markerAt := strings.Index(content, SettingsMarker)
	closeAt := strings.Index(content[appsAt:], "]") + appsAt
	if markerAt < appsAt || markerAt > closeAt {
		t.Error("settings marker is outside the INSTALLED_APPS list")
	}
}
