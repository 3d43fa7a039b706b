// Package project materializes generated projects on disk: the host
// skeleton copy, the synthesized app files, the settings patch, and the
// run manifest.
package project

import (
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"

	"github.com/example/djinn/internal/namegen"
	"github.com/example/djinn/internal/schema"
	"github.com/example/djinn/internal/templates"
)

const (
	// nameAttempts bounds the search for an unused project directory.
	nameAttempts = 100

	projectSuffixLen = 6
)

var appNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Scaffolder writes generated projects under a base output directory.
type Scaffolder struct {
	outputDir string
	rng       *rand.Rand
}

// New returns a scaffolder rooted at outputDir.
func New(outputDir string, rng *rand.Rand) *Scaffolder {
	return &Scaffolder{outputDir: outputDir, rng: rng}
}

// OutputDir returns the base directory projects are created under.
func (s *Scaffolder) OutputDir() string {
	return s.outputDir
}

// Inputs carries everything needed to materialize one project.
type Inputs struct {
	AppName    string
	ModelsCode string
	FormsCode  string
	AdminCode  string
	AppsCode   string
	Plan       *schema.Plan
	Seed       uint64
	RunID      string

	// Generation knobs, recorded in the manifest.
	AvgFields       int
	RelationDensity float64
}

// Result reports what a scaffold run wrote.
type Result struct {
	ProjectName string
	ProjectDir  string
	Files       []string // relative to ProjectDir, in write order
	NextSteps   []string
}

// Scaffold materializes a complete project. Any failure after the
// project directory exists removes the partial output as a unit, so a
// project either appears whole or not at all.
func (s *Scaffolder) Scaffold(in Inputs) (*Result, error) {
	if !appNameRe.MatchString(in.AppName) {
		return nil, fmt.Errorf("invalid app name %q: must be lowercase alphanumeric with underscores", in.AppName)
	}
	if in.Plan == nil {
		return nil, fmt.Errorf("scaffold inputs carry no plan")
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	name, err := s.uniqueProjectName(in.AppName)
	if err != nil {
		return nil, err
	}
	projectDir := filepath.Join(s.outputDir, name)

	res, err := s.build(projectDir, name, in)
	if err != nil {
		if rmErr := os.RemoveAll(projectDir); rmErr != nil {
			return nil, fmt.Errorf("%w (cleanup failed: %v)", err, rmErr)
		}
		return nil, err
	}
	return res, nil
}

// uniqueProjectName picks an unused directory name: the app name plus a
// short random suffix, bounded at nameAttempts tries.
func (s *Scaffolder) uniqueProjectName(appName string) (string, error) {
	for attempt := 0; attempt < nameAttempts; attempt++ {
		name := fmt.Sprintf("%s_%s", appName, namegen.Suffix(s.rng, projectSuffixLen))
		if _, err := os.Stat(filepath.Join(s.outputDir, name)); os.IsNotExist(err) {
			return name, nil
		}
	}
	return "", fmt.Errorf("could not find an unused project name after %d attempts", nameAttempts)
}

func (s *Scaffolder) build(projectDir, name string, in Inputs) (*Result, error) {
	files, err := copyHost(projectDir)
	if err != nil {
		return nil, err
	}

	appFiles, err := writeApp(projectDir, in)
	if err != nil {
		return nil, err
	}
	files = append(files, appFiles...)

	if err := patchSettings(projectDir, in.AppName); err != nil {
		return nil, err
	}

	if err := writeManifest(projectDir, in); err != nil {
		return nil, err
	}
	files = append(files, ManifestName)

	return &Result{
		ProjectName: name,
		ProjectDir:  projectDir,
		Files:       files,
		NextSteps: []string{
			fmt.Sprintf("cd %s", projectDir),
			fmt.Sprintf("python manage.py makemigrations %s", in.AppName),
			"python manage.py migrate",
			"python manage.py runserver",
		},
	}, nil
}

// copyHost writes the embedded skeleton into projectDir and returns the
// copied file paths in walk order.
func copyHost(projectDir string) ([]string, error) {
	host, err := templates.HostProject()
	if err != nil {
		return nil, fmt.Errorf("failed to load host skeleton: %w", err)
	}

	var files []string
	err = fs.WalkDir(host, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return os.MkdirAll(projectDir, 0755)
		}

		target := filepath.Join(projectDir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		data, err := fs.ReadFile(host, path)
		if err != nil {
			return err
		}
		mode := os.FileMode(0644)
		if path == "manage.py" {
			mode = 0755
		}
		if err := os.WriteFile(target, data, mode); err != nil {
			return err
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to copy host skeleton: %w", err)
	}
	return files, nil
}

// writeApp creates the app package with the rendered sources. The app
// directory must not collide with anything the skeleton ships.
func writeApp(projectDir string, in Inputs) ([]string, error) {
	appDir := filepath.Join(projectDir, in.AppName)
	if _, err := os.Stat(appDir); err == nil {
		return nil, fmt.Errorf("app name %q collides with a host skeleton entry", in.AppName)
	}
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create app directory: %w", err)
	}

	writes := []struct {
		name    string
		content string
	}{
		{"__init__.py", ""},
		{"models.py", in.ModelsCode},
		{"forms.py", in.FormsCode},
		{"admin.py", in.AdminCode},
		{"apps.py", in.AppsCode},
	}

	files := make([]string, 0, len(writes))
	for _, w := range writes {
		if err := os.WriteFile(filepath.Join(appDir, w.name), []byte(w.content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", w.name, err)
		}
		files = append(files, filepath.Join(in.AppName, w.name))
	}
	return files, nil
}
