// Package runner drives Django's own tooling against a generated project.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultPython is the interpreter used when none is configured.
const DefaultPython = "python3"

// Step is the outcome of a single manage.py invocation.
type Step struct {
	Name    string
	Command string
	Output  string
	OK      bool
}

// Report collects the steps of a verification run.
type Report struct {
	Steps []Step
}

// Failed returns the first failing step, if any.
func (r *Report) Failed() (Step, bool) {
	for _, s := range r.Steps {
		if !s.OK {
			return s, true
		}
	}
	return Step{}, false
}

// Runner executes Django management commands in generated projects.
type Runner struct {
	python string
}

// New creates a Runner using the given interpreter, or DefaultPython if empty.
func New(python string) *Runner {
	if python == "" {
		python = DefaultPython
	}
	return &Runner{python: python}
}

// Python returns the configured interpreter name.
func (r *Runner) Python() string {
	return r.python
}

// PythonPath resolves the configured interpreter against PATH.
func (r *Runner) PythonPath() (string, error) {
	path, err := exec.LookPath(r.python)
	if err != nil {
		return "", fmt.Errorf("interpreter %q not found in PATH: %w", r.python, err)
	}
	return path, nil
}

// DjangoVersion reports the Django version visible to the interpreter.
func (r *Runner) DjangoVersion(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, r.python, "-c", "import django; print(django.get_version())")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("django not importable: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return strings.TrimSpace(string(output)), nil
}

// Verify runs makemigrations and migrate inside a generated project, plus
// manage.py test when withTests is set. The returned report carries the
// output of every step that ran, including the failing one.
func (r *Runner) Verify(ctx context.Context, projectDir, appName string, withTests bool) (*Report, error) {
	managePath := filepath.Join(projectDir, "manage.py")
	if _, err := os.Stat(managePath); err != nil {
		return nil, fmt.Errorf("manage.py not found in %s: %w", projectDir, err)
	}

	report := &Report{}

	steps := []verifyStep{
		{"makemigrations", []string{"manage.py", "makemigrations", appName}},
		{"migrate", []string{"manage.py", "migrate"}},
	}
	if withTests {
		steps = append(steps, verifyStep{"test", []string{"manage.py", "test", appName}})
	}

	for _, s := range steps {
		step, err := r.runStep(ctx, projectDir, s.name, s.args)
		report.Steps = append(report.Steps, step)
		if err != nil {
			return report, fmt.Errorf("%s failed: %w", s.name, err)
		}
	}

	return report, nil
}

type verifyStep struct {
	name string
	args []string
}

// runStep executes one manage.py command and captures its combined output.
func (r *Runner) runStep(ctx context.Context, projectDir, name string, args []string) (Step, error) {
	cmd := exec.CommandContext(ctx, r.python, args...)
	cmd.Dir = projectDir

	output, err := cmd.CombinedOutput()
	step := Step{
		Name:    name,
		Command: r.python + " " + strings.Join(args, " "),
		Output:  string(output),
		OK:      err == nil,
	}
	return step, err
}
