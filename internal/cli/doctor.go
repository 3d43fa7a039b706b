package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/djinn/internal/config"
	"github.com/example/djinn/internal/db"
	"github.com/example/djinn/internal/runner"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the djinn environment",
		Long: `Environment health check for djinn.

Validates:
- Python interpreter presence
- Django importability (needed for verify)
- Config file state (~/.djinn/config.yaml)
- Run ledger state (~/.djinn/djinn.db)
- Output directory

Examples:
  djinn doctor            # Run full health check
  djinn doctor --quiet    # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := doctorConfig()

			results := []CheckResult{}
			hasErrors := false

			results = append(results, checkPython(cfg.Python))
			results = append(results, checkDjango(cmd.Context(), cfg.Python))
			results = append(results, checkConfig())
			results = append(results, checkLedger())
			results = append(results, checkOutputDir(cfg.OutputDir))

			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. See details above.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// doctorConfig reads settings without writing the default config file, so
// doctor never mutates the environment it is diagnosing. Defaults apply
// when no config file exists or it cannot be read.
func doctorConfig() *config.Config {
	fallback := &config.Config{
		OutputDir: config.DefaultOutputDir,
		Python:    config.DefaultPython,
	}

	path, err := config.FilePath()
	if err != nil {
		return fallback
	}
	if _, err := os.Stat(path); err != nil {
		return fallback
	}

	cfg, err := config.Load()
	if err != nil {
		return fallback
	}
	return cfg
}

// checkPython validates that the configured interpreter is on PATH
func checkPython(python string) CheckResult {
	r := runner.New(python)
	path, err := r.PythonPath()
	if err != nil {
		return CheckResult{
			Name:    "Python",
			Status:  "✗",
			Details: fmt.Sprintf("  %q not found in PATH\n  Install Python 3 or set python in the config", r.Python()),
		}
	}
	return CheckResult{Name: "Python", Status: "✓", Details: "  " + path}
}

// checkDjango validates that the interpreter can import Django
func checkDjango(ctx context.Context, python string) CheckResult {
	r := runner.New(python)
	if _, err := r.PythonPath(); err != nil {
		return CheckResult{
			Name:    "Django",
			Status:  "⚠",
			Details: "  Skipped, no Python interpreter",
		}
	}

	version, err := r.DjangoVersion(ctx)
	if err != nil {
		return CheckResult{
			Name:    "Django",
			Status:  "⚠",
			Details: "  django not importable, 'djinn verify' will fail\n  Run: pip install django",
		}
	}
	return CheckResult{Name: "Django", Status: "✓", Details: "  " + version}
}

// checkConfig validates the config file parses when present
func checkConfig() CheckResult {
	path, err := config.FilePath()
	if err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  Cannot resolve home directory"}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s not written yet, created on first use", path),
		}
	}

	if _, err := config.Load(); err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: fmt.Sprintf("  %v", err)}
	}
	return CheckResult{Name: "Config", Status: "✓"}
}

// checkLedger validates the run ledger database file
func checkLedger() CheckResult {
	path, err := db.GetDBPath()
	if err != nil {
		return CheckResult{Name: "Ledger", Status: "✗", Details: "  Cannot resolve home directory"}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Ledger",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s not created yet, written on first run", path),
		}
	}
	return CheckResult{Name: "Ledger", Status: "✓"}
}

// checkOutputDir validates the project output directory
func checkOutputDir(outputDir string) CheckResult {
	info, err := os.Stat(outputDir)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:    "Output Dir",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s does not exist yet, created on first generate", outputDir),
		}
	}
	if err != nil {
		return CheckResult{Name: "Output Dir", Status: "✗", Details: fmt.Sprintf("  %v", err)}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:    "Output Dir",
			Status:  "✗",
			Details: fmt.Sprintf("  %s exists but is not a directory", outputDir),
		}
	}
	return CheckResult{Name: "Output Dir", Status: "✓"}
}
