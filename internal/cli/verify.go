package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/djinn/internal/config"
	"github.com/example/djinn/internal/history"
	"github.com/example/djinn/internal/project"
	"github.com/example/djinn/internal/runner"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <project-dir>",
	Short: "Run Django's migration tooling against a generated project",
	Long: `Verify runs makemigrations and migrate inside an existing generated
project, proving the emitted schema actually stands up. The project's
manifest names the app; the outcome is recorded in the run ledger.`,
	Example: `  djinn verify generated_projects/blogapp_k2x9mq
  djinn verify generated_projects/blogapp_k2x9mq --with-tests`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

// VerifyCmd returns the verify command.
func VerifyCmd() *cobra.Command {
	verifyCmd.Flags().String("python", "", "Python interpreter to use (default from config)")
	verifyCmd.Flags().Bool("with-tests", false, "Also run manage.py test for the generated app")
	return verifyCmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	projectDir := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	manifest, err := project.LoadManifest(projectDir)
	if err != nil {
		return fmt.Errorf("%s does not look like a generated project: %w", projectDir, err)
	}

	store, err := openStore()
	if err != nil {
		fmt.Printf("%s %v, outcome not recorded\n", warnMark(), err)
		store = nil
	}

	python := stringFlag(cmd, "python", cfg.Python)
	withTests, _ := cmd.Flags().GetBool("with-tests")

	r := runner.New(python)
	fmt.Printf("Verifying %s (app %s) with %s...\n", projectDir, manifest.AppName, r.Python())

	report, err := r.Verify(ctx, projectDir, manifest.AppName, withTests)
	printVerifyReport(report)
	if err != nil {
		markRun(ctx, store, manifest.RunID, history.StatusFailed)
		return err
	}

	markRun(ctx, store, manifest.RunID, history.StatusVerified)
	fmt.Printf("%s verification passed\n", okMark())
	return nil
}
