package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/djinn/internal/config"
	"github.com/example/djinn/internal/history"
	"github.com/example/djinn/internal/planner"
	"github.com/example/djinn/internal/project"
	"github.com/example/djinn/internal/render"
	"github.com/example/djinn/internal/runner"
	"github.com/example/djinn/internal/schema"
	"github.com/example/djinn/internal/vocab"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a runnable Django project with a synthetic schema",
	Long: `Generate plans a synthetic data schema from a vocabulary domain,
renders it as Django model and form code, and scaffolds a complete
runnable project around it.

Every run records its seed; pass --seed to reproduce a project exactly.`,
	Example: `  djinn generate
  djinn generate --domain blog --size large --seed 42
  djinn generate --models 5 --relation-density 0.6 --verify
  djinn generate --dry-run --domain inventory`,
	RunE: runGenerate,
}

// GenerateCmd returns the generate command.
func GenerateCmd() *cobra.Command {
	fl := generateCmd.Flags()
	fl.String("app-name", config.DefaultAppName, "Django app label for the generated models")
	fl.String("domain", "", "Vocabulary domain (random when omitted)")
	fl.String("size", config.DefaultSize, "Model count preset: small, medium, or large")
	fl.Int("models", 0, "Exact number of models to plan (overrides --size)")
	fl.Int("avg-fields", config.DefaultAvgFields, "Average non-relation fields per model")
	fl.Float64("relation-density", config.DefaultRelationDensity, "Chance of a relation field per model, 0 to 1")
	fl.Uint64("seed", 0, "Random seed (time-based when omitted)")
	fl.String("output-dir", config.DefaultOutputDir, "Directory to scaffold projects into")
	fl.String("vocab-file", "", "Extra vocabulary pack file to load")
	fl.Bool("dry-run", false, "Print the plan and code without writing anything")
	fl.Bool("verify", false, "Run Django makemigrations and migrate on the result")
	fl.Bool("keep-on-failure", false, "Keep the project directory when verification fails")
	return generateCmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	vocabFile, _ := cmd.Flags().GetString("vocab-file")
	catalog, err := loadCatalog(cfg, vocabFile)
	if err != nil {
		return err
	}

	appName := stringFlag(cmd, "app-name", cfg.AppName)
	outputDir := stringFlag(cmd, "output-dir", cfg.OutputDir)
	size := stringFlag(cmd, "size", cfg.Size)
	avgFields := intFlag(cmd, "avg-fields", cfg.AvgFields)
	density := float64Flag(cmd, "relation-density", cfg.RelationDensity)

	models, _ := cmd.Flags().GetInt("models")
	minEntities, maxEntities, err := resolveModelRange(size, models, cmd.Flags().Changed("models"))
	if err != nil {
		return err
	}

	seed, _ := cmd.Flags().GetUint64("seed")
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}
	rng := planner.NewRand(seed)

	domain := stringFlag(cmd, "domain", cfg.Domain)
	if domain == "" {
		domains := catalog.Domains()
		domain = domains[rng.IntN(len(domains))]
	} else if !catalog.Has(domain) {
		fmt.Printf("%s unknown domain %q, using the %s vocabulary\n", warnMark(), domain, vocab.FallbackDomain)
	}

	plan, err := planner.New(rng).Plan(planner.Request{
		Pack:            catalog.Lookup(domain),
		MinEntities:     minEntities,
		MaxEntities:     maxEntities,
		AvgFields:       avgFields,
		RelationDensity: density,
	})
	if err != nil {
		return err
	}
	if len(plan.Entities) == 1 && density > 0 {
		fmt.Printf("%s single model planned, relations skipped\n", infoMark())
	}

	modelsCode := render.Models(plan)
	formsCode := render.Forms(plan)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		printPlanSummary(plan, seed)
		fmt.Println()
		fmt.Println("--- models.py ---")
		fmt.Print(modelsCode)
		fmt.Println("--- forms.py ---")
		fmt.Print(formsCode)
		return nil
	}

	runID := uuid.NewString()
	result, err := project.New(outputDir, rng).Scaffold(project.Inputs{
		AppName:         appName,
		ModelsCode:      modelsCode,
		FormsCode:       formsCode,
		AdminCode:       render.Admin(plan),
		AppsCode:        render.AppConfig(appName),
		Plan:            plan,
		Seed:            seed,
		RunID:           runID,
		AvgFields:       avgFields,
		RelationDensity: density,
	})
	if err != nil {
		return err
	}

	// The ledger is bookkeeping around a project that already exists on
	// disk, so ledger trouble degrades to a warning instead of failing
	// the run.
	store, err := openStore()
	if err != nil {
		fmt.Printf("%s %v, run not recorded\n", warnMark(), err)
		store = nil
	} else {
		run := &history.Run{
			ID:            runID,
			AppName:       appName,
			Domain:        plan.Domain,
			Seed:          seed,
			ProjectDir:    result.ProjectDir,
			EntityCount:   len(plan.Entities),
			FieldCount:    plan.FieldCount(),
			RelationCount: plan.RelationCount(),
		}
		if err := store.Record(ctx, run); err != nil {
			fmt.Printf("%s failed to record run: %v\n", warnMark(), err)
			store = nil
		}
	}

	fmt.Printf("%s Generated %s\n", okMark(), color.New(color.FgCyan).Sprint(result.ProjectName))
	fmt.Printf("  Domain:   %s\n", plan.Domain)
	fmt.Printf("  Seed:     %d\n", seed)
	fmt.Printf("  Models:   %d (%d fields, %d relations)\n", len(plan.Entities), plan.FieldCount(), plan.RelationCount())
	fmt.Printf("            %s\n", strings.Join(plan.EntityNames(), ", "))
	fmt.Printf("  Location: %s\n", result.ProjectDir)

	if verify, _ := cmd.Flags().GetBool("verify"); verify {
		keep, _ := cmd.Flags().GetBool("keep-on-failure")
		if err := verifyProject(ctx, cfg.Python, store, runID, result.ProjectDir, appName, false, keep); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println("Next steps:")
	for _, step := range result.NextSteps {
		fmt.Printf("  %s\n", step)
	}
	return nil
}

// verifyProject runs Django's own checks against a scaffolded project and
// settles the run's ledger status. A failing project is removed unless the
// caller asked to keep it.
func verifyProject(ctx context.Context, python string, store *history.Store, runID, projectDir, appName string, withTests, keepOnFailure bool) error {
	r := runner.New(python)
	fmt.Println()
	fmt.Printf("Verifying with %s...\n", r.Python())

	report, err := r.Verify(ctx, projectDir, appName, withTests)
	printVerifyReport(report)
	if err != nil {
		markRun(ctx, store, runID, history.StatusFailed)
		if keepOnFailure {
			fmt.Printf("%s kept %s for inspection\n", warnMark(), projectDir)
		} else if rmErr := os.RemoveAll(projectDir); rmErr != nil {
			fmt.Printf("%s failed to remove %s: %v\n", warnMark(), projectDir, rmErr)
		} else {
			fmt.Printf("%s removed %s (pass --keep-on-failure to keep failing projects)\n", warnMark(), projectDir)
		}
		return err
	}

	markRun(ctx, store, runID, history.StatusVerified)
	fmt.Printf("%s verification passed\n", okMark())
	return nil
}

// printVerifyReport lists each verification step, with output shown for
// the failing one.
func printVerifyReport(report *runner.Report) {
	if report == nil {
		return
	}
	for _, step := range report.Steps {
		if step.OK {
			fmt.Printf("  %s %s\n", okMark(), step.Name)
			continue
		}
		fmt.Printf("  %s %s\n", failMark(), step.Name)
		for _, line := range strings.Split(strings.TrimRight(step.Output, "\n"), "\n") {
			fmt.Printf("      %s\n", line)
		}
	}
}

// markRun updates the ledger status, tolerating a missing store.
func markRun(ctx context.Context, store *history.Store, runID, status string) {
	if store == nil || runID == "" {
		return
	}
	if err := store.MarkStatus(ctx, runID, status); err != nil {
		fmt.Printf("%s failed to update run status: %v\n", warnMark(), err)
	}
}

// printPlanSummary lists the planned models with their field counts.
func printPlanSummary(plan *schema.Plan, seed uint64) {
	fmt.Printf("Plan for domain %s (seed %d):\n", color.New(color.FgCyan).Sprint(plan.Domain), seed)
	fmt.Println()
	for _, e := range plan.SortedEntities() {
		if rels := len(e.Relations()); rels > 0 {
			fmt.Printf("  %-24s %d fields, %d relations\n", e.Name, len(e.Fields), rels)
		} else {
			fmt.Printf("  %-24s %d fields\n", e.Name, len(e.Fields))
		}
	}
	fmt.Println()
	fmt.Printf("%d models, %d fields, %d relations\n", len(plan.Entities), plan.FieldCount(), plan.RelationCount())
}
