package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/djinn/internal/config"
	"github.com/example/djinn/internal/planner"
	"github.com/example/djinn/internal/render"
	"github.com/example/djinn/internal/vocab"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Plan a schema and print the rendered code without writing files",
	Long: `Preview runs the planner and renderer exactly like generate, but
prints the plan and code to stdout instead of scaffolding a project.
Nothing is written to disk and no run is recorded.`,
	Example: `  djinn preview
  djinn preview --domain saas --models 3 --seed 7`,
	RunE: runPreview,
}

// PreviewCmd returns the preview command.
func PreviewCmd() *cobra.Command {
	fl := previewCmd.Flags()
	fl.String("domain", "", "Vocabulary domain (random when omitted)")
	fl.String("size", config.DefaultSize, "Model count preset: small, medium, or large")
	fl.Int("models", 0, "Exact number of models to plan (overrides --size)")
	fl.Int("avg-fields", config.DefaultAvgFields, "Average non-relation fields per model")
	fl.Float64("relation-density", config.DefaultRelationDensity, "Chance of a relation field per model, 0 to 1")
	fl.Uint64("seed", 0, "Random seed (time-based when omitted)")
	fl.String("vocab-file", "", "Extra vocabulary pack file to load")
	return previewCmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	vocabFile, _ := cmd.Flags().GetString("vocab-file")
	catalog, err := loadCatalog(cfg, vocabFile)
	if err != nil {
		return err
	}

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

	printPlanSummary(plan, seed)
	fmt.Println()
	fmt.Println("--- models.py ---")
	fmt.Print(render.Models(plan))
	fmt.Println("--- forms.py ---")
	fmt.Print(render.Forms(plan))
	return nil
}
