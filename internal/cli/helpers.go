// Package cli contains the djinn command implementations.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/djinn/internal/config"
	"github.com/example/djinn/internal/db"
	"github.com/example/djinn/internal/history"
	"github.com/example/djinn/internal/vocab"
)

// sizeRanges maps the size presets to model count ranges.
var sizeRanges = map[string][2]int{
	"small":  {1, 8},
	"medium": {9, 13},
	"large":  {14, 21},
}

// resolveModelRange turns a size preset, or an explicit model count, into
// the entity count range handed to the planner. An explicit count wins.
func resolveModelRange(size string, models int, modelsSet bool) (int, int, error) {
	if modelsSet {
		if models < 1 {
			return 0, 0, fmt.Errorf("--models must be at least 1, got %d", models)
		}
		return models, models, nil
	}

	r, ok := sizeRanges[size]
	if !ok {
		return 0, 0, fmt.Errorf("unknown size %q (want small, medium, or large)", size)
	}
	return r[0], r[1], nil
}

// loadCatalog builds the vocabulary catalog: built-in packs, then packs from
// the configured vocab directory, then an optional explicit pack file.
func loadCatalog(cfg *config.Config, vocabFile string) (*vocab.Catalog, error) {
	catalog := vocab.NewCatalog()

	if cfg.VocabDir != "" {
		if _, err := catalog.LoadDir(cfg.VocabDir); err != nil {
			return nil, fmt.Errorf("failed to load vocab packs from %s: %w", cfg.VocabDir, err)
		}
	}

	if vocabFile != "" {
		pack, err := vocab.LoadPackFile(vocabFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load vocab pack: %w", err)
		}
		if err := catalog.Add(pack); err != nil {
			return nil, fmt.Errorf("failed to register vocab pack: %w", err)
		}
	}

	return catalog, nil
}

// openStore opens the run ledger.
func openStore() (*history.Store, error) {
	database, err := db.GetDB()
	if err != nil {
		return nil, fmt.Errorf("failed to open run ledger: %w", err)
	}
	return history.NewStore(database), nil
}

// stringFlag returns the flag value when set, the fallback otherwise.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

// intFlag returns the flag value when set, the fallback otherwise.
func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return fallback
}

// float64Flag returns the flag value when set, the fallback otherwise.
func float64Flag(cmd *cobra.Command, name string, fallback float64) float64 {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetFloat64(name)
		return v
	}
	return fallback
}

// Status glyphs shared across command output.
func okMark() string   { return color.New(color.FgHiGreen).Sprint("✓") }
func warnMark() string { return color.New(color.FgYellow).Sprint("⚠") }
func failMark() string { return color.New(color.FgRed).Sprint("✗") }
func infoMark() string { return color.New(color.FgCyan).Sprint("ℹ") }

// colorizeRunStatus formats a ledger run status with semantic color.
func colorizeRunStatus(status string) string {
	switch status {
	case history.StatusCreated:
		return color.New(color.FgCyan).Sprint(status)
	case history.StatusVerified:
		return color.New(color.FgHiGreen).Sprint(status)
	case history.StatusFailed:
		return color.New(color.FgRed).Sprint(status)
	default:
		return status
	}
}

// shortID trims a UUID down to its first hex group for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
