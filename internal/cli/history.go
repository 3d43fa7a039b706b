package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/djinn/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the ledger of past generation runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		domain, _ := cmd.Flags().GetString("domain")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := store.List(cmd.Context(), history.Filters{Domain: domain, Status: status, Limit: limit})
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet. Run 'djinn generate' to create one.")
			return nil
		}

		fmt.Printf("%-10s %-20s %-12s %-16s %6s  %s\n", "ID", "CREATED", "DOMAIN", "APP", "MODELS", "STATUS")
		for _, run := range runs {
			fmt.Printf("%-10s %-20s %-12s %-16s %6d  %s\n",
				shortID(run.ID), run.CreatedAt, run.Domain, run.AppName, run.EntityCount, colorizeRunStatus(run.Status))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one run in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		run, err := resolveRun(cmd, store, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Run:      %s\n", run.ID)
		fmt.Printf("Status:   %s\n", colorizeRunStatus(run.Status))
		fmt.Printf("App:      %s\n", run.AppName)
		fmt.Printf("Domain:   %s\n", run.Domain)
		fmt.Printf("Seed:     %d\n", run.Seed)
		fmt.Printf("Models:   %d (%d fields, %d relations)\n", run.EntityCount, run.FieldCount, run.RelationCount)
		fmt.Printf("Project:  %s\n", run.ProjectDir)
		fmt.Printf("Created:  %s\n", run.CreatedAt)
		fmt.Printf("Updated:  %s\n", run.UpdatedAt)
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs, keeping the most recent ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		keep, _ := cmd.Flags().GetInt("keep")
		deleted, err := store.Prune(cmd.Context(), keep)
		if err != nil {
			return err
		}
		if deleted == 0 {
			fmt.Printf("Nothing to prune, ledger holds at most %d runs.\n", keep)
			return nil
		}
		fmt.Printf("%s Pruned %d runs, kept the %d most recent.\n", okMark(), deleted, keep)
		return nil
	},
}

// HistoryCmd returns the history command group.
func HistoryCmd() *cobra.Command {
	historyListCmd.Flags().String("domain", "", "Only list runs for this domain")
	historyListCmd.Flags().String("status", "", "Only list runs with this status")
	historyListCmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 for all)")
	historyPruneCmd.Flags().Int("keep", 20, "Number of most recent runs to keep")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
	return historyCmd
}

// resolveRun fetches a run by full ID, falling back to the short prefix
// printed by 'history list'.
func resolveRun(cmd *cobra.Command, store *history.Store, id string) (*history.Run, error) {
	run, err := store.Get(cmd.Context(), id)
	if err == nil {
		return run, nil
	}

	runs, listErr := store.List(cmd.Context(), history.Filters{})
	if listErr != nil {
		return nil, err
	}

	var matches []*history.Run
	for _, r := range runs {
		if strings.HasPrefix(r.ID, id) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, err
	default:
		return nil, fmt.Errorf("run id %q is ambiguous, %d runs match", id, len(matches))
	}
}
