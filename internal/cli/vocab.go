package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/djinn/internal/config"
	"github.com/example/djinn/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect the vocabulary domains available for planning",
}

var vocabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered vocabulary domains",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := catalogFromFlags(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-16s %6s %7s\n", "DOMAIN", "NOUNS", "FIELDS")
		for _, domain := range catalog.Domains() {
			pack := catalog.Lookup(domain)
			fmt.Printf("%-16s %6d %7d\n", domain, len(pack.Nouns), len(pack.Fields))
		}
		return nil
	},
}

var vocabShowCmd = &cobra.Command{
	Use:   "show <domain>",
	Short: "Show the nouns and fields of one domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := catalogFromFlags(cmd)
		if err != nil {
			return err
		}

		domain := args[0]
		if !catalog.Has(domain) {
			return fmt.Errorf("domain %q not found (try 'djinn vocab list')", domain)
		}
		pack := catalog.Lookup(domain)

		fmt.Printf("Domain: %s (%d nouns, %d fields)\n", color.New(color.FgCyan).Sprint(pack.Domain), len(pack.Nouns), len(pack.Fields))
		fmt.Println()
		fmt.Println("Nouns:")
		printWrapped(pack.Nouns)
		fmt.Println()
		fmt.Println("Fields:")
		printWrapped(pack.Fields)
		return nil
	},
}

// VocabCmd returns the vocab command group.
func VocabCmd() *cobra.Command {
	vocabCmd.PersistentFlags().String("vocab-file", "", "Extra vocabulary pack file to load")
	vocabCmd.AddCommand(vocabListCmd)
	vocabCmd.AddCommand(vocabShowCmd)
	return vocabCmd
}

// catalogFromFlags loads the catalog with the vocab-file flag applied.
func catalogFromFlags(cmd *cobra.Command) (*vocab.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	vocabFile, _ := cmd.Flags().GetString("vocab-file")
	return loadCatalog(cfg, vocabFile)
}

// printWrapped prints words comma-separated, wrapped into short lines.
func printWrapped(words []string) {
	const perLine = 8
	for i := 0; i < len(words); i += perLine {
		end := i + perLine
		if end > len(words) {
			end = len(words)
		}
		fmt.Printf("  %s\n", strings.Join(words[i:end], ", "))
	}
}
