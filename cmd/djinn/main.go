package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/djinn/internal/cli"
	"github.com/example/djinn/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "djinn",
		Short:   "djinn - synthetic Django project generator",
		Version: version.String(),
		Long: `djinn plans plausible relational schemas from domain vocabularies and
scaffolds them into complete, runnable Django projects. Every run is
seeded, recorded, and reproducible.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.PreviewCmd())
	rootCmd.AddCommand(cli.VerifyCmd())
	rootCmd.AddCommand(cli.VocabCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
