// Package commands wires the statement analyzer into the CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/buildinfo"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "analyser",
		Short:   "Analyze bank statements for authenticity and balance consistency",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newBatchCommand())

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
