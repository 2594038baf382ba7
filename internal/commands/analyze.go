package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/analyzer"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/document"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/logger"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/report"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/understanding"
)

func newAnalyzeCommand() *cobra.Command {
	var configPath string
	var model string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <statement>",
		Short: "Analyze a single bank statement PDF",
		Long: `Analyze checks one statement, given as a local path or a gs:// URI.

It verifies the document is a bank statement, validates the business
information on it, and reconciles the listed transactions against the
reported balances. The exit code is non-zero when any check fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], configPath, model, asJSON)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&model, "model", "", "Gemini model to use, overrides the config")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")

	return cmd
}

func runAnalyze(ctx context.Context, sourceURI, configPath, model string, asJSON bool) error {
	log := logger.New()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if model != "" {
		cfg.Model = model
	}

	doc, err := document.Load(ctx, sourceURI, cfg.MaxFileSizeMB)
	if err != nil {
		return err
	}

	oracle, err := understanding.NewGemini(ctx, cfg.Model, log)
	if err != nil {
		return err
	}

	statementAnalyzer := analyzer.New(oracle, oracle, analyzer.Options{
		MaxPages:        cfg.MaxPages,
		MaxTransactions: cfg.MaxTransactions,
	}, log)

	analysis, err := statementAnalyzer.Analyze(ctx, doc)
	if err != nil {
		return err
	}

	if asJSON {
		out, err := report.JSON(analysis)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		fmt.Println(report.Text(analysis))
	}

	if !analysis.Valid() {
		return errors.New("statement failed analysis")
	}
	return nil
}
