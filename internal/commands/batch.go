package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/analyzer"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/document"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/jobs"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/jobs/inmemory"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/logger"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/understanding"
)

func newBatchCommand() *cobra.Command {
	var configPath string
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <statement>...",
		Short: "Analyze several statements concurrently",
		Long: `Batch runs the full analysis over each given statement, local path or
gs:// URI, and prints a one-line verdict per statement. The exit code is
non-zero when any statement fails its analysis.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), args, configPath, workers)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().IntVar(&workers, "workers", 4, "number of concurrent analyses")

	return cmd
}

func runBatch(ctx context.Context, sources []string, configPath string, workers int) error {
	log := logger.New()

	cfg, err := loadConfig(configPath)
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

	store := inmemory.NewStore()
	queue := inmemory.NewQueue(len(sources), workers, store)
	defer queue.Close()

	handler := func(ctx context.Context, job jobs.Job) error {
		analyzeJob, ok := job.(*jobs.AnalyzeStatementJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		doc, err := document.Load(ctx, analyzeJob.SourceURI, cfg.MaxFileSizeMB)
		if err != nil {
			return err
		}

		analysis, err := statementAnalyzer.Analyze(ctx, doc)
		if err != nil {
			return err
		}

		analyzeJob.Analysis = analysis
		return nil
	}

	if err := queue.Start(ctx, handler); err != nil {
		return err
	}

	// One retry covers transient model errors without dragging out
	// statements that can never load.
	ids := make([]string, 0, len(sources))
	for _, src := range sources {
		job := &jobs.AnalyzeStatementJob{SourceURI: src, MaxRetries: 1}
		if err := queue.PublishAnalyzeStatement(ctx, job); err != nil {
			return fmt.Errorf("enqueueing %s: %w", src, err)
		}
		ids = append(ids, job.JobID)
	}

	if err := waitForJobs(ctx, store, ids); err != nil {
		return err
	}

	// Verdicts print in the order the statements were given.
	passed := 0
	for _, id := range ids {
		job, err := store.GetJob(ctx, id)
		if err != nil {
			return err
		}

		switch {
		case job.Status == jobs.JobStatusFailed:
			fmt.Printf("%-8s %s: %s\n", "FAILED", job.SourceURI, job.Error)
		case job.Analysis != nil && job.Analysis.Valid():
			fmt.Printf("%-8s %s\n", "VALID", job.SourceURI)
			passed++
		case job.Analysis != nil:
			fmt.Printf("%-8s %s: %s\n", "INVALID", job.SourceURI, job.Analysis.Reason)
		default:
			fmt.Printf("%-8s %s: no analysis produced\n", "FAILED", job.SourceURI)
		}
	}

	fmt.Printf("\n%d of %d statements passed\n", passed, len(ids))

	if passed < len(ids) {
		return fmt.Errorf("%d statements failed", len(ids)-passed)
	}
	return nil
}

// waitForJobs polls the store until every job reaches a terminal status.
func waitForJobs(ctx context.Context, store jobs.JobStore, ids []string) error {
	pending := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		pending[id] = struct{}{}
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for len(pending) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		for id := range pending {
			job, err := store.GetJob(ctx, id)
			if err != nil {
				continue
			}
			if job.Status == jobs.JobStatusCompleted || job.Status == jobs.JobStatusFailed {
				delete(pending, id)
			}
		}
	}

	return nil
}
