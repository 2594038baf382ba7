package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/analyzer"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/api/handlers"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/api/middleware"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/config"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/document"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/jobs"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/jobs/inmemory"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/logger"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/understanding"
)

func main() {
	// Parse command-line flags
	var (
		port       = flag.String("port", "8080", "HTTP server port")
		configPath = flag.String("config", "", "path to a YAML config file")
		workers    = flag.Int("workers", inmemory.DefaultWorkers, "number of concurrent analysis workers")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()

	// The model client is created once at startup. Without it no analysis
	// can ever run, so fail fast.
	oracle, err := understanding.NewGemini(ctx, cfg.Model, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	statementAnalyzer := analyzer.New(oracle, oracle, analyzer.Options{
		MaxPages:        cfg.MaxPages,
		MaxTransactions: cfg.MaxTransactions,
	}, log)

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, *workers, jobStore)

	// Start workers in background to process jobs
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job jobs.Job) error {
		analyzeJob, ok := job.(*jobs.AnalyzeStatementJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("analysis_id", analyzeJob.JobID).
			Str("source_uri", analyzeJob.SourceURI).
			Msg("Processing analysis job")

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

	go func() {
		log.Info().Int("workers", *workers).Msg("Starting analysis workers")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Job worker stopped with error")
		}
	}()

	// Initialize handlers
	analysesHandler := handlers.NewAnalysesHandler(jobQueue, jobStore, log)

	// Create router
	mux := http.NewServeMux()

	// Analyses endpoints
	mux.HandleFunc("/api/analyses", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			analysesHandler.CreateAnalysis(w, r)
		case http.MethodGet:
			analysesHandler.ListAnalyses(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/analyses/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analysisID := strings.TrimPrefix(r.URL.Path, "/api/analyses/")
			if analysisID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Analysis ID is required")
				return
			}
			analysesHandler.GetAnalysis(w, r, analysisID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Str("model", cfg.Model).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Stop handing new jobs to workers
	cancelWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight analyses
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
