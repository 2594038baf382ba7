package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/document"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/understanding"
)

// DefaultMaxTransactions caps how many transactions one analysis keeps.
const DefaultMaxTransactions = 24000

// Options bound how large a document the analysis accepts. Zero values fall
// back to the defaults.
type Options struct {
	MaxPages        int
	MaxTransactions int
}

// Analyzer runs the statement analysis pipeline against a loaded document.
type Analyzer struct {
	pipeline *Pipeline
	log      zerolog.Logger
}

// New builds an analyzer around the given oracle and page extractor. In
// production both are the same Gemini client; tests swap in fakes.
func New(oracle understanding.StatementUnderstanding, extractor understanding.PageExtractor, opts Options, log zerolog.Logger) *Analyzer {
	if opts.MaxTransactions <= 0 {
		opts.MaxTransactions = DefaultMaxTransactions
	}
	return &Analyzer{
		pipeline: NewAnalysisPipeline(oracle, extractor, opts, log),
		log:      log,
	}
}

// Analyze runs the full pipeline over one document. The returned Analysis
// describes the document even when it fails a check; an error means the
// analysis itself could not run to a verdict.
func (a *Analyzer) Analyze(ctx context.Context, doc *document.Document) (*Analysis, error) {
	start := time.Now()
	state := &State{
		Document: doc,
		Analysis: &Analysis{
			AnalysisID: uuid.NewString(),
			SourceURI:  doc.SourceURI,
			Filename:   doc.Filename,
			AnalyzedAt: start.UTC(),
		},
	}

	a.log.Info().
		Str("analysis_id", state.Analysis.AnalysisID).
		Str("source", doc.SourceURI).
		Msg("starting analysis")

	if err := a.pipeline.Execute(ctx, state); err != nil {
		return nil, err
	}

	a.log.Info().
		Str("analysis_id", state.Analysis.AnalysisID).
		Bool("valid", state.Analysis.Valid()).
		Int("transactions", len(state.Analysis.Transactions)).
		Dur("elapsed", time.Since(start)).
		Msg("analysis finished")

	return state.Analysis, nil
}
