package analyzer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/business"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/document"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/domain"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/integrity"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/reconcile"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/understanding"
)

// Step is a single stage of the statement analysis.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State is shared across analysis steps. A step that settles the outcome
// marks the state finished; the steps after it never run.
type State struct {
	Document     *document.Document
	Pages        []string
	Claim        domain.BalanceAnalysis
	Transactions []domain.Transaction
	Analysis     *Analysis

	finished bool
}

func (s *State) firstPage() string {
	if len(s.Pages) == 0 {
		return ""
	}
	return s.Pages[0]
}

// finish records why the analysis settled and stops the pipeline.
func (s *State) finish(reason string) {
	s.Analysis.Reason = reason
	s.finished = true
}

// Step 1: ExtractPagesStep reads the per-page text out of the PDF.
type ExtractPagesStep struct {
	Extractor understanding.PageExtractor
}

func (s *ExtractPagesStep) Execute(ctx context.Context, state *State) error {
	pages, err := s.Extractor.ExtractPages(ctx, state.Document.Data)
	if err != nil {
		return fmt.Errorf("extracting pages: %w", err)
	}
	state.Pages = pages
	return nil
}

// Step 2: IntegrityStep rejects templates, stubs, and oversized documents
// with cheap heuristics first, then has the model screen every page for
// signs of tampering.
type IntegrityStep struct {
	Oracle   understanding.StatementUnderstanding
	MaxPages int
}

func (s *IntegrityStep) Execute(ctx context.Context, state *State) error {
	if err := integrity.CheckDocument(state.Pages, s.MaxPages); err != nil {
		state.finish("Document integrity check failed: " + err.Error())
		return nil
	}

	for i, page := range state.Pages {
		assessment, err := s.Oracle.CheckPageIntegrity(ctx, page, i+1)
		if err != nil {
			return fmt.Errorf("checking page %d integrity: %w", i+1, err)
		}
		if !assessment.Valid {
			state.finish(fmt.Sprintf("Document integrity check failed: page %d: model detected issues (%d%% confidence): %s",
				i+1, assessment.Confidence, assessment.Summary()))
			return nil
		}
	}
	return nil
}

// Step 3: ClassifyStep decides whether this is a bank statement at all.
type ClassifyStep struct {
	Oracle understanding.StatementUnderstanding
}

func (s *ClassifyStep) Execute(ctx context.Context, state *State) error {
	classification, err := s.Oracle.Classify(ctx, state.firstPage())
	if err != nil {
		return fmt.Errorf("classifying document: %w", err)
	}

	state.Analysis.IsBankStatement = verdict(classification.IsBankStatement)
	if !classification.IsBankStatement {
		state.finish(classification.Reason)
	}
	return nil
}

// Step 4: BusinessInfoStep extracts and validates the account holder details.
type BusinessInfoStep struct {
	Oracle understanding.StatementUnderstanding
}

func (s *BusinessInfoStep) Execute(ctx context.Context, state *State) error {
	info, err := s.Oracle.ExtractBusinessInfo(ctx, state.firstPage())
	if err != nil {
		return fmt.Errorf("extracting business info: %w", err)
	}

	result := business.Check(info)
	state.Analysis.BusinessInfo = &result
	state.Analysis.ValidBusinessInfo = verdict(result.Valid())
	if !result.Valid() {
		state.finish("Invalid business information: " + result.FailureMessage())
	}
	return nil
}

// Step 5: BalancesStep reads the balances the statement reports.
type BalancesStep struct {
	Oracle understanding.StatementUnderstanding
}

func (s *BalancesStep) Execute(ctx context.Context, state *State) error {
	claim, err := s.Oracle.ExtractBalances(ctx, state.firstPage())
	if err != nil {
		return fmt.Errorf("extracting balances: %w", err)
	}
	state.Claim = claim
	state.Analysis.BalanceClaim = &claim
	return nil
}

// Step 6: TransactionsStep extracts transactions page by page. The first
// transaction seen pins the statement currency; an entry in any other
// currency settles the outcome as invalid.
type TransactionsStep struct {
	Oracle          understanding.StatementUnderstanding
	MaxTransactions int
	Log             zerolog.Logger
}

func (s *TransactionsStep) Execute(ctx context.Context, state *State) error {
	var all []domain.Transaction
	currency := ""

	for i, page := range state.Pages {
		pageTransactions, err := s.Oracle.ExtractTransactions(ctx, page)
		if err != nil {
			return fmt.Errorf("extracting transactions from page %d: %w", i+1, err)
		}

		for _, tx := range pageTransactions {
			if currency == "" {
				currency = tx.Money.Currency
				continue
			}
			if tx.Money.Currency != currency {
				state.Analysis.ValidBalanceAnalysis = verdict(false)
				state.finish(fmt.Sprintf("Transactions have different currencies: %s and %s",
					currency, tx.Money.Currency))
				return nil
			}
		}

		all = append(all, pageTransactions...)
		if len(all) > s.MaxTransactions {
			s.Log.Warn().
				Int("extracted", len(all)).
				Int("limit", s.MaxTransactions).
				Str("analysis_id", state.Analysis.AnalysisID).
				Msg("transaction limit reached, truncating")
			all = all[:s.MaxTransactions]
			break
		}
	}

	state.Transactions = all
	return nil
}

// Step 7: ReconcileStep checks the reported balances against the extracted
// transactions. A discrepancy is a normal outcome, not an error.
type ReconcileStep struct{}

func (s *ReconcileStep) Execute(ctx context.Context, state *State) error {
	result, err := reconcile.Reconcile(state.Claim, state.Transactions)
	if err != nil {
		return fmt.Errorf("reconciling balances: %w", err)
	}

	state.Analysis.Reconciliation = &result
	state.Analysis.Transactions = state.Transactions
	state.Analysis.ValidBalanceAnalysis = verdict(result.Reconciles)
	if !result.Reconciles {
		state.finish(result.DiscrepancyReason)
	}
	return nil
}

// Pipeline executes analysis steps in order, stopping early once a step
// settles the outcome.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs the steps sequentially. An error means the analysis itself
// broke; a settled-but-invalid document is reported through the Analysis.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("analysis step %d failed: %w", i+1, err)
		}
		if state.finished {
			return nil
		}
	}
	return nil
}

// NewAnalysisPipeline assembles the standard 7-step statement analysis.
func NewAnalysisPipeline(oracle understanding.StatementUnderstanding, extractor understanding.PageExtractor, opts Options, log zerolog.Logger) *Pipeline {
	return NewPipeline(
		&ExtractPagesStep{Extractor: extractor},
		&IntegrityStep{Oracle: oracle, MaxPages: opts.MaxPages},
		&ClassifyStep{Oracle: oracle},
		&BusinessInfoStep{Oracle: oracle},
		&BalancesStep{Oracle: oracle},
		&TransactionsStep{Oracle: oracle, MaxTransactions: opts.MaxTransactions, Log: log},
		&ReconcileStep{},
	)
}
