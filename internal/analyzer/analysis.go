// Package analyzer runs the end-to-end statement analysis: page extraction,
// integrity screening, classification, business validation, and balance
// reconciliation.
package analyzer

import (
	"time"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/business"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/domain"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/reconcile"
)

// Analysis is the complete outcome of analyzing one statement document.
// The three verdict fields are tri-state: nil means the check never ran
// because the analysis settled earlier.
type Analysis struct {
	AnalysisID string    `json:"analysis_id"`
	SourceURI  string    `json:"source_uri"`
	Filename   string    `json:"filename"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	IsBankStatement      *bool  `json:"is_bank_statement,omitempty"`
	ValidBusinessInfo    *bool  `json:"valid_business_info,omitempty"`
	ValidBalanceAnalysis *bool  `json:"valid_balance_analysis,omitempty"`
	Reason               string `json:"reason,omitempty"`

	BusinessInfo   *business.Result        `json:"business_info,omitempty"`
	BalanceClaim   *domain.BalanceAnalysis `json:"balance_claim,omitempty"`
	Reconciliation *reconcile.Result       `json:"reconciliation,omitempty"`
	Transactions   []domain.Transaction    `json:"transactions,omitempty"`
}

// Valid reports whether every check ran and passed.
func (a *Analysis) Valid() bool {
	return isTrue(a.IsBankStatement) && isTrue(a.ValidBusinessInfo) && isTrue(a.ValidBalanceAnalysis)
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func verdict(v bool) *bool {
	return &v
}
