// Package report renders an analysis for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/analyzer"
)

// maxListedTransactions keeps the text report readable for busy statements;
// the JSON report always carries everything.
const maxListedTransactions = 5

// JSON renders the full analysis as indented JSON.
func JSON(a *analyzer.Analysis) ([]byte, error) {
	out, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling analysis: %w", err)
	}
	return out, nil
}

// Text renders a human-readable summary of the analysis.
func Text(a *analyzer.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Statement Analysis: %s ===\n", a.Filename)
	fmt.Fprintf(&b, "Analysis ID: %s\n\n", a.AnalysisID)

	if a.Valid() {
		b.WriteString("Result: VALID bank statement\n")
	} else {
		b.WriteString("Result: INVALID\n")
		fmt.Fprintf(&b, "Failed check: %s\n", failedCheck(a))
		if a.Reason != "" {
			fmt.Fprintf(&b, "Reason: %s\n", a.Reason)
		}
	}

	if a.BusinessInfo != nil {
		b.WriteString("\nBusiness Information:\n")
		fmt.Fprintf(&b, "  Name:    %s\n", a.BusinessInfo.Name)
		fmt.Fprintf(&b, "  Address: %s\n", a.BusinessInfo.Address)
		if a.BusinessInfo.ZipCode != "" {
			fmt.Fprintf(&b, "  Zip:     %s\n", a.BusinessInfo.ZipCode)
		}
	}

	if r := a.Reconciliation; r != nil {
		b.WriteString("\nBalance Analysis:\n")
		fmt.Fprintf(&b, "  Opening balance:   %s", r.OpeningBalance)
		if a.BalanceClaim != nil && a.BalanceClaim.OpeningDate != "" {
			fmt.Fprintf(&b, " (%s)", a.BalanceClaim.OpeningDate)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Closing balance:   %s", r.ClosingBalance)
		if a.BalanceClaim != nil && a.BalanceClaim.ClosingDate != "" {
			fmt.Fprintf(&b, " (%s)", a.BalanceClaim.ClosingDate)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Total deposits:    %s\n", r.TotalDeposits)
		fmt.Fprintf(&b, "  Total withdrawals: %s\n", r.TotalWithdrawals)
		fmt.Fprintf(&b, "  Net change:        %s\n", r.NetChange)
		fmt.Fprintf(&b, "  Expected closing:  %s\n", r.ExpectedClosingBalance)
		fmt.Fprintf(&b, "  Reconciles:        %t\n", r.Reconciles)
	}

	if n := len(a.Transactions); n > 0 {
		fmt.Fprintf(&b, "\nTransactions: %d\n", n)
		for i, tx := range a.Transactions {
			if i == maxListedTransactions {
				fmt.Fprintf(&b, "  ... and %d more\n", n-maxListedTransactions)
				break
			}
			fmt.Fprintf(&b, "  %s  %-40s %s\n", tx.Date, tx.Description, tx.Money)
		}
	}

	return b.String()
}

// failedCheck names the first check that did not pass.
func failedCheck(a *analyzer.Analysis) string {
	switch {
	case a.IsBankStatement == nil:
		return "document integrity"
	case !*a.IsBankStatement:
		return "bank statement classification"
	case a.ValidBusinessInfo != nil && !*a.ValidBusinessInfo:
		return "business information"
	case a.ValidBalanceAnalysis != nil && !*a.ValidBalanceAnalysis:
		return "balance reconciliation"
	default:
		return "analysis incomplete"
	}
}
