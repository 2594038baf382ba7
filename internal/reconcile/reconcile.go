package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/domain"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/money"
)

// tolerance absorbs sub-cent rounding noise from statement formatting. The
// comparison is strict: a difference of exactly 0.01 is a discrepancy.
var tolerance = decimal.New(1, -2)

// Result is the full audit trail of one reconciliation run.
type Result struct {
	OpeningBalance         money.Money `json:"opening_balance"`
	ClosingBalance         money.Money `json:"closing_balance"`
	TotalDeposits          money.Money `json:"total_deposits"`
	TotalWithdrawals       money.Money `json:"total_withdrawals"`
	NetChange              money.Money `json:"net_change"`
	ExpectedClosingBalance money.Money `json:"expected_closing_balance"`
	Reconciles             bool        `json:"reconciles"`
	DiscrepancyReason      string      `json:"discrepancy_reason,omitempty"`
	TransactionsCount      int         `json:"transactions_count"`
}

// Reconcile recomputes the closing balance from the opening balance and the
// transaction list, then compares it against the closing balance the
// statement reports. A MultiCurrencyError from the totals aborts the run;
// a mere discrepancy does not, it is part of the Result.
func Reconcile(claim domain.BalanceAnalysis, transactions []domain.Transaction) (Result, error) {
	totals, err := CalculateTotals(transactions)
	if err != nil {
		return Result{}, err
	}

	expectedAmount := claim.OpeningBalance.Amount.Add(totals.NetChange.Amount)
	expected := money.New(expectedAmount, claim.ClosingBalance.Currency)

	// Compare on the exact difference; rounding applies only to the figure
	// quoted in the discrepancy text.
	difference := expectedAmount.Sub(claim.ClosingBalance.Amount).Abs()
	reconciles := difference.LessThan(tolerance)

	result := Result{
		OpeningBalance:         claim.OpeningBalance,
		ClosingBalance:         claim.ClosingBalance,
		TotalDeposits:          totals.TotalDeposits,
		TotalWithdrawals:       totals.TotalWithdrawals,
		NetChange:              totals.NetChange,
		ExpectedClosingBalance: expected,
		Reconciles:             reconciles,
		TransactionsCount:      len(transactions),
	}
	if !reconciles {
		result.DiscrepancyReason = discrepancyReason(claim, totals, expected, difference)
	}
	return result, nil
}

func discrepancyReason(claim domain.BalanceAnalysis, totals TransactionTotals, expected money.Money, difference decimal.Decimal) string {
	return fmt.Sprintf("Balance mismatch: opening balance %s, total deposits %s, total withdrawals %s, "+
		"net change %s, expected closing balance %s, reported closing balance %s. "+
		"The difference is %s, which should be less than 0.01. "+
		"This may be due to missing transactions, fees not captured in the transaction list, "+
		"or calculation errors.",
		claim.OpeningBalance, totals.TotalDeposits, totals.TotalWithdrawals,
		totals.NetChange, expected, claim.ClosingBalance, difference.Round(3))
}
