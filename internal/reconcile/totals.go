// Package reconcile checks a statement's reported balances against the sum
// of its transactions.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/domain"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/money"
)

// MultiCurrencyError reports values spanning more than one currency where a
// single currency is required. Scope names the side of the ledger involved.
type MultiCurrencyError struct {
	Scope      string
	Currencies []string
}

func (e *MultiCurrencyError) Error() string {
	return fmt.Sprintf("multiple currencies in %s: %s", e.Scope, strings.Join(e.Currencies, ", "))
}

// TransactionTotals holds the per-side sums of a transaction list. On an
// empty list every side is zero with an empty currency.
type TransactionTotals struct {
	TotalDeposits    money.Money `json:"total_deposits"`
	TotalWithdrawals money.Money `json:"total_withdrawals"`
	NetChange        money.Money `json:"net_change"`
}

// CalculateTotals partitions transactions into deposits (positive amounts)
// and withdrawals (negative amounts), sums each side, and nets the two.
// Zero-amount entries land on neither side. Each side must stay within a
// single currency and both sides must agree, otherwise a MultiCurrencyError
// is returned.
func CalculateTotals(transactions []domain.Transaction) (TransactionTotals, error) {
	var deposits, withdrawals []money.Money
	for _, tx := range transactions {
		switch {
		case tx.IsDeposit():
			deposits = append(deposits, tx.Money)
		case tx.IsWithdrawal():
			withdrawals = append(withdrawals, tx.Money)
		}
	}

	totalDeposits, err := singleCurrencySum(deposits, "deposits")
	if err != nil {
		return TransactionTotals{}, err
	}
	totalWithdrawals, err := singleCurrencySum(withdrawals, "withdrawals")
	if err != nil {
		return TransactionTotals{}, err
	}

	if totalDeposits.Currency != "" && totalWithdrawals.Currency != "" &&
		totalDeposits.Currency != totalWithdrawals.Currency {
		return TransactionTotals{}, &MultiCurrencyError{
			Scope:      "deposits vs withdrawals",
			Currencies: []string{totalDeposits.Currency, totalWithdrawals.Currency},
		}
	}

	// The wildcard rule on the empty currency means the net change takes its
	// currency from whichever side actually has transactions.
	netChange, err := totalDeposits.Add(totalWithdrawals)
	if err != nil {
		return TransactionTotals{}, fmt.Errorf("netting deposits against withdrawals: %w", err)
	}

	return TransactionTotals{
		TotalDeposits:    totalDeposits,
		TotalWithdrawals: totalWithdrawals,
		NetChange:        netChange,
	}, nil
}

// singleCurrencySum folds one side of the ledger into a single Money. An
// empty side sums to zero with the empty currency.
func singleCurrencySum(values []money.Money, scope string) (money.Money, error) {
	sums := money.SumByCurrency(values)
	switch len(sums) {
	case 0:
		return money.Zero(""), nil
	case 1:
		return sums[0], nil
	default:
		currencies := make([]string, 0, len(sums))
		for _, sum := range sums {
			currencies = append(currencies, sum.Currency)
		}
		return money.Money{}, &MultiCurrencyError{Scope: scope, Currencies: currencies}
	}
}
