// Package domain holds the value types shared across statement analysis.
package domain

import "github.com/KGKallasmaa/bank-statement-analyser/internal/money"

// Transaction is a single dated statement entry. Deposits carry positive
// amounts and withdrawals negative ones; a zero amount is neither.
type Transaction struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Money       money.Money `json:"money"`
	Reference   string      `json:"reference,omitempty"`
}

// IsDeposit reports whether the entry adds funds to the account.
func (t Transaction) IsDeposit() bool {
	return t.Money.Amount.IsPositive()
}

// IsWithdrawal reports whether the entry removes funds from the account.
func (t Transaction) IsWithdrawal() bool {
	return t.Money.Amount.IsNegative()
}
