package domain

import "github.com/KGKallasmaa/bank-statement-analyser/internal/money"

// BalanceAnalysis is the statement's own account of its balances, as read
// from the document header or summary section. Dates stay in the statement's
// YYYY-MM-DD form; nothing downstream does date arithmetic on them.
type BalanceAnalysis struct {
	OpeningBalance money.Money `json:"opening_balance"`
	OpeningDate    string      `json:"opening_date"`
	ClosingBalance money.Money `json:"closing_balance"`
	ClosingDate    string      `json:"closing_date"`
}
