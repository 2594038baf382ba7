// Package money provides an exact-decimal monetary value and the
// per-currency aggregation the reconciliation engine is built on.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is returned when two Money values with different,
// non-empty currencies are combined.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is a decimal amount tagged with a currency code. An empty currency
// means "not yet established"; it combines with any concrete currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// New builds a Money with the currency code normalized to upper case.
func New(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: normalizeCurrency(currency)}
}

// FromFloat converts an upstream float amount to exact decimal at the
// boundary, before any arithmetic happens.
func FromFloat(amount float64, currency string) Money {
	return New(decimal.NewFromFloat(amount), currency)
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return New(decimal.Zero, currency)
}

// Add combines two Money values. The empty currency acts as a wildcard and
// the sum takes the concrete side's currency; two different non-empty
// currencies do not combine.
func (m Money) Add(other Money) (Money, error) {
	currency, ok := resolveCurrency(m.Currency, other.Currency)
	if !ok {
		return Money{}, fmt.Errorf("adding %s to %s: %w", other.Currency, m.Currency, ErrCurrencyMismatch)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: currency}, nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	if m.Currency == "" {
		return m.Amount.String()
	}
	return m.Amount.String() + " " + m.Currency
}

// SumByCurrency sums amounts per currency. The result holds one Money per
// distinct currency, ordered by first occurrence so output is deterministic.
// An empty input yields an empty result, not a zero Money.
func SumByCurrency(values []Money) []Money {
	totals := make(map[string]decimal.Decimal, len(values))
	var order []string

	for _, v := range values {
		currency := normalizeCurrency(v.Currency)
		if _, seen := totals[currency]; !seen {
			order = append(order, currency)
		}
		totals[currency] = totals[currency].Add(v.Amount)
	}

	result := make([]Money, 0, len(order))
	for _, currency := range order {
		result = append(result, Money{Amount: totals[currency], Currency: currency})
	}
	return result
}

func normalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// resolveCurrency decides which currency a combination of the two carries.
func resolveCurrency(a, b string) (string, bool) {
	switch {
	case a == b:
		return a, true
	case a == "":
		return b, true
	case b == "":
		return a, true
	default:
		return "", false
	}
}
