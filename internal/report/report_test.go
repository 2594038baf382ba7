package report

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/analyzer"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/business"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/domain"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/money"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/reconcile"
)

func usd(s string) money.Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return money.New(d, "USD")
}

func boolPtr(v bool) *bool { return &v }

func validAnalysis() *analyzer.Analysis {
	return &analyzer.Analysis{
		AnalysisID:           "a1b2c3",
		SourceURI:            "statements/january.pdf",
		Filename:             "january.pdf",
		IsBankStatement:      boolPtr(true),
		ValidBusinessInfo:    boolPtr(true),
		ValidBalanceAnalysis: boolPtr(true),
		BusinessInfo: &business.Result{
			Name:      "Acme Consulting LLC",
			NameValid: true,
			Address: domain.Address{
				Street: "123 Main Street", City: "Springfield", State: "IL", Zip: "62704",
			},
			AddressValid: true,
			ZipCode:      "62704",
		},
		BalanceClaim: &domain.BalanceAnalysis{
			OpeningBalance: usd("50"),
			OpeningDate:    "2024-01-01",
			ClosingBalance: usd("120"),
			ClosingDate:    "2024-01-31",
		},
		Reconciliation: &reconcile.Result{
			OpeningBalance:         usd("50"),
			ClosingBalance:         usd("120"),
			TotalDeposits:          usd("110"),
			TotalWithdrawals:       usd("-40"),
			NetChange:              usd("70"),
			ExpectedClosingBalance: usd("120"),
			Reconciles:             true,
			TransactionsCount:      2,
		},
		Transactions: []domain.Transaction{
			{Date: "2024-01-05", Description: "Invoice 1042", Money: usd("110")},
			{Date: "2024-01-12", Description: "Supplier payment", Money: usd("-40")},
		},
	}
}

func TestTextValidAnalysis(t *testing.T) {
	out := Text(validAnalysis())

	assert.Contains(t, out, "january.pdf")
	assert.Contains(t, out, "Result: VALID bank statement")
	assert.Contains(t, out, "Acme Consulting LLC")
	assert.Contains(t, out, "123 Main Street, Springfield, IL, 62704")
	assert.Contains(t, out, "Opening balance:   50 USD (2024-01-01)")
	assert.Contains(t, out, "Expected closing:  120 USD")
	assert.Contains(t, out, "Reconciles:        true")
	assert.Contains(t, out, "Transactions: 2")
	assert.Contains(t, out, "Invoice 1042")
	assert.NotContains(t, out, "Failed check")
}

func TestTextFailedClassification(t *testing.T) {
	a := &analyzer.Analysis{
		AnalysisID:      "a1",
		Filename:        "flyer.pdf",
		IsBankStatement: boolPtr(false),
		Reason:          "No bank information found.",
	}

	out := Text(a)
	assert.Contains(t, out, "Result: INVALID")
	assert.Contains(t, out, "Failed check: bank statement classification")
	assert.Contains(t, out, "Reason: No bank information found.")
}

func TestTextIntegrityFailure(t *testing.T) {
	a := &analyzer.Analysis{
		AnalysisID: "a2",
		Filename:   "template.pdf",
		Reason:     "Document integrity check failed: page 1 contains template placeholders",
	}

	out := Text(a)
	assert.Contains(t, out, "Failed check: document integrity")
	assert.Contains(t, out, "template placeholders")
}

func TestTextDiscrepancy(t *testing.T) {
	a := validAnalysis()
	a.ValidBalanceAnalysis = boolPtr(false)
	a.Reconciliation.Reconciles = false
	a.Reason = "Balance mismatch: the difference is 5"

	out := Text(a)
	assert.Contains(t, out, "Failed check: balance reconciliation")
	assert.Contains(t, out, "Reconciles:        false")
}

func TestTextTruncatesLongTransactionLists(t *testing.T) {
	a := validAnalysis()
	a.Transactions = nil
	for i := 0; i < 14; i++ {
		a.Transactions = append(a.Transactions, domain.Transaction{
			Date: "2024-01-05", Description: "Deposit", Money: usd("1"),
		})
	}

	out := Text(a)
	assert.Contains(t, out, "Transactions: 14")
	assert.Contains(t, out, "... and 9 more")
}

func TestJSONRoundTrips(t *testing.T) {
	out, err := JSON(validAnalysis())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "a1b2c3", decoded["analysis_id"])
	assert.Equal(t, true, decoded["is_bank_statement"])

	reconciliation, ok := decoded["reconciliation"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, reconciliation["reconciles"])
}
