// Package understanding turns raw statement pages into the domain values the
// analysis works on, using a generative model as the reader.
package understanding

import (
	"context"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/domain"
)

// StatementUnderstanding answers questions about a statement's content.
// Implementations report what the document says; deciding whether it is
// acceptable stays with the caller.
type StatementUnderstanding interface {
	// Classify decides whether the first page belongs to a bank statement.
	Classify(ctx context.Context, firstPage string) (domain.Classification, error)

	// CheckPageIntegrity looks at one page for signs of tampering or
	// fabrication. Page numbers are 1-based.
	CheckPageIntegrity(ctx context.Context, pageText string, pageNumber int) (domain.PageIntegrity, error)

	// ExtractBusinessInfo reads the account holder's name and address off
	// the first page.
	ExtractBusinessInfo(ctx context.Context, firstPage string) (domain.BusinessInfo, error)

	// ExtractBalances reads the reported opening and closing balances off
	// the first page.
	ExtractBalances(ctx context.Context, firstPage string) (domain.BalanceAnalysis, error)

	// ExtractTransactions lists every transaction shown on one page.
	ExtractTransactions(ctx context.Context, pageText string) ([]domain.Transaction, error)
}

// PageExtractor turns a PDF into per-page text.
type PageExtractor interface {
	ExtractPages(ctx context.Context, pdf []byte) ([]string, error)
}
