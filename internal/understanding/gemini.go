package understanding

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/domain"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Gemini implements StatementUnderstanding and PageExtractor on top of the
// Gemini API. The client reads its credentials from the environment.
type Gemini struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGemini creates the API client once; the returned value is safe for
// concurrent use.
func NewGemini(ctx context.Context, model string, log zerolog.Logger) (*Gemini, error) {
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Gemini{client: client, model: model, log: log}, nil
}

// Classify runs the component checks first so a negative verdict names what
// is missing, then asks for the overall determination.
func (g *Gemini) Classify(ctx context.Context, firstPage string) (domain.Classification, error) {
	checks := []struct {
		prompt  string
		missing string
	}{
		{bankInfoCheckPrompt, "No bank information found."},
		{statementPeriodCheckPrompt, "No statement period information found."},
		{customerInfoCheckPrompt, "No customer information found."},
	}

	for _, check := range checks {
		verdict, err := g.classifyOnce(ctx, check.prompt, firstPage)
		if err != nil {
			return domain.Classification{}, err
		}
		if !verdict.IsBankStatement {
			reason := check.missing
			if verdict.Reason != "" {
				reason += " " + verdict.Reason
			}
			g.log.Debug().Str("reason", reason).Msg("classification check failed")
			return domain.Classification{IsBankStatement: false, Reason: reason}, nil
		}
	}

	return g.classifyOnce(ctx, bankStatementCheckPrompt, firstPage)
}

func (g *Gemini) classifyOnce(ctx context.Context, prompt, firstPage string) (domain.Classification, error) {
	raw, err := g.generateFromText(ctx, prompt, firstPage)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("classify: %w", err)
	}
	return parseClassification(raw)
}

// CheckPageIntegrity runs the forensic prompt over one page of text.
func (g *Gemini) CheckPageIntegrity(ctx context.Context, pageText string, pageNumber int) (domain.PageIntegrity, error) {
	input := fmt.Sprintf("Page number: %d\nStatement page text:\n%s", pageNumber, pageText)
	raw, err := g.generate(ctx, []*genai.Part{{Text: pageIntegrityPrompt + "\n" + input}})
	if err != nil {
		return domain.PageIntegrity{}, fmt.Errorf("check page %d integrity: %w", pageNumber, err)
	}
	return parsePageIntegrity(raw)
}

func (g *Gemini) ExtractBusinessInfo(ctx context.Context, firstPage string) (domain.BusinessInfo, error) {
	raw, err := g.generateFromText(ctx, businessInfoPrompt, firstPage)
	if err != nil {
		return domain.BusinessInfo{}, fmt.Errorf("extract business info: %w", err)
	}
	return parseBusinessInfo(raw)
}

func (g *Gemini) ExtractBalances(ctx context.Context, firstPage string) (domain.BalanceAnalysis, error) {
	raw, err := g.generateFromText(ctx, balancesPrompt, firstPage)
	if err != nil {
		return domain.BalanceAnalysis{}, fmt.Errorf("extract balances: %w", err)
	}
	return parseBalances(raw)
}

func (g *Gemini) ExtractTransactions(ctx context.Context, pageText string) ([]domain.Transaction, error) {
	raw, err := g.generateFromText(ctx, transactionsPrompt, pageText)
	if err != nil {
		return nil, fmt.Errorf("extract transactions: %w", err)
	}
	return parseTransactions(raw)
}

// ExtractPages sends the PDF itself to the model and gets per-page text back.
func (g *Gemini) ExtractPages(ctx context.Context, pdf []byte) ([]string, error) {
	raw, err := g.generate(ctx, []*genai.Part{
		{Text: pagesPrompt},
		{
			InlineData: &genai.Blob{
				MIMEType: "application/pdf",
				Data:     pdf,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("extract pages: %w", err)
	}
	return parsePages(raw)
}

func (g *Gemini) generateFromText(ctx context.Context, prompt, text string) (string, error) {
	full := prompt + "\nStatement page text:\n" + text
	return g.generate(ctx, []*genai.Part{{Text: full}})
}

func (g *Gemini) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: parts,
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return "", errors.New("empty response from model")
	}
	return raw, nil
}

var _ StatementUnderstanding = (*Gemini)(nil)
var _ PageExtractor = (*Gemini)(nil)
