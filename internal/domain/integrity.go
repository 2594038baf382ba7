package domain

import "strings"

// PageIntegrity is the model's forensic assessment of one statement page:
// whether the text looks legitimate, and what stood out when it does not.
type PageIntegrity struct {
	Valid       bool     `json:"valid"`
	Confidence  int      `json:"confidence"`
	Issues      []string `json:"issues,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// Summary joins the detected issues and the explanation into one line.
func (p PageIntegrity) Summary() string {
	parts := make([]string, 0, 2)
	if len(p.Issues) > 0 {
		parts = append(parts, strings.Join(p.Issues, ", "))
	}
	if p.Explanation != "" {
		parts = append(parts, p.Explanation)
	}
	return strings.Join(parts, ". ")
}
