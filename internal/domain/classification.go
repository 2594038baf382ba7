package domain

// Classification is the outcome of deciding whether a document is a bank
// statement. Reason explains a negative outcome.
type Classification struct {
	IsBankStatement bool   `json:"is_bank_statement"`
	Reason          string `json:"reason,omitempty"`
}
