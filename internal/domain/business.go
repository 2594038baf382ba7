package domain

import "strings"

// BusinessInfo identifies the account holder named on the statement, as
// opposed to the bank that issued it.
type BusinessInfo struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// Address is a postal address split into its usual components. Any component
// may be empty when the statement does not show it.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// String joins the non-empty components with ", ".
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{a.Street, a.City, a.State, a.Zip, a.Country} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	return strings.Join(parts, ", ")
}

// IsEmpty reports whether every component is blank.
func (a Address) IsEmpty() bool {
	return a.String() == ""
}
