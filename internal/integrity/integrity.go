// Package integrity screens extracted page text for signs that a document is
// a template, a stub, or otherwise not a real statement.
package integrity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultMaxPages caps how large a document the analysis will accept.
	DefaultMaxPages = 1000

	// minPageChars is the least non-whitespace content a real statement
	// page carries.
	minPageChars = 50
)

// placeholderPatterns match the fill-in markers template documents carry.
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[.*?\]`),
	regexp.MustCompile(`(?i)\{\{.*?\}\}`),
	regexp.MustCompile(`(?i)<.*?>`),
	regexp.MustCompile(`(?i)___+`),
	regexp.MustCompile(`(?i)XXXX+`),
	regexp.MustCompile(`(?i)\bN/A\b`),
	regexp.MustCompile(`(?i)\bTBD\b`),
	regexp.MustCompile(`(?i)\bPLACEHOLDER\b`),
	regexp.MustCompile(`(?i)\bINSERT .* HERE\b`),
}

// ContainsTemplatePlaceholders reports whether the text still carries
// unfilled template markers.
func ContainsTemplatePlaceholders(text string) bool {
	for _, pattern := range placeholderPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// IsSuspiciouslyEmpty reports whether the text has too little substance to
// be a statement page.
func IsSuspiciouslyEmpty(text string) bool {
	return len(strings.Join(strings.Fields(text), "")) < minPageChars
}

// CheckPage runs the per-page heuristics. Page numbers are 1-based.
func CheckPage(text string, pageNumber int) error {
	if ContainsTemplatePlaceholders(text) {
		return fmt.Errorf("page %d contains template placeholders", pageNumber)
	}
	if IsSuspiciouslyEmpty(text) {
		return fmt.Errorf("page %d is suspiciously empty", pageNumber)
	}
	return nil
}

// CheckDocument validates the document as a whole, then each page in order.
// A maxPages of zero or less falls back to DefaultMaxPages.
func CheckDocument(pages []string, maxPages int) error {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if len(pages) == 0 {
		return errors.New("document is empty")
	}
	if len(pages) > maxPages {
		return fmt.Errorf("document is too long: %d pages exceeds the %d page limit", len(pages), maxPages)
	}
	for i, page := range pages {
		if err := CheckPage(page, i+1); err != nil {
			return err
		}
	}
	return nil
}
