package integrity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanPage = "ACME BANK Statement Period 2024-01-01 to 2024-01-31. " +
	"Opening balance 50.00 USD. 2024-01-05 Invoice 1042 credit 100.00. " +
	"2024-01-12 Supplier payment debit 40.00. Closing balance 120.00 USD."

func TestContainsTemplatePlaceholders(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"square brackets", "Account: [ACCOUNT NUMBER]", true},
		{"curly braces", "Dear {{customer_name}},", true},
		{"angle brackets", "Amount due: <amount>", true},
		{"underscore blanks", "Signature: ____", true},
		{"masked digits", "Card ending XXXX1234", true},
		{"lowercase masked digits", "card ending xxxx1234", true},
		{"not applicable marker", "Monthly fee: N/A", true},
		{"tbd marker", "Closing date TBD", true},
		{"placeholder word", "This is placeholder text", true},
		{"insert here", "Insert company name here", true},
		{"clean text", cleanPage, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsTemplatePlaceholders(tt.text))
		})
	}
}

func TestIsSuspiciouslyEmpty(t *testing.T) {
	assert.True(t, IsSuspiciouslyEmpty(""))
	assert.True(t, IsSuspiciouslyEmpty("   \n\t  "))
	assert.True(t, IsSuspiciouslyEmpty("just a few words"))
	assert.False(t, IsSuspiciouslyEmpty(cleanPage))

	// Whitespace does not count towards the minimum.
	padded := strings.Repeat("a ", 49)
	assert.True(t, IsSuspiciouslyEmpty(padded))
	assert.False(t, IsSuspiciouslyEmpty(strings.Repeat("a ", 50)))
}

func TestCheckPage(t *testing.T) {
	require.NoError(t, CheckPage(cleanPage, 1))

	err := CheckPage("Balance: [AMOUNT]", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 3")
	assert.Contains(t, err.Error(), "template placeholders")

	err = CheckPage("tiny", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
	assert.Contains(t, err.Error(), "suspiciously empty")
}

func TestCheckDocument(t *testing.T) {
	require.NoError(t, CheckDocument([]string{cleanPage, cleanPage}, 0))

	err := CheckDocument(nil, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document is empty")

	err = CheckDocument([]string{cleanPage, cleanPage, cleanPage}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")

	err = CheckDocument([]string{cleanPage, "Account: [NUMBER]"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
}
