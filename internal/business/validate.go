// Package business validates the account-holder details read off a
// statement and guards against the issuing bank's own identity slipping in.
package business

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/domain"
)

const (
	minNameLength = 2
	maxNameLength = 100

	minAddressLength = 5
	maxAddressLength = 200
)

// commonBankNames are fragments that mark a name as belonging to the bank
// that issued the statement rather than the business that holds the account.
var commonBankNames = []string{
	"bank of america", "chase", "wells fargo", "citibank", "capital one",
	"jpmorgan", "us bank", "pnc bank", "td bank", "bank", "credit union",
	"first national", "regions bank", "suntrust", "bbt", "fifth third",
	"citizens bank", "key bank", "huntington", "santander", "ally bank",
}

// bankAddressIndicators mark an address as a bank facility instead of the
// account holder's location.
var bankAddressIndicators = []string{
	"branch location", "atm location", "bank address", "branch address",
	"bank headquarters", "corporate headquarters", "main office",
}

// addressTerms are the street-level tokens a mailing address usually carries.
var addressTerms = []string{
	"street", "st", "avenue", "ave", "road", "rd", "drive", "dr",
	"lane", "ln", "boulevard", "blvd", "way", "court", "ct",
	"circle", "cir", "terrace", "ter", "place", "pl",
	"highway", "hwy", "parkway", "pkwy",
	"suite", "ste", "unit", "apt", "apartment", "floor", "fl",
}

var usStates = []string{
	"al", "ak", "az", "ar", "ca", "co", "ct", "de", "fl", "ga",
	"hi", "id", "il", "in", "ia", "ks", "ky", "la", "me", "md",
	"ma", "mi", "mn", "ms", "mo", "mt", "ne", "nv", "nh", "nj",
	"nm", "ny", "nc", "nd", "oh", "ok", "or", "pa", "ri", "sc",
	"sd", "tn", "tx", "ut", "vt", "va", "wa", "wv", "wi", "wy",
	"alabama", "alaska", "arizona", "arkansas", "california",
	"colorado", "connecticut", "delaware", "florida", "georgia",
	"hawaii", "idaho", "illinois", "indiana", "iowa", "kansas",
	"kentucky", "louisiana", "maine", "maryland", "massachusetts",
	"michigan", "minnesota", "mississippi", "missouri", "montana",
	"nebraska", "nevada", "new hampshire", "new jersey", "new mexico",
	"new york", "north carolina", "north dakota", "ohio", "oklahoma",
	"oregon", "pennsylvania", "rhode island", "south carolina",
	"south dakota", "tennessee", "texas", "utah", "vermont",
	"virginia", "washington", "west virginia", "wisconsin", "wyoming",
}

var (
	onlyDigitsOrPunct = regexp.MustCompile(`^[\d\W_]+$`)
	anyDigit          = regexp.MustCompile(`\d`)
	zipPattern        = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
)

// ValidateName checks that a business name is plausible and is not the
// issuing bank's. The message explains a negative outcome.
func ValidateName(name string) (bool, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false, "Business name is empty"
	}
	if utf8.RuneCountInString(trimmed) < minNameLength {
		return false, "Business name is too short"
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return false, "Business name is unreasonably long"
	}
	if onlyDigitsOrPunct.MatchString(trimmed) {
		return false, "Business name contains only numbers or special characters"
	}

	lower := strings.ToLower(trimmed)
	for _, bank := range commonBankNames {
		if strings.Contains(lower, bank) {
			return false, "Name appears to be a bank name, not a business name"
		}
	}
	return true, ""
}

// ValidateAddress checks that an address looks like a real mailing address
// for the account holder rather than a bank facility.
func ValidateAddress(address domain.Address) (bool, string) {
	joined := address.String()
	if joined == "" {
		return false, "Address is empty"
	}
	if utf8.RuneCountInString(joined) < minAddressLength {
		return false, "Address is too short to be valid"
	}
	if utf8.RuneCountInString(joined) > maxAddressLength {
		return false, "Address is unreasonably long"
	}

	lower := strings.ToLower(joined)
	for _, indicator := range bankAddressIndicators {
		if strings.Contains(lower, indicator) {
			return false, "Address appears to be a bank location, not a business address"
		}
	}

	if !anyDigit.MatchString(joined) {
		return false, "Address does not contain a street or building number"
	}
	if !hasCommonAddressTerm(lower) && !hasUSState(lower) && !zipPattern.MatchString(joined) {
		return false, "Address does not contain standard address elements (street, state, or zip code)"
	}
	return true, ""
}

func hasCommonAddressTerm(lower string) bool {
	for _, term := range addressTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// hasUSState matches state names and abbreviations as space-padded words so
// letter pairs inside other words do not count.
func hasUSState(lower string) bool {
	padded := " " + lower + " "
	for _, state := range usStates {
		if strings.Contains(padded, " "+state+" ") {
			return true
		}
	}
	return false
}

// FormatAddress normalizes the casing of each address component.
func FormatAddress(address domain.Address) domain.Address {
	title := cases.Title(language.English)
	return domain.Address{
		Street:  title.String(strings.TrimSpace(address.Street)),
		City:    title.String(strings.TrimSpace(address.City)),
		State:   strings.ToUpper(strings.TrimSpace(address.State)),
		Zip:     strings.ToUpper(strings.TrimSpace(address.Zip)),
		Country: strings.ToUpper(strings.TrimSpace(address.Country)),
	}
}

// ExtractZipCode returns the first US zip code found in the text, or "".
func ExtractZipCode(text string) string {
	return zipPattern.FindString(text)
}
