package business

import (
	"strings"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/domain"
)

// Result carries the validated business details together with the outcome of
// each check. Messages are set only for failed checks.
type Result struct {
	Name                     string         `json:"name"`
	NameValid                bool           `json:"name_valid"`
	NameValidationMessage    string         `json:"name_validation_message,omitempty"`
	Address                  domain.Address `json:"address"`
	AddressValid             bool           `json:"address_valid"`
	AddressValidationMessage string         `json:"address_validation_message,omitempty"`
	ZipCode                  string         `json:"zip_code,omitempty"`
}

// Valid reports whether both the name and the address passed.
func (r Result) Valid() bool {
	return r.NameValid && r.AddressValid
}

// FailureMessage returns the first validation message, or "".
func (r Result) FailureMessage() string {
	if r.NameValidationMessage != "" {
		return r.NameValidationMessage
	}
	return r.AddressValidationMessage
}

// Check validates the extracted business details and normalizes the address
// formatting when it passes.
func Check(info domain.BusinessInfo) Result {
	nameValid, nameMessage := ValidateName(info.Name)
	addressValid, addressMessage := ValidateAddress(info.Address)

	address := info.Address
	if addressValid {
		address = FormatAddress(address)
	}

	zip := address.Zip
	if zip == "" {
		zip = ExtractZipCode(address.String())
	}

	return Result{
		Name:                     strings.TrimSpace(info.Name),
		NameValid:                nameValid,
		NameValidationMessage:    nameMessage,
		Address:                  address,
		AddressValid:             addressValid,
		AddressValidationMessage: addressMessage,
		ZipCode:                  zip,
	}
}
