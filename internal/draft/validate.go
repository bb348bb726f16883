package draft

import (
	"fmt"
	"regexp"
	"strings"

	"wastetrack/internal/refdata"
	"wastetrack/pkg/email"
)

// Length bounds. Entity-specific fields override the free-text default.
const (
	ReferenceMaxLength      = 20
	FreeTextMaxLength       = 250
	DescriptionMaxLength    = 100
	NationalCodeMaxLength   = 50
	PhoneMaxLength          = 50
	UkExitLocationMaxLength = 50
	CancelDetailMaxLength   = 100

	// MaxEWCCodes caps the raw (pre-dedupe) EWC code count.
	MaxEWCCodes = 5
)

// Quantity bounds. Bulk units are bounded strictly on both ends; small
// (kilogram) quantities are half-open at the top.
const (
	BulkQuantityUpperBound  = 1_000_000.0
	SmallQuantityUpperBound = 25.0
)

var (
	referencePattern      = regexp.MustCompile(`^[A-Za-z0-9\\/\-]{1,20}$`)
	phonePattern          = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)
	faxPattern            = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)
	postcodePattern       = regexp.MustCompile(`^[A-Za-z]{1,2}\d{1,2}[A-Za-z]?\s?\d[A-Za-z]{2}$`)
	nationalCodePattern   = regexp.MustCompile(`^[A-Za-z0-9\\\- ]{1,50}$`)
	ukExitLocationPattern = regexp.MustCompile(`^[A-Za-z0-9 \-.,']{1,50}$`)
	quantityPattern       = regexp.MustCompile(`^[0-9]*(\.[0-9]{1,2})?$`)
)

// Validator turns raw section input into typed values or field errors. It is
// stateless apart from the read-only catalogue.
type Validator struct {
	cat *refdata.Catalogue
}

// NewValidator constructs a Validator over the given catalogue.
func NewValidator(cat *refdata.Catalogue) *Validator {
	return &Validator{cat: cat}
}

// ValidateReference checks the customer-supplied reference.
func ValidateReference(raw string) (string, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		e := fieldError("reference", KindEmpty, "enter a reference")
		return "", &e
	}
	if len(trimmed) > ReferenceMaxLength {
		e := fieldError("reference", KindCharTooMany, fmt.Sprintf("the reference must be %d characters or less", ReferenceMaxLength))
		return "", &e
	}
	if !referencePattern.MatchString(trimmed) {
		e := fieldError("reference", KindInvalid, "the reference must only include letters a to z, numbers, hyphens and slashes")
		return "", &e
	}
	return trimmed, nil
}

// requiredText runs the required-field check chain in the fixed order
// empty, too-few, too-many. Only the first failing check is reported.
func requiredText(field, raw string, max int) (string, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		e := fieldError(field, KindEmpty, fmt.Sprintf("enter %s", fieldLabel(field)))
		return "", &e
	}
	if len(trimmed) > max {
		e := fieldError(field, KindCharTooMany, fmt.Sprintf("%s must be %d characters or less", fieldLabel(field), max))
		return "", &e
	}
	return trimmed, nil
}

// optionalText trims and bounds an optional field; absence is valid.
func optionalText(field, raw string, max int) (string, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > max {
		e := fieldError(field, KindCharTooMany, fmt.Sprintf("%s must be %d characters or less", fieldLabel(field), max))
		return "", &e
	}
	return trimmed, nil
}

// requiredPattern runs empty, too-many, invalid in order against a format
// regular expression.
func requiredPattern(field, raw string, max int, re *regexp.Regexp) (string, *FieldError) {
	trimmed, err := requiredText(field, raw, max)
	if err != nil {
		return "", err
	}
	if !re.MatchString(trimmed) {
		e := fieldError(field, KindInvalid, fmt.Sprintf("enter a valid %s", fieldLabel(field)))
		return "", &e
	}
	return trimmed, nil
}

// stripQuotes removes one literal leading and trailing single quote, an
// artifact of spreadsheet imports on phone and fax columns.
func stripQuotes(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "'")
	s = strings.TrimSuffix(s, "'")
	return strings.TrimSpace(s)
}

// validateEmail checks a required email field.
func validateEmail(field, raw string) (string, *FieldError) {
	trimmed, err := requiredText(field, email.Normalize(raw), FreeTextMaxLength)
	if err != nil {
		return "", err
	}
	if !email.Valid(trimmed) {
		e := fieldError(field, KindInvalid, "enter a valid email address")
		return "", &e
	}
	return trimmed, nil
}

// validatePhone checks a required phone field after quote-stripping.
func validatePhone(field, raw string) (string, *FieldError) {
	stripped := stripQuotes(raw)
	if stripped == "" {
		e := fieldError(field, KindEmpty, fmt.Sprintf("enter %s", fieldLabel(field)))
		return "", &e
	}
	if len(stripped) > PhoneMaxLength {
		e := fieldError(field, KindCharTooMany, fmt.Sprintf("%s must be %d characters or less", fieldLabel(field), PhoneMaxLength))
		return "", &e
	}
	if !phonePattern.MatchString(stripped) {
		e := fieldError(field, KindInvalid, "enter a valid phone number")
		return "", &e
	}
	return stripped, nil
}

// validateFax checks an optional fax field after quote-stripping.
func validateFax(field, raw string) (string, *FieldError) {
	stripped := stripQuotes(raw)
	if stripped == "" {
		return "", nil
	}
	if len(stripped) > PhoneMaxLength {
		e := fieldError(field, KindCharTooMany, fmt.Sprintf("%s must be %d characters or less", fieldLabel(field), PhoneMaxLength))
		return "", &e
	}
	if !faxPattern.MatchString(stripped) {
		e := fieldError(field, KindInvalid, "enter a valid fax number")
		return "", &e
	}
	return stripped, nil
}

// validatePostcode checks an optional UK postcode field.
func validatePostcode(field, raw string) (string, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	if !postcodePattern.MatchString(trimmed) {
		e := fieldError(field, KindInvalid, "enter a valid postcode")
		return "", &e
	}
	return strings.ToUpper(trimmed), nil
}

// fieldLabel renders a camelCase field path as words for messages.
func fieldLabel(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case r == '.':
			b.WriteByte(' ')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r - 'A' + 'a')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
