package draft

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"wastetrack/internal/refdata"
	pstrings "wastetrack/pkg/platform/strings"
)

// WasteDescriptionInput is the raw flattened waste description form input.
// At most one of the four classification codes may be populated; Laboratory
// marks small waste instead of a code.
type WasteDescriptionInput struct {
	BaselAnnexIXCode string
	OECDCode         string
	AnnexIIIACode    string
	AnnexIIIBCode    string
	Laboratory       string
	EWCCodes         string // ";"-separated list
	NationalCode     string
	Description      string
}

// ValidateWasteDescription validates the most intricate section. Unlike the
// single-field sections it accumulates every field error and returns them
// together.
func (v *Validator) ValidateWasteDescription(in WasteDescriptionInput) (WasteDescription, []FieldError) {
	var errs []FieldError
	var out WasteDescription

	classification, codeErrs := v.resolveClassification(in)
	errs = append(errs, codeErrs...)
	if len(codeErrs) == 0 {
		out.Classification = classification.kind
		out.WasteCode = classification.code
	}

	ewcCodes, ewcErrs := v.validateEWCCodes(in.EWCCodes)
	errs = append(errs, ewcErrs...)
	out.EWCCodes = ewcCodes

	national, natErr := validateNationalCode(in.NationalCode)
	if natErr != nil {
		errs = append(errs, *natErr)
	}
	out.NationalCode = national

	description, descErr := requiredText("description", in.Description, DescriptionMaxLength)
	if descErr != nil {
		errs = append(errs, *descErr)
	}
	out.Description = description

	if len(errs) > 0 {
		return WasteDescription{}, errs
	}
	return out, nil
}

type resolvedClassification struct {
	kind Classification
	code string
}

// resolveClassification applies the mutual-exclusion rules over the four
// classification codes and the laboratory flag, in order: none supplied,
// more than one code, laboratory alongside a code, then catalogue matching.
func (v *Validator) resolveClassification(in WasteDescriptionInput) (resolvedClassification, []FieldError) {
	type candidate struct {
		kind Classification
		typ  string
		raw  string
	}
	candidates := []candidate{
		{ClassificationBaselAnnexIX, refdata.CodeTypeBaselAnnexIX, in.BaselAnnexIXCode},
		{ClassificationOECD, refdata.CodeTypeOECD, in.OECDCode},
		{ClassificationAnnexIIIA, refdata.CodeTypeAnnexIIIA, in.AnnexIIIACode},
		{ClassificationAnnexIIIB, refdata.CodeTypeAnnexIIIB, in.AnnexIIIBCode},
	}

	var provided []candidate
	for _, c := range candidates {
		if strings.TrimSpace(c.raw) != "" {
			provided = append(provided, c)
		}
	}
	laboratory := strings.TrimSpace(in.Laboratory)

	switch {
	case len(provided) == 0 && laboratory == "":
		return resolvedClassification{}, []FieldError{
			fieldError("wasteCode", KindEmpty, "enter a waste code or indicate laboratory waste"),
		}
	case len(provided) > 1:
		return resolvedClassification{}, []FieldError{
			fieldError("wasteCode", KindTooMany, "enter only one type of waste code"),
		}
	case len(provided) == 1 && laboratory != "":
		return resolvedClassification{}, []FieldError{
			fieldError("wasteCode", KindLaboratory, "a waste code cannot be combined with laboratory waste"),
		}
	case len(provided) == 1:
		c := provided[0]
		canonical, ok := v.cat.MatchWasteCode(c.typ, c.raw)
		if !ok {
			return resolvedClassification{}, []FieldError{
				fieldError("wasteCode", KindInvalid, fmt.Sprintf("enter a valid %s code", c.kind)),
			}
		}
		return resolvedClassification{kind: c.kind, code: canonical}, nil
	default:
		// Laboratory only: the flag must read "yes" after case and whitespace
		// fuzzing; anything else is invalid.
		if strings.EqualFold(strings.Join(strings.Fields(laboratory), ""), "yes") {
			return resolvedClassification{kind: ClassificationNotApplicable}, nil
		}
		return resolvedClassification{}, []FieldError{
			fieldError("laboratory", KindInvalid, "enter 'yes' if this is laboratory waste"),
		}
	}
}

// validateEWCCodes enforces the raw-count cap before de-duplication, then
// checks each distinct code against the catalogue.
func (v *Validator) validateEWCCodes(raw string) ([]string, []FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, []FieldError{fieldError("ewcCodes", KindEmpty, "enter an EWC code")}
	}

	rawParts := make([]string, 0)
	for _, p := range strings.Split(trimmed, ";") {
		if strings.TrimSpace(p) != "" {
			rawParts = append(rawParts, p)
		}
	}
	if len(rawParts) > MaxEWCCodes {
		return nil, []FieldError{
			fieldError("ewcCodes", KindTooMany, fmt.Sprintf("you can only enter a maximum of %d EWC codes", MaxEWCCodes)),
		}
	}

	codes := pstrings.DedupeAndUpper(rawParts)
	for _, code := range codes {
		if !v.cat.HasEWCCode(code) {
			return nil, []FieldError{
				fieldError("ewcCodes", KindInvalid, fmt.Sprintf("%s is not a valid EWC code", code)),
			}
		}
	}
	return codes, nil
}

func validateNationalCode(raw string) (NationalCode, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NationalCode{Provided: false}, nil
	}
	if !nationalCodePattern.MatchString(trimmed) {
		e := fieldError("nationalCode", KindInvalid, "the national code must only include letters a to z, numbers, spaces and hyphens")
		return NationalCode{}, &e
	}
	return NationalCode{Provided: true, Value: trimmed}, nil
}

// WasteQuantityInput is the raw quantity form input. Exactly one of the
// three unit fields may be populated.
type WasteQuantityInput struct {
	Tonnes      string
	CubicMetres string
	Kilograms   string
	Type        string // Actual or Estimate
}

// ValidateWasteQuantity validates the quantity section. previous carries the
// section's prior value, if any, so the sibling variant's data survives an
// update: writing an actual quantity must not erase an earlier estimate.
func (v *Validator) ValidateWasteQuantity(in WasteQuantityInput, previous *WasteQuantity) (WasteQuantity, []FieldError) {
	var errs []FieldError

	data, dataErr := resolveQuantityData(in)
	if dataErr != nil {
		errs = append(errs, *dataErr)
	}

	variant, variantErr := resolveDataVariant("wasteQuantityType", in.Type)
	if variantErr != nil {
		errs = append(errs, *variantErr)
	}

	if len(errs) > 0 {
		return WasteQuantity{}, errs
	}

	out := WasteQuantity{Type: variant}
	if previous != nil {
		out.EstimateData = previous.EstimateData
		out.ActualData = previous.ActualData
	}
	if variant == VariantActual {
		out.ActualData = &data
	} else {
		out.EstimateData = &data
	}
	return out, nil
}

// resolveQuantityData picks the single populated unit field, parses it and
// applies the category-specific band check.
func resolveQuantityData(in WasteQuantityInput) (QuantityData, *FieldError) {
	type candidate struct {
		kind QuantityKind
		unit QuantityUnit
		raw  string
	}
	candidates := []candidate{
		{KindWeight, UnitTonne, strings.TrimSpace(in.Tonnes)},
		{KindVolume, UnitCubicMetre, strings.TrimSpace(in.CubicMetres)},
		{KindWeight, UnitKilogram, strings.TrimSpace(in.Kilograms)},
	}

	var provided []candidate
	for _, c := range candidates {
		if c.raw != "" {
			provided = append(provided, c)
		}
	}
	switch {
	case len(provided) == 0:
		e := fieldError("wasteQuantity", KindEmpty, "enter a waste quantity")
		return QuantityData{}, &e
	case len(provided) > 1:
		e := fieldError("wasteQuantity", KindTooMany, "enter a quantity in only one unit")
		return QuantityData{}, &e
	}

	c := provided[0]
	if !quantityPattern.MatchString(c.raw) {
		e := fieldError("wasteQuantity", KindInvalid, "the quantity must be a number with at most 2 decimal places")
		return QuantityData{}, &e
	}
	value, err := strconv.ParseFloat(c.raw, 64)
	if err != nil {
		e := fieldError("wasteQuantity", KindInvalid, "the quantity must be a number")
		return QuantityData{}, &e
	}
	value = math.Round(value*100) / 100

	if c.unit == UnitKilogram {
		if value <= 0 || value > SmallQuantityUpperBound {
			e := fieldError("wasteQuantity", KindInvalid, fmt.Sprintf("laboratory waste must be between 0 and %v kilograms", SmallQuantityUpperBound))
			return QuantityData{}, &e
		}
	} else {
		if value <= 0 || value >= BulkQuantityUpperBound {
			e := fieldError("wasteQuantity", KindInvalid, "enter a quantity between 0 and 1,000,000")
			return QuantityData{}, &e
		}
	}
	return QuantityData{Kind: c.kind, Unit: c.unit, Value: value}, nil
}

// resolveDataVariant parses the mandatory estimate/actual discriminator.
func resolveDataVariant(field, raw string) (DataVariant, *FieldError) {
	switch strings.ToLower(strings.Join(strings.Fields(raw), "")) {
	case "actual":
		return VariantActual, nil
	case "estimate":
		return VariantEstimate, nil
	default:
		e := fieldError(field, KindMissingType, "indicate whether the value is an estimate or actual")
		return "", &e
	}
}

// CollectionDateInput is the raw collection date form input.
type CollectionDateInput struct {
	Day   string
	Month string
	Year  string
	Type  string // Actual or Estimate
}

// ValidateCollectionDate validates the collection date against the calendar
// and the request clock, with the same variant merge behavior as quantity.
func (v *Validator) ValidateCollectionDate(in CollectionDateInput, now time.Time, previous *CollectionDate) (CollectionDate, []FieldError) {
	var errs []FieldError

	date, dateErr := resolveCollectionDate(in, now)
	if dateErr != nil {
		errs = append(errs, *dateErr)
	}

	variant, variantErr := resolveDataVariant("collectionDateType", in.Type)
	if variantErr != nil {
		errs = append(errs, *variantErr)
	}

	if len(errs) > 0 {
		return CollectionDate{}, errs
	}

	out := CollectionDate{Type: variant}
	if previous != nil {
		out.EstimateDate = previous.EstimateDate
		out.ActualDate = previous.ActualDate
	}
	if variant == VariantActual {
		out.ActualDate = &date
	} else {
		out.EstimateDate = &date
	}
	return out, nil
}

func resolveCollectionDate(in CollectionDateInput, now time.Time) (time.Time, *FieldError) {
	day := strings.TrimSpace(in.Day)
	month := strings.TrimSpace(in.Month)
	year := strings.TrimSpace(in.Year)
	if day == "" && month == "" && year == "" {
		e := fieldError("collectionDate", KindEmpty, "enter a collection date")
		return time.Time{}, &e
	}

	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errD != nil || errM != nil || errY != nil {
		e := fieldError("collectionDate", KindInvalid, "enter a real collection date")
		return time.Time{}, &e
	}

	date := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components, so 31 February would
	// silently roll over; compare back to catch it.
	if date.Year() != y || date.Month() != time.Month(m) || date.Day() != d {
		e := fieldError("collectionDate", KindInvalid, "enter a real collection date")
		return time.Time{}, &e
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		e := fieldError("collectionDate", KindInvalid, "the collection date must be in the future")
		return time.Time{}, &e
	}
	return date, nil
}
