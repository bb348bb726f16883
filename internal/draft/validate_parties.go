package draft

import (
	pstrings "wastetrack/pkg/platform/strings"
)

// AddressInput is a raw address block shared by exporter, importer,
// collection and carrier sections.
type AddressInput struct {
	AddressLine1 string
	AddressLine2 string
	TownCity     string
	Postcode     string
	Country      string
}

// ContactInput is a raw contact block.
type ContactInput struct {
	OrganisationName string
	FullName         string
	Email            string
	Phone            string
	Fax              string
}

// countryScope selects which slice of the catalogue a country field matches
// against.
type countryScope int

const (
	scopeUKNation countryScope = iota
	scopeForeign
	scopeAnyCountry
)

// validateAddress validates an address block; prefix is the field-path prefix
// (e.g. "exporterAddress"). UK-scoped addresses require a UK nation and allow
// a postcode; foreign addresses match the full country list minus the UK.
func (v *Validator) validateAddress(prefix string, in AddressInput, scope countryScope) (Address, []FieldError) {
	var errs []FieldError
	var out Address

	line1, err := requiredText(prefix+".addressLine1", in.AddressLine1, FreeTextMaxLength)
	if err != nil {
		errs = append(errs, *err)
	}
	out.AddressLine1 = line1

	line2, err := optionalText(prefix+".addressLine2", in.AddressLine2, FreeTextMaxLength)
	if err != nil {
		errs = append(errs, *err)
	}
	out.AddressLine2 = line2

	town, err := requiredText(prefix+".townCity", in.TownCity, FreeTextMaxLength)
	if err != nil {
		errs = append(errs, *err)
	}
	out.TownCity = town

	switch scope {
	case scopeUKNation:
		postcode, err := validatePostcode(prefix+".postcode", in.Postcode)
		if err != nil {
			errs = append(errs, *err)
		}
		out.Postcode = postcode

		if canonical, ok := v.cat.MatchUKNation(in.Country); ok {
			out.Country = canonical
		} else {
			errs = append(errs, fieldError(prefix+".country", KindInvalid, "enter a country within the United Kingdom"))
		}
	case scopeForeign:
		if canonical, ok := v.cat.MatchCountry(in.Country); ok {
			out.Country = canonical
		} else {
			errs = append(errs, fieldError(prefix+".country", KindInvalid, "enter a country that uniquely matches the country list"))
		}
	case scopeAnyCountry:
		postcode, err := validatePostcode(prefix+".postcode", in.Postcode)
		if err != nil {
			errs = append(errs, *err)
		}
		out.Postcode = postcode

		if canonical, ok := v.cat.MatchCountryIncludingUK(in.Country); ok {
			out.Country = canonical
		} else {
			errs = append(errs, fieldError(prefix+".country", KindInvalid, "enter a country that uniquely matches the country list"))
		}
	}

	if len(errs) > 0 {
		return Address{}, errs
	}
	return out, nil
}

// validateContact validates a contact block under the given field prefix.
func (v *Validator) validateContact(prefix string, in ContactInput) (Contact, []FieldError) {
	var errs []FieldError
	var out Contact

	org, err := requiredText(prefix+".organisationName", in.OrganisationName, FreeTextMaxLength)
	if err != nil {
		errs = append(errs, *err)
	}
	out.OrganisationName = org

	name, err := requiredText(prefix+".fullName", in.FullName, FreeTextMaxLength)
	if err != nil {
		errs = append(errs, *err)
	}
	out.FullName = name

	emailAddr, err := validateEmail(prefix+".email", in.Email)
	if err != nil {
		errs = append(errs, *err)
	}
	out.Email = emailAddr

	phone, err := validatePhone(prefix+".phone", in.Phone)
	if err != nil {
		errs = append(errs, *err)
	}
	out.Phone = phone

	fax, err := validateFax(prefix+".fax", in.Fax)
	if err != nil {
		errs = append(errs, *err)
	}
	out.Fax = fax

	if len(errs) > 0 {
		return Contact{}, errs
	}
	return out, nil
}

// ValidateExporterDetail validates the UK exporter section.
func (v *Validator) ValidateExporterDetail(address AddressInput, contact ContactInput) (ExporterDetail, []FieldError) {
	var errs []FieldError
	addr, addrErrs := v.validateAddress("exporterAddress", address, scopeUKNation)
	errs = append(errs, addrErrs...)
	con, conErrs := v.validateContact("exporterContactDetails", contact)
	errs = append(errs, conErrs...)
	if len(errs) > 0 {
		return ExporterDetail{}, errs
	}
	return ExporterDetail{Address: addr, Contact: con}, nil
}

// ValidateImporterDetail validates the overseas importer section.
func (v *Validator) ValidateImporterDetail(address AddressInput, contact ContactInput) (ImporterDetail, []FieldError) {
	var errs []FieldError
	addr, addrErrs := v.validateAddress("importerAddress", address, scopeForeign)
	errs = append(errs, addrErrs...)
	con, conErrs := v.validateContact("importerContactDetails", contact)
	errs = append(errs, conErrs...)
	if len(errs) > 0 {
		return ImporterDetail{}, errs
	}
	return ImporterDetail{Address: addr, Contact: con}, nil
}

// ValidateCollectionDetail validates the UK collection section.
func (v *Validator) ValidateCollectionDetail(address AddressInput, contact ContactInput) (CollectionDetail, []FieldError) {
	var errs []FieldError
	addr, addrErrs := v.validateAddress("collectionAddress", address, scopeUKNation)
	errs = append(errs, addrErrs...)
	con, conErrs := v.validateContact("collectionContactDetails", contact)
	errs = append(errs, conErrs...)
	if len(errs) > 0 {
		return CollectionDetail{}, errs
	}
	return CollectionDetail{Address: addr, Contact: con}, nil
}

// ValidateUkExitLocation validates the optional exit location. An empty value
// is a valid "not provided" answer.
func ValidateUkExitLocation(raw string) (UkExitLocation, *FieldError) {
	trimmed, err := optionalText("ukExitLocation", raw, UkExitLocationMaxLength)
	if err != nil {
		return UkExitLocation{}, err
	}
	if trimmed == "" {
		return UkExitLocation{Provided: false}, nil
	}
	if !ukExitLocationPattern.MatchString(trimmed) {
		e := fieldError("ukExitLocation", KindInvalid, "the exit location must only include letters a to z, numbers, spaces, hyphens, commas, apostrophes and full stops")
		return UkExitLocation{}, &e
	}
	return UkExitLocation{Provided: true, Value: trimmed}, nil
}

// ValidateTransitCountries validates and canonicalizes the transit list. The
// whole UK country list applies here, unlike importer matching. Input order
// is preserved; duplicates collapse after canonicalization. An empty list is
// a valid answer.
func (v *Validator) ValidateTransitCountries(raw []string) (TransitCountries, *FieldError) {
	canonical := make([]string, 0, len(raw))
	for _, entry := range pstrings.DedupeAndTrim(raw) {
		match, ok := v.cat.MatchCountryIncludingUK(entry)
		if !ok {
			e := fieldError("transitCountries", KindInvalid, "every transit country must uniquely match the country list")
			return TransitCountries{}, &e
		}
		canonical = append(canonical, match)
	}
	// Canonicalization can collapse two distinct raw entries into one country.
	seen := make(map[string]bool, len(canonical))
	deduped := canonical[:0]
	for _, c := range canonical {
		if !seen[c] {
			seen[c] = true
			deduped = append(deduped, c)
		}
	}
	return TransitCountries{Values: deduped}, nil
}
