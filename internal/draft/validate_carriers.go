package draft

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CarrierInput is one raw carrier sub-record. Transport fields only apply to
// bulk-waste declarations; for small waste they must stay empty.
type CarrierInput struct {
	Address              AddressInput
	Contact              ContactInput
	TransportMode        string
	TransportDescription string
}

// parseTransportMode matches the five supported modes case-insensitively.
func parseTransportMode(raw string) (TransportMode, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(raw), "")) {
	case "road":
		return TransportRoad, true
	case "rail":
		return TransportRail, true
	case "sea":
		return TransportSea, true
	case "air":
		return TransportAir, true
	case "inlandwaterways":
		return TransportInlandWaterways, true
	default:
		return "", false
	}
}

// ValidateCarriers validates the carrier list. bulk selects whether transport
// details are required: a bulk carrier without transport details is Started
// rather than Complete, with no field error, because the record is valid so
// far but unfinished. The section is Complete only when every carrier is.
func (v *Validator) ValidateCarriers(inputs []CarrierInput, bulk bool) (CarrierList, SectionStatus, []FieldError) {
	var errs []FieldError

	if len(inputs) == 0 {
		errs = append(errs, fieldError("carriers", KindEmpty, "enter at least one carrier"))
		return CarrierList{}, "", errs
	}
	if len(inputs) > MaxCarriers {
		errs = append(errs, fieldError("carriers", KindTooMany, fmt.Sprintf("you can only enter a maximum of %d carriers", MaxCarriers)))
		return CarrierList{}, "", errs
	}

	list := CarrierList{Values: make([]Carrier, 0, len(inputs))}
	status := StatusComplete
	for i, in := range inputs {
		prefix := fmt.Sprintf("carriers[%d]", i)

		carrier := Carrier{ID: uuid.New(), Status: StatusComplete}

		addr, addrErrs := v.validateAddress(prefix+".address", in.Address, scopeAnyCountry)
		errs = append(errs, addrErrs...)
		carrier.Address = addr

		con, conErrs := v.validateContact(prefix+".contactDetails", in.Contact)
		errs = append(errs, conErrs...)
		carrier.Contact = con

		transport, transportErrs, provided := v.validateCarrierTransport(prefix, in, bulk)
		errs = append(errs, transportErrs...)
		carrier.Transport = transport
		if bulk && !provided && len(transportErrs) == 0 {
			carrier.Status = StatusStarted
		}

		if carrier.Status == StatusStarted {
			status = StatusStarted
		}
		list.Values = append(list.Values, carrier)
	}

	if len(errs) > 0 {
		return CarrierList{}, "", errs
	}
	return list, status, nil
}

// validateCarrierTransport handles the bulk/small split for one carrier. The
// third return reports whether any transport input was supplied at all.
func (v *Validator) validateCarrierTransport(prefix string, in CarrierInput, bulk bool) (*CarrierTransport, []FieldError, bool) {
	mode := strings.TrimSpace(in.TransportMode)
	description := strings.TrimSpace(in.TransportDescription)
	provided := mode != "" || description != ""

	if !bulk {
		if provided {
			return nil, []FieldError{
				fieldError(prefix+".transport", KindInvalid, "laboratory waste carriers cannot have transport details"),
			}, provided
		}
		return nil, nil, false
	}
	if !provided {
		return nil, nil, false
	}

	var errs []FieldError
	parsed, ok := parseTransportMode(mode)
	if !ok {
		errs = append(errs, fieldError(prefix+".transport.mode", KindInvalid, "enter a valid means of transport"))
	}
	desc, err := optionalText(prefix+".transport.description", description, FreeTextMaxLength)
	if err != nil {
		errs = append(errs, *err)
	}
	if len(errs) > 0 {
		return nil, errs, provided
	}
	return &CarrierTransport{Mode: parsed, Description: desc}, nil, provided
}

// FacilityInput is one raw recovery facility, interim site or laboratory.
type FacilityInput struct {
	Type    string
	Address AddressInput
	Contact ContactInput
	Code    string
}

// parseFacilityType matches the facility type case-insensitively.
func parseFacilityType(raw string) (FacilityType, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(raw), "")) {
	case "laboratory":
		return FacilityLaboratory, true
	case "interimsite":
		return FacilityInterimSite, true
	case "recoveryfacility":
		return FacilityRecoveryFacility, true
	default:
		return "", false
	}
}

// ValidateRecoveryFacilities validates the facility list. classification
// scopes both the allowed facility mix and the code catalogue: laboratory
// (NotApplicable) waste goes to exactly one laboratory carrying a disposal
// code, bulk waste goes to at most one interim site plus one recovery
// facility carrying recovery codes.
func (v *Validator) ValidateRecoveryFacilities(inputs []FacilityInput, classification Classification) (FacilityList, []FieldError) {
	var errs []FieldError
	laboratory := classification == ClassificationNotApplicable

	if len(inputs) == 0 {
		if laboratory {
			errs = append(errs, fieldError("recoveryFacilityDetail", KindEmpty, "enter a laboratory"))
		} else {
			errs = append(errs, fieldError("recoveryFacilityDetail", KindEmpty, "enter a recovery facility"))
		}
		return FacilityList{}, errs
	}

	list := FacilityList{Values: make([]RecoveryFacility, 0, len(inputs))}
	counts := map[FacilityType]int{}
	for i, in := range inputs {
		prefix := fmt.Sprintf("recoveryFacilityDetail[%d]", i)

		facility := RecoveryFacility{ID: uuid.New(), Status: StatusComplete}

		typ, ok := parseFacilityType(in.Type)
		if !ok {
			errs = append(errs, fieldError(prefix+".type", KindInvalid, "enter a valid facility type"))
		} else {
			facility.Type = typ
			counts[typ]++
		}

		addr, addrErrs := v.validateAddress(prefix+".address", in.Address, scopeAnyCountry)
		errs = append(errs, addrErrs...)
		facility.Address = addr

		con, conErrs := v.validateContact(prefix+".contactDetails", in.Contact)
		errs = append(errs, conErrs...)
		facility.Contact = con

		if ok {
			code, codeErr := v.validateFacilityCode(prefix, in.Code, typ)
			if codeErr != nil {
				errs = append(errs, *codeErr)
			}
			facility.Code = code
		}

		list.Values = append(list.Values, facility)
	}

	errs = append(errs, facilityMixErrors(counts, laboratory)...)

	if len(errs) > 0 {
		return FacilityList{}, errs
	}
	return list, nil
}

// validateFacilityCode scopes the code catalogue by facility type.
func (v *Validator) validateFacilityCode(prefix, raw string, typ FacilityType) (string, *FieldError) {
	if typ == FacilityLaboratory {
		canonical, ok := v.cat.MatchDisposalCode(raw)
		if !ok {
			e := fieldError(prefix+".code", KindInvalid, "enter a valid disposal code")
			return "", &e
		}
		return canonical, nil
	}
	canonical, ok := v.cat.MatchRecoveryCode(raw)
	if !ok {
		e := fieldError(prefix+".code", KindInvalid, "enter a valid recovery code")
		return "", &e
	}
	return canonical, nil
}

// facilityMixErrors enforces the per-classification facility composition.
func facilityMixErrors(counts map[FacilityType]int, laboratory bool) []FieldError {
	var errs []FieldError
	if laboratory {
		if counts[FacilityLaboratory] > 1 {
			errs = append(errs, fieldError("recoveryFacilityDetail", KindTooMany, "you can only enter one laboratory"))
		}
		if counts[FacilityInterimSite] > 0 || counts[FacilityRecoveryFacility] > 0 {
			errs = append(errs, fieldError("recoveryFacilityDetail", KindInvalid, "laboratory waste can only go to a laboratory"))
		}
		return errs
	}
	if counts[FacilityLaboratory] > 0 {
		errs = append(errs, fieldError("recoveryFacilityDetail", KindInvalid, "bulk waste cannot go to a laboratory"))
	}
	if counts[FacilityInterimSite] > 1 {
		errs = append(errs, fieldError("recoveryFacilityDetail", KindTooMany, "you can only enter one interim site"))
	}
	if counts[FacilityRecoveryFacility] > 1 {
		errs = append(errs, fieldError("recoveryFacilityDetail", KindTooMany, "you can only enter one recovery facility"))
	}
	return errs
}
