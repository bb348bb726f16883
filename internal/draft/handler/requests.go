package handler

import (
	"wastetrack/internal/draft"
)

// CreateDraftRequest opens a new declaration.
type CreateDraftRequest struct {
	Reference string `json:"reference" validate:"required,notblank"`
}

// WasteDescriptionRequest carries the flattened waste description form.
type WasteDescriptionRequest struct {
	BaselAnnexIXCode string `json:"baselAnnexIXCode,omitempty"`
	OECDCode         string `json:"oecdCode,omitempty"`
	AnnexIIIACode    string `json:"annexIIIACode,omitempty"`
	AnnexIIIBCode    string `json:"annexIIIBCode,omitempty"`
	Laboratory       string `json:"laboratory,omitempty"`
	EWCCodes         string `json:"ewcCodes"`
	NationalCode     string `json:"nationalCode,omitempty"`
	Description      string `json:"description"`
}

func (r WasteDescriptionRequest) toInput() draft.WasteDescriptionInput {
	return draft.WasteDescriptionInput{
		BaselAnnexIXCode: r.BaselAnnexIXCode,
		OECDCode:         r.OECDCode,
		AnnexIIIACode:    r.AnnexIIIACode,
		AnnexIIIBCode:    r.AnnexIIIBCode,
		Laboratory:       r.Laboratory,
		EWCCodes:         r.EWCCodes,
		NationalCode:     r.NationalCode,
		Description:      r.Description,
	}
}

// WasteQuantityRequest carries the quantity form. Exactly one unit field
// should be set; the engine reports which constraint failed.
type WasteQuantityRequest struct {
	Tonnes      string `json:"tonnes,omitempty"`
	CubicMetres string `json:"cubicMetres,omitempty"`
	Kilograms   string `json:"kilograms,omitempty"`
	Type        string `json:"type"`
}

func (r WasteQuantityRequest) toInput() draft.WasteQuantityInput {
	return draft.WasteQuantityInput{
		Tonnes:      r.Tonnes,
		CubicMetres: r.CubicMetres,
		Kilograms:   r.Kilograms,
		Type:        r.Type,
	}
}

// CollectionDateRequest carries the collection date form.
type CollectionDateRequest struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
	Type  string `json:"type"`
}

func (r CollectionDateRequest) toInput() draft.CollectionDateInput {
	return draft.CollectionDateInput{Day: r.Day, Month: r.Month, Year: r.Year, Type: r.Type}
}

// AddressRequest is a raw address block.
type AddressRequest struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	TownCity     string `json:"townCity"`
	Postcode     string `json:"postcode,omitempty"`
	Country      string `json:"country"`
}

func (r AddressRequest) toInput() draft.AddressInput {
	return draft.AddressInput{
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		TownCity:     r.TownCity,
		Postcode:     r.Postcode,
		Country:      r.Country,
	}
}

// ContactRequest is a raw contact block.
type ContactRequest struct {
	OrganisationName string `json:"organisationName"`
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Fax              string `json:"fax,omitempty"`
}

func (r ContactRequest) toInput() draft.ContactInput {
	return draft.ContactInput{
		OrganisationName: r.OrganisationName,
		FullName:         r.FullName,
		Email:            r.Email,
		Phone:            r.Phone,
		Fax:              r.Fax,
	}
}

// PartyRequest is the shared exporter/importer/collection payload.
type PartyRequest struct {
	Address AddressRequest `json:"address"`
	Contact ContactRequest `json:"contactDetails"`
}

// CarrierRequest is one carrier entry.
type CarrierRequest struct {
	Address              AddressRequest `json:"address"`
	Contact              ContactRequest `json:"contactDetails"`
	TransportMode        string         `json:"transportMode,omitempty"`
	TransportDescription string         `json:"transportDescription,omitempty"`
}

// CarriersRequest replaces the whole carrier list.
type CarriersRequest struct {
	Values []CarrierRequest `json:"values"`
}

func (r CarriersRequest) toInputs() []draft.CarrierInput {
	inputs := make([]draft.CarrierInput, 0, len(r.Values))
	for _, c := range r.Values {
		inputs = append(inputs, draft.CarrierInput{
			Address:              c.Address.toInput(),
			Contact:              c.Contact.toInput(),
			TransportMode:        c.TransportMode,
			TransportDescription: c.TransportDescription,
		})
	}
	return inputs
}

// ExitLocationRequest carries the optional UK exit location.
type ExitLocationRequest struct {
	Value string `json:"value"`
}

// TransitCountriesRequest replaces the transit list.
type TransitCountriesRequest struct {
	Values []string `json:"values"`
}

// FacilityRequest is one recovery facility, interim site or laboratory.
type FacilityRequest struct {
	Type    string         `json:"type"`
	Address AddressRequest `json:"address"`
	Contact ContactRequest `json:"contactDetails"`
	Code    string         `json:"code"`
}

// FacilitiesRequest replaces the facility list.
type FacilitiesRequest struct {
	Values []FacilityRequest `json:"values"`
}

func (r FacilitiesRequest) toInputs() []draft.FacilityInput {
	inputs := make([]draft.FacilityInput, 0, len(r.Values))
	for _, f := range r.Values {
		inputs = append(inputs, draft.FacilityInput{
			Type:    f.Type,
			Address: f.Address.toInput(),
			Contact: f.Contact.toInput(),
			Code:    f.Code,
		})
	}
	return inputs
}

// ConfirmationRequest records the content affirmation.
type ConfirmationRequest struct {
	Confirmed bool `json:"confirmed"`
}

// CancelRequest withdraws a declaration.
type CancelRequest struct {
	Reason string `json:"reason" validate:"required,notblank"`
	Detail string `json:"detail,omitempty"`
}
