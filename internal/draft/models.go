// Package draft holds the domain model and validation engine for green-list
// waste export declarations. A declaration is built section by section, in
// any order, and frozen when the declaration section completes.
package draft

import (
	"time"

	"github.com/google/uuid"

	"wastetrack/internal/refdata"
)

// SectionName identifies one independently-validatable part of a declaration.
type SectionName string

const (
	SectionWasteDescription       SectionName = "wasteDescription"
	SectionWasteQuantity          SectionName = "wasteQuantity"
	SectionExporterDetail         SectionName = "exporterDetail"
	SectionImporterDetail         SectionName = "importerDetail"
	SectionCollectionDate         SectionName = "collectionDate"
	SectionCarriers               SectionName = "carriers"
	SectionCollectionDetail       SectionName = "collectionDetail"
	SectionUkExitLocation         SectionName = "ukExitLocation"
	SectionTransitCountries       SectionName = "transitCountries"
	SectionRecoveryFacilityDetail SectionName = "recoveryFacilityDetail"
	SectionSubmissionConfirmation SectionName = "submissionConfirmation"
	SectionSubmissionDeclaration  SectionName = "submissionDeclaration"
)

// SectionStatus is the per-section state machine.
type SectionStatus string

const (
	StatusCannotStart SectionStatus = "CannotStart"
	StatusNotStarted  SectionStatus = "NotStarted"
	StatusStarted     SectionStatus = "Started"
	StatusComplete    SectionStatus = "Complete"
)

// CanHoldValue reports whether a section in this status may carry a typed
// value. CannotStart and NotStarted never do.
func (s SectionStatus) CanHoldValue() bool {
	return s == StatusStarted || s == StatusComplete
}

// Section pairs a status with its typed value. Construct through the helpers
// below so the "value present iff Started or Complete" invariant holds.
type Section[T any] struct {
	Status SectionStatus `json:"status"`
	Value  *T            `json:"value,omitempty"`
}

// CannotStartSection marks a section gated behind an incomplete prerequisite.
func CannotStartSection[T any]() Section[T] { return Section[T]{Status: StatusCannotStart} }

// NotStartedSection marks a section with no input supplied yet.
func NotStartedSection[T any]() Section[T] { return Section[T]{Status: StatusNotStarted} }

// CompleteSection holds a fully validated value.
func CompleteSection[T any](v T) Section[T] {
	return Section[T]{Status: StatusComplete, Value: &v}
}

// StartedSection holds a partial, internally-valid-so-far value.
func StartedSection[T any](v T) Section[T] {
	return Section[T]{Status: StatusStarted, Value: &v}
}

// Classification is the waste-code type discriminator. Exactly one applies
// per declaration; NotApplicable marks small (laboratory) waste.
type Classification string

const (
	ClassificationBaselAnnexIX  Classification = Classification(refdata.CodeTypeBaselAnnexIX)
	ClassificationOECD          Classification = Classification(refdata.CodeTypeOECD)
	ClassificationAnnexIIIA     Classification = Classification(refdata.CodeTypeAnnexIIIA)
	ClassificationAnnexIIIB     Classification = Classification(refdata.CodeTypeAnnexIIIB)
	ClassificationNotApplicable Classification = "NotApplicable"
)

// NationalCode is the optional national waste code.
type NationalCode struct {
	Provided bool   `json:"provided"`
	Value    string `json:"value,omitempty"`
}

// WasteDescription is the validated waste description section value.
type WasteDescription struct {
	Classification Classification `json:"classification"`
	WasteCode      string         `json:"waste_code,omitempty"` // canonical; empty when NotApplicable
	EWCCodes       []string       `json:"ewc_codes"`
	NationalCode   NationalCode   `json:"national_code"`
	Description    string         `json:"description"`
}

// DataVariant marks whether a quantity or date is an estimate or actual data.
type DataVariant string

const (
	VariantEstimate DataVariant = "Estimate"
	VariantActual   DataVariant = "Actual"
)

// QuantityUnit is the measurement unit of a waste quantity.
type QuantityUnit string

const (
	UnitTonne      QuantityUnit = "Tonne"
	UnitCubicMetre QuantityUnit = "Cubic Metre"
	UnitKilogram   QuantityUnit = "Kilogram"
)

// QuantityKind groups units by what they measure.
type QuantityKind string

const (
	KindWeight QuantityKind = "Weight"
	KindVolume QuantityKind = "Volume"
)

// QuantityData is one validated quantity observation.
type QuantityData struct {
	Kind  QuantityKind `json:"kind"`
	Unit  QuantityUnit `json:"unit"`
	Value float64      `json:"value"`
}

// WasteQuantity keeps both variants so a later actual write never erases an
// earlier estimate, and vice versa. Type names the current variant.
type WasteQuantity struct {
	Type         DataVariant   `json:"type"`
	EstimateData *QuantityData `json:"estimate_data,omitempty"`
	ActualData   *QuantityData `json:"actual_data,omitempty"`
}

// Current returns the data slot named by Type.
func (q WasteQuantity) Current() *QuantityData {
	if q.Type == VariantActual {
		return q.ActualData
	}
	return q.EstimateData
}

// CollectionDate mirrors WasteQuantity's two-slot variant handling.
type CollectionDate struct {
	Type         DataVariant `json:"type"`
	EstimateDate *time.Time  `json:"estimate_date,omitempty"`
	ActualDate   *time.Time  `json:"actual_date,omitempty"`
}

// Current returns the date slot named by Type.
func (c CollectionDate) Current() *time.Time {
	if c.Type == VariantActual {
		return c.ActualDate
	}
	return c.EstimateDate
}

// Address is a UK-or-foreign postal address block.
type Address struct {
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	TownCity     string `json:"town_city"`
	Postcode     string `json:"postcode,omitempty"`
	Country      string `json:"country"` // canonical "Name [ISO]"
}

// Contact is a person/organisation contact block.
type Contact struct {
	OrganisationName string `json:"organisation_name"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Fax              string `json:"fax,omitempty"`
}

// ExporterDetail is the UK exporter section value.
type ExporterDetail struct {
	Address Address `json:"address"`
	Contact Contact `json:"contact"`
}

// ImporterDetail is the overseas importer section value.
type ImporterDetail struct {
	Address Address `json:"address"`
	Contact Contact `json:"contact"`
}

// CollectionDetail is the UK waste-collection section value.
type CollectionDetail struct {
	Address Address `json:"address"`
	Contact Contact `json:"contact"`
}

// TransportMode is a carrier's means of transport.
type TransportMode string

const (
	TransportRoad            TransportMode = "Road"
	TransportRail            TransportMode = "Rail"
	TransportSea             TransportMode = "Sea"
	TransportAir             TransportMode = "Air"
	TransportInlandWaterways TransportMode = "InlandWaterways"
)

// CarrierTransport is present only for bulk-waste declarations.
type CarrierTransport struct {
	Mode        TransportMode `json:"mode"`
	Description string        `json:"description,omitempty"`
}

// MaxCarriers caps the carrier list; the cap is a collection invariant, not
// a set of fixed field names.
const MaxCarriers = 5

// Carrier is one repeatable carrier sub-record with its own status.
type Carrier struct {
	ID        uuid.UUID         `json:"id"`
	Address   Address           `json:"address"`
	Contact   Contact           `json:"contact"`
	Transport *CarrierTransport `json:"transport,omitempty"`
	Status    SectionStatus     `json:"status"` // Started or Complete
}

// CarrierList is the carriers section value; the section's own status is the
// conjunction of its children's.
type CarrierList struct {
	Values []Carrier `json:"values"`
}

// FacilityType scopes which code catalogue a recovery facility uses.
type FacilityType string

const (
	FacilityLaboratory       FacilityType = "Laboratory"
	FacilityInterimSite      FacilityType = "InterimSite"
	FacilityRecoveryFacility FacilityType = "RecoveryFacility"
)

// RecoveryFacility is one repeatable facility sub-record.
type RecoveryFacility struct {
	ID      uuid.UUID     `json:"id"`
	Type    FacilityType  `json:"type"`
	Address Address       `json:"address"`
	Contact Contact       `json:"contact"`
	Code    string        `json:"code"` // disposal code for laboratories, recovery code otherwise
	Status  SectionStatus `json:"status"`
}

// FacilityList is the recovery-facility section value.
type FacilityList struct {
	Values []RecoveryFacility `json:"values"`
}

// UkExitLocation records whether the exporter knows where the waste leaves
// the UK, and where.
type UkExitLocation struct {
	Provided bool   `json:"provided"`
	Value    string `json:"value,omitempty"`
}

// TransitCountries is the ordered, de-duplicated list of canonical countries
// the shipment passes through.
type TransitCountries struct {
	Values []string `json:"values"`
}

// SubmissionConfirmation is the user's affirmation that the declaration
// content is correct, available once every other section is Complete.
type SubmissionConfirmation struct {
	Confirmed bool `json:"confirmed"`
}

// SubmissionDeclaration freezes the declaration. Minted exactly once.
type SubmissionDeclaration struct {
	DeclarationTimestamp time.Time `json:"declaration_timestamp"`
	TransactionID        string    `json:"transaction_id"`
}

// SubmissionStatus is the overall declaration lifecycle state.
type SubmissionStatus string

const (
	StateInProgress             SubmissionStatus = "InProgress"
	StateSubmittedWithEstimates SubmissionStatus = "SubmittedWithEstimates"
	StateSubmittedWithActuals   SubmissionStatus = "SubmittedWithActuals"
	StateUpdatedWithActuals     SubmissionStatus = "UpdatedWithActuals"
	StateCancelled              SubmissionStatus = "Cancelled"
	StateDeleted                SubmissionStatus = "Deleted"
)

// Terminal reports whether the state is absorbing.
func (s SubmissionStatus) Terminal() bool {
	return s == StateCancelled || s == StateDeleted
}

// Submitted reports whether the declaration section has completed.
func (s SubmissionStatus) Submitted() bool {
	switch s {
	case StateSubmittedWithEstimates, StateSubmittedWithActuals, StateUpdatedWithActuals:
		return true
	}
	return false
}

// CancellationReason is the typed reason recorded on cancellation.
type CancellationReason string

const (
	CancelChangeOfRecoveryFacility CancellationReason = "ChangeOfRecoveryFacilityOrLaboratory"
	CancelNoLongerExporting        CancellationReason = "NoLongerExportingWaste"
	CancelOther                    CancellationReason = "Other"
)

var validCancellationReasons = map[CancellationReason]bool{
	CancelChangeOfRecoveryFacility: true,
	CancelNoLongerExporting:        true,
	CancelOther:                    true,
}

// IsValid checks the reason against the supported enum values.
func (r CancellationReason) IsValid() bool {
	return validCancellationReasons[r]
}

// Cancellation records why a submission was withdrawn.
type Cancellation struct {
	Reason CancellationReason `json:"reason"`
	Detail string             `json:"detail,omitempty"` // free text, required for Other
}

// SubmissionState is the lifecycle state plus when it was entered.
type SubmissionState struct {
	Status       SubmissionStatus `json:"status"`
	Timestamp    time.Time        `json:"timestamp"`
	Cancellation *Cancellation    `json:"cancellation,omitempty"`
}

// Submission is the aggregate declaration record.
type Submission struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Reference string    `json:"reference"`

	WasteDescription       Section[WasteDescription]       `json:"waste_description"`
	WasteQuantity          Section[WasteQuantity]          `json:"waste_quantity"`
	ExporterDetail         Section[ExporterDetail]         `json:"exporter_detail"`
	ImporterDetail         Section[ImporterDetail]         `json:"importer_detail"`
	CollectionDate         Section[CollectionDate]         `json:"collection_date"`
	Carriers               Section[CarrierList]            `json:"carriers"`
	CollectionDetail       Section[CollectionDetail]       `json:"collection_detail"`
	UkExitLocation         Section[UkExitLocation]         `json:"uk_exit_location"`
	TransitCountries       Section[TransitCountries]       `json:"transit_countries"`
	RecoveryFacilityDetail Section[FacilityList]           `json:"recovery_facility_detail"`
	SubmissionConfirmation Section[SubmissionConfirmation] `json:"submission_confirmation"`
	SubmissionDeclaration  Section[SubmissionDeclaration]  `json:"submission_declaration"`

	State    SubmissionState `json:"state"`
	Created  time.Time       `json:"created"`
	Modified time.Time       `json:"modified"`
}

// NewSubmission creates an InProgress declaration with initial section
// statuses: quantity, facilities, confirmation and declaration are gated
// behind their prerequisites, everything else is NotStarted.
func NewSubmission(accountID uuid.UUID, reference string, now time.Time) *Submission {
	return &Submission{
		ID:        uuid.New(),
		AccountID: accountID,
		Reference: reference,

		WasteDescription:       NotStartedSection[WasteDescription](),
		WasteQuantity:          CannotStartSection[WasteQuantity](),
		ExporterDetail:         NotStartedSection[ExporterDetail](),
		ImporterDetail:         NotStartedSection[ImporterDetail](),
		CollectionDate:         NotStartedSection[CollectionDate](),
		Carriers:               NotStartedSection[CarrierList](),
		CollectionDetail:       NotStartedSection[CollectionDetail](),
		UkExitLocation:         NotStartedSection[UkExitLocation](),
		TransitCountries:       NotStartedSection[TransitCountries](),
		RecoveryFacilityDetail: CannotStartSection[FacilityList](),
		SubmissionConfirmation: CannotStartSection[SubmissionConfirmation](),
		SubmissionDeclaration:  CannotStartSection[SubmissionDeclaration](),

		State:    SubmissionState{Status: StateInProgress, Timestamp: now},
		Created:  now,
		Modified: now,
	}
}
