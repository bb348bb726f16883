package draft

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulkDescription() WasteDescription {
	return WasteDescription{
		Classification: ClassificationBaselAnnexIX,
		WasteCode:      "B1010",
		EWCCodes:       []string{"010101"},
		Description:    "Metal scrap",
	}
}

func smallDescription() WasteDescription {
	return WasteDescription{
		Classification: ClassificationNotApplicable,
		EWCCodes:       []string{"010101"},
		Description:    "Lab samples",
	}
}

func newTestSubmission() *Submission {
	return NewSubmission(uuid.New(), "REF-1", time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC))
}

func TestCheckWasteCodeQuantity(t *testing.T) {
	t.Run("silent while either section lacks a value", func(t *testing.T) {
		sub := newTestSubmission()
		assert.Empty(t, CheckWasteCodeQuantity(sub))

		sub.WasteDescription = CompleteSection(bulkDescription())
		assert.Empty(t, CheckWasteCodeQuantity(sub))
	})

	t.Run("bulk waste in kilograms is rejected", func(t *testing.T) {
		sub := newTestSubmission()
		sub.WasteDescription = CompleteSection(bulkDescription())
		sub.WasteQuantity = CompleteSection(WasteQuantity{
			Type:       VariantActual,
			ActualData: &QuantityData{Kind: KindWeight, Unit: UnitKilogram, Value: 20},
		})
		errs := CheckWasteCodeQuantity(sub)
		require.Len(t, errs, 1)
		assert.Equal(t, CrossWasteCodeQuantity, errs[0].Kind)
		assert.Equal(t, []SectionName{SectionWasteDescription, SectionWasteQuantity}, errs[0].Sections)
	})

	t.Run("laboratory waste in bulk units is rejected", func(t *testing.T) {
		for _, unit := range []QuantityUnit{UnitTonne, UnitCubicMetre} {
			sub := newTestSubmission()
			sub.WasteDescription = CompleteSection(smallDescription())
			sub.WasteQuantity = CompleteSection(WasteQuantity{
				Type:       VariantActual,
				ActualData: &QuantityData{Kind: KindWeight, Unit: unit, Value: 2},
			})
			errs := CheckWasteCodeQuantity(sub)
			require.Len(t, errs, 1, "unit %s", unit)
		}
	})

	t.Run("matching category and unit passes", func(t *testing.T) {
		sub := newTestSubmission()
		sub.WasteDescription = CompleteSection(bulkDescription())
		sub.WasteQuantity = CompleteSection(WasteQuantity{
			Type:       VariantActual,
			ActualData: &QuantityData{Kind: KindWeight, Unit: UnitTonne, Value: 2},
		})
		assert.Empty(t, CheckWasteCodeQuantity(sub))
	})
}

func TestCheckWasteCodeCarriers(t *testing.T) {
	carrierWithTransport := Carrier{
		ID:        uuid.New(),
		Transport: &CarrierTransport{Mode: TransportRoad},
		Status:    StatusComplete,
	}

	t.Run("laboratory waste with carrier transport is rejected", func(t *testing.T) {
		sub := newTestSubmission()
		sub.WasteDescription = CompleteSection(smallDescription())
		sub.Carriers = CompleteSection(CarrierList{Values: []Carrier{carrierWithTransport}})
		errs := CheckWasteCodeCarriers(sub)
		require.Len(t, errs, 1)
		assert.Equal(t, CrossWasteCodeCarriers, errs[0].Kind)
	})

	t.Run("bulk waste with transport passes", func(t *testing.T) {
		sub := newTestSubmission()
		sub.WasteDescription = CompleteSection(bulkDescription())
		sub.Carriers = CompleteSection(CarrierList{Values: []Carrier{carrierWithTransport}})
		assert.Empty(t, CheckWasteCodeCarriers(sub))
	})
}

func TestCheckWasteCodeFacilities(t *testing.T) {
	t.Run("laboratory waste with a recovery facility is rejected", func(t *testing.T) {
		sub := newTestSubmission()
		sub.WasteDescription = CompleteSection(smallDescription())
		sub.RecoveryFacilityDetail = CompleteSection(FacilityList{Values: []RecoveryFacility{
			{ID: uuid.New(), Type: FacilityRecoveryFacility, Code: "R4", Status: StatusComplete},
		}})
		errs := CheckWasteCodeFacilities(sub)
		require.Len(t, errs, 1)
		assert.Equal(t, CrossWasteCodeFacilities, errs[0].Kind)
	})

	t.Run("bulk waste with a laboratory is rejected", func(t *testing.T) {
		sub := newTestSubmission()
		sub.WasteDescription = CompleteSection(bulkDescription())
		sub.RecoveryFacilityDetail = CompleteSection(FacilityList{Values: []RecoveryFacility{
			{ID: uuid.New(), Type: FacilityLaboratory, Code: "D10", Status: StatusComplete},
		}})
		require.Len(t, CheckWasteCodeFacilities(sub), 1)
	})

	t.Run("bulk waste with interim site plus recovery facility passes", func(t *testing.T) {
		sub := newTestSubmission()
		sub.WasteDescription = CompleteSection(bulkDescription())
		sub.RecoveryFacilityDetail = CompleteSection(FacilityList{Values: []RecoveryFacility{
			{ID: uuid.New(), Type: FacilityInterimSite, Code: "R13", Status: StatusComplete},
			{ID: uuid.New(), Type: FacilityRecoveryFacility, Code: "R4", Status: StatusComplete},
		}})
		assert.Empty(t, CheckWasteCodeFacilities(sub))
	})
}

func TestCheckImporterTransit(t *testing.T) {
	importer := ImporterDetail{
		Address: Address{AddressLine1: "Hafenstrasse 12", TownCity: "Hamburg", Country: "Germany [DE]"},
	}

	t.Run("importer country in transit list yields one error per section", func(t *testing.T) {
		sub := newTestSubmission()
		sub.ImporterDetail = CompleteSection(importer)
		sub.TransitCountries = CompleteSection(TransitCountries{Values: []string{"France [FR]", "Germany [DE]"}})

		errs := CheckImporterTransit(sub)
		require.Len(t, errs, 2)
		assert.Equal(t, SectionImporterDetail, errs[0].Sections[0])
		assert.Equal(t, SectionTransitCountries, errs[1].Sections[0])
		for _, e := range errs {
			assert.Equal(t, CrossImporterTransit, e.Kind)
		}
	})

	t.Run("disjoint importer and transit pass", func(t *testing.T) {
		sub := newTestSubmission()
		sub.ImporterDetail = CompleteSection(importer)
		sub.TransitCountries = CompleteSection(TransitCountries{Values: []string{"France [FR]"}})
		assert.Empty(t, CheckImporterTransit(sub))
	})
}

func TestRecomputeDerived(t *testing.T) {
	t.Run("quantity opens once the description holds a value", func(t *testing.T) {
		sub := newTestSubmission()
		assert.Equal(t, StatusCannotStart, sub.WasteQuantity.Status)

		sub.WasteDescription = CompleteSection(bulkDescription())
		sub.RecomputeDerived()
		assert.Equal(t, StatusNotStarted, sub.WasteQuantity.Status)
		assert.Equal(t, StatusNotStarted, sub.RecoveryFacilityDetail.Status)
	})

	t.Run("confirmation stays gated while any section is untouched", func(t *testing.T) {
		sub := newTestSubmission()
		sub.WasteDescription = CompleteSection(bulkDescription())
		sub.RecomputeDerived()
		assert.Equal(t, StatusCannotStart, sub.SubmissionConfirmation.Status)
	})

	t.Run("confirmation opens once every section is at least started", func(t *testing.T) {
		sub := completeTestSubmission()
		sub.Carriers = StartedSection(CarrierList{Values: []Carrier{
			{ID: uuid.New(), Status: StatusStarted},
		}})
		sub.RecomputeDerived()
		assert.Equal(t, StatusNotStarted, sub.SubmissionConfirmation.Status)
	})

	t.Run("confirmation and declaration open in sequence", func(t *testing.T) {
		sub := completeTestSubmission()
		sub.RecomputeDerived()
		assert.Equal(t, StatusNotStarted, sub.SubmissionConfirmation.Status)
		assert.Equal(t, StatusCannotStart, sub.SubmissionDeclaration.Status)

		sub.SubmissionConfirmation = CompleteSection(SubmissionConfirmation{Confirmed: true})
		sub.RecomputeDerived()
		assert.Equal(t, StatusNotStarted, sub.SubmissionDeclaration.Status)
	})
}

// completeTestSubmission builds a declaration with every pre-confirmation
// section Complete.
func completeTestSubmission() *Submission {
	sub := newTestSubmission()
	date := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	sub.WasteDescription = CompleteSection(bulkDescription())
	sub.WasteQuantity = CompleteSection(WasteQuantity{
		Type:         VariantEstimate,
		EstimateData: &QuantityData{Kind: KindWeight, Unit: UnitTonne, Value: 2},
	})
	sub.ExporterDetail = CompleteSection(ExporterDetail{
		Address: Address{AddressLine1: "1 Waste Way", TownCity: "Leeds", Country: "United Kingdom (England) [GB-ENG]"},
		Contact: Contact{OrganisationName: "Acme", FullName: "Jo", Email: "jo@example.com", Phone: "01484 123456"},
	})
	sub.ImporterDetail = CompleteSection(ImporterDetail{
		Address: Address{AddressLine1: "Hafenstrasse 12", TownCity: "Hamburg", Country: "Germany [DE]"},
		Contact: Contact{OrganisationName: "Import GmbH", FullName: "Max", Email: "max@example.de", Phone: "+49 40 1234567"},
	})
	sub.CollectionDate = CompleteSection(CollectionDate{Type: VariantEstimate, EstimateDate: &date})
	sub.Carriers = CompleteSection(CarrierList{Values: []Carrier{
		{ID: uuid.New(), Transport: &CarrierTransport{Mode: TransportSea}, Status: StatusComplete},
	}})
	sub.CollectionDetail = CompleteSection(CollectionDetail{
		Address: Address{AddressLine1: "2 Depot Lane", TownCity: "Leeds", Country: "United Kingdom (England) [GB-ENG]"},
		Contact: Contact{OrganisationName: "Acme", FullName: "Jo", Email: "jo@example.com", Phone: "01484 123456"},
	})
	sub.UkExitLocation = CompleteSection(UkExitLocation{Provided: true, Value: "Dover"})
	sub.TransitCountries = CompleteSection(TransitCountries{Values: []string{"France [FR]"}})
	sub.RecoveryFacilityDetail = CompleteSection(FacilityList{Values: []RecoveryFacility{
		{ID: uuid.New(), Type: FacilityRecoveryFacility, Code: "R4", Status: StatusComplete},
	}})
	return sub
}
