package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"wastetrack/internal/audit"
	"wastetrack/internal/draft"
	"wastetrack/internal/refdata"
	domainerrors "wastetrack/pkg/domain-errors"
	"wastetrack/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	store   *draft.InMemoryStore
	trail   *audit.InMemoryStore
	service *Service
	ctx     context.Context
	now     time.Time
	account uuid.UUID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = draft.NewInMemoryStore()
	s.trail = audit.NewInMemoryStore()
	s.service = New(s.store, draft.NewValidator(refdata.Default()),
		WithAuditPublisher(audit.NewPublisher(s.trail)),
	)
	s.now = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.account = uuid.New()
}

func (s *ServiceSuite) create() *draft.Submission {
	sub, v, err := s.service.CreateDraft(s.ctx, s.account, "REF-2026/001")
	s.Require().NoError(err)
	s.Require().True(v.OK())
	return sub
}

func (s *ServiceSuite) setBulkDescription(id uuid.UUID) {
	v, err := s.service.SetWasteDescription(s.ctx, s.account, id, draft.WasteDescriptionInput{
		BaselAnnexIXCode: "B1010",
		EWCCodes:         "010101",
		Description:      "Metal scrap",
	})
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)
}

// completeDraft drives a fresh draft through every section using estimate
// data, stopping just before confirmation.
func (s *ServiceSuite) completeDraft(id uuid.UUID) {
	s.setBulkDescription(id)

	v, err := s.service.SetWasteQuantity(s.ctx, s.account, id, draft.WasteQuantityInput{Tonnes: "2.5", Type: "Estimate"})
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)

	ukAddress := draft.AddressInput{AddressLine1: "1 Waste Way", TownCity: "Leeds", Postcode: "LS1 4AP", Country: "England"}
	contact := draft.ContactInput{OrganisationName: "Acme", FullName: "Jo Smith", Email: "jo@example.com", Phone: "01484 123456"}

	v, err = s.service.SetExporterDetail(s.ctx, s.account, id, ukAddress, contact)
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)

	v, err = s.service.SetImporterDetail(s.ctx, s.account, id,
		draft.AddressInput{AddressLine1: "Hafenstrasse 12", TownCity: "Hamburg", Country: "Germany"}, contact)
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)

	v, err = s.service.SetCollectionDate(s.ctx, s.account, id, draft.CollectionDateInput{Day: "20", Month: "3", Year: "2026", Type: "Estimate"})
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)

	v, err = s.service.SetCarriers(s.ctx, s.account, id, []draft.CarrierInput{{
		Address:       draft.AddressInput{AddressLine1: "Dock 4", TownCity: "Rotterdam", Country: "Netherlands"},
		Contact:       contact,
		TransportMode: "Sea",
	}})
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)

	v, err = s.service.SetCollectionDetail(s.ctx, s.account, id, ukAddress, contact)
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)

	v, err = s.service.SetUkExitLocation(s.ctx, s.account, id, "Dover")
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)

	v, err = s.service.SetTransitCountries(s.ctx, s.account, id, []string{"France"})
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)

	v, err = s.service.SetRecoveryFacilities(s.ctx, s.account, id, []draft.FacilityInput{{
		Type:    "RecoveryFacility",
		Address: draft.AddressInput{AddressLine1: "Recyclerstraat 9", TownCity: "Antwerp", Country: "Belgium"},
		Contact: contact,
		Code:    "R4",
	}})
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)
}

func (s *ServiceSuite) submit(id uuid.UUID) *draft.Submission {
	v, err := s.service.SetConfirmation(s.ctx, s.account, id, true)
	s.Require().NoError(err)
	s.Require().True(v.OK())
	sub, err := s.service.Submit(s.ctx, s.account, id)
	s.Require().NoError(err)
	return sub
}

func (s *ServiceSuite) TestCreateDraft() {
	s.Run("creates with initial section gates", func() {
		sub := s.create()
		s.Equal(draft.StateInProgress, sub.State.Status)
		s.Equal(draft.StatusNotStarted, sub.WasteDescription.Status)
		s.Equal(draft.StatusCannotStart, sub.WasteQuantity.Status)
		s.Equal(draft.StatusCannotStart, sub.RecoveryFacilityDetail.Status)
		s.Equal(draft.StatusCannotStart, sub.SubmissionConfirmation.Status)
		s.Equal(draft.StatusCannotStart, sub.SubmissionDeclaration.Status)
		s.Equal(s.now, sub.Created)
	})

	s.Run("rejects a malformed reference", func() {
		_, v, err := s.service.CreateDraft(s.ctx, s.account, "bad reference!")
		s.NoError(err)
		s.Require().Len(v.FieldErrors, 1)
		s.Equal("reference", v.FieldErrors[0].Field)
	})

	s.Run("records an audit event", func() {
		sub := s.create()
		events, err := s.trail.ListByDraft(s.ctx, sub.ID)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(audit.ActionDraftCreated, events[0].Action)
	})
}

func (s *ServiceSuite) TestSectionGating() {
	s.Run("quantity cannot start before the description", func() {
		sub := s.create()
		_, err := s.service.SetWasteQuantity(s.ctx, s.account, sub.ID, draft.WasteQuantityInput{Tonnes: "1", Type: "Actual"})
		s.Require().Error(err)
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvariantViolation))
	})

	s.Run("quantity opens after the description", func() {
		sub := s.create()
		s.setBulkDescription(sub.ID)
		v, err := s.service.SetWasteQuantity(s.ctx, s.account, sub.ID, draft.WasteQuantityInput{Tonnes: "1", Type: "Actual"})
		s.Require().NoError(err)
		s.True(v.OK())
	})

	s.Run("submit requires a confirmed declaration", func() {
		sub := s.create()
		s.completeDraft(sub.ID)
		_, err := s.service.Submit(s.ctx, s.account, sub.ID)
		s.Require().Error(err)
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvariantViolation))
	})
}

func (s *ServiceSuite) TestClassificationChangeResets() {
	s.Run("category change resets the quantity", func() {
		sub := s.create()
		s.setBulkDescription(sub.ID)
		v, err := s.service.SetWasteQuantity(s.ctx, s.account, sub.ID, draft.WasteQuantityInput{Tonnes: "2", Type: "Actual"})
		s.Require().NoError(err)
		s.Require().True(v.OK())

		v, err = s.service.SetWasteDescription(s.ctx, s.account, sub.ID, draft.WasteDescriptionInput{
			OECDCode:    "GB040",
			EWCCodes:    "010101",
			Description: "Slags",
		})
		s.Require().NoError(err)
		s.Require().True(v.OK())

		got, err := s.service.GetDraft(s.ctx, s.account, sub.ID)
		s.Require().NoError(err)
		s.Equal(draft.StatusNotStarted, got.WasteQuantity.Status)
		s.Nil(got.WasteQuantity.Value)
	})

	s.Run("same category rewrite preserves the quantity", func() {
		sub := s.create()
		s.setBulkDescription(sub.ID)
		v, err := s.service.SetWasteQuantity(s.ctx, s.account, sub.ID, draft.WasteQuantityInput{Tonnes: "2", Type: "Actual"})
		s.Require().NoError(err)
		s.Require().True(v.OK())

		v, err = s.service.SetWasteDescription(s.ctx, s.account, sub.ID, draft.WasteDescriptionInput{
			BaselAnnexIXCode: "B1020",
			EWCCodes:         "010102",
			Description:      "Clean scrap",
		})
		s.Require().NoError(err)
		s.Require().True(v.OK())

		got, err := s.service.GetDraft(s.ctx, s.account, sub.ID)
		s.Require().NoError(err)
		s.Equal(draft.StatusComplete, got.WasteQuantity.Status)
		s.Require().NotNil(got.WasteQuantity.Value)
		s.InDelta(2, got.WasteQuantity.Value.ActualData.Value, 1e-9)
	})

	s.Run("small bulk flip also resets carriers and facilities", func() {
		sub := s.create()
		s.completeDraft(sub.ID)

		v, err := s.service.SetWasteDescription(s.ctx, s.account, sub.ID, draft.WasteDescriptionInput{
			Laboratory:  "yes",
			EWCCodes:    "010101",
			Description: "Lab samples",
		})
		s.Require().NoError(err)
		s.Require().True(v.OK(), "%+v", v)

		got, err := s.service.GetDraft(s.ctx, s.account, sub.ID)
		s.Require().NoError(err)
		s.Equal(draft.StatusNotStarted, got.WasteQuantity.Status)
		s.Equal(draft.StatusNotStarted, got.Carriers.Status)
		s.Equal(draft.StatusNotStarted, got.RecoveryFacilityDetail.Status)
		s.Equal(draft.StatusComplete, got.ExporterDetail.Status)
	})
}

func (s *ServiceSuite) TestCrossSectionRejection() {
	s.Run("kilograms against a bulk code reject the quantity write", func() {
		sub := s.create()
		s.setBulkDescription(sub.ID)

		v, err := s.service.SetWasteQuantity(s.ctx, s.account, sub.ID, draft.WasteQuantityInput{Kilograms: "20", Type: "Actual"})
		s.Require().NoError(err)
		s.Require().Len(v.CrossSectionErrors, 1)
		s.Equal(draft.CrossWasteCodeQuantity, v.CrossSectionErrors[0].Kind)

		got, err := s.service.GetDraft(s.ctx, s.account, sub.ID)
		s.Require().NoError(err)
		s.Equal(draft.StatusNotStarted, got.WasteQuantity.Status, "rejected write must not persist")
	})

	s.Run("transit list containing the importer country is rejected with paired errors", func() {
		sub := s.create()
		s.completeDraft(sub.ID)

		v, err := s.service.SetTransitCountries(s.ctx, s.account, sub.ID, []string{"Germany"})
		s.Require().NoError(err)
		s.Require().Len(v.CrossSectionErrors, 2)

		got, err := s.service.GetDraft(s.ctx, s.account, sub.ID)
		s.Require().NoError(err)
		s.Equal([]string{"France [FR]"}, got.TransitCountries.Value.Values, "previous value must survive")
	})
}

func (s *ServiceSuite) TestConfirmationReset() {
	sub := s.create()
	s.completeDraft(sub.ID)

	v, err := s.service.SetConfirmation(s.ctx, s.account, sub.ID, true)
	s.Require().NoError(err)
	s.Require().True(v.OK())

	// Any content edit invalidates the affirmation.
	v, err = s.service.SetUkExitLocation(s.ctx, s.account, sub.ID, "Felixstowe")
	s.Require().NoError(err)
	s.Require().True(v.OK())

	got, err := s.service.GetDraft(s.ctx, s.account, sub.ID)
	s.Require().NoError(err)
	s.Equal(draft.StatusNotStarted, got.SubmissionConfirmation.Status)
	s.Equal(draft.StatusCannotStart, got.SubmissionDeclaration.Status)
}

func (s *ServiceSuite) TestConfirmationOpensBeforeCompletion() {
	sub := s.create()
	s.completeDraft(sub.ID)

	// A bulk carrier without a transport mode leaves the section Started, so
	// the confirmation opens but cannot yet be affirmed.
	contact := draft.ContactInput{OrganisationName: "Acme", FullName: "Jo Smith", Email: "jo@example.com", Phone: "01484 123456"}
	v, err := s.service.SetCarriers(s.ctx, s.account, sub.ID, []draft.CarrierInput{{
		Address: draft.AddressInput{AddressLine1: "Dock 4", TownCity: "Rotterdam", Country: "Netherlands"},
		Contact: contact,
	}})
	s.Require().NoError(err)
	s.Require().True(v.OK(), "%+v", v)

	got, err := s.service.GetDraft(s.ctx, s.account, sub.ID)
	s.Require().NoError(err)
	s.Equal(draft.StatusStarted, got.Carriers.Status)
	s.Equal(draft.StatusNotStarted, got.SubmissionConfirmation.Status)

	_, err = s.service.SetConfirmation(s.ctx, s.account, sub.ID, true)
	s.Require().Error(err)
	s.True(domainerrors.HasCode(err, domainerrors.CodeInvariantViolation))
}

func (s *ServiceSuite) TestSubmit() {
	s.Run("estimate data yields SubmittedWithEstimates", func() {
		sub := s.create()
		s.completeDraft(sub.ID)
		submitted := s.submit(sub.ID)

		s.Equal(draft.StateSubmittedWithEstimates, submitted.State.Status)
		s.Require().NotNil(submitted.SubmissionDeclaration.Value)
		s.Equal("2603_"+firstEight(submitted.ID), submitted.SubmissionDeclaration.Value.TransactionID)
		s.Equal(s.now, submitted.SubmissionDeclaration.Value.DeclarationTimestamp)
	})

	s.Run("actual data yields SubmittedWithActuals", func() {
		sub := s.create()
		s.completeDraft(sub.ID)
		v, err := s.service.SetWasteQuantity(s.ctx, s.account, sub.ID, draft.WasteQuantityInput{Tonnes: "2.5", Type: "Actual"})
		s.Require().NoError(err)
		s.Require().True(v.OK())
		v, err = s.service.SetCollectionDate(s.ctx, s.account, sub.ID, draft.CollectionDateInput{Day: "20", Month: "3", Year: "2026", Type: "Actual"})
		s.Require().NoError(err)
		s.Require().True(v.OK())

		submitted := s.submit(sub.ID)
		s.Equal(draft.StateSubmittedWithActuals, submitted.State.Status)
	})

	s.Run("submitting twice is rejected", func() {
		sub := s.create()
		s.completeDraft(sub.ID)
		s.submit(sub.ID)

		_, err := s.service.Submit(s.ctx, s.account, sub.ID)
		s.Require().Error(err)
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidState))
	})
}

func (s *ServiceSuite) TestPostSubmission() {
	s.Run("non-quantity edits are rejected after submission", func() {
		sub := s.create()
		s.completeDraft(sub.ID)
		s.submit(sub.ID)

		_, err := s.service.SetUkExitLocation(s.ctx, s.account, sub.ID, "Felixstowe")
		s.Require().Error(err)
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidState))
	})

	s.Run("estimate writes are rejected after submission", func() {
		sub := s.create()
		s.completeDraft(sub.ID)
		s.submit(sub.ID)

		_, err := s.service.SetWasteQuantity(s.ctx, s.account, sub.ID, draft.WasteQuantityInput{Tonnes: "3", Type: "Estimate"})
		s.Require().Error(err)
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidState))
	})

	s.Run("the first actual write advances to UpdatedWithActuals exactly once", func() {
		sub := s.create()
		s.completeDraft(sub.ID)
		s.submit(sub.ID)

		v, err := s.service.SetWasteQuantity(s.ctx, s.account, sub.ID, draft.WasteQuantityInput{Tonnes: "2.4", Type: "Actual"})
		s.Require().NoError(err)
		s.Require().True(v.OK())

		got, err := s.service.GetDraft(s.ctx, s.account, sub.ID)
		s.Require().NoError(err)
		s.Equal(draft.StateUpdatedWithActuals, got.State.Status, "an actual on a previously-estimated field advances the state")
		s.Require().NotNil(got.WasteQuantity.Value.EstimateData, "estimates survive resolution")

		// Resolving the remaining estimate finds the state already advanced.
		v, err = s.service.SetCollectionDate(s.ctx, s.account, sub.ID, draft.CollectionDateInput{Day: "21", Month: "3", Year: "2026", Type: "Actual"})
		s.Require().NoError(err)
		s.Require().True(v.OK())

		got, err = s.service.GetDraft(s.ctx, s.account, sub.ID)
		s.Require().NoError(err)
		s.Equal(draft.StateUpdatedWithActuals, got.State.Status)

		// Repeating the identical actual write leaves the state alone.
		v, err = s.service.SetWasteQuantity(s.ctx, s.account, sub.ID, draft.WasteQuantityInput{Tonnes: "2.4", Type: "Actual"})
		s.Require().NoError(err)
		s.Require().True(v.OK())
		got, err = s.service.GetDraft(s.ctx, s.account, sub.ID)
		s.Require().NoError(err)
		s.Equal(draft.StateUpdatedWithActuals, got.State.Status)
	})
}

func (s *ServiceSuite) TestCancelAndDelete() {
	s.Run("cancel records the reason and hides the draft", func() {
		sub := s.create()
		s.completeDraft(sub.ID)
		s.submit(sub.ID)

		v, err := s.service.Cancel(s.ctx, s.account, sub.ID, draft.CancelNoLongerExporting, "")
		s.Require().NoError(err)
		s.Require().True(v.OK())

		_, err = s.service.GetDraft(s.ctx, s.account, sub.ID)
		s.True(domainerrors.HasCode(err, domainerrors.CodeNotFound))
	})

	s.Run("other reason requires a detail", func() {
		sub := s.create()
		v, err := s.service.Cancel(s.ctx, s.account, sub.ID, draft.CancelOther, " ")
		s.Require().NoError(err)
		s.Require().Len(v.FieldErrors, 1)
		s.Equal("detail", v.FieldErrors[0].Field)
	})

	s.Run("unknown reason is rejected", func() {
		sub := s.create()
		v, err := s.service.Cancel(s.ctx, s.account, sub.ID, "BecauseReasons", "")
		s.Require().NoError(err)
		s.Require().Len(v.FieldErrors, 1)
	})

	s.Run("delete hides the draft", func() {
		sub := s.create()
		s.Require().NoError(s.service.Delete(s.ctx, s.account, sub.ID))
		_, err := s.service.GetDraft(s.ctx, s.account, sub.ID)
		s.True(domainerrors.HasCode(err, domainerrors.CodeNotFound))
	})

	s.Run("deleting twice reports not found", func() {
		sub := s.create()
		s.Require().NoError(s.service.Delete(s.ctx, s.account, sub.ID))
		err := s.service.Delete(s.ctx, s.account, sub.ID)
		s.True(domainerrors.HasCode(err, domainerrors.CodeNotFound))
	})
}

func firstEight(id uuid.UUID) string {
	compact := ""
	for _, r := range id.String() {
		if r != '-' {
			compact += string(r)
		}
	}
	out := []rune(compact[:8])
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 'a' + 'A'
		}
	}
	return string(out)
}
