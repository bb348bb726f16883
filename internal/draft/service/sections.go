package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"wastetrack/internal/audit"
	"wastetrack/internal/draft"
	domainerrors "wastetrack/pkg/domain-errors"
	"wastetrack/pkg/requestcontext"
)

// SetWasteDescription writes the waste description section. A classification
// change can force dependent sections back: the quantity resets whenever the
// category changes, and a small/bulk flip also resets carriers and facilities
// because their validation rules differ per category.
func (s *Service) SetWasteDescription(ctx context.Context, accountID, id uuid.UUID, in draft.WasteDescriptionInput) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionWasteDescription)
	if err != nil {
		return draft.Validation{}, err
	}

	value, fieldErrs := s.validator.ValidateWasteDescription(in)
	if len(fieldErrs) > 0 {
		return s.reject(draft.SectionWasteDescription, draft.Validation{FieldErrors: fieldErrs}), nil
	}

	var oldClassification draft.Classification
	if sub.WasteDescription.Value != nil {
		oldClassification = sub.WasteDescription.Value.Classification
	}

	sub.WasteDescription = draft.CompleteSection(value)

	if oldClassification != "" && oldClassification != value.Classification {
		if draft.QuantityResetAction(oldClassification, value.Classification) == draft.ResetQuantity {
			sub.WasteQuantity = draft.NotStartedSection[draft.WasteQuantity]()
		}
		oldSmall := oldClassification == draft.ClassificationNotApplicable
		newSmall := value.Classification == draft.ClassificationNotApplicable
		if oldSmall != newSmall {
			sub.Carriers = draft.NotStartedSection[draft.CarrierList]()
			sub.RecoveryFacilityDetail = draft.NotStartedSection[draft.FacilityList]()
		}
	}

	if crossErrs := draft.CrossCheck(sub); len(crossErrs) > 0 {
		return s.reject(draft.SectionWasteDescription, draft.Validation{CrossSectionErrors: crossErrs}), nil
	}

	sub.ResetConfirmation()
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionWasteDescription)
}

// SetWasteQuantity writes the quantity section. Post-submission this is the
// estimate-resolution path and accepts actual data only.
func (s *Service) SetWasteQuantity(ctx context.Context, accountID, id uuid.UUID, in draft.WasteQuantityInput) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionWasteQuantity)
	if err != nil {
		return draft.Validation{}, err
	}

	value, fieldErrs := s.validator.ValidateWasteQuantity(in, sub.WasteQuantity.Value)
	if len(fieldErrs) > 0 {
		return s.reject(draft.SectionWasteQuantity, draft.Validation{FieldErrors: fieldErrs}), nil
	}
	if sub.State.Status.Submitted() && value.Type != draft.VariantActual {
		return draft.Validation{}, domainerrors.New(domainerrors.CodeInvalidState, "only actual data can be recorded after submission")
	}

	wasEstimate := sub.WasteQuantity.Value != nil && sub.WasteQuantity.Value.Type == draft.VariantEstimate
	sub.WasteQuantity = draft.CompleteSection(value)
	if crossErrs := draft.CrossCheck(sub); len(crossErrs) > 0 {
		return s.reject(draft.SectionWasteQuantity, draft.Validation{CrossSectionErrors: crossErrs}), nil
	}

	sub.ResetConfirmation()
	s.resolveEstimates(ctx, sub, wasEstimate)
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionWasteQuantity)
}

// SetCollectionDate writes the collection date section, sharing the
// estimate-resolution behavior with quantity.
func (s *Service) SetCollectionDate(ctx context.Context, accountID, id uuid.UUID, in draft.CollectionDateInput) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionCollectionDate)
	if err != nil {
		return draft.Validation{}, err
	}

	value, fieldErrs := s.validator.ValidateCollectionDate(in, requestcontext.Now(ctx), sub.CollectionDate.Value)
	if len(fieldErrs) > 0 {
		return s.reject(draft.SectionCollectionDate, draft.Validation{FieldErrors: fieldErrs}), nil
	}
	if sub.State.Status.Submitted() && value.Type != draft.VariantActual {
		return draft.Validation{}, domainerrors.New(domainerrors.CodeInvalidState, "only actual data can be recorded after submission")
	}

	wasEstimate := sub.CollectionDate.Value != nil && sub.CollectionDate.Value.Type == draft.VariantEstimate
	sub.CollectionDate = draft.CompleteSection(value)
	sub.ResetConfirmation()
	s.resolveEstimates(ctx, sub, wasEstimate)
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionCollectionDate)
}

// resolveEstimates moves an estimate-based submission forward when an actual
// value lands on a previously-estimated field. One-way: once the state has
// advanced, later actual writes find the guard closed and leave it alone.
func (s *Service) resolveEstimates(ctx context.Context, sub *draft.Submission, wasEstimate bool) {
	if sub.State.Status != draft.StateSubmittedWithEstimates {
		return
	}
	if !wasEstimate {
		return
	}
	if err := sub.Transition(draft.StateUpdatedWithActuals, requestcontext.Now(ctx)); err != nil {
		s.logger.Error("estimate resolution transition failed", "draft_id", sub.ID, "error", err)
	}
}

// SetExporterDetail writes the UK exporter section.
func (s *Service) SetExporterDetail(ctx context.Context, accountID, id uuid.UUID, address draft.AddressInput, contact draft.ContactInput) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionExporterDetail)
	if err != nil {
		return draft.Validation{}, err
	}
	value, fieldErrs := s.validator.ValidateExporterDetail(address, contact)
	if len(fieldErrs) > 0 {
		return s.reject(draft.SectionExporterDetail, draft.Validation{FieldErrors: fieldErrs}), nil
	}
	sub.ExporterDetail = draft.CompleteSection(value)
	sub.ResetConfirmation()
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionExporterDetail)
}

// SetImporterDetail writes the overseas importer section.
func (s *Service) SetImporterDetail(ctx context.Context, accountID, id uuid.UUID, address draft.AddressInput, contact draft.ContactInput) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionImporterDetail)
	if err != nil {
		return draft.Validation{}, err
	}
	value, fieldErrs := s.validator.ValidateImporterDetail(address, contact)
	if len(fieldErrs) > 0 {
		return s.reject(draft.SectionImporterDetail, draft.Validation{FieldErrors: fieldErrs}), nil
	}
	sub.ImporterDetail = draft.CompleteSection(value)
	if crossErrs := draft.CrossCheck(sub); len(crossErrs) > 0 {
		return s.reject(draft.SectionImporterDetail, draft.Validation{CrossSectionErrors: crossErrs}), nil
	}
	sub.ResetConfirmation()
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionImporterDetail)
}

// SetCollectionDetail writes the UK collection section.
func (s *Service) SetCollectionDetail(ctx context.Context, accountID, id uuid.UUID, address draft.AddressInput, contact draft.ContactInput) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionCollectionDetail)
	if err != nil {
		return draft.Validation{}, err
	}
	value, fieldErrs := s.validator.ValidateCollectionDetail(address, contact)
	if len(fieldErrs) > 0 {
		return s.reject(draft.SectionCollectionDetail, draft.Validation{FieldErrors: fieldErrs}), nil
	}
	sub.CollectionDetail = draft.CompleteSection(value)
	sub.ResetConfirmation()
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionCollectionDetail)
}

// SetCarriers writes the carrier list. Transport requirements depend on the
// waste category; when the classification is not yet known, transport stays
// optional and the section can sit at Started until it is supplied.
func (s *Service) SetCarriers(ctx context.Context, accountID, id uuid.UUID, inputs []draft.CarrierInput) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionCarriers)
	if err != nil {
		return draft.Validation{}, err
	}

	bulk := true
	if sub.WasteDescription.Value != nil {
		bulk = sub.WasteDescription.Value.Classification != draft.ClassificationNotApplicable
	}

	value, status, fieldErrs := s.validator.ValidateCarriers(inputs, bulk)
	if len(fieldErrs) > 0 {
		return s.reject(draft.SectionCarriers, draft.Validation{FieldErrors: fieldErrs}), nil
	}

	if status == draft.StatusComplete {
		sub.Carriers = draft.CompleteSection(value)
	} else {
		sub.Carriers = draft.StartedSection(value)
	}
	if crossErrs := draft.CrossCheck(sub); len(crossErrs) > 0 {
		return s.reject(draft.SectionCarriers, draft.Validation{CrossSectionErrors: crossErrs}), nil
	}
	sub.ResetConfirmation()
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionCarriers)
}

// SetUkExitLocation writes the exit location section.
func (s *Service) SetUkExitLocation(ctx context.Context, accountID, id uuid.UUID, raw string) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionUkExitLocation)
	if err != nil {
		return draft.Validation{}, err
	}
	value, fieldErr := draft.ValidateUkExitLocation(raw)
	if fieldErr != nil {
		return s.reject(draft.SectionUkExitLocation, draft.Validation{FieldErrors: []draft.FieldError{*fieldErr}}), nil
	}
	sub.UkExitLocation = draft.CompleteSection(value)
	sub.ResetConfirmation()
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionUkExitLocation)
}

// SetTransitCountries writes the transit list.
func (s *Service) SetTransitCountries(ctx context.Context, accountID, id uuid.UUID, raw []string) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionTransitCountries)
	if err != nil {
		return draft.Validation{}, err
	}
	value, fieldErr := s.validator.ValidateTransitCountries(raw)
	if fieldErr != nil {
		return s.reject(draft.SectionTransitCountries, draft.Validation{FieldErrors: []draft.FieldError{*fieldErr}}), nil
	}
	sub.TransitCountries = draft.CompleteSection(value)
	if crossErrs := draft.CrossCheck(sub); len(crossErrs) > 0 {
		return s.reject(draft.SectionTransitCountries, draft.Validation{CrossSectionErrors: crossErrs}), nil
	}
	sub.ResetConfirmation()
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionTransitCountries)
}

// SetRecoveryFacilities writes the facility list. The section is gated until
// the classification is known, so the category is always available here.
func (s *Service) SetRecoveryFacilities(ctx context.Context, accountID, id uuid.UUID, inputs []draft.FacilityInput) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionRecoveryFacilityDetail)
	if err != nil {
		return draft.Validation{}, err
	}
	if sub.WasteDescription.Value == nil {
		return draft.Validation{}, domainerrors.New(domainerrors.CodeInvariantViolation, "waste description must be provided first")
	}

	value, fieldErrs := s.validator.ValidateRecoveryFacilities(inputs, sub.WasteDescription.Value.Classification)
	if len(fieldErrs) > 0 {
		return s.reject(draft.SectionRecoveryFacilityDetail, draft.Validation{FieldErrors: fieldErrs}), nil
	}
	sub.RecoveryFacilityDetail = draft.CompleteSection(value)
	if crossErrs := draft.CrossCheck(sub); len(crossErrs) > 0 {
		return s.reject(draft.SectionRecoveryFacilityDetail, draft.Validation{CrossSectionErrors: crossErrs}), nil
	}
	sub.ResetConfirmation()
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionRecoveryFacilityDetail)
}

// SetConfirmation records the user's affirmation that the declaration content
// is correct. Affirming false keeps the section open.
func (s *Service) SetConfirmation(ctx context.Context, accountID, id uuid.UUID, confirmed bool) (draft.Validation, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionSubmissionConfirmation)
	if err != nil {
		return draft.Validation{}, err
	}
	if confirmed {
		if !sub.ConfirmationPossible() {
			return draft.Validation{}, domainerrors.New(
				domainerrors.CodeInvariantViolation,
				"every section must be complete before confirming",
			)
		}
		sub.SubmissionConfirmation = draft.CompleteSection(draft.SubmissionConfirmation{Confirmed: true})
	} else {
		sub.SubmissionConfirmation = draft.NotStartedSection[draft.SubmissionConfirmation]()
	}
	return draft.Validation{}, s.commit(ctx, sub, draft.SectionSubmissionConfirmation)
}

// Submit completes the declaration section, minting the transaction ID and
// moving the lifecycle forward. The declaration is minted exactly once.
func (s *Service) Submit(ctx context.Context, accountID, id uuid.UUID) (*draft.Submission, error) {
	sub, err := s.loadForWrite(ctx, accountID, id, draft.SectionSubmissionDeclaration)
	if err != nil {
		return nil, err
	}
	if sub.SubmissionDeclaration.Status == draft.StatusComplete {
		return nil, domainerrors.New(domainerrors.CodeInvariantViolation, "declaration already submitted")
	}
	if !sub.DeclarationPossible() {
		return nil, domainerrors.New(domainerrors.CodeInvariantViolation, "declaration requires a confirmed submission")
	}

	now := requestcontext.Now(ctx)
	sub.SubmissionDeclaration = draft.CompleteSection(draft.SubmissionDeclaration{
		DeclarationTimestamp: now,
		TransactionID:        draft.TransactionID(now, sub.ID),
	})
	variant := sub.SubmittedVariant()
	if err := sub.Transition(variant, now); err != nil {
		return nil, err
	}

	sub.RecomputeDerived()
	sub.Modified = now
	if err := s.store.Update(ctx, sub); err != nil {
		return nil, s.translate(err)
	}

	s.logger.Info("draft submitted", "draft_id", sub.ID, "state", variant, "transaction_id", sub.SubmissionDeclaration.Value.TransactionID)
	if s.metrics != nil {
		s.metrics.IncrementSubmitted(string(variant))
	}
	s.emit(ctx, sub, audit.ActionDraftSubmitted, "")
	return sub, nil
}

// Cancel withdraws a declaration with a typed reason. Cancelled declarations
// stay stored for audit but disappear from reads.
func (s *Service) Cancel(ctx context.Context, accountID, id uuid.UUID, reason draft.CancellationReason, detail string) (draft.Validation, error) {
	if !reason.IsValid() {
		return draft.Validation{FieldErrors: []draft.FieldError{
			{Field: "reason", Kind: draft.KindInvalid, Message: "enter a valid cancellation reason"},
		}}, nil
	}
	detail, fieldErr := validateCancelDetail(reason, detail)
	if fieldErr != nil {
		return draft.Validation{FieldErrors: []draft.FieldError{*fieldErr}}, nil
	}

	sub, err := s.store.Get(ctx, accountID, id)
	if err != nil {
		return draft.Validation{}, s.translate(err)
	}
	now := requestcontext.Now(ctx)
	if err := sub.Transition(draft.StateCancelled, now); err != nil {
		return draft.Validation{}, err
	}
	sub.State.Cancellation = &draft.Cancellation{Reason: reason, Detail: detail}
	sub.Modified = now
	if err := s.store.Update(ctx, sub); err != nil {
		return draft.Validation{}, s.translate(err)
	}

	s.logger.Info("draft cancelled", "draft_id", sub.ID, "reason", reason)
	if s.metrics != nil {
		s.metrics.DraftsCancelled.Inc()
	}
	s.emit(ctx, sub, audit.ActionDraftCancelled, "")
	return draft.Validation{}, nil
}

func validateCancelDetail(reason draft.CancellationReason, raw string) (string, *draft.FieldError) {
	if reason != draft.CancelOther {
		return "", nil
	}
	trimmed, err := requiredDetail(raw)
	if err != nil {
		return "", err
	}
	return trimmed, nil
}

func requiredDetail(raw string) (string, *draft.FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &draft.FieldError{Field: "detail", Kind: draft.KindEmpty, Message: "enter a reason for the cancellation"}
	}
	if len(trimmed) > draft.CancelDetailMaxLength {
		return "", &draft.FieldError{Field: "detail", Kind: draft.KindCharTooMany, Message: "the reason must be 100 characters or less"}
	}
	return trimmed, nil
}

// Delete soft-deletes a declaration. Like cancellation, the record survives
// for audit.
func (s *Service) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	sub, err := s.store.Get(ctx, accountID, id)
	if err != nil {
		return s.translate(err)
	}
	now := requestcontext.Now(ctx)
	if err := sub.Transition(draft.StateDeleted, now); err != nil {
		return err
	}
	sub.Modified = now
	if err := s.store.Update(ctx, sub); err != nil {
		return s.translate(err)
	}

	s.logger.Info("draft deleted", "draft_id", sub.ID)
	if s.metrics != nil {
		s.metrics.DraftsDeleted.Inc()
	}
	s.emit(ctx, sub, audit.ActionDraftDeleted, "")
	return nil
}
