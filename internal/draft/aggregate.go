package draft

// Derived-status rules. Three sections are gated behind prerequisites:
// quantity behind the waste description, facilities behind a known
// classification, and the confirmation/declaration pair behind everything
// else. RecomputeDerived re-evaluates the gates after any section write.

// requiredForConfirmation lists the sections that must be Complete before the
// declaration can be confirmed. Confirmation and declaration themselves are
// excluded.
var requiredForConfirmation = []SectionName{
	SectionWasteDescription,
	SectionWasteQuantity,
	SectionExporterDetail,
	SectionImporterDetail,
	SectionCollectionDate,
	SectionCarriers,
	SectionCollectionDetail,
	SectionUkExitLocation,
	SectionTransitCountries,
	SectionRecoveryFacilityDetail,
}

// SectionStatusOf returns the status of the named section.
func (s *Submission) SectionStatusOf(name SectionName) SectionStatus {
	switch name {
	case SectionWasteDescription:
		return s.WasteDescription.Status
	case SectionWasteQuantity:
		return s.WasteQuantity.Status
	case SectionExporterDetail:
		return s.ExporterDetail.Status
	case SectionImporterDetail:
		return s.ImporterDetail.Status
	case SectionCollectionDate:
		return s.CollectionDate.Status
	case SectionCarriers:
		return s.Carriers.Status
	case SectionCollectionDetail:
		return s.CollectionDetail.Status
	case SectionUkExitLocation:
		return s.UkExitLocation.Status
	case SectionTransitCountries:
		return s.TransitCountries.Status
	case SectionRecoveryFacilityDetail:
		return s.RecoveryFacilityDetail.Status
	case SectionSubmissionConfirmation:
		return s.SubmissionConfirmation.Status
	case SectionSubmissionDeclaration:
		return s.SubmissionDeclaration.Status
	default:
		return StatusCannotStart
	}
}

// ConfirmationOpen reports whether every required section is at least
// Started, the gate for opening the confirmation section.
func (s *Submission) ConfirmationOpen() bool {
	for _, name := range requiredForConfirmation {
		if !s.SectionStatusOf(name).CanHoldValue() {
			return false
		}
	}
	return true
}

// ConfirmationPossible reports whether every declaration section required for
// confirmation is Complete, the condition for affirming it.
func (s *Submission) ConfirmationPossible() bool {
	for _, name := range requiredForConfirmation {
		if s.SectionStatusOf(name) != StatusComplete {
			return false
		}
	}
	return true
}

// DeclarationPossible reports whether the declaration section may be written.
func (s *Submission) DeclarationPossible() bool {
	return s.SubmissionConfirmation.Status == StatusComplete
}

// RecomputeDerived re-evaluates every gated section status. It promotes
// CannotStart to NotStarted when a gate opens and demotes back to CannotStart
// when a gate closes, discarding any value the demoted section held. Explicit
// user affirmation is the only path to a Complete confirmation, so this never
// promotes beyond NotStarted.
func (s *Submission) RecomputeDerived() {
	// Quantity opens once the waste description holds a value.
	if s.WasteDescription.Status.CanHoldValue() {
		if s.WasteQuantity.Status == StatusCannotStart {
			s.WasteQuantity = NotStartedSection[WasteQuantity]()
		}
	} else {
		s.WasteQuantity = CannotStartSection[WasteQuantity]()
	}

	// Facilities open once the classification is known, because the facility
	// mix and code catalogue depend on it.
	if s.WasteDescription.Value != nil && s.WasteDescription.Value.Classification != "" {
		if s.RecoveryFacilityDetail.Status == StatusCannotStart {
			s.RecoveryFacilityDetail = NotStartedSection[FacilityList]()
		}
	} else {
		s.RecoveryFacilityDetail = CannotStartSection[FacilityList]()
	}

	// Confirmation opens once everything else is at least Started; affirming
	// it still requires everything Complete. A Complete confirmation survives
	// here only after submission; pre-submission writes reset it through the
	// service before this runs.
	if s.ConfirmationOpen() {
		if s.SubmissionConfirmation.Status == StatusCannotStart {
			s.SubmissionConfirmation = NotStartedSection[SubmissionConfirmation]()
		}
	} else if !s.State.Status.Submitted() {
		s.SubmissionConfirmation = CannotStartSection[SubmissionConfirmation]()
	}

	// Declaration opens only behind a confirmed declaration.
	if s.DeclarationPossible() {
		if s.SubmissionDeclaration.Status == StatusCannotStart {
			s.SubmissionDeclaration = NotStartedSection[SubmissionDeclaration]()
		}
	} else if !s.State.Status.Submitted() {
		s.SubmissionDeclaration = CannotStartSection[SubmissionDeclaration]()
	}
}

// ResetConfirmation drops a pre-declaration confirmation back to NotStarted.
// Called on every content write before submission so stale affirmations never
// survive an edit.
func (s *Submission) ResetConfirmation() {
	if s.State.Status.Submitted() {
		return
	}
	if s.SubmissionConfirmation.Status == StatusComplete || s.SubmissionConfirmation.Status == StatusStarted {
		s.SubmissionConfirmation = NotStartedSection[SubmissionConfirmation]()
	}
	if s.SubmissionDeclaration.Status != StatusCannotStart {
		s.SubmissionDeclaration = CannotStartSection[SubmissionDeclaration]()
	}
}
