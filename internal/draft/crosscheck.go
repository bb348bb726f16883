package draft

// Cross-section checks. Each check fires only when every section it reads
// holds a value; a section still NotStarted never contributes an error.

// CheckWasteCodeQuantity verifies the quantity unit agrees with the waste
// classification: bulk waste must not be measured in kilograms, laboratory
// waste must not use bulk units.
func CheckWasteCodeQuantity(s *Submission) []CrossSectionError {
	if s.WasteDescription.Value == nil || s.WasteQuantity.Value == nil {
		return nil
	}
	data := s.WasteQuantity.Value.Current()
	if data == nil {
		return nil
	}
	laboratory := s.WasteDescription.Value.Classification == ClassificationNotApplicable
	if !laboratory && data.Unit == UnitKilogram {
		return []CrossSectionError{crossError(
			CrossWasteCodeQuantity,
			"waste with a waste code cannot be measured in kilograms",
			SectionWasteDescription, SectionWasteQuantity,
		)}
	}
	if laboratory && data.Unit != UnitKilogram {
		return []CrossSectionError{crossError(
			CrossWasteCodeQuantity,
			"laboratory waste must be measured in kilograms",
			SectionWasteDescription, SectionWasteQuantity,
		)}
	}
	return nil
}

// CheckWasteCodeCarriers verifies no carrier carries transport details when
// the waste is laboratory (small) waste.
func CheckWasteCodeCarriers(s *Submission) []CrossSectionError {
	if s.WasteDescription.Value == nil || s.Carriers.Value == nil {
		return nil
	}
	if s.WasteDescription.Value.Classification != ClassificationNotApplicable {
		return nil
	}
	for _, carrier := range s.Carriers.Value.Values {
		if carrier.Transport != nil {
			return []CrossSectionError{crossError(
				CrossWasteCodeCarriers,
				"laboratory waste carriers cannot have transport details",
				SectionWasteDescription, SectionCarriers,
			)}
		}
	}
	return nil
}

// CheckWasteCodeFacilities verifies the facility mix against the waste
// classification.
func CheckWasteCodeFacilities(s *Submission) []CrossSectionError {
	if s.WasteDescription.Value == nil || s.RecoveryFacilityDetail.Value == nil {
		return nil
	}
	counts := map[FacilityType]int{}
	for _, f := range s.RecoveryFacilityDetail.Value.Values {
		counts[f.Type]++
	}
	laboratory := s.WasteDescription.Value.Classification == ClassificationNotApplicable
	if laboratory {
		if counts[FacilityLaboratory] > 1 || counts[FacilityInterimSite] > 0 || counts[FacilityRecoveryFacility] > 0 {
			return []CrossSectionError{crossError(
				CrossWasteCodeFacilities,
				"laboratory waste must go to a single laboratory",
				SectionWasteDescription, SectionRecoveryFacilityDetail,
			)}
		}
		return nil
	}
	if counts[FacilityLaboratory] > 0 || counts[FacilityInterimSite] > 1 || counts[FacilityRecoveryFacility] > 1 {
		return []CrossSectionError{crossError(
			CrossWasteCodeFacilities,
			"bulk waste must go to at most one interim site and one recovery facility",
			SectionWasteDescription, SectionRecoveryFacilityDetail,
		)}
	}
	return nil
}

// CheckImporterTransit verifies the importer's country does not appear in the
// transit list. A violation is reported twice, once attributed to each
// section, so either section's error view shows it.
func CheckImporterTransit(s *Submission) []CrossSectionError {
	if s.ImporterDetail.Value == nil || s.TransitCountries.Value == nil {
		return nil
	}
	importerCountry := s.ImporterDetail.Value.Address.Country
	for _, country := range s.TransitCountries.Value.Values {
		if country == importerCountry {
			return []CrossSectionError{
				crossError(
					CrossImporterTransit,
					"the importer country cannot also be a transit country",
					SectionImporterDetail, SectionTransitCountries,
				),
				crossError(
					CrossImporterTransit,
					"the transit countries cannot include the importer country",
					SectionTransitCountries, SectionImporterDetail,
				),
			}
		}
	}
	return nil
}

// CrossCheck runs every cross-section check over the declaration.
func CrossCheck(s *Submission) []CrossSectionError {
	var errs []CrossSectionError
	errs = append(errs, CheckWasteCodeQuantity(s)...)
	errs = append(errs, CheckWasteCodeCarriers(s)...)
	errs = append(errs, CheckWasteCodeFacilities(s)...)
	errs = append(errs, CheckImporterTransit(s)...)
	return errs
}
