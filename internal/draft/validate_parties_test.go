package draft

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"wastetrack/internal/refdata"
)

type PartyValidationSuite struct {
	suite.Suite
	validator *Validator
}

func TestPartyValidationSuite(t *testing.T) {
	suite.Run(t, new(PartyValidationSuite))
}

func (s *PartyValidationSuite) SetupTest() {
	s.validator = NewValidator(refdata.Default())
}

func ukAddressInput() AddressInput {
	return AddressInput{
		AddressLine1: "1 Waste Way",
		TownCity:     "Leeds",
		Postcode:     "LS1 4AP",
		Country:      "England",
	}
}

func contactInput() ContactInput {
	return ContactInput{
		OrganisationName: "Acme Exports Ltd",
		FullName:         "Jo Smith",
		Email:            "jo.smith@example.com",
		Phone:            "01484 123456",
	}
}

func (s *PartyValidationSuite) TestExporterDetail() {
	s.Run("accepts a UK nation address", func() {
		value, errs := s.validator.ValidateExporterDetail(ukAddressInput(), contactInput())
		s.Empty(errs)
		s.Equal("United Kingdom (England) [GB-ENG]", value.Address.Country)
		s.Equal("LS1 4AP", value.Address.Postcode)
	})

	s.Run("rejects a non-UK country", func() {
		addr := ukAddressInput()
		addr.Country = "France"
		_, errs := s.validator.ValidateExporterDetail(addr, contactInput())
		s.Require().Len(errs, 1)
		s.Equal("exporterAddress.country", errs[0].Field)
		s.Equal(KindInvalid, errs[0].Kind)
	})

	s.Run("uppercases a lowercase postcode", func() {
		addr := ukAddressInput()
		addr.Postcode = "ls1 4ap"
		value, errs := s.validator.ValidateExporterDetail(addr, contactInput())
		s.Empty(errs)
		s.Equal("LS1 4AP", value.Address.Postcode)
	})

	s.Run("rejects a malformed postcode", func() {
		addr := ukAddressInput()
		addr.Postcode = "NOT-A-POSTCODE"
		_, errs := s.validator.ValidateExporterDetail(addr, contactInput())
		s.Require().Len(errs, 1)
		s.Equal("exporterAddress.postcode", errs[0].Field)
	})

	s.Run("requires address line one and town", func() {
		addr := ukAddressInput()
		addr.AddressLine1 = ""
		addr.TownCity = " "
		_, errs := s.validator.ValidateExporterDetail(addr, contactInput())
		s.Len(errs, 2)
	})
}

func (s *PartyValidationSuite) TestImporterDetail() {
	importerAddr := AddressInput{
		AddressLine1: "Hafenstrasse 12",
		TownCity:     "Hamburg",
		Country:      "Germany",
	}

	s.Run("matches a foreign country by substring", func() {
		value, errs := s.validator.ValidateImporterDetail(importerAddr, contactInput())
		s.Empty(errs)
		s.Equal("Germany [DE]", value.Address.Country)
	})

	s.Run("rejects an ambiguous country", func() {
		addr := importerAddr
		addr.Country = "Guinea"
		_, errs := s.validator.ValidateImporterDetail(addr, contactInput())
		s.Require().Len(errs, 1)
		s.Equal("importerAddress.country", errs[0].Field)
	})

	s.Run("rejects the UK as an importer country", func() {
		addr := importerAddr
		addr.Country = "United Kingdom (England)"
		_, errs := s.validator.ValidateImporterDetail(addr, contactInput())
		s.Require().Len(errs, 1)
		s.Equal(KindInvalid, errs[0].Kind)
	})
}

func (s *PartyValidationSuite) TestContact() {
	s.Run("rejects an invalid email", func() {
		contact := contactInput()
		contact.Email = "not-an-email"
		_, errs := s.validator.ValidateExporterDetail(ukAddressInput(), contact)
		s.Require().Len(errs, 1)
		s.Equal("exporterContactDetails.email", errs[0].Field)
	})

	s.Run("strips spreadsheet quotes from phone numbers", func() {
		contact := contactInput()
		contact.Phone = "'01484 123456'"
		value, errs := s.validator.ValidateExporterDetail(ukAddressInput(), contact)
		s.Empty(errs)
		s.Equal("01484 123456", value.Contact.Phone)
	})

	s.Run("rejects a non-numeric phone", func() {
		contact := contactInput()
		contact.Phone = "call me"
		_, errs := s.validator.ValidateExporterDetail(ukAddressInput(), contact)
		s.Require().Len(errs, 1)
		s.Equal(KindInvalid, errs[0].Kind)
	})

	s.Run("fax is optional but validated when present", func() {
		contact := contactInput()
		contact.Fax = "'+44 1484 654321'"
		value, errs := s.validator.ValidateExporterDetail(ukAddressInput(), contact)
		s.Empty(errs)
		s.Equal("+44 1484 654321", value.Contact.Fax)

		contact.Fax = "nope"
		_, errs = s.validator.ValidateExporterDetail(ukAddressInput(), contact)
		s.Require().Len(errs, 1)
	})

	s.Run("requires organisation and full name", func() {
		contact := contactInput()
		contact.OrganisationName = ""
		contact.FullName = ""
		_, errs := s.validator.ValidateExporterDetail(ukAddressInput(), contact)
		s.Len(errs, 2)
	})
}

func (s *PartyValidationSuite) TestUkExitLocation() {
	s.Run("empty input is a valid not-provided answer", func() {
		value, err := ValidateUkExitLocation("")
		s.Nil(err)
		s.False(value.Provided)
	})

	s.Run("accepts a port name", func() {
		value, err := ValidateUkExitLocation(" Dover ")
		s.Nil(err)
		s.True(value.Provided)
		s.Equal("Dover", value.Value)
	})

	s.Run("rejects disallowed characters", func() {
		_, err := ValidateUkExitLocation("Dover!")
		s.Require().NotNil(err)
		s.Equal(KindInvalid, err.Kind)
	})
}

func (s *PartyValidationSuite) TestTransitCountries() {
	s.Run("empty list is valid", func() {
		value, err := s.validator.ValidateTransitCountries(nil)
		s.Nil(err)
		s.Empty(value.Values)
	})

	s.Run("canonicalizes and preserves order", func() {
		value, err := s.validator.ValidateTransitCountries([]string{"France", "germany", "Belgium"})
		s.Nil(err)
		s.Equal([]string{"France [FR]", "Germany [DE]", "Belgium [BE]"}, value.Values)
	})

	s.Run("collapses duplicates after canonicalization", func() {
		value, err := s.validator.ValidateTransitCountries([]string{"France", "FRANCE", " france "})
		s.Nil(err)
		s.Equal([]string{"France [FR]"}, value.Values)
	})

	s.Run("accepts UK nations in transit", func() {
		value, err := s.validator.ValidateTransitCountries([]string{"United Kingdom (Wales)"})
		s.Nil(err)
		s.Equal([]string{"United Kingdom (Wales) [GB-WLS]"}, value.Values)
	})

	s.Run("rejects an ambiguous entry", func() {
		_, err := s.validator.ValidateTransitCountries([]string{"Guinea"})
		s.Require().NotNil(err)
		s.Equal("transitCountries", err.Field)
	})
}
