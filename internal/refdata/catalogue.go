// Package refdata holds the read-only reference catalogues the engine
// validates against: waste codes per classification, EWC codes, countries and
// recovery/disposal codes. Catalogues are loaded once and never mutated.
package refdata

import (
	"strings"
)

// Classification code types with dedicated waste-code catalogues.
const (
	CodeTypeBaselAnnexIX = "BaselAnnexIX"
	CodeTypeOECD         = "OECD"
	CodeTypeAnnexIIIA    = "AnnexIIIA"
	CodeTypeAnnexIIIB    = "AnnexIIIB"
)

// WasteCode is one catalogue row. AnnexIIIA rows may be composite, e.g.
// "B1010 and B1050".
type WasteCode struct {
	Code        string
	Description string
}

// EWCCode is a six-digit European Waste Catalogue entry, stored without spaces.
type EWCCode struct {
	Code        string
	Description string
}

// Country is a canonical "Name [ISO]" catalogue row.
type Country struct {
	Name string
}

// RecoveryCode is an R-code or D-code row. Laboratory facilities use disposal
// (D) codes, interim sites and recovery facilities use recovery (R) codes.
type RecoveryCode struct {
	Code        string
	Description string
}

// Catalogue bundles all lookup tables behind the matching policies the
// validators need. Construct via Default or New; zero value is unusable.
type Catalogue struct {
	wasteCodes    map[string][]WasteCode
	ewcCodes      map[string]EWCCode
	countries     []Country
	ukNations     []Country
	ukCountries   []Country
	recoveryCodes []RecoveryCode
	disposalCodes []RecoveryCode
}

// New builds a catalogue from explicit tables. The UK-inclusive country list
// is derived as the UK nations followed by the plain list.
func New(
	wasteCodes map[string][]WasteCode,
	ewcCodes []EWCCode,
	countries []Country,
	ukNations []Country,
	recoveryCodes []RecoveryCode,
	disposalCodes []RecoveryCode,
) *Catalogue {
	ewc := make(map[string]EWCCode, len(ewcCodes))
	for _, c := range ewcCodes {
		ewc[normalizeCode(c.Code)] = c
	}
	ukCountries := make([]Country, 0, len(ukNations)+len(countries))
	ukCountries = append(ukCountries, ukNations...)
	ukCountries = append(ukCountries, countries...)
	return &Catalogue{
		wasteCodes:    wasteCodes,
		ewcCodes:      ewc,
		countries:     countries,
		ukNations:     ukNations,
		ukCountries:   ukCountries,
		recoveryCodes: recoveryCodes,
		disposalCodes: disposalCodes,
	}
}

// WasteCodes returns the catalogue rows for one classification type.
func (c *Catalogue) WasteCodes(codeType string) []WasteCode {
	return c.wasteCodes[codeType]
}

// MatchWasteCode resolves a raw waste code against the catalogue for the
// given classification type and returns the canonical code.
//
// Input is stripped of whitespace and upper-cased before lookup. For
// AnnexIIIA the input may list several component codes separated by ";"; an
// entry matches only if every component appears in the entry's code string,
// which supports composite rows such as "B1010 and B1050".
func (c *Catalogue) MatchWasteCode(codeType, raw string) (string, bool) {
	norm := normalizeCode(raw)
	if norm == "" {
		return "", false
	}

	if codeType == CodeTypeAnnexIIIA {
		components := splitCodes(norm)
		if len(components) == 0 {
			return "", false
		}
		for _, entry := range c.wasteCodes[codeType] {
			entryNorm := normalizeCode(entry.Code)
			all := true
			for _, component := range components {
				if !strings.Contains(entryNorm, component) {
					all = false
					break
				}
			}
			if all {
				return entry.Code, true
			}
		}
		return "", false
	}

	for _, entry := range c.wasteCodes[codeType] {
		if normalizeCode(entry.Code) == norm {
			return entry.Code, true
		}
	}
	return "", false
}

// HasEWCCode reports whether the stripped, upper-cased code is catalogued.
func (c *Catalogue) HasEWCCode(raw string) bool {
	_, ok := c.ewcCodes[normalizeCode(raw)]
	return ok
}

// MatchCountry resolves raw input against the plain country list.
func (c *Catalogue) MatchCountry(raw string) (string, bool) {
	return matchCountry(c.countries, raw)
}

// MatchCountryIncludingUK resolves raw input against the UK-inclusive list,
// used for transit countries where UK nations are legal entries.
func (c *Catalogue) MatchCountryIncludingUK(raw string) (string, bool) {
	return matchCountry(c.ukCountries, raw)
}

// MatchUKNation resolves raw input against the UK nations only, used for
// exporter and collection addresses which must be UK-based.
func (c *Catalogue) MatchUKNation(raw string) (string, bool) {
	return matchCountry(c.ukNations, raw)
}

// MatchRecoveryCode resolves a raw R-code to its canonical form.
func (c *Catalogue) MatchRecoveryCode(raw string) (string, bool) {
	return matchCode(c.recoveryCodes, raw)
}

// MatchDisposalCode resolves a raw D-code to its canonical form.
func (c *Catalogue) MatchDisposalCode(raw string) (string, bool) {
	return matchCode(c.disposalCodes, raw)
}

// matchCountry applies case-insensitive substring containment against the
// canonical "Name [ISO]" rows. The input must hit exactly one row; zero or
// several hits both fail so ambiguous fragments like "guinea" are rejected.
func matchCountry(rows []Country, raw string) (string, bool) {
	needle := strings.ToUpper(strings.TrimSpace(raw))
	if needle == "" {
		return "", false
	}

	var match string
	var hits int
	for _, row := range rows {
		if strings.Contains(strings.ToUpper(row.Name), needle) {
			match = row.Name
			hits++
			if hits > 1 {
				return "", false
			}
		}
	}
	if hits != 1 {
		return "", false
	}
	return match, true
}

func matchCode(rows []RecoveryCode, raw string) (string, bool) {
	norm := normalizeCode(raw)
	if norm == "" {
		return "", false
	}
	for _, row := range rows {
		if normalizeCode(row.Code) == norm {
			return row.Code, true
		}
	}
	return "", false
}

func normalizeCode(raw string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
}

func splitCodes(norm string) []string {
	parts := strings.Split(norm, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
