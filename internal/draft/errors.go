package draft

// ErrorKind discriminates field-level validation failures. Kinds are stable
// for a given input so callers can key message catalogues and snapshot tests
// off them; Message is an opaque human-readable payload.
type ErrorKind string

const (
	KindEmpty       ErrorKind = "empty"
	KindCharTooFew  ErrorKind = "char_too_few"
	KindCharTooMany ErrorKind = "char_too_many"
	KindInvalid     ErrorKind = "invalid"
	KindTooMany     ErrorKind = "too_many"
	KindLaboratory  ErrorKind = "laboratory"
	KindMissingType ErrorKind = "missing_type"
)

// CrossKind discriminates cross-section failures, separate from field kinds.
type CrossKind string

const (
	CrossWasteCodeQuantity   CrossKind = "waste_code_quantity"
	CrossWasteCodeCarriers   CrossKind = "waste_code_carriers"
	CrossWasteCodeFacilities CrossKind = "waste_code_facilities"
	CrossImporterTransit     CrossKind = "importer_transit"
)

// FieldError is a single-section, single-cause validation failure.
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// CrossSectionError is a failure only detectable once two or more sections
// hold validated values. Sections lists every section implicated.
type CrossSectionError struct {
	Sections []SectionName `json:"sections"`
	Kind     CrossKind     `json:"kind"`
	Message  string        `json:"message"`
}

// Validation accumulates every problem found during one section write.
// An empty Validation means the write was accepted.
type Validation struct {
	FieldErrors        []FieldError        `json:"field_errors,omitempty"`
	CrossSectionErrors []CrossSectionError `json:"cross_section_errors,omitempty"`
}

// OK reports whether the write passed validation.
func (v Validation) OK() bool {
	return len(v.FieldErrors) == 0 && len(v.CrossSectionErrors) == 0
}

func fieldError(field string, kind ErrorKind, message string) FieldError {
	return FieldError{Field: field, Kind: kind, Message: message}
}

func crossError(kind CrossKind, message string, sections ...SectionName) CrossSectionError {
	return CrossSectionError{Sections: sections, Kind: kind, Message: message}
}
