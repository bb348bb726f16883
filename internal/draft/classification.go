package draft

// QuantityCategory is the quantity-magnitude category a classification
// implies. Bulk categories are distinct per classification type because the
// catalogue, unit and bound rules differ between them; NotApplicable waste is
// always small (laboratory) waste.
type QuantityCategory string

const (
	CategorySmall     QuantityCategory = "small"
	CategoryBulkBasel QuantityCategory = "bulk_basel_annex_ix"
	CategoryBulkOECD  QuantityCategory = "bulk_oecd"
	CategoryBulkIIIA  QuantityCategory = "bulk_annex_iiia"
	CategoryBulkIIIB  QuantityCategory = "bulk_annex_iiib"
)

// CategoryOf maps a classification to its quantity category.
func CategoryOf(c Classification) QuantityCategory {
	switch c {
	case ClassificationBaselAnnexIX:
		return CategoryBulkBasel
	case ClassificationOECD:
		return CategoryBulkOECD
	case ClassificationAnnexIIIA:
		return CategoryBulkIIIA
	case ClassificationAnnexIIIB:
		return CategoryBulkIIIB
	default:
		return CategorySmall
	}
}

// Bulk reports whether the category uses bulk units and bounds.
func (c QuantityCategory) Bulk() bool {
	return c != CategorySmall
}

// ResetAction is what happens to the waste-quantity section when the waste
// description's classification changes.
type ResetAction int

const (
	// PreserveQuantity keeps the held value and re-validates it against the
	// (unchanged) category rules.
	PreserveQuantity ResetAction = iota
	// ResetQuantity discards the held value and drops the section back to
	// NotStarted: the old value was captured under different unit/bound rules
	// and could silently violate the new ones.
	ResetQuantity
)

// quantityResetTable is the exhaustive forced-reset matrix keyed by
// (old category, new category). Spelled out row by row so every pairing is
// auditable; quantityResetAction falls back to ResetQuantity for any pairing
// the table does not name.
var quantityResetTable = map[QuantityCategory]map[QuantityCategory]ResetAction{
	CategorySmall: {
		CategorySmall:     PreserveQuantity,
		CategoryBulkBasel: ResetQuantity,
		CategoryBulkOECD:  ResetQuantity,
		CategoryBulkIIIA:  ResetQuantity,
		CategoryBulkIIIB:  ResetQuantity,
	},
	CategoryBulkBasel: {
		CategorySmall:     ResetQuantity,
		CategoryBulkBasel: PreserveQuantity,
		CategoryBulkOECD:  ResetQuantity,
		CategoryBulkIIIA:  ResetQuantity,
		CategoryBulkIIIB:  ResetQuantity,
	},
	CategoryBulkOECD: {
		CategorySmall:     ResetQuantity,
		CategoryBulkBasel: ResetQuantity,
		CategoryBulkOECD:  PreserveQuantity,
		CategoryBulkIIIA:  ResetQuantity,
		CategoryBulkIIIB:  ResetQuantity,
	},
	CategoryBulkIIIA: {
		CategorySmall:     ResetQuantity,
		CategoryBulkBasel: ResetQuantity,
		CategoryBulkOECD:  ResetQuantity,
		CategoryBulkIIIA:  PreserveQuantity,
		CategoryBulkIIIB:  ResetQuantity,
	},
	CategoryBulkIIIB: {
		CategorySmall:     ResetQuantity,
		CategoryBulkBasel: ResetQuantity,
		CategoryBulkOECD:  ResetQuantity,
		CategoryBulkIIIA:  ResetQuantity,
		CategoryBulkIIIB:  PreserveQuantity,
	},
}

// QuantityResetAction resolves the forced-reset action for a classification
// change on the waste description section.
func QuantityResetAction(old, updated Classification) ResetAction {
	row, ok := quantityResetTable[CategoryOf(old)]
	if !ok {
		return ResetQuantity
	}
	action, ok := row[CategoryOf(updated)]
	if !ok {
		return ResetQuantity
	}
	return action
}
