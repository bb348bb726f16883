package draft

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "wastetrack/pkg/domain-errors"
)

// allowedTransitions is the declaration lifecycle. Cancelled and Deleted are
// absorbing.
var allowedTransitions = map[SubmissionStatus][]SubmissionStatus{
	StateInProgress: {
		StateSubmittedWithEstimates,
		StateSubmittedWithActuals,
		StateCancelled,
		StateDeleted,
	},
	StateSubmittedWithEstimates: {
		StateUpdatedWithActuals,
		StateCancelled,
		StateDeleted,
	},
	StateSubmittedWithActuals: {
		StateCancelled,
		StateDeleted,
	},
	StateUpdatedWithActuals: {
		StateCancelled,
		StateDeleted,
	},
	StateCancelled: {},
	StateDeleted:   {},
}

// CanTransition reports whether moving from one lifecycle state to another is
// allowed.
func CanTransition(from, to SubmissionStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves the declaration to a new lifecycle state, stamping the
// transition time.
func (s *Submission) Transition(to SubmissionStatus, at time.Time) error {
	if !CanTransition(s.State.Status, to) {
		return domainerrors.New(
			domainerrors.CodeInvalidState,
			fmt.Sprintf("cannot transition submission from %s to %s", s.State.Status, to),
		)
	}
	s.State = SubmissionState{Status: to, Timestamp: at}
	return nil
}

// SubmittedVariant picks the post-declaration state: actuals only when both
// the quantity and the collection date were recorded as actual data.
func (s *Submission) SubmittedVariant() SubmissionStatus {
	quantityActual := s.WasteQuantity.Value != nil && s.WasteQuantity.Value.Type == VariantActual
	dateActual := s.CollectionDate.Value != nil && s.CollectionDate.Value.Type == VariantActual
	if quantityActual && dateActual {
		return StateSubmittedWithActuals
	}
	return StateSubmittedWithEstimates
}

// TransactionID derives the human-quotable submission number from the
// declaration time and the declaration's identifier: two-digit year, two-digit
// month, then the first eight characters of the dash-stripped ID uppercased.
func TransactionID(at time.Time, id uuid.UUID) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("%02d%02d_%s", at.Year()%100, int(at.Month()), strings.ToUpper(compact[:8]))
}
