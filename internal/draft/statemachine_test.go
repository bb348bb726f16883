package draft

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "wastetrack/pkg/domain-errors"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StateInProgress, StateSubmittedWithEstimates))
	assert.True(t, CanTransition(StateInProgress, StateSubmittedWithActuals))
	assert.True(t, CanTransition(StateInProgress, StateCancelled))
	assert.True(t, CanTransition(StateInProgress, StateDeleted))
	assert.True(t, CanTransition(StateSubmittedWithEstimates, StateUpdatedWithActuals))

	assert.False(t, CanTransition(StateSubmittedWithActuals, StateUpdatedWithActuals))
	assert.False(t, CanTransition(StateUpdatedWithActuals, StateUpdatedWithActuals))
	assert.False(t, CanTransition(StateInProgress, StateUpdatedWithActuals))
	assert.False(t, CanTransition(StateSubmittedWithEstimates, StateInProgress))

	for _, terminal := range []SubmissionStatus{StateCancelled, StateDeleted} {
		for _, to := range []SubmissionStatus{
			StateInProgress, StateSubmittedWithEstimates, StateSubmittedWithActuals,
			StateUpdatedWithActuals, StateCancelled, StateDeleted,
		} {
			assert.False(t, CanTransition(terminal, to), "%s must absorb", terminal)
		}
	}
}

func TestTransition(t *testing.T) {
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	sub := NewSubmission(uuid.New(), "REF-1", now)

	later := now.Add(time.Hour)
	require.NoError(t, sub.Transition(StateSubmittedWithEstimates, later))
	assert.Equal(t, StateSubmittedWithEstimates, sub.State.Status)
	assert.Equal(t, later, sub.State.Timestamp)

	err := sub.Transition(StateInProgress, later)
	require.Error(t, err)
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeInvalidState))
}

func TestSubmittedVariant(t *testing.T) {
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	sub := NewSubmission(uuid.New(), "REF-1", now)

	date := now.AddDate(0, 0, 7)
	sub.WasteQuantity = CompleteSection(WasteQuantity{
		Type:       VariantActual,
		ActualData: &QuantityData{Kind: KindWeight, Unit: UnitTonne, Value: 2},
	})
	sub.CollectionDate = CompleteSection(CollectionDate{Type: VariantActual, ActualDate: &date})
	assert.Equal(t, StateSubmittedWithActuals, sub.SubmittedVariant())

	sub.CollectionDate.Value.Type = VariantEstimate
	sub.CollectionDate.Value.EstimateDate = &date
	assert.Equal(t, StateSubmittedWithEstimates, sub.SubmittedVariant())
}

func TestTransactionID(t *testing.T) {
	id := uuid.MustParse("1f47ac10-58cc-4372-a567-0e02b2c3d479")
	at := time.Date(2026, time.March, 5, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2603_1F47AC10", TransactionID(at, id))

	december := time.Date(2031, time.December, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "3112_1F47AC10", TransactionID(december, id))
}
