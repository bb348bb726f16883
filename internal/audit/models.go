package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action is the audited operation kind.
type Action string

const (
	ActionDraftCreated   Action = "DraftCreated"
	ActionSectionUpdated Action = "SectionUpdated"
	ActionDraftSubmitted Action = "DraftSubmitted"
	ActionDraftCancelled Action = "DraftCancelled"
	ActionDraftDeleted   Action = "DraftDeleted"
)

// Event is emitted from the declaration engine to capture key actions. Keep
// it transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	DraftID   uuid.UUID `json:"draft_id"`
	Action    Action    `json:"action"`
	Section   string    `json:"section,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
