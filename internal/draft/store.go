package draft

import (
	"context"

	"github.com/google/uuid"
)

// Store persists declarations. Implementations treat the Submission as an
// opaque snapshot: Update replaces the whole record. Get and ListByAccount
// never return Cancelled or Deleted declarations; those are retained for
// audit but invisible to the API.
type Store interface {
	Create(ctx context.Context, s *Submission) error
	Get(ctx context.Context, accountID, id uuid.UUID) (*Submission, error)
	Update(ctx context.Context, s *Submission) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Submission, error)
}
