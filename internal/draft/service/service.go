// Package service orchestrates declaration writes: it loads the record,
// validates section input, applies cross-section checks and derived-status
// rules, and persists the result. Handlers stay thin and domain logic stays
// in the draft package.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"wastetrack/internal/audit"
	"wastetrack/internal/draft"
	"wastetrack/internal/platform/metrics"
	domainerrors "wastetrack/pkg/domain-errors"
	"wastetrack/pkg/platform/sentinel"
	"wastetrack/pkg/requestcontext"
)

// Service is the declaration engine entry point.
type Service struct {
	store     draft.Store
	validator *draft.Validator
	logger    *slog.Logger
	metrics   *metrics.Metrics
	audit     *audit.Publisher
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics enables operation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditPublisher enables the audit trail.
func WithAuditPublisher(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

// New constructs a Service over a store and validator.
func New(store draft.Store, validator *draft.Validator, opts ...Option) *Service {
	s := &Service{
		store:     store,
		validator: validator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateDraft opens a new InProgress declaration under the account.
func (s *Service) CreateDraft(ctx context.Context, accountID uuid.UUID, reference string) (*draft.Submission, draft.Validation, error) {
	ref, fieldErr := draft.ValidateReference(reference)
	if fieldErr != nil {
		return nil, draft.Validation{FieldErrors: []draft.FieldError{*fieldErr}}, nil
	}

	sub := draft.NewSubmission(accountID, ref, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, sub); err != nil {
		return nil, draft.Validation{}, s.translate(err)
	}

	s.logger.Info("draft created", "account_id", accountID, "draft_id", sub.ID)
	if s.metrics != nil {
		s.metrics.DraftsCreated.Inc()
	}
	s.emit(ctx, sub, audit.ActionDraftCreated, "")
	return sub, draft.Validation{}, nil
}

// GetDraft loads one visible declaration.
func (s *Service) GetDraft(ctx context.Context, accountID, id uuid.UUID) (*draft.Submission, error) {
	sub, err := s.store.Get(ctx, accountID, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return sub, nil
}

// GetSection returns one section's status and value for reading.
func (s *Service) GetSection(ctx context.Context, accountID, id uuid.UUID, name draft.SectionName) (any, error) {
	sub, err := s.store.Get(ctx, accountID, id)
	if err != nil {
		return nil, s.translate(err)
	}
	section, ok := sectionView(sub, name)
	if !ok {
		return nil, domainerrors.New(domainerrors.CodeNotFound, "unknown section "+string(name))
	}
	return section, nil
}

func sectionView(sub *draft.Submission, name draft.SectionName) (any, bool) {
	switch name {
	case draft.SectionWasteDescription:
		return sub.WasteDescription, true
	case draft.SectionWasteQuantity:
		return sub.WasteQuantity, true
	case draft.SectionExporterDetail:
		return sub.ExporterDetail, true
	case draft.SectionImporterDetail:
		return sub.ImporterDetail, true
	case draft.SectionCollectionDate:
		return sub.CollectionDate, true
	case draft.SectionCarriers:
		return sub.Carriers, true
	case draft.SectionCollectionDetail:
		return sub.CollectionDetail, true
	case draft.SectionUkExitLocation:
		return sub.UkExitLocation, true
	case draft.SectionTransitCountries:
		return sub.TransitCountries, true
	case draft.SectionRecoveryFacilityDetail:
		return sub.RecoveryFacilityDetail, true
	case draft.SectionSubmissionConfirmation:
		return sub.SubmissionConfirmation, true
	case draft.SectionSubmissionDeclaration:
		return sub.SubmissionDeclaration, true
	default:
		return nil, false
	}
}

// loadForWrite fetches the declaration and enforces the lifecycle rules for a
// write against the named section. After submission only the estimate
// resolution path stays open, and that path accepts actual data only.
func (s *Service) loadForWrite(ctx context.Context, accountID, id uuid.UUID, name draft.SectionName) (*draft.Submission, error) {
	sub, err := s.store.Get(ctx, accountID, id)
	if err != nil {
		return nil, s.translate(err)
	}
	if sub.State.Status.Submitted() {
		if name != draft.SectionWasteQuantity && name != draft.SectionCollectionDate {
			return nil, domainerrors.New(domainerrors.CodeInvalidState, "a submitted declaration cannot be edited")
		}
	}
	if sub.SectionStatusOf(name) == draft.StatusCannotStart {
		return nil, domainerrors.New(domainerrors.CodeInvariantViolation, "section "+string(name)+" cannot be started yet")
	}
	return sub, nil
}

// commit re-derives statuses, stamps modification time, persists and emits.
func (s *Service) commit(ctx context.Context, sub *draft.Submission, name draft.SectionName) error {
	sub.RecomputeDerived()
	sub.Modified = requestcontext.Now(ctx)
	if err := s.store.Update(ctx, sub); err != nil {
		return s.translate(err)
	}
	s.emit(ctx, sub, audit.ActionSectionUpdated, string(name))
	return nil
}

// reject records a validation failure without mutating stored state.
func (s *Service) reject(name draft.SectionName, v draft.Validation) draft.Validation {
	if s.metrics != nil {
		s.metrics.IncrementValidationFailure(string(name))
	}
	return v
}

func (s *Service) emit(ctx context.Context, sub *draft.Submission, action audit.Action, section string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Emit(ctx, audit.Event{
		AccountID: sub.AccountID,
		DraftID:   sub.ID,
		Action:    action,
		Section:   section,
		Timestamp: requestcontext.Now(ctx),
	})
	if err != nil {
		s.logger.Error("audit emit failed", "draft_id", sub.ID, "action", action, "error", err)
	}
}

// translate maps storage sentinels onto coded domain errors.
func (s *Service) translate(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return domainerrors.New(domainerrors.CodeNotFound, "draft not found")
	case errors.Is(err, sentinel.ErrConflict):
		return domainerrors.New(domainerrors.CodeConflict, "draft already exists")
	default:
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "storage failure")
	}
}
