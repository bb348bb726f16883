package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"wastetrack/internal/draft"
	domainerrors "wastetrack/pkg/domain-errors"
)

// SortOrder orders listings by last-modified time.
type SortOrder string

const (
	OrderAscending  SortOrder = "ASC"
	OrderDescending SortOrder = "DESC"
)

// DefaultPageSize applies when the caller does not set one.
const DefaultPageSize = 15

// ListParams selects and pages a declaration listing. Token is a 1-based
// page number; anything unparsable falls back to the first page.
type ListParams struct {
	Order    SortOrder
	PageSize int
	State    []draft.SubmissionStatus
	Token    string
}

// DraftSummary is one listing row.
type DraftSummary struct {
	ID             uuid.UUID                    `json:"id"`
	Reference      string                       `json:"reference"`
	State          draft.SubmissionState        `json:"state"`
	CollectionDate *draft.CollectionDate        `json:"collection_date,omitempty"`
	Declaration    *draft.SubmissionDeclaration `json:"declaration,omitempty"`
	Modified       time.Time                    `json:"modified"`
}

// Page is one listing page plus its pagination metadata.
type Page struct {
	Values       []DraftSummary `json:"values"`
	PageNumber   int            `json:"page_number"`
	TotalPages   int            `json:"total_pages"`
	TotalRecords int            `json:"total_records"`
	NextToken    string         `json:"next_token,omitempty"`
	PrevToken    string         `json:"prev_token,omitempty"`
}

// ListDrafts pages an account's declarations. State-filtered listings that
// match nothing report not-found rather than an empty page; filters over the
// actual-data states re-order by actual collection date, newest first, so
// resolved shipments surface in shipping order.
func (s *Service) ListDrafts(ctx context.Context, accountID uuid.UUID, params ListParams) (*Page, error) {
	subs, err := s.store.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, s.translate(err)
	}
	if s.metrics != nil {
		s.metrics.ListRequests.Inc()
	}

	if len(params.State) > 0 {
		subs = filterByState(subs, params.State)
		if len(subs) == 0 {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "no drafts match the requested states")
		}
	}

	if len(params.State) > 0 && allActualStates(params.State) {
		sort.SliceStable(subs, func(i, j int) bool {
			return actualDate(subs[i]).After(actualDate(subs[j]))
		})
	} else {
		ascending := params.Order == OrderAscending
		sort.SliceStable(subs, func(i, j int) bool {
			if ascending {
				return subs[i].Modified.Before(subs[j].Modified)
			}
			return subs[i].Modified.After(subs[j].Modified)
		})
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalRecords := len(subs)
	totalPages := (totalRecords + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	pageNumber := parsePageToken(params.Token)
	if pageNumber > totalPages {
		pageNumber = totalPages
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > totalRecords {
		end = totalRecords
	}
	values := make([]DraftSummary, 0, end-start)
	for _, sub := range subs[start:end] {
		values = append(values, summarize(sub))
	}

	page := &Page{
		Values:       values,
		PageNumber:   pageNumber,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
	}
	if pageNumber < totalPages {
		page.NextToken = strconv.Itoa(pageNumber + 1)
	}
	if pageNumber > 1 {
		page.PrevToken = strconv.Itoa(pageNumber - 1)
	}
	return page, nil
}

// parsePageToken reads a 1-based page number; unknown tokens mean page one.
func parsePageToken(token string) int {
	if token == "" {
		return 1
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func filterByState(subs []*draft.Submission, states []draft.SubmissionStatus) []*draft.Submission {
	wanted := make(map[draft.SubmissionStatus]bool, len(states))
	for _, state := range states {
		wanted[state] = true
	}
	var out []*draft.Submission
	for _, sub := range subs {
		if wanted[sub.State.Status] {
			out = append(out, sub)
		}
	}
	return out
}

// allActualStates reports whether every requested state carries actual data.
func allActualStates(states []draft.SubmissionStatus) bool {
	for _, state := range states {
		if state != draft.StateSubmittedWithActuals && state != draft.StateUpdatedWithActuals {
			return false
		}
	}
	return true
}

func actualDate(sub *draft.Submission) time.Time {
	if sub.CollectionDate.Value != nil && sub.CollectionDate.Value.ActualDate != nil {
		return *sub.CollectionDate.Value.ActualDate
	}
	return time.Time{}
}

func summarize(sub *draft.Submission) DraftSummary {
	summary := DraftSummary{
		ID:        sub.ID,
		Reference: sub.Reference,
		State:     sub.State,
		Modified:  sub.Modified,
	}
	summary.CollectionDate = sub.CollectionDate.Value
	summary.Declaration = sub.SubmissionDeclaration.Value
	return summary
}
