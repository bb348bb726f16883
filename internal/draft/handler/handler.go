// Package handler is the thin HTTP layer over the declaration engine. It
// decodes requests, delegates to the service and renders the shared error
// envelope; no business rules live here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"wastetrack/internal/draft"
	"wastetrack/internal/draft/service"
	domainerrors "wastetrack/pkg/domain-errors"
	"wastetrack/pkg/validation"
)

// Handler handles declaration endpoints.
type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

// New creates a declaration Handler.
func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts the declaration routes on the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/accounts/{accountID}/drafts", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)

		r.Route("/{draftID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
			r.Post("/cancel", h.handleCancel)
			r.Post("/submit", h.handleSubmit)
			r.Get("/sections/{section}", h.handleGetSection)

			r.Put("/waste-description", h.handleSetWasteDescription)
			r.Put("/waste-quantity", h.handleSetWasteQuantity)
			r.Put("/exporter-detail", h.handleSetExporterDetail)
			r.Put("/importer-detail", h.handleSetImporterDetail)
			r.Put("/collection-date", h.handleSetCollectionDate)
			r.Put("/carriers", h.handleSetCarriers)
			r.Put("/collection-detail", h.handleSetCollectionDetail)
			r.Put("/exit-location", h.handleSetExitLocation)
			r.Put("/transit-countries", h.handleSetTransitCountries)
			r.Put("/recovery-facilities", h.handleSetRecoveryFacilities)
			r.Put("/confirmation", h.handleSetConfirmation)
		})
	})
}

// ids extracts and validates the path identifiers.
func ids(r *http.Request) (accountID, draftID uuid.UUID, err error) {
	accountID, err = uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, domainerrors.New(domainerrors.CodeBadRequest, "invalid account id")
	}
	raw := chi.URLParam(r, "draftID")
	if raw == "" {
		return accountID, uuid.Nil, nil
	}
	draftID, err = uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, uuid.Nil, domainerrors.New(domainerrors.CodeBadRequest, "invalid draft id")
	}
	return accountID, draftID, nil
}

func decode(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return domainerrors.New(domainerrors.CodeBadRequest, "invalid request body")
	}
	return nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	accountID, _, err := ids(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req CreateDraftRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	sub, v, err := h.service.CreateDraft(r.Context(), accountID, req.Reference)
	if err != nil {
		writeError(w, err)
		return
	}
	if !v.OK() {
		writeValidation(w, v)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	accountID, draftID, err := ids(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sub, err := h.service.GetDraft(r.Context(), accountID, draftID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	accountID, _, err := ids(r)
	if err != nil {
		writeError(w, err)
		return
	}

	params := service.ListParams{
		Order: service.OrderDescending,
		Token: r.URL.Query().Get("token"),
	}
	if strings.EqualFold(r.URL.Query().Get("order"), "asc") {
		params.Order = service.OrderAscending
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			params.PageSize = n
		}
	}
	if raw := r.URL.Query().Get("state"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			params.State = append(params.State, draft.SubmissionStatus(strings.TrimSpace(s)))
		}
	}

	page, err := h.service.ListDrafts(r.Context(), accountID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleGetSection(w http.ResponseWriter, r *http.Request) {
	accountID, draftID, err := ids(r)
	if err != nil {
		writeError(w, err)
		return
	}
	name := draft.SectionName(chi.URLParam(r, "section"))
	section, err := h.service.GetSection(r.Context(), accountID, draftID, name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

// setSection runs the decode/delegate/respond cycle shared by every section
// write endpoint.
func (h *Handler) setSection(w http.ResponseWriter, r *http.Request, req any, run func(accountID, draftID uuid.UUID) (draft.Validation, error)) {
	accountID, draftID, err := ids(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := decode(r, req); err != nil {
		writeError(w, err)
		return
	}
	v, err := run(accountID, draftID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !v.OK() {
		writeValidation(w, v)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetWasteDescription(w http.ResponseWriter, r *http.Request) {
	var req WasteDescriptionRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetWasteDescription(r.Context(), accountID, draftID, req.toInput())
	})
}

func (h *Handler) handleSetWasteQuantity(w http.ResponseWriter, r *http.Request) {
	var req WasteQuantityRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetWasteQuantity(r.Context(), accountID, draftID, req.toInput())
	})
}

func (h *Handler) handleSetExporterDetail(w http.ResponseWriter, r *http.Request) {
	var req PartyRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetExporterDetail(r.Context(), accountID, draftID, req.Address.toInput(), req.Contact.toInput())
	})
}

func (h *Handler) handleSetImporterDetail(w http.ResponseWriter, r *http.Request) {
	var req PartyRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetImporterDetail(r.Context(), accountID, draftID, req.Address.toInput(), req.Contact.toInput())
	})
}

func (h *Handler) handleSetCollectionDate(w http.ResponseWriter, r *http.Request) {
	var req CollectionDateRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetCollectionDate(r.Context(), accountID, draftID, req.toInput())
	})
}

func (h *Handler) handleSetCarriers(w http.ResponseWriter, r *http.Request) {
	var req CarriersRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetCarriers(r.Context(), accountID, draftID, req.toInputs())
	})
}

func (h *Handler) handleSetCollectionDetail(w http.ResponseWriter, r *http.Request) {
	var req PartyRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetCollectionDetail(r.Context(), accountID, draftID, req.Address.toInput(), req.Contact.toInput())
	})
}

func (h *Handler) handleSetExitLocation(w http.ResponseWriter, r *http.Request) {
	var req ExitLocationRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetUkExitLocation(r.Context(), accountID, draftID, req.Value)
	})
}

func (h *Handler) handleSetTransitCountries(w http.ResponseWriter, r *http.Request) {
	var req TransitCountriesRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetTransitCountries(r.Context(), accountID, draftID, req.Values)
	})
}

func (h *Handler) handleSetRecoveryFacilities(w http.ResponseWriter, r *http.Request) {
	var req FacilitiesRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetRecoveryFacilities(r.Context(), accountID, draftID, req.toInputs())
	})
}

func (h *Handler) handleSetConfirmation(w http.ResponseWriter, r *http.Request) {
	var req ConfirmationRequest
	h.setSection(w, r, &req, func(accountID, draftID uuid.UUID) (draft.Validation, error) {
		return h.service.SetConfirmation(r.Context(), accountID, draftID, req.Confirmed)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	accountID, draftID, err := ids(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sub, err := h.service.Submit(r.Context(), accountID, draftID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	accountID, draftID, err := ids(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req CancelRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	v, err := h.service.Cancel(r.Context(), accountID, draftID, draft.CancellationReason(req.Reason), req.Detail)
	if err != nil {
		writeError(w, err)
		return
	}
	if !v.OK() {
		writeValidation(w, v)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	accountID, draftID, err := ids(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), accountID, draftID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
