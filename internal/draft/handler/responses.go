package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"wastetrack/internal/draft"
	domainerrors "wastetrack/pkg/domain-errors"
)

// errorResponse is the JSON error envelope. Validation failures carry the
// structured error lists; everything else carries only the code and message.
type errorResponse struct {
	Error              string                    `json:"error"`
	Message            string                    `json:"message,omitempty"`
	FieldErrors        []draft.FieldError        `json:"field_errors,omitempty"`
	CrossSectionErrors []draft.CrossSectionError `json:"cross_section_errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeValidation renders a rejected section write.
func writeValidation(w http.ResponseWriter, v draft.Validation) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:              string(domainerrors.CodeValidation),
		FieldErrors:        v.FieldErrors,
		CrossSectionErrors: v.CrossSectionErrors,
	})
}

// writeError translates coded domain errors to HTTP statuses. Unknown errors
// become opaque 500s so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *domainerrors.Error
	if !errors.As(err, &domainErr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: string(domainerrors.CodeInternal)})
		return
	}
	status := http.StatusInternalServerError
	switch domainErr.Code {
	case domainerrors.CodeNotFound:
		status = http.StatusNotFound
	case domainerrors.CodeBadRequest, domainerrors.CodeInvalidInput, domainerrors.CodeValidation:
		status = http.StatusBadRequest
	case domainerrors.CodeConflict, domainerrors.CodeInvalidState, domainerrors.CodeInvariantViolation:
		status = http.StatusConflict
	}
	body := errorResponse{Error: string(domainErr.Code), Message: domainErr.Message}
	if status == http.StatusInternalServerError {
		body.Message = ""
	}
	writeJSON(w, status, body)
}
