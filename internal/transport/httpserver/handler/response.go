package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"family-records-go/internal/domain/accounts"
	"family-records-go/internal/domain/family"
	"family-records-go/internal/domain/location"
	"family-records-go/internal/domain/status"
	"family-records-go/pkg/hashid"
)

type errorEnvelope struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage"`
	Field        string `json:"field,omitempty"`
	Redirect     string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{ErrorMessage: message})
}

func writeFieldError(w http.ResponseWriter, status int, field, message string) {
	writeJSON(w, status, errorEnvelope{ErrorMessage: message, Field: field})
}

const (
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType   = "application/pdf"
)

func writeAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps service errors onto the wire: validation failures
// carry the offending field, missing records and bad tokens are 404, expired
// reset tokens are 410 with a redirect back to the forgot-password form.
func (h *Handlers) writeDomainError(w http.ResponseWriter, err error) {
	var familyValidation *family.ValidationError
	if errors.As(err, &familyValidation) {
		writeFieldError(w, http.StatusBadRequest, familyValidation.Field, familyValidation.Message)
		return
	}
	var accountsValidation *accounts.ValidationError
	if errors.As(err, &accountsValidation) {
		writeFieldError(w, http.StatusBadRequest, accountsValidation.Field, accountsValidation.Message)
		return
	}
	var locationValidation *location.ValidationError
	if errors.As(err, &locationValidation) {
		writeFieldError(w, http.StatusBadRequest, locationValidation.Field, locationValidation.Message)
		return
	}

	switch {
	case errors.Is(err, status.ErrInvalidStatus):
		writeFieldError(w, http.StatusBadRequest, "status", "Status must be active or inactive.")
	case errors.Is(err, accounts.ErrEmailNotRegistered):
		writeFieldError(w, http.StatusBadRequest, "email", "Email not registered.")
	case errors.Is(err, accounts.ErrInvalidPassword):
		writeFieldError(w, http.StatusBadRequest, "password", "Invalid Password.")
	case errors.Is(err, accounts.ErrResetExpired):
		writeJSON(w, http.StatusGone, errorEnvelope{
			ErrorMessage: "Reset link has expired.",
			Redirect:     "/forgot-password",
		})
	case errors.Is(err, hashid.ErrInvalidToken),
		errors.Is(err, accounts.ErrResetNotFound),
		errors.Is(err, location.ErrStateNotFound),
		errors.Is(err, location.ErrCityNotFound),
		errors.Is(err, family.ErrHeadNotFound),
		errors.Is(err, family.ErrMemberNotFound),
		errors.Is(err, family.ErrHobbyNotFound):
		writeError(w, http.StatusNotFound, "Record not found.")
	default:
		h.log.InternalError("http: request failed", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong.")
	}
}
