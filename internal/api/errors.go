package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashloop/internal/api/shared"
	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/session"
	"github.com/phrazzld/flashloop/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, session.ErrInvalidTransition):
		return http.StatusConflict

	case errors.Is(err, session.ErrInvalidOptions),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, store.ErrCorpusNotFound):
		return "Corpus not found"
	case errors.Is(err, session.ErrInvalidTransition):
		return "Action not allowed in the current session state"
	case errors.Is(err, domain.ErrInvalidPageSize):
		return "Invalid page: must be at least 1"
	case errors.Is(err, session.ErrInvalidOptions):
		return "Invalid session options"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid request format"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and safe message for err. A
// non-empty defaultMsg replaces the generic message of a 500.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		msg = defaultMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err, opts...)
}

// HandleValidationError writes a 400 with a sanitized validation message.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// SanitizeValidationError turns validator failures into a short message
// naming the first offending field. Other errors get a generic message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly messages.
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "required_without":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
