package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/pkg/logger"
)

// ErrorResponse is the structured JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Stable error codes.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeRateLimit     = "RATE_LIMIT_EXCEEDED"
	CodeUnavailable   = "DATA_UNAVAILABLE"
	CodeInternalError = "INTERNAL_ERROR"
)

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}

// FromError maps domain errors onto HTTP statuses: validation and conflict
// errors are 400 with the explanatory message (except a duplicate review,
// which is 409), ownership violations 403, unknown ids 404, an unreachable
// store 503, and anything unexpected a generic 500 that is only detailed in
// the server log.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
	case errors.Is(err, domain.ErrDatesUnavailable),
		errors.Is(err, domain.ErrReviewNotAllowed),
		errors.Is(err, domain.ErrNotCancellable),
		errors.Is(err, domain.ErrEmailTaken):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeConflict)
	case errors.Is(err, domain.ErrDuplicateReview):
		WriteError(w, http.StatusConflict, err.Error(), CodeConflict)
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, err.Error(), CodeUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		WriteError(w, http.StatusForbidden, "access denied", CodeForbidden)
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, "resource not found", CodeNotFound)
	case errors.Is(err, domain.ErrDataUnavailable):
		logger.ErrorContext(r.Context(), "store unavailable", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "service temporarily unavailable", CodeUnavailable)
	default:
		logger.ErrorContext(r.Context(), "unexpected error", "error", err, "path", r.URL.Path)
		WriteError(w, http.StatusInternalServerError, "internal server error", CodeInternalError)
	}
}
