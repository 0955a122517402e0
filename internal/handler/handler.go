package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"catalog-import/internal/middleware"
	"catalog-import/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful to report to the client.
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("error", message).
		Str("code", code).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestID,
	})
}

// writeServiceError maps service errors onto HTTP responses. Unknown errors
// become 500 without leaking their text.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	writeError(w, r, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message, logger)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeMissingFile, model.ErrCodeInvalidWorkbook, model.ErrCodeInvalidParameter:
		return http.StatusBadRequest
	case model.ErrCodeEmptyWorkbook:
		return http.StatusUnprocessableEntity
	case model.ErrCodeSourceTooLarge:
		return http.StatusRequestEntityTooLarge
	case model.ErrCodeSourceNotFound, model.ErrCodeProductNotFound:
		return http.StatusNotFound
	case model.ErrCodeStorageDisabled:
		return http.StatusServiceUnavailable
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
