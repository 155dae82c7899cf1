package api

import (
	"encoding/json"
	"net/http"
	"time"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
	"fact-tracker/internal/logging"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string           `json:"error"`
	Message string           `json:"message"`
	Code    string           `json:"code"`
	Details []string         `json:"details,omitempty"`
	Date    domain.Timestamp `json:"date"`
}

// statusFor maps an application error to its HTTP status.
func statusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeRangeOrder,
		errors.ErrorTypeParse, errors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeConflict:
		return http.StatusConflict
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Server-side failures are logged.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	if errors.ShouldLogError(err) {
		logging.FromContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Msg("request failed")
	}

	body := ErrorResponse{
		Error:   http.StatusText(status),
		Message: errors.GetUserMessage(err),
		Code:    errors.GetErrorCode(err),
		Date:    domain.Timestamp(time.Now().UTC()),
	}
	if appErr, ok := errors.AsAppError(err); ok {
		body.Details = appErr.Itemized()
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
