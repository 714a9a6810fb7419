package shapekit

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// ErrorDetail describes a request that could not be validated at all.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}

// WriteResult renders res as JSON with the given status.
func WriteResult(w http.ResponseWriter, status int, res *validator.Result) error {
	return writeJSON(w, status, res)
}

// WriteError renders err as a JSON error body with the status from StatusFor.
// Messages of server errors are not exposed.
func WriteError(w http.ResponseWriter, err error) error {
	status, code := StatusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	return writeJSON(w, status, errorResponse{Error: &ErrorDetail{Code: code, Message: message}})
}

// StatusFor maps a decoding or engine error to an HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingContentType), errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, "unsupported_media_type"
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, ErrInvalidJSON):
		return http.StatusBadRequest, "invalid_json"
	case errors.Is(err, validator.ErrUnknownShape):
		return http.StatusNotFound, "unknown_shape"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
