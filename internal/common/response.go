package common

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorBody represents a consistent error payload returned by the API.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope wraps successful payloads.
type Envelope struct {
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// JSON writes the provided value to the response writer as JSON.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONData writes v inside the data envelope.
func JSONData(w http.ResponseWriter, status int, v any) {
	JSON(w, status, Envelope{Data: v})
}

// JSONPage writes a page of items with its pagination block.
func JSONPage(w http.ResponseWriter, items any, p Pagination) {
	JSON(w, http.StatusOK, Envelope{Data: items, Pagination: &p})
}

// JSONError renders an error response using the canonical error shape.
func JSONError(w http.ResponseWriter, status int, code, message string, details any) {
	JSON(w, status, map[string]any{
		"error": ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteAppError renders err when it carries an AppError, falling back to a 500.
func WriteAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		details := appErr.Details
		var fieldErr *FieldError
		if details == nil && errors.As(err, &fieldErr) {
			details = fieldErr.Details()
		}
		JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, details)
		return
	}
	JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
}
