package common

import (
	"errors"
	"fmt"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// FieldError attaches the offending input field and value to a sentinel error.
type FieldError struct {
	Err   error
	Field string
	Value string
}

// NewFieldError wraps err with the field name and a printable value.
func NewFieldError(err error, field string, value any) *FieldError {
	return &FieldError{Err: err, Field: field, Value: fmt.Sprint(value)}
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s=%s", e.Err, e.Field, e.Value)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Details renders the field context for JSON error payloads.
func (e *FieldError) Details() map[string]string {
	if e == nil || e.Field == "" {
		return nil
	}
	return map[string]string{"field": e.Field, "value": e.Value}
}
