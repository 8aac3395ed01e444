package internal

import (
	"errors"
	"fmt"
)

// AppError is the error shape embedded in API responses.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func (e *AppError) Error() string { return e.Message }

// ValidationError marks user-correctable input problems. Never retried.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

// ErrNotFound is wrapped by storage backends when an id does not exist.
var ErrNotFound = errors.New("not found")

// StoreError wraps persistence failures so the API layer can tell them
// apart from validation failures and offer a retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
