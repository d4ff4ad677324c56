package service

import "errors"

var (
	// ErrValidation marks input rejected by the create gate.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when no purchase order has the requested unique id.
	ErrNotFound = errors.New("purchase order not found")
	// ErrStorage wraps database failures. Callers may retry.
	ErrStorage = errors.New("storage error")
	// ErrSheetsNotConfigured is returned when no spreadsheet credentials are set.
	ErrSheetsNotConfigured = errors.New("google sheets is not configured")
)

// ValidationError carries the user-facing reason a payload was rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Message: msg} }
