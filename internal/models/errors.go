package models

import (
	"errors"
	"fmt"
)

// Application error kinds. All are terminal and surfaced directly to the
// caller; handlers map them to HTTP status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
)

// NotFoundf builds a NotFound error with a formatted message
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// InvalidInputf builds an InvalidInput error with a formatted message
func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// Conflictf builds a Conflict error with a formatted message
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// Forbiddenf builds a Forbidden error with a formatted message
func Forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrForbidden)
}
