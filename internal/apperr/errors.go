// Package apperr defines the error kinds shared by all wizard components.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage error")
)

// Validation returns an error wrapping ErrValidation.
func Validation(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

// NotFound returns an error wrapping ErrNotFound.
func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

// Conflict returns an error wrapping ErrConflict.
func Conflict(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

// Storage wraps cause as a storage error. The cause stays reachable through errors.Is/As.
func Storage(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, fmt.Sprintf(format, args...), cause)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// ExitCode maps an error to the process exit status.
// Storage failures exit with 2, every other failure with 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrStorage):
		return 2
	default:
		return 1
	}
}
