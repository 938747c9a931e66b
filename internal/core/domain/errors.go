package domain

import "errors"

// ErrValidation is the sentinel every input-validation failure unwraps to.
// Handlers match it with errors.Is and surface the concrete message.
var ErrValidation = errors.New("validation failed")

// ValidationError carries a client-facing reason for a rejected request.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrValidation }
