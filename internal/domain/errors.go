package domain

import "errors"

// Error kinds. Every expected business outcome is one of these; anything
// else reaching a caller is an infrastructure failure.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Error is a user-facing failure of a known kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewValidationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &Error{Kind: ErrForbidden, Message: msg}
}

func NewConflictError(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func NewUnauthenticatedError(msg string) error {
	return &Error{Kind: ErrUnauthenticated, Message: msg}
}
