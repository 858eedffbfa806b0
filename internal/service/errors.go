package service

import (
	"errors"
	"strings"

	"Noteboard/internal/repo"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	// MsgOperationNotAllowed is returned when a caller mutates a record it does not own.
	MsgOperationNotAllowed = "Operation Not Allowed"
	// MsgForbidden is returned when the caller's role does not reach an account route.
	MsgForbidden = "Forbidden"
)

// Error is a classified failure whose Message is safe to show to clients.
// Kind is one of the sentinels above and is matched with errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func notFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }
func forbidden() error          { return &Error{Kind: ErrForbidden, Message: MsgOperationNotAllowed} }
func invalid(msg string) error  { return &Error{Kind: ErrValidation, Message: msg} }
func conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }
func badCredentials() error {
	return &Error{Kind: ErrInvalidCredentials, Message: ErrInvalidCredentials.Error()}
}

// translate maps store errors onto the service taxonomy; anything else is
// returned unchanged and ends up as a 500.
func translate(err error, kind string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return notFound(kind + " not found")
	case errors.Is(err, repo.ErrValidation):
		return invalid(strings.TrimPrefix(err.Error(), repo.ErrValidation.Error()+": "))
	case errors.Is(err, repo.ErrDuplicate):
		return conflict(kind + " already exists")
	}
	return err
}
