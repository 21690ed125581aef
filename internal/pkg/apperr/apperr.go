// Package apperr defines the error taxonomy shared by the record store,
// the domain modules and the transports.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConstraint = errors.New("constraint violation")
	ErrConflict   = errors.New("conflict")
	ErrProtected  = errors.New("protected record")
	ErrInternal   = errors.New("internal error")
)

// Kind classifies an error for envelopes and status codes.
type Kind string

const (
	KindNone       Kind = ""
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConstraint Kind = "constraint"
	KindConflict   Kind = "conflict"
	KindProtected  Kind = "protected"
	KindInternal   Kind = "internal"
)

// KindOf maps err onto the taxonomy. Unclassified errors are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConstraint):
		return KindConstraint
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrProtected):
		return KindProtected
	default:
		return KindInternal
	}
}

// message is an error whose text is exactly msg while still matching kind.
type message struct {
	kind error
	msg  string
}

func (e *message) Error() string { return e.msg }
func (e *message) Unwrap() error { return e.kind }

// Validation returns a validation error with a caller-facing message.
func Validation(format string, args ...any) error {
	return &message{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error such as "Task not found".
func NotFound(format string, args ...any) error {
	return &message{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &message{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func Protected(format string, args ...any) error {
	return &message{kind: ErrProtected, msg: fmt.Sprintf(format, args...)}
}

// Constraint wraps a storage engine error so that its text is kept verbatim.
func Constraint(err error) error {
	return &message{kind: ErrConstraint, msg: err.Error()}
}
