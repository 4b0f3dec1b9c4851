package service

import (
	"errors"
	"fmt"

	"ecommerce-api/statemachine"

	"gorm.io/gorm"
)

// Error kinds. Every error a service returns on a rule or lookup failure wraps one of
// these, so callers can branch with errors.Is; anything else is a persistence failure.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrOutOfStock        = errors.New("out of stock")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = statemachine.ErrInvalidTransition
)

// Error carries a user-facing message alongside its kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// lookupErr turns gorm's record-not-found into ErrNotFound and passes anything else through.
func lookupErr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(ErrNotFound, format, args...)
	}
	return err
}
