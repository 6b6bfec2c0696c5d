// Package common defines sentinel errors and small helpers shared by the
// client and the reference server. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Session errors.
	ErrDuplicateUser     = errors.New("user with this email already exists")
	ErrInvalidCredential = errors.New("invalid password")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")

	// Booking errors.
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventFull         = errors.New("event is full")

	// Transport and input errors.
	ErrTransport  = errors.New("transport failure")
	ErrValidation = errors.New("validation failure")
)

// ValidationError lists the input fields that failed validation.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if msg == "" {
		msg = ErrValidation.Error()
	}
	if len(e.Fields) > 0 {
		msg += ": " + strings.Join(e.Fields, ", ")
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for the given fields.
func NewValidationError(reason string, fields ...string) *ValidationError {
	return &ValidationError{Reason: reason, Fields: fields}
}

type messageError struct {
	err error
	msg string
}

func (e *messageError) Error() string { return e.err.Error() }
func (e *messageError) Unwrap() error { return e.err }

// WithMessage attaches the text UserMessage shows for err. err still
// matches its sentinels with errors.Is.
func WithMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &messageError{err: err, msg: msg}
}

// UserMessage converts an error into the text shown to the user.
func UserMessage(err error) string {
	var (
		me *messageError
		ve *ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &me):
		return me.msg
	case errors.As(err, &ve):
		if ve.Reason != "" {
			return ve.Error()
		}
		return "Please fill in all required fields"
	case errors.Is(err, ErrDuplicateUser):
		return "User with this email already exists"
	case errors.Is(err, ErrInvalidCredential):
		return "Invalid password"
	case errors.Is(err, ErrAlreadyRegistered):
		return "Already registered for this event"
	case errors.Is(err, ErrEventFull):
		return "Event is full"
	case errors.Is(err, ErrUnauthorized):
		return "Please login to continue"
	case errors.Is(err, ErrForbidden):
		return "You are not allowed to do that"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrTransport):
		return "Server is unavailable, try again later"
	default:
		return err.Error()
	}
}
