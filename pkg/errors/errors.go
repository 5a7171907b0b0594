package errors

import (
	"errors"
	"fmt"
)

// Error is a typed engine error. Code is stable and used for comparisons.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Predefined errors.
var (
	// ErrDataInconsistency marks a reference to a course, room or lecturer that is
	// missing from its table. Fatal.
	ErrDataInconsistency = New("DATA_INCONSISTENCY", "data inconsistency")
	// ErrOutOfRange marks a reservation past the slot universe. Fatal.
	ErrOutOfRange = New("OUT_OF_RANGE", "reservation out of range")
	// ErrPlacementExhausted never leaves the engine; it tags placeholder sessions.
	ErrPlacementExhausted = New("PLACEMENT_EXHAUSTED", "no suitable time slot, room, or lecturer found on a preferred day")
	// ErrDoubleBooking marks a reservation over a slot that is already taken.
	ErrDoubleBooking = New("DOUBLE_BOOKING", "resource already booked")
	ErrValidation    = New("VALIDATION_ERROR", "validation failed")
	ErrNotFound      = New("NOT_FOUND", "resource not found")
	ErrInternal      = New("INTERNAL_ERROR", "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Clonef is Clone with a formatted message.
func Clonef(err *Error, format string, args ...any) *Error {
	return Clone(err, fmt.Sprintf(format, args...))
}
