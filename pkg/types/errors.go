// Package types defines the structured error taxonomy shared by every
// gometapath package.
//
// Errors carry an [ErrorCode] so that callers can classify a failure without
// matching on message text. Use [HasCode] to search a wrapped chain, since a
// function execution failure wraps the error that caused it.
package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a metapath error code.
type ErrorCode string

// Error codes.
const (
	// S0xxx: definition errors
	ErrInvalidFunction ErrorCode = "S0401"

	// T0xxx: type errors
	ErrArityOrCardinality ErrorCode = "T0410"
	ErrInvalidItemType    ErrorCode = "T0412"
	ErrNoTypedValue       ErrorCode = "T0420"
	ErrInvalidValue       ErrorCode = "T0430"

	// D0xxx: evaluation errors
	ErrUnsupportedInstanceKind ErrorCode = "D3201"
	ErrDuplicateEffectiveName  ErrorCode = "D3202"
	ErrFunctionExecution       ErrorCode = "D3210"

	// U0xxx: runtime errors
	ErrUndefinedFunction ErrorCode = "U1002"
)

// Error represents a structured metapath error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// NewError creates a new metapath error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new metapath error with a formatted message.
func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// HasCode reports whether err, or any error it wraps, is an *Error with the
// given code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}

// CodeOf returns the code of the outermost *Error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
