// Package domainerrors provides coded errors for domain and service
// layers. Stores return sentinel errors (pkg/platform/sentinel) for
// infrastructure facts; services translate those into coded errors that
// transports can map to HTTP statuses.
//
// Validation failures additionally carry a message key plus positional
// arguments so the transport layer can localize them without the domain
// ever producing user-facing text.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping.
type Code string

const (
	CodeInvalidInput       Code = "invalid_input"
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal"
)

// Error is a coded domain error. Key and Args are set only for
// validation failures that have a localizable message.
type Error struct {
	Code    Code
	Message string
	Key     string
	Args    []string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with a plain message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewKeyed creates a coded error carrying a message key and its
// positional arguments for later localization. The raw key doubles as
// the fallback message.
func NewKeyed(code Code, key string, args ...string) *Error {
	return &Error{Code: code, Message: key, Key: key, Args: args}
}

// Wrap annotates err with a code and message while keeping it in the
// chain for errors.Is/As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}

// CodeOf returns the code of the outermost coded error, or CodeInternal
// when err carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// KeyOf returns the message key of the outermost coded error, or ""
// when the error has no localizable key.
func KeyOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Key
	}
	return ""
}

// ArgsOf returns the positional message arguments of the outermost
// coded error.
func ArgsOf(err error) []string {
	var de *Error
	if errors.As(err, &de) {
		return de.Args
	}
	return nil
}

// HasKey reports whether any error in the chain carries the given
// message key.
func HasKey(err error, key string) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Key == key
}
