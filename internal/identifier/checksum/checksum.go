// Package checksum defines the pluggable check-digit validator
// capability and a process-local registry of named implementations.
// The pipeline resolves validators by the name configured on an
// identifier type; hosts may register additional implementations at
// startup.
package checksum

import "errors"

// ErrUnallowedIdentifier signals that a validator could not interpret
// the input at all, as opposed to interpreting it and rejecting the
// check digit. IsValid returns it alongside false.
var ErrUnallowedIdentifier = errors.New("unallowed identifier")

// Validator is the check-digit capability. Name is a display name used
// in user-facing messages.
type Validator interface {
	Name() string
	IsValid(identifier string) (bool, error)
}

// NormalizeDigits strips every non-digit character from raw. It is
// pure and idempotent; an input with no digits normalizes to "".
func NormalizeDigits(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			out = append(out, raw[i])
		}
	}
	return string(out)
}
