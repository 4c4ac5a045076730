// Package audit records validation activity for compliance review.
// Events carry a SHA-256 hash of the identifier rather than the raw
// value so the trail holds no PII.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Category classifies audit events for retention and routing.
type Category string

const (
	// CategoryCompliance covers events with regulatory significance.
	CategoryCompliance Category = "compliance"
	// CategoryOperations covers routine activity useful for debugging.
	CategoryOperations Category = "operations"
)

// Actions recorded by the identifier module.
const (
	ActionValidationPassed = "identifier_validation_passed"
	ActionValidationFailed = "identifier_validation_failed"
	ActionTypeCreated      = "identifier_type_created"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category       Category
	Timestamp      time.Time
	Action         string
	TypeName       string
	// IdentifierHash is the SHA-256 of the identifier value, never the
	// raw value.
	IdentifierHash string
	// Reason holds the failure message key for failed validations.
	Reason string
	// RequestID correlates the event with an HTTP request.
	RequestID string
}

// HashIdentifier produces the hex SHA-256 digest stored in events.
func HashIdentifier(identifier string) string {
	sum := sha256.Sum256([]byte(identifier))
	return hex.EncodeToString(sum[:])
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}
