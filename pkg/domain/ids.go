// Package domain defines the typed identifiers shared across modules.
// Wrapping uuid.UUID in distinct named types makes cross-assignment a
// compile error, so a PatientID can never be passed where a LocationID
// is expected.
package domain

import (
	"fmt"

	"github.com/google/uuid"

	dErrors "clinid/pkg/domain-errors"
)

// PatientID identifies a patient record. The zero value marks a patient
// that has not been persisted yet.
type PatientID uuid.UUID

// IdentifierTypeID identifies an identifier-type configuration record.
type IdentifierTypeID uuid.UUID

// LocationID identifies a care location.
type LocationID uuid.UUID

func (id PatientID) String() string        { return uuid.UUID(id).String() }
func (id IdentifierTypeID) String() string { return uuid.UUID(id).String() }
func (id LocationID) String() string       { return uuid.UUID(id).String() }

// IsZero reports whether the patient reference is unsaved.
func (id PatientID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// ParsePatientID parses and validates a patient ID from its string form.
func ParsePatientID(s string) (PatientID, error) {
	u, err := parseUUID(s, "patient id")
	return PatientID(u), err
}

// ParseIdentifierTypeID parses and validates an identifier-type ID.
func ParseIdentifierTypeID(s string) (IdentifierTypeID, error) {
	u, err := parseUUID(s, "identifier type id")
	return IdentifierTypeID(u), err
}

// ParseLocationID parses and validates a location ID.
func ParseLocationID(s string) (LocationID, error) {
	u, err := parseUUID(s, "location id")
	return LocationID(u), err
}

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs.
func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s is required", what))
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("invalid %s", what))
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s must not be the nil uuid", what))
	}
	return u, nil
}
