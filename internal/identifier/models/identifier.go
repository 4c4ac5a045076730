// Package models defines the patient identifier aggregate and its
// type configuration. Validation rules live in
// internal/identifier/validator; this package only carries state and
// structural invariants.
package models

import (
	"time"

	id "clinid/pkg/domain"
	dErrors "clinid/pkg/domain-errors"
)

// Column widths enforced before persistence.
const (
	MaxIdentifierLen = 50
	MaxVoidReasonLen = 255
)

// PatientIdentifier is an identifier attached (or about to be attached)
// to a patient record. The validation pipeline may rewrite Identifier
// in place when normalizing a national-ID value; it performs no other
// mutation. Instances must not be shared across concurrent validation
// calls.
type PatientIdentifier struct {
	Identifier string
	Type       *IdentifierType
	// PatientID is zero for a patient that has not been saved yet.
	PatientID id.PatientID
	// LocationID is nil when no location accompanies the identifier.
	LocationID *id.LocationID
	Preferred  bool
	Voided     bool
	VoidReason string
	CreatedAt  time.Time
}

// CheckFieldLengths rejects values that would overflow their columns.
// Called by the service layer before a save, after pipeline validation.
func (pi *PatientIdentifier) CheckFieldLengths() error {
	if len(pi.Identifier) > MaxIdentifierLen {
		return dErrors.Newf(dErrors.CodeValidation, "identifier must be %d characters or less", MaxIdentifierLen)
	}
	if len(pi.VoidReason) > MaxVoidReasonLen {
		return dErrors.Newf(dErrors.CodeValidation, "void reason must be %d characters or less", MaxVoidReasonLen)
	}
	return nil
}
