// Package patientident persists saved patient identifiers and answers
// the uniqueness question the validation pipeline asks. The uniqueness
// query always hits live store state; results are never cached.
package patientident

import (
	"context"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
)

// Store is the patient identifier repository.
type Store interface {
	// Save persists a validated identifier for a patient.
	Save(ctx context.Context, pi *models.PatientIdentifier) error

	// FindByPatient returns all non-voided identifiers of a patient.
	FindByPatient(ctx context.Context, patientID id.PatientID) ([]*models.PatientIdentifier, error)

	// IsIdentifierInUseByAnotherPatient reports whether a non-voided
	// identifier with the same value and type is attached to a patient
	// other than pi's. An unsaved patient (zero ID) matches every
	// stored owner.
	IsIdentifierInUseByAnotherPatient(ctx context.Context, pi *models.PatientIdentifier) (bool, error)
}
