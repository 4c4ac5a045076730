package handler

import (
	"strings"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
	dErrors "clinid/pkg/domain-errors"
)

// validateRequest is the payload for the full-pipeline endpoint and
// for saves. PatientID may be empty for a patient not yet persisted.
type validateRequest struct {
	Identifier       string `json:"identifier"`
	IdentifierTypeID string `json:"identifier_type_id"`
	PatientID        string `json:"patient_id,omitempty"`
	LocationID       string `json:"location_id,omitempty"`
	Preferred        bool   `json:"preferred,omitempty"`
	Voided           bool   `json:"voided,omitempty"`
}

// checkFormatRequest is the payload for the string-probe endpoint.
type checkFormatRequest struct {
	Identifier       string `json:"identifier"`
	IdentifierTypeID string `json:"identifier_type_id"`
}

// createTypeRequest is the admin payload for catalog entries.
type createTypeRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Format            string `json:"format,omitempty"`
	FormatDescription string `json:"format_description,omitempty"`
	Validator         string `json:"validator,omitempty"`
	LocationBehavior  string `json:"location_behavior,omitempty"`
	Uniqueness        string `json:"uniqueness,omitempty"`
}

func (r *validateRequest) toIdentifier(typ *models.IdentifierType) (*models.PatientIdentifier, error) {
	pi := &models.PatientIdentifier{
		Identifier: r.Identifier,
		Type:       typ,
		Preferred:  r.Preferred,
		Voided:     r.Voided,
	}
	if r.PatientID != "" {
		patientID, err := id.ParsePatientID(r.PatientID)
		if err != nil {
			return nil, err
		}
		pi.PatientID = patientID
	}
	if r.LocationID != "" {
		locationID, err := id.ParseLocationID(r.LocationID)
		if err != nil {
			return nil, err
		}
		pi.LocationID = &locationID
	}
	return pi, nil
}

func (r *createTypeRequest) toType() (*models.IdentifierType, error) {
	behavior := models.LocationBehavior(r.LocationBehavior)
	switch behavior {
	case models.LocationBehaviorUnset, models.LocationBehaviorRequired, models.LocationBehaviorNotUsed:
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "location_behavior must be 'required' or 'not_used'")
	}

	uniqueness := models.UniquenessBehavior(r.Uniqueness)
	switch uniqueness {
	case models.UniquenessBehaviorUnset, models.UniquenessBehaviorUnique, models.UniquenessBehaviorNonUnique:
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "uniqueness must be 'unique' or 'non_unique'")
	}

	return &models.IdentifierType{
		Name:              strings.TrimSpace(r.Name),
		Description:       r.Description,
		Format:            r.Format,
		FormatDescription: r.FormatDescription,
		Validator:         r.Validator,
		LocationBehavior:  behavior,
		Uniqueness:        uniqueness,
	}, nil
}
