package patientident

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
)

// Postgres persists patient identifiers in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE patient_identifiers (
//	    id                 UUID PRIMARY KEY,
//	    patient_id         UUID NOT NULL,
//	    identifier         VARCHAR(50) NOT NULL,
//	    identifier_type_id UUID NOT NULL,
//	    location_id        UUID,
//	    preferred          BOOLEAN NOT NULL DEFAULT FALSE,
//	    voided             BOOLEAN NOT NULL DEFAULT FALSE,
//	    void_reason        VARCHAR(255) NOT NULL DEFAULT '',
//	    created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX patient_identifiers_lookup
//	    ON patient_identifiers (identifier, identifier_type_id) WHERE NOT voided;
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed identifier store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Save(ctx context.Context, pi *models.PatientIdentifier) error {
	if pi.Type == nil {
		return fmt.Errorf("identifier type is required")
	}
	query := `
		INSERT INTO patient_identifiers
			(id, patient_id, identifier, identifier_type_id, location_id, preferred, voided, void_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		uuid.UUID(pi.PatientID),
		pi.Identifier,
		uuid.UUID(pi.Type.ID),
		nullUUID(pi.LocationID),
		pi.Preferred,
		pi.Voided,
		pi.VoidReason,
		pi.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save patient identifier: %w", err)
	}
	return nil
}

func (s *Postgres) FindByPatient(ctx context.Context, patientID id.PatientID) ([]*models.PatientIdentifier, error) {
	query := `
		SELECT patient_id, identifier, identifier_type_id, location_id, preferred, voided, void_reason, created_at
		FROM patient_identifiers
		WHERE patient_id = $1 AND NOT voided
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(patientID))
	if err != nil {
		return nil, fmt.Errorf("find identifiers by patient: %w", err)
	}
	defer rows.Close()

	var out []*models.PatientIdentifier
	for rows.Next() {
		var (
			pi         models.PatientIdentifier
			patient    uuid.UUID
			typeID     uuid.UUID
			locationID uuid.NullUUID
		)
		if err := rows.Scan(&patient, &pi.Identifier, &typeID, &locationID, &pi.Preferred, &pi.Voided, &pi.VoidReason, &pi.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan patient identifier: %w", err)
		}
		pi.PatientID = id.PatientID(patient)
		pi.Type = &models.IdentifierType{ID: id.IdentifierTypeID(typeID)}
		if locationID.Valid {
			loc := id.LocationID(locationID.UUID)
			pi.LocationID = &loc
		}
		out = append(out, &pi)
	}
	return out, rows.Err()
}

func (s *Postgres) IsIdentifierInUseByAnotherPatient(ctx context.Context, pi *models.PatientIdentifier) (bool, error) {
	if pi.Type == nil {
		return false, fmt.Errorf("identifier type is required")
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM patient_identifiers
			WHERE identifier = $1
			  AND identifier_type_id = $2
			  AND NOT voided
			  AND patient_id <> $3
		)
	`
	var inUse bool
	err := s.db.QueryRowContext(ctx, query,
		pi.Identifier,
		uuid.UUID(pi.Type.ID),
		uuid.UUID(pi.PatientID),
	).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("check identifier in use: %w", err)
	}
	return inUse, nil
}

func nullUUID(value *id.LocationID) uuid.NullUUID {
	if value == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*value), Valid: true}
}
