//go:build integration

package patientident

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
	"clinid/pkg/testutil/containers"
)

const schema = `
CREATE TABLE patient_identifiers (
    id                 UUID PRIMARY KEY,
    patient_id         UUID NOT NULL,
    identifier         VARCHAR(50) NOT NULL,
    identifier_type_id UUID NOT NULL,
    location_id        UUID,
    preferred          BOOLEAN NOT NULL DEFAULT FALSE,
    voided             BOOLEAN NOT NULL DEFAULT FALSE,
    void_reason        VARCHAR(255) NOT NULL DEFAULT '',
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX patient_identifiers_lookup
    ON patient_identifiers (identifier, identifier_type_id) WHERE NOT voided;
`

func TestPostgresStore_Integration(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()

	_, err := pc.DB.ExecContext(ctx, schema)
	require.NoError(t, err)

	store := NewPostgres(pc.DB)
	mrn := &models.IdentifierType{ID: id.IdentifierTypeID(uuid.New()), Name: "Medical Record Number"}
	owner := id.PatientID(uuid.New())

	newIdentifier := func(value string, patient id.PatientID) *models.PatientIdentifier {
		return &models.PatientIdentifier{
			Identifier: value,
			Type:       mrn,
			PatientID:  patient,
			CreatedAt:  time.Now().UTC(),
		}
	}

	require.NoError(t, store.Save(ctx, newIdentifier("1234", owner)))

	t.Run("find by patient", func(t *testing.T) {
		found, err := store.FindByPatient(ctx, owner)
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.Equal(t, "1234", found[0].Identifier)
	})

	t.Run("in use by another patient", func(t *testing.T) {
		inUse, err := store.IsIdentifierInUseByAnotherPatient(ctx, newIdentifier("1234", id.PatientID(uuid.New())))
		require.NoError(t, err)
		require.True(t, inUse)
	})

	t.Run("unsaved patient matches stored owner", func(t *testing.T) {
		inUse, err := store.IsIdentifierInUseByAnotherPatient(ctx, newIdentifier("1234", id.PatientID{}))
		require.NoError(t, err)
		require.True(t, inUse)
	})

	t.Run("same patient does not conflict", func(t *testing.T) {
		inUse, err := store.IsIdentifierInUseByAnotherPatient(ctx, newIdentifier("1234", owner))
		require.NoError(t, err)
		require.False(t, inUse)
	})

	t.Run("voided record does not block reuse", func(t *testing.T) {
		voided := newIdentifier("5678", owner)
		voided.Voided = true
		require.NoError(t, store.Save(ctx, voided))

		inUse, err := store.IsIdentifierInUseByAnotherPatient(ctx, newIdentifier("5678", id.PatientID(uuid.New())))
		require.NoError(t, err)
		require.False(t, inUse)
	})
}
