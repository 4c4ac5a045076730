// Package identtype stores identifier-type configuration records, the
// catalog the validation pipeline reads its per-type policies from.
package identtype

import (
	"context"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
)

// Store is the identifier-type catalog.
type Store interface {
	// Create adds a new type; names are unique case-insensitively.
	Create(ctx context.Context, typ *models.IdentifierType) error

	// FindByID returns a type or sentinel.ErrNotFound.
	FindByID(ctx context.Context, typeID id.IdentifierTypeID) (*models.IdentifierType, error)

	// List returns all non-retired types.
	List(ctx context.Context) ([]*models.IdentifierType, error)
}
