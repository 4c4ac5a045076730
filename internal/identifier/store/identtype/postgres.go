package identtype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
	"clinid/pkg/platform/sentinel"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint
// violation.
const uniqueViolation = "23505"

// Postgres persists identifier types in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE identifier_types (
//	    id                 UUID PRIMARY KEY,
//	    name               VARCHAR(255) NOT NULL,
//	    description        TEXT NOT NULL DEFAULT '',
//	    format             TEXT NOT NULL DEFAULT '',
//	    format_description TEXT NOT NULL DEFAULT '',
//	    validator          VARCHAR(255) NOT NULL DEFAULT '',
//	    location_behavior  VARCHAR(32) NOT NULL DEFAULT '',
//	    uniqueness         VARCHAR(32) NOT NULL DEFAULT '',
//	    retired            BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE UNIQUE INDEX identifier_types_name_key ON identifier_types (lower(name));
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalog.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, typ *models.IdentifierType) error {
	query := `
		INSERT INTO identifier_types
			(id, name, description, format, format_description, validator, location_behavior, uniqueness, retired, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(typ.ID),
		typ.Name,
		typ.Description,
		typ.Format,
		typ.FormatDescription,
		typ.Validator,
		string(typ.LocationBehavior),
		string(typ.Uniqueness),
		typ.Retired,
		typ.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("create identifier type: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, typeID id.IdentifierTypeID) (*models.IdentifierType, error) {
	query := `
		SELECT id, name, description, format, format_description, validator, location_behavior, uniqueness, retired, created_at
		FROM identifier_types
		WHERE id = $1
	`
	typ, err := scanType(s.db.QueryRowContext(ctx, query, uuid.UUID(typeID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find identifier type: %w", err)
	}
	return typ, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.IdentifierType, error) {
	query := `
		SELECT id, name, description, format, format_description, validator, location_behavior, uniqueness, retired, created_at
		FROM identifier_types
		WHERE NOT retired
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list identifier types: %w", err)
	}
	defer rows.Close()

	var out []*models.IdentifierType
	for rows.Next() {
		typ, err := scanType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan identifier type: %w", err)
		}
		out = append(out, typ)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanType(row scanner) (*models.IdentifierType, error) {
	var (
		typ      models.IdentifierType
		typeID   uuid.UUID
		location string
		unique   string
	)
	err := row.Scan(&typeID, &typ.Name, &typ.Description, &typ.Format, &typ.FormatDescription,
		&typ.Validator, &location, &unique, &typ.Retired, &typ.CreatedAt)
	if err != nil {
		return nil, err
	}
	typ.ID = id.IdentifierTypeID(typeID)
	typ.LocationBehavior = models.LocationBehavior(location)
	typ.Uniqueness = models.UniquenessBehavior(unique)
	return &typ, nil
}
