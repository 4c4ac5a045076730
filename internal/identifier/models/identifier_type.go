package models

import (
	"time"

	id "clinid/pkg/domain"
)

// LocationBehavior controls whether an identifier of this type must be
// issued at a care location.
type LocationBehavior string

const (
	// LocationBehaviorUnset defaults to required.
	LocationBehaviorUnset    LocationBehavior = ""
	LocationBehaviorRequired LocationBehavior = "required"
	LocationBehaviorNotUsed  LocationBehavior = "not_used"
)

// RequiresLocation reports whether an identifier of this behavior must
// carry a location. An unset behavior is treated as required.
func (b LocationBehavior) RequiresLocation() bool {
	return b == LocationBehaviorUnset || b == LocationBehaviorRequired
}

// UniquenessBehavior controls the scope of the duplicate check for an
// identifier type.
type UniquenessBehavior string

const (
	// UniquenessBehaviorUnset defaults to unique.
	UniquenessBehaviorUnset     UniquenessBehavior = ""
	UniquenessBehaviorUnique    UniquenessBehavior = "unique"
	UniquenessBehaviorNonUnique UniquenessBehavior = "non_unique"
)

// Enforced reports whether duplicates must be rejected. Everything
// except an explicit non_unique is enforced.
func (b UniquenessBehavior) Enforced() bool {
	return b != UniquenessBehaviorNonUnique
}

// IdentifierType is the per-type validation configuration. It is
// treated as read-only for the duration of a validation call.
type IdentifierType struct {
	ID                id.IdentifierTypeID
	Name              string
	Description       string
	Format            string // optional anchored regular expression
	FormatDescription string // human-readable form of Format for messages
	Validator         string // registry name of a check-digit validator, "" for none
	LocationBehavior  LocationBehavior
	Uniqueness        UniquenessBehavior
	Retired           bool
	CreatedAt         time.Time
}

// HasValidator reports whether a named check-digit validator is
// configured for this type.
func (t *IdentifierType) HasValidator() bool {
	return t != nil && t.Validator != ""
}
