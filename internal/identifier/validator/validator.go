// Package validator implements the patient identifier validation
// pipeline: an ordered sequence of guard checks where the first failure
// determines the outcome. Failures are coded domain errors carrying a
// message key plus positional arguments; rendering them into user text
// happens at the transport layer.
package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"clinid/internal/identifier/checksum"
	"clinid/internal/identifier/models"
	dErrors "clinid/pkg/domain-errors"
)

// Message keys for the failure kinds, one per terminal outcome.
const (
	KeyIdentifierNull     = "identifier.error.null"
	KeyIdentifierBlank    = "identifier.error.blank"
	KeyTypeRequired       = "identifier.error.type_required"
	KeyInvalidFormat      = "identifier.error.invalid_format"       // args: identifier, format description
	KeyInvalidCheckDigit  = "identifier.error.check_digit"          // args: identifier
	KeyUnallowed          = "identifier.error.unallowed"            // args: identifier, validator name
	KeyInvalidNationalID  = "identifier.error.invalid_national_id"  // args: original identifier
	KeyLocationRequired   = "identifier.error.location_required"    // args: identifier
	KeyNotUnique          = "identifier.error.not_unique"           // args: identifier
)

// UniquenessStore is the external repository capability consulted by
// the uniqueness check. It must reflect committed state at call time;
// the pipeline never caches its answer.
type UniquenessStore interface {
	IsIdentifierInUseByAnotherPatient(ctx context.Context, pi *models.PatientIdentifier) (bool, error)
}

// Resolver looks up a check-digit validator by the name configured on
// an identifier type.
type Resolver interface {
	Resolve(name string) (checksum.Validator, bool)
}

// Pipeline sequences the identifier checks. It holds no per-call state
// and is safe for concurrent use as long as callers do not share a
// PatientIdentifier instance across calls.
type Pipeline struct {
	store    UniquenessStore
	registry Resolver
	national checksum.Validator
	// nationalTypeName designates the identifier type that receives the
	// normalize-then-checksum pre-pass, compared case-insensitively.
	nationalTypeName string
	logger           *slog.Logger
}

// New constructs a Pipeline. nationalTypeName may be empty to disable
// the national-ID pre-pass entirely.
func New(store UniquenessStore, registry Resolver, nationalTypeName string, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		store:            store,
		registry:         registry,
		national:         checksum.NewCPF(),
		nationalTypeName: strings.TrimSpace(nationalTypeName),
		logger:           logger,
	}
}

// ValidateIdentifier runs the full pipeline on pi. On success of the
// national-ID pre-pass the identifier string is rewritten in place with
// its normalized form; that is the only mutation performed.
//
// Check order: null, voided bypass, national-ID pre-pass, blank/type,
// format, check digit, location, uniqueness. The first failing check
// short-circuits the rest.
func (p *Pipeline) ValidateIdentifier(ctx context.Context, pi *models.PatientIdentifier) error {
	if pi == nil {
		return dErrors.NewKeyed(dErrors.CodeValidation, KeyIdentifierNull)
	}

	if !pi.Voided && p.isNationalIDType(pi.Type) {
		original := pi.Identifier
		normalized := checksum.NormalizeDigits(original)
		if ok, err := p.national.IsValid(normalized); err != nil || !ok {
			return dErrors.NewKeyed(dErrors.CodeValidation, KeyInvalidNationalID, original)
		}
		// Store digit-only form so masked and unmasked submissions of
		// the same document cannot coexist.
		pi.Identifier = normalized
	}

	// Voided identifiers are exempt from every remaining check.
	if pi.Voided {
		return nil
	}

	if err := p.ValidateIdentifierString(ctx, pi.Identifier, pi.Type); err != nil {
		return err
	}

	if pi.Type.LocationBehavior.RequiresLocation() && pi.LocationID == nil {
		return dErrors.NewKeyed(dErrors.CodeValidation, KeyLocationRequired, pi.Identifier)
	}

	if pi.Type.Uniqueness.Enforced() {
		inUse, err := p.store.IsIdentifierInUseByAnotherPatient(ctx, pi)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check identifier uniqueness")
		}
		if inUse {
			return dErrors.NewKeyed(dErrors.CodeConflict, KeyNotUnique, pi.Identifier)
		}
	}

	return nil
}

// ValidateIdentifierString runs the type, blank, format and check-digit
// gates only. Callers without a full PatientIdentifier use it for
// pre-save probes.
func (p *Pipeline) ValidateIdentifierString(ctx context.Context, identifier string, typ *models.IdentifierType) error {
	if typ == nil {
		return dErrors.NewKeyed(dErrors.CodeValidation, KeyTypeRequired)
	}

	p.logger.DebugContext(ctx, "checking identifier", "type", typ.Name)

	if strings.TrimSpace(identifier) == "" {
		return dErrors.NewKeyed(dErrors.CodeValidation, KeyIdentifierBlank)
	}

	if err := p.CheckFormat(identifier, typ.Format, typ.FormatDescription); err != nil {
		return err
	}

	if typ.HasValidator() {
		v, ok := p.registry.Resolve(typ.Validator)
		if !ok {
			// A configured but unknown validator is a catalog defect,
			// not a property of the submitted identifier.
			return dErrors.Newf(dErrors.CodeInternal, "identifier type %q references unknown validator %q", typ.Name, typ.Validator)
		}
		if err := p.CheckChecksum(identifier, v); err != nil {
			return err
		}
	}

	return nil
}

// CheckFormat validates identifier against an optional anchored
// regular expression. An empty format is permissive.
func (p *Pipeline) CheckFormat(identifier, format, formatDescription string) error {
	if strings.TrimSpace(format) == "" {
		return nil
	}

	re, err := regexp.Compile(anchored(format))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("invalid identifier format pattern %q", format))
	}

	if !re.MatchString(identifier) {
		desc := formatDescription
		if strings.TrimSpace(desc) == "" {
			desc = format
		}
		return dErrors.NewKeyed(dErrors.CodeValidation, KeyInvalidFormat, identifier, desc)
	}
	return nil
}

// CheckChecksum validates identifier against a resolved check-digit
// validator. An unallowed identifier maps to its own failure kind that
// names the validator; a plain mismatch maps to the check-digit kind.
func (p *Pipeline) CheckChecksum(identifier string, v checksum.Validator) error {
	if v == nil {
		return nil
	}

	ok, err := v.IsValid(identifier)
	switch {
	case errors.Is(err, checksum.ErrUnallowedIdentifier):
		return dErrors.NewKeyed(dErrors.CodeValidation, KeyUnallowed, identifier, v.Name())
	case err != nil:
		return dErrors.Wrap(err, dErrors.CodeInternal, "check digit validator failed")
	case !ok:
		return dErrors.NewKeyed(dErrors.CodeValidation, KeyInvalidCheckDigit, identifier)
	}
	return nil
}

// isNationalIDType reports whether typ designates the national-ID
// identifier type. Comparison is trimmed and case-insensitive so a
// misconfigured catalog entry degrades to a non-match instead of a
// crash.
func (p *Pipeline) isNationalIDType(typ *models.IdentifierType) bool {
	if typ == nil || p.nationalTypeName == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(typ.Name), p.nationalTypeName)
}

func anchored(format string) string {
	return "^(?:" + format + ")$"
}
