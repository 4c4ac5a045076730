// Package service orchestrates identifier validation and persistence:
// it resolves identifier-type configuration from the catalog, runs the
// validation pipeline, and records metrics and audit events around it.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"clinid/internal/audit"
	idmetrics "clinid/internal/identifier/metrics"
	"clinid/internal/identifier/models"
	"clinid/internal/identifier/store/identtype"
	"clinid/internal/identifier/store/patientident"
	"clinid/internal/identifier/validator"
	id "clinid/pkg/domain"
	dErrors "clinid/pkg/domain-errors"
	"clinid/pkg/platform/sentinel"
)

// IdentifierService is the application-facing entry point for
// identifier validation and catalog management.
type IdentifierService struct {
	pipeline    *validator.Pipeline
	identifiers patientident.Store
	types       identtype.Store
	metrics     *idmetrics.Metrics
	auditor     *audit.Publisher
	logger      *slog.Logger
}

type serviceConfig struct {
	metrics *idmetrics.Metrics
	auditor *audit.Publisher
	logger  *slog.Logger
}

// Option configures the service.
type Option func(*serviceConfig)

// WithMetrics attaches module metrics.
func WithMetrics(m *idmetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// WithAuditor attaches an audit publisher.
func WithAuditor(a *audit.Publisher) Option {
	return func(cfg *serviceConfig) { cfg.auditor = a }
}

// WithLogger attaches a logger.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = l }
}

// New constructs the service. Metrics and auditing default to no-op
// sinks so tests can stay lean.
func New(pipeline *validator.Pipeline, identifiers patientident.Store, types identtype.Store, opts ...Option) *IdentifierService {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.auditor == nil {
		cfg.auditor = audit.NewPublisher(audit.NewInMemoryStore())
	}
	return &IdentifierService{
		pipeline:    pipeline,
		identifiers: identifiers,
		types:       types,
		metrics:     cfg.metrics,
		auditor:     cfg.auditor,
		logger:      cfg.logger,
	}
}

// ValidateIdentifier runs the full pipeline on pi, recording outcome
// metrics and an audit event. On success pi.Identifier may have been
// normalized in place.
func (s *IdentifierService) ValidateIdentifier(ctx context.Context, pi *models.PatientIdentifier) error {
	start := time.Now()
	var before string
	if pi != nil {
		before = pi.Identifier
	}

	err := s.pipeline.ValidateIdentifier(ctx, pi)

	s.observe(outcomeOf(err), time.Since(start))
	if pi != nil && err == nil && pi.Identifier != before && s.metrics != nil {
		s.metrics.IncrementNormalizations()
	}
	s.emitValidationEvent(ctx, pi, err)
	return err
}

// ValidateIdentifierString resolves the identifier type from the
// catalog and runs the type, blank, format and check-digit gates only.
func (s *IdentifierService) ValidateIdentifierString(ctx context.Context, identifier string, typeID id.IdentifierTypeID) error {
	typ, err := s.GetIdentifierType(ctx, typeID)
	if err != nil {
		return err
	}

	start := time.Now()
	err = s.pipeline.ValidateIdentifierString(ctx, identifier, typ)
	s.observe(outcomeOf(err), time.Since(start))
	return err
}

// SaveIdentifier validates pi end to end and persists it.
func (s *IdentifierService) SaveIdentifier(ctx context.Context, pi *models.PatientIdentifier) error {
	if err := s.ValidateIdentifier(ctx, pi); err != nil {
		return err
	}
	if err := pi.CheckFieldLengths(); err != nil {
		return err
	}
	if pi.CreatedAt.IsZero() {
		pi.CreatedAt = time.Now().UTC()
	}
	if err := s.identifiers.Save(ctx, pi); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save identifier")
	}
	return nil
}

// CreateIdentifierType adds a catalog entry after checking its own
// configuration is sound: a compilable format and a name.
func (s *IdentifierService) CreateIdentifierType(ctx context.Context, typ *models.IdentifierType) (*models.IdentifierType, error) {
	typ.Name = strings.TrimSpace(typ.Name)
	if typ.Name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "identifier type name is required")
	}
	if typ.Format != "" {
		// A broken pattern would otherwise surface as an internal error
		// on every validation of this type.
		if err := s.pipeline.CheckFormat("probe", typ.Format, ""); err != nil && dErrors.HasCode(err, dErrors.CodeInternal) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "identifier type format is not a valid regular expression")
		}
	}

	if err := s.types.Create(ctx, typ); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.New(dErrors.CodeConflict, "identifier type name must be unique")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create identifier type")
	}

	s.emit(ctx, audit.Event{
		Category: audit.CategoryOperations,
		Action:   audit.ActionTypeCreated,
		TypeName: typ.Name,
	})
	return typ, nil
}

// GetIdentifierType loads one catalog entry.
func (s *IdentifierService) GetIdentifierType(ctx context.Context, typeID id.IdentifierTypeID) (*models.IdentifierType, error) {
	typ, err := s.types.FindByID(ctx, typeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "identifier type not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load identifier type")
	}
	return typ, nil
}

// ListIdentifierTypes returns the active catalog.
func (s *IdentifierService) ListIdentifierTypes(ctx context.Context) ([]*models.IdentifierType, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list identifier types")
	}
	return types, nil
}

func (s *IdentifierService) observe(outcome string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveValidation(outcome, elapsed.Seconds())
	}
}

func (s *IdentifierService) emitValidationEvent(ctx context.Context, pi *models.PatientIdentifier, vErr error) {
	event := audit.Event{
		Category: audit.CategoryOperations,
		Action:   audit.ActionValidationPassed,
	}
	if pi != nil {
		event.IdentifierHash = audit.HashIdentifier(pi.Identifier)
		if pi.Type != nil {
			event.TypeName = pi.Type.Name
		}
	}
	if vErr != nil {
		event.Category = audit.CategoryCompliance
		event.Action = audit.ActionValidationFailed
		event.Reason = dErrors.KeyOf(vErr)
	}
	s.emit(ctx, event)
}

func (s *IdentifierService) emit(ctx context.Context, event audit.Event) {
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", event.Action, "error", err)
	}
}

// outcomeOf maps a pipeline result to its metrics label: "ok" for
// success, the short failure key otherwise.
func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	key := dErrors.KeyOf(err)
	if key == "" {
		return "error"
	}
	return strings.TrimPrefix(key, "identifier.error.")
}
