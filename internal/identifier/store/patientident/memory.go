package patientident

import (
	"context"
	"sync"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
)

// InMemory is a mutex-guarded in-memory Store, used in tests and for
// running the service without a database.
type InMemory struct {
	mu      sync.RWMutex
	records []*models.PatientIdentifier
}

// NewInMemory returns an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Save(_ context.Context, pi *models.PatientIdentifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *pi
	if pi.Type != nil {
		typ := *pi.Type
		clone.Type = &typ
	}
	s.records = append(s.records, &clone)
	return nil
}

func (s *InMemory) FindByPatient(_ context.Context, patientID id.PatientID) ([]*models.PatientIdentifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.PatientIdentifier
	for _, rec := range s.records {
		if rec.PatientID == patientID && !rec.Voided {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *InMemory) IsIdentifierInUseByAnotherPatient(_ context.Context, pi *models.PatientIdentifier) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.Voided || rec.Identifier != pi.Identifier {
			continue
		}
		if !sameType(rec.Type, pi.Type) {
			continue
		}
		// An unsaved patient is distinct from every stored one.
		if pi.PatientID.IsZero() || rec.PatientID != pi.PatientID {
			return true, nil
		}
	}
	return false, nil
}

func sameType(a, b *models.IdentifierType) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID == b.ID
}
