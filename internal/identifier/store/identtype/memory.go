package identtype

import (
	"context"
	"strings"
	"sync"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
	"clinid/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded in-memory catalog.
type InMemory struct {
	mu    sync.RWMutex
	types map[id.IdentifierTypeID]*models.IdentifierType
}

// NewInMemory returns an empty in-memory catalog.
func NewInMemory() *InMemory {
	return &InMemory{types: make(map[id.IdentifierTypeID]*models.IdentifierType)}
}

func (s *InMemory) Create(_ context.Context, typ *models.IdentifierType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.types {
		if strings.EqualFold(existing.Name, typ.Name) {
			return sentinel.ErrAlreadyExists
		}
	}
	clone := *typ
	s.types[typ.ID] = &clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, typeID id.IdentifierTypeID) (*models.IdentifierType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	typ, ok := s.types[typeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *typ
	return &clone, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.IdentifierType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.IdentifierType, 0, len(s.types))
	for _, typ := range s.types {
		if typ.Retired {
			continue
		}
		clone := *typ
		out = append(out, &clone)
	}
	return out, nil
}
