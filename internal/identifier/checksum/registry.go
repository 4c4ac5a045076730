package checksum

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrEmptyName is returned when registering under an empty name.
	ErrEmptyName = errors.New("checksum: empty validator name")
	// ErrNilValidator is returned when registering a nil validator.
	ErrNilValidator = errors.New("checksum: nil validator")
	// ErrConflictingRegistration indicates an attempt to re-register a
	// name with a different implementation.
	ErrConflictingRegistration = errors.New("checksum: conflicting validator registration")
)

// Registry is a mutex-guarded map of validator names to
// implementations. Registration is idempotent for the same
// (name, validator) pair and rejects conflicting re-registration.
type Registry struct {
	mu sync.RWMutex
	m  map[string]Validator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Validator)}
}

// Register associates name with v.
func (r *Registry) Register(name string, v Validator) error {
	if name == "" {
		return ErrEmptyName
	}
	if v == nil {
		return ErrNilValidator
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.m[name]; ok {
		if old == v {
			return nil // idempotent re-registration
		}
		return fmt.Errorf("%w: %q", ErrConflictingRegistration, name)
	}
	r.m[name] = v
	return nil
}

// Resolve looks up a validator by its registered name.
func (r *Registry) Resolve(name string) (Validator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.m[name]
	return v, ok
}

// Names returns the registered validator names, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.m))
	for name := range r.m {
		names = append(names, name)
	}
	return names
}
