package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ name string }

func (s stubValidator) Name() string                    { return s.name }
func (stubValidator) IsValid(string) (bool, error)      { return true, nil }

func TestRegistry_RegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	cpf := NewCPF()

	require.NoError(t, r.Register(CPFValidatorName, cpf))

	got, ok := r.Resolve(CPFValidatorName)
	require.True(t, ok)
	assert.Equal(t, cpf.Name(), got.Name())

	_, ok = r.Resolve("unknown")
	assert.False(t, ok)
}

func TestRegistry_IdempotentReRegistration(t *testing.T) {
	r := NewRegistry()
	v := stubValidator{name: "stub"}

	require.NoError(t, r.Register("stub", v))
	assert.NoError(t, r.Register("stub", v))
}

func TestRegistry_ConflictingRegistration(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("stub", stubValidator{name: "one"}))
	err := r.Register("stub", stubValidator{name: "two"})
	assert.ErrorIs(t, err, ErrConflictingRegistration)
}

func TestRegistry_RejectsBadInput(t *testing.T) {
	r := NewRegistry()

	assert.ErrorIs(t, r.Register("", stubValidator{}), ErrEmptyName)
	assert.ErrorIs(t, r.Register("x", nil), ErrNilValidator)
}
