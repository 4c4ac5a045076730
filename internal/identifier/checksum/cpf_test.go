package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPF_IsValid(t *testing.T) {
	cpf := NewCPF()

	valid := []string{
		"12345678909",
		"52998224725",
	}
	for _, s := range valid {
		ok, err := cpf.IsValid(s)
		require.NoError(t, err, s)
		assert.True(t, ok, s)
	}

	invalid := []string{
		"",            // empty
		"1234567890",  // 10 digits
		"123456789090", // 12 digits
		"12345678919", // first check digit altered
		"12345678908", // second check digit altered
		"00000000000", // degenerate: all digits equal
		"11111111111",
		"99999999999",
	}
	for _, s := range invalid {
		ok, err := cpf.IsValid(s)
		require.NoError(t, err, s)
		assert.False(t, ok, s)
	}
}

func TestCPF_UnallowedCharacters(t *testing.T) {
	cpf := NewCPF()

	for _, s := range []string{"123.456.789-09", "1234567890a", " 12345678909"} {
		ok, err := cpf.IsValid(s)
		assert.ErrorIs(t, err, ErrUnallowedIdentifier, s)
		assert.False(t, ok, s)
	}
}

func TestNormalizeDigits(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"abc-.":           "",
		"12345678909":     "12345678909",
		"123.456.789-09":  "12345678909",
		" 123 456 789 09": "12345678909",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDigits(in), in)
	}
}

// Normalization must be idempotent: a normalized value passes through
// unchanged.
func FuzzNormalizeDigits(f *testing.F) {
	f.Add("123.456.789-09")
	f.Add("")
	f.Add("no digits at all")
	f.Fuzz(func(t *testing.T, s string) {
		once := NormalizeDigits(s)
		if twice := NormalizeDigits(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", s, once, twice)
		}
		for i := 0; i < len(once); i++ {
			if once[i] < '0' || once[i] > '9' {
				t.Fatalf("non-digit %q survived normalization of %q", once[i], s)
			}
		}
	})
}
