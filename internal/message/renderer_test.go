package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinid/internal/identifier/validator"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(DefaultCatalog(), "en")
	require.NoError(t, err)
	return r
}

func TestRender_PositionalArguments(t *testing.T) {
	r := newTestRenderer(t)

	got := r.Render("en", validator.KeyInvalidFormat, "12a4", "four digits")
	assert.Equal(t, `Identifier "12a4" does not match the required format: four digits`, got)
}

func TestRender_LocaleNegotiation(t *testing.T) {
	r := newTestRenderer(t)

	t.Run("exact tag", func(t *testing.T) {
		got := r.Render("pt-BR", validator.KeyNotUnique, "12345678909")
		assert.Equal(t, `O identificador "12345678909" já está em uso por outro paciente.`, got)
	})

	t.Run("accept-language header", func(t *testing.T) {
		got := r.Render("pt-BR,pt;q=0.9,en;q=0.5", validator.KeyIdentifierBlank)
		assert.Equal(t, "O identificador não pode estar em branco.", got)
	})

	t.Run("unsupported locale falls back to default", func(t *testing.T) {
		got := r.Render("fr-FR", validator.KeyIdentifierBlank)
		assert.Equal(t, "Identifier cannot be blank.", got)
	})

	t.Run("empty locale uses default", func(t *testing.T) {
		got := r.Render("", validator.KeyIdentifierNull)
		assert.Equal(t, "Identifier is required.", got)
	})

	t.Run("garbage locale uses default", func(t *testing.T) {
		got := r.Render(";;;", validator.KeyIdentifierNull)
		assert.Equal(t, "Identifier is required.", got)
	})
}

func TestRender_FallbackToKey(t *testing.T) {
	r := newTestRenderer(t)

	got := r.Render("en", "identifier.error.unknown_key")
	assert.Equal(t, "identifier.error.unknown_key", got)
}

func TestRender_ExtraPlaceholdersSurvive(t *testing.T) {
	r, err := NewRenderer(Catalog{"en": {"k": "a {0} b {1}"}}, "en")
	require.NoError(t, err)

	assert.Equal(t, "a x b {1}", r.Render("en", "k", "x"))
}

func TestNewRenderer_RejectsBadLanguages(t *testing.T) {
	_, err := NewRenderer(Catalog{}, "")
	assert.Error(t, err)

	_, err = NewRenderer(Catalog{"not a tag!!": {}}, "en")
	assert.Error(t, err)
}
