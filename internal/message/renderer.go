// Package message turns failure message keys plus positional arguments
// into localized user-facing text. The validation pipeline only ever
// produces keys and arguments; this package is consumed by the
// transport layer.
package message

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Catalog maps a language tag to its key → template table. Templates
// use positional placeholders: {0}, {1}, ...
type Catalog map[string]map[string]string

// Renderer resolves message keys against a catalog with locale
// negotiation and fallback-to-key semantics: an unknown key renders as
// the key itself so a missing translation never blanks an error.
type Renderer struct {
	mu          sync.RWMutex
	catalog     Catalog
	matcher     language.Matcher
	tags        []language.Tag
	defaultLang string
	logger      *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for missing-key warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer builds a Renderer over catalog. defaultLang must be a
// valid BCP 47 tag present in the catalog (or the catalog may be empty,
// in which case every render falls back to the key).
func NewRenderer(catalog Catalog, defaultLang string, opts ...Option) (*Renderer, error) {
	if defaultLang == "" {
		return nil, fmt.Errorf("default language is required")
	}
	if _, err := language.Parse(defaultLang); err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLang, err)
	}

	r := &Renderer{
		catalog:     catalog,
		defaultLang: defaultLang,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	// The default language is always first so it wins ties during
	// matching.
	tags := []language.Tag{language.Make(defaultLang)}
	for lang := range catalog {
		if lang == defaultLang {
			continue
		}
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog language %q: %w", lang, err)
		}
		tags = append(tags, tag)
	}
	r.tags = tags
	r.matcher = language.NewMatcher(tags)
	return r, nil
}

// Render resolves key in the best catalog language for the requested
// locale (an Accept-Language value or a plain tag) and substitutes the
// positional arguments.
func (r *Renderer) Render(locale, key string, args ...string) string {
	lang := r.negotiate(locale)

	r.mu.RLock()
	template, ok := r.lookup(lang, key)
	r.mu.RUnlock()

	if !ok {
		r.logger.Warn("missing message key", "key", key, "lang", lang)
		return key
	}
	return substitute(template, args)
}

// negotiate picks the best supported language for the requested locale,
// defaulting when the locale is absent or unparseable.
func (r *Renderer) negotiate(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return r.defaultLang
	}
	desired, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(desired) == 0 {
		return r.defaultLang
	}
	_, index, _ := r.matcher.Match(desired...)
	return r.tags[index].String()
}

func (r *Renderer) lookup(lang, key string) (string, bool) {
	if table, ok := r.catalog[lang]; ok {
		if template, ok := table[key]; ok {
			return template, true
		}
	}
	if lang != r.defaultLang {
		if table, ok := r.catalog[r.defaultLang]; ok {
			if template, ok := table[key]; ok {
				return template, true
			}
		}
	}
	return "", false
}

// substitute replaces {0}, {1}, ... with the corresponding argument.
// Placeholders without a matching argument are left intact.
func substitute(template string, args []string) string {
	out := template
	for i, arg := range args {
		out = strings.ReplaceAll(out, fmt.Sprintf("{%d}", i), arg)
	}
	return out
}
