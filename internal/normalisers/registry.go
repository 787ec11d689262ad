// Package normalisers provides field cleaning for glossary imports.
// Each normaliser targets specific term fields and runs in priority
// order during CSV ingestion.
package normalisers

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry implements NormaliserRegistry.
// It applies matching normalisers to a field value, highest priority first.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.FieldNormaliser
	sorted      bool
}

// NewRegistry creates an empty normaliser registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make([]driven.FieldNormaliser, 0),
	}
}

// DefaultRegistry creates a registry with the default normalisers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewWhitespaceNormaliser())
	r.Register(NewHTMLStripper())
	r.Register(NewPunctuationNormaliser())
	return r
}

// Register adds a normaliser to the registry.
// Normalisers are sorted by Priority() before application.
func (r *Registry) Register(n driven.FieldNormaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, n)
	r.sorted = false
}

// Apply runs all normalisers matching the field, highest priority first.
func (r *Registry) Apply(field, value string) string {
	r.mu.Lock()
	if !r.sorted {
		sort.SliceStable(r.normalisers, func(i, j int) bool {
			return r.normalisers[i].Priority() > r.normalisers[j].Priority()
		})
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.normalisers {
		if matchesField(n.Fields(), field) {
			value = n.Normalise(value)
		}
	}
	return value
}

// List returns registered normaliser names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.normalisers))
	for i, n := range r.normalisers {
		names[i] = n.Name()
	}
	return names
}

func matchesField(fields []string, field string) bool {
	for _, f := range fields {
		if f == "*" || f == field {
			return true
		}
	}
	return false
}

// WhitespaceNormaliser collapses runs of whitespace and trims values.
// It runs first so later normalisers see clean input.
type WhitespaceNormaliser struct{}

// Verify interface compliance
var _ driven.FieldNormaliser = (*WhitespaceNormaliser)(nil)

// NewWhitespaceNormaliser creates a new whitespace normaliser.
func NewWhitespaceNormaliser() *WhitespaceNormaliser {
	return &WhitespaceNormaliser{}
}

// Name returns the normaliser name.
func (w *WhitespaceNormaliser) Name() string {
	return "whitespace"
}

// Fields returns "*" - whitespace cleanup applies to every field.
func (w *WhitespaceNormaliser) Fields() []string {
	return []string{"*"}
}

// Priority returns 100 - whitespace runs first.
func (w *WhitespaceNormaliser) Priority() int {
	return 100
}

// Normalise collapses whitespace runs into single spaces.
func (w *WhitespaceNormaliser) Normalise(value string) string {
	// Normalize line endings before collapsing
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")
	return strings.Join(strings.Fields(value), " ")
}

// htmlTagPattern matches HTML tags left over from scraped source data.
var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// HTMLStripper removes HTML tags from definition fields.
// Source spreadsheets occasionally carry markup pasted from web pages.
type HTMLStripper struct{}

// Verify interface compliance
var _ driven.FieldNormaliser = (*HTMLStripper)(nil)

// NewHTMLStripper creates a new HTML stripper.
func NewHTMLStripper() *HTMLStripper {
	return &HTMLStripper{}
}

// Name returns the normaliser name.
func (h *HTMLStripper) Name() string {
	return "html-strip"
}

// Fields returns the definition fields - term names never carry markup.
func (h *HTMLStripper) Fields() []string {
	return []string{"short_definition", "long_definition"}
}

// Priority returns 90 - runs after whitespace collapse.
func (h *HTMLStripper) Priority() int {
	return 90
}

// Normalise removes HTML tags and decodes the common entities.
func (h *HTMLStripper) Normalise(value string) string {
	value = htmlTagPattern.ReplaceAllString(value, " ")
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	value = replacer.Replace(value)
	return strings.Join(strings.Fields(value), " ")
}

// PunctuationNormaliser replaces typographic punctuation with ASCII
// equivalents so lookups and dedup hashing are stable across sources.
type PunctuationNormaliser struct{}

// Verify interface compliance
var _ driven.FieldNormaliser = (*PunctuationNormaliser)(nil)

// NewPunctuationNormaliser creates a new punctuation normaliser.
func NewPunctuationNormaliser() *PunctuationNormaliser {
	return &PunctuationNormaliser{}
}

// Name returns the normaliser name.
func (p *PunctuationNormaliser) Name() string {
	return "punctuation"
}

// Fields returns "*" - smart quotes show up in names and definitions.
func (p *PunctuationNormaliser) Fields() []string {
	return []string{"*"}
}

// Priority returns 80 - runs last.
func (p *PunctuationNormaliser) Priority() int {
	return 80
}

// Normalise replaces curly quotes and long dashes with ASCII forms.
func (p *PunctuationNormaliser) Normalise(value string) string {
	replacer := strings.NewReplacer(
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
		"–", "-",
		"—", "-",
		"…", "...",
	)
	return replacer.Replace(value)
}
