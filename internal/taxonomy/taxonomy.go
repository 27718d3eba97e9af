// Package taxonomy provides the immutable skill synonym taxonomy used to canonicalize skill names.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jonathan/resume-matcher/internal/types"
)

//go:embed default_taxonomy.json
var defaultTaxonomyJSON []byte

// Entry maps one canonical skill name to its aliases
type Entry struct {
	Canonical string              `json:"canonical"`
	Category  types.SkillCategory `json:"category"`
	Aliases   []string            `json:"aliases"`
}

type document struct {
	Entries []Entry `json:"entries"`
}

// Taxonomy is a read-only canonical name -> alias set mapping.
// It is safe for concurrent use once constructed.
type Taxonomy struct {
	entries []Entry
	lookup  map[string]string // canonical or alias -> canonical
	index   map[string]int    // canonical -> position in entries
}

// New builds a Taxonomy from entries. Names are lowercased and trimmed.
// It returns a TaxonomyError if a canonical name repeats, a category is
// unknown, or an alias is claimed by more than one canonical name.
func New(entries []Entry) (*Taxonomy, error) {
	t := &Taxonomy{
		entries: make([]Entry, 0, len(entries)),
		lookup:  make(map[string]string),
		index:   make(map[string]int),
	}

	// Canonical names first so an alias colliding with a later canonical is caught.
	for _, e := range entries {
		canonical := normalizeTerm(e.Canonical)
		if canonical == "" {
			return nil, &TaxonomyError{Message: "canonical name is empty"}
		}
		if e.Category != types.CategoryTechnical && e.Category != types.CategorySoft {
			return nil, &TaxonomyError{Entry: canonical, Message: fmt.Sprintf("unknown category %q", e.Category)}
		}
		if _, exists := t.index[canonical]; exists {
			return nil, &TaxonomyError{Entry: canonical, Message: "duplicate canonical name"}
		}
		t.index[canonical] = len(t.entries)
		t.lookup[canonical] = canonical
		t.entries = append(t.entries, Entry{Canonical: canonical, Category: e.Category})
	}

	for _, e := range entries {
		canonical := normalizeTerm(e.Canonical)
		entry := &t.entries[t.index[canonical]]
		seen := make(map[string]bool)
		for _, alias := range e.Aliases {
			alias = normalizeTerm(alias)
			if alias == "" || alias == canonical || seen[alias] {
				continue
			}
			if owner, exists := t.lookup[alias]; exists && owner != canonical {
				return nil, &TaxonomyError{
					Entry:   canonical,
					Message: fmt.Sprintf("alias %q already maps to %q", alias, owner),
				}
			}
			seen[alias] = true
			t.lookup[alias] = canonical
			entry.Aliases = append(entry.Aliases, alias)
		}
	}

	return t, nil
}

// Parse builds a Taxonomy from its JSON representation.
func Parse(data []byte) (*Taxonomy, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &TaxonomyError{Message: "failed to parse taxonomy JSON", Cause: err}
	}
	if len(doc.Entries) == 0 {
		return nil, &TaxonomyError{Message: "taxonomy has no entries"}
	}
	return New(doc.Entries)
}

// Load reads and parses a taxonomy JSON file.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}
	return Parse(data)
}

var loadDefault = sync.OnceValues(func() (*Taxonomy, error) {
	return Parse(defaultTaxonomyJSON)
})

// Default returns the built-in taxonomy. It is parsed once per process.
func Default() *Taxonomy {
	t, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("failed to load default taxonomy: %v", err))
	}
	return t
}

// Canonicalize returns the canonical name for raw when raw is a canonical
// name or an alias, and the trimmed lowercase form of raw otherwise.
func (t *Taxonomy) Canonicalize(raw string) string {
	term := normalizeTerm(raw)
	if canonical, ok := t.lookup[term]; ok {
		return canonical
	}
	return term
}

// IsCanonical reports whether name is a canonical entry name.
func (t *Taxonomy) IsCanonical(name string) bool {
	_, ok := t.index[normalizeTerm(name)]
	return ok
}

// Known reports whether term is a canonical name or an alias.
func (t *Taxonomy) Known(term string) bool {
	_, ok := t.lookup[normalizeTerm(term)]
	return ok
}

// Aliases returns a copy of the aliases of a canonical name, or nil.
func (t *Taxonomy) Aliases(canonical string) []string {
	i, ok := t.index[normalizeTerm(canonical)]
	if !ok {
		return nil
	}
	return append([]string(nil), t.entries[i].Aliases...)
}

// Category returns the detection category of a canonical name or alias.
func (t *Taxonomy) Category(term string) (types.SkillCategory, bool) {
	canonical, ok := t.lookup[normalizeTerm(term)]
	if !ok {
		return "", false
	}
	return t.entries[t.index[canonical]].Category, true
}

// Entries returns a copy of all entries in definition order.
func (t *Taxonomy) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = Entry{Canonical: e.Canonical, Category: e.Category, Aliases: append([]string(nil), e.Aliases...)}
	}
	return out
}

// Terms returns every canonical name and alias of a category, in definition order.
func (t *Taxonomy) Terms(category types.SkillCategory) []string {
	var terms []string
	for _, e := range t.entries {
		if e.Category != category {
			continue
		}
		terms = append(terms, e.Canonical)
		terms = append(terms, e.Aliases...)
	}
	return terms
}

// normalizeTerm lowercases, trims and collapses internal whitespace.
func normalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
