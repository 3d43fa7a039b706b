// Package namegen allocates unique identifiers for schema synthesis.
package namegen

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
)

const (
	// DefaultMaxAttempts bounds both the vocabulary draws and the numeric
	// suffix search per draw before the synthetic fallback engages.
	DefaultMaxAttempts = 20

	// compoundChance is the probability that an entity draw concatenates
	// two distinct nouns.
	compoundChance = 0.2

	// relationBias is the probability that a relation field is renamed
	// after the entity it points at.
	relationBias = 0.7

	syntheticEntityPrefix = "GenericModel_"
	syntheticFieldPrefix  = "generic_field_"
	syntheticSuffixLen    = 5

	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Registry tracks the names already committed within one naming scope.
// Entity names share one app-wide registry; each entity owns a separate
// registry for its field names.
type Registry struct {
	names map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Has reports whether name is already committed.
func (r *Registry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Add commits a name to the registry.
func (r *Registry) Add(name string) {
	r.names[name] = struct{}{}
}

// Len returns the number of committed names.
func (r *Registry) Len() int {
	return len(r.names)
}

// Allocator draws names from vocabulary lists and guarantees uniqueness
// within a registry. Every allocation commits the returned name to the
// registry before returning, and none can fail: exhausted vocabularies
// degrade to synthetic names instead of erroring.
type Allocator struct {
	rng         *rand.Rand
	maxAttempts int
}

// New returns an allocator backed by the given random source.
func New(rng *rand.Rand) *Allocator {
	return &Allocator{rng: rng, maxAttempts: DefaultMaxAttempts}
}

// Entity allocates a unique entity name from the noun list and commits it.
// Roughly one draw in five concatenates two distinct nouns for variety.
func (a *Allocator) Entity(reg *Registry, nouns []string) string {
	pick := func() string {
		name := nouns[a.rng.IntN(len(nouns))]
		if a.rng.Float64() < compoundChance {
			prefix := nouns[a.rng.IntN(len(nouns))]
			if prefix != name {
				name = prefix + name
			}
		}
		return name
	}
	name := a.candidate(reg, pick, "Model", syntheticEntityPrefix)
	reg.Add(name)
	return name
}

// Field allocates a unique field name from the word list and commits it.
func (a *Allocator) Field(reg *Registry, words []string) string {
	pick := func() string { return words[a.rng.IntN(len(words))] }
	name := a.candidate(reg, pick, "field_", syntheticFieldPrefix)
	reg.Add(name)
	return name
}

// RelationField allocates a field name for a relation pointing at target
// and commits it. The result is biased toward the target's lowercase
// name so the schema reads naturally; the plain vocabulary draw is kept
// when it already mentions the target or when the bias roll misses.
func (a *Allocator) RelationField(reg *Registry, words []string, target string) string {
	pick := func() string { return words[a.rng.IntN(len(words))] }
	name := a.candidate(reg, pick, "field_", syntheticFieldPrefix)

	base := strings.ToLower(target)
	if !strings.Contains(name, base) && a.rng.Float64() < relationBias {
		name = base
		if reg.Has(name) {
			name = base + "_link"
		}
		for n := 1; reg.Has(name); n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
	}

	reg.Add(name)
	return name
}

// candidate runs the bounded draw/sanitize/suffix search and returns a
// name free in reg without committing it. Each draw tolerates up to
// maxAttempts numeric suffixes before redrawing; after maxAttempts draws
// the synthetic fallback takes over, so the search always terminates.
func (a *Allocator) candidate(reg *Registry, pick func() string, sanitizePrefix, fallbackPrefix string) string {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		base := sanitizeIdentifier(pick(), sanitizePrefix)
		name := base
		free := true
		for n := 1; reg.Has(name); n++ {
			if n > a.maxAttempts {
				free = false
				break
			}
			name = fmt.Sprintf("%s_%d", base, n)
		}
		if free {
			return name
		}
	}

	for {
		name := fallbackPrefix + Suffix(a.rng, syntheticSuffixLen)
		if !reg.Has(name) {
			return name
		}
	}
}

// Suffix returns a random lowercase alphanumeric string of the given length.
func Suffix(rng *rand.Rand, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = suffixAlphabet[rng.IntN(len(suffixAlphabet))]
	}
	return string(b)
}

// sanitizeIdentifier coerces a vocabulary word into a valid bare
// identifier. Words that already qualify pass through untouched; dashes
// and spaces become underscores, other invalid runes are dropped, and a
// result that still fails (or leads with an underscore) gains the prefix.
func sanitizeIdentifier(word, prefix string) string {
	if isIdentifier(word) {
		return word
	}

	var b strings.Builder
	for _, r := range word {
		switch {
		case r == '-' || r == ' ':
			b.WriteRune('_')
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if !isIdentifier(cleaned) || strings.HasPrefix(cleaned, "_") {
		cleaned = prefix + cleaned
	}
	return cleaned
}

// isIdentifier reports whether s is a valid bare identifier: a letter or
// underscore followed by letters, digits, or underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
