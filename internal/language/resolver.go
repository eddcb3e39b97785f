// Package language provides language code resolution for recognition engines.
package language

import "strings"

// DefaultLanguage is the canonical code unknown inputs resolve to.
const DefaultLanguage = "en"

// Canonical codes in the order the service advertises them.
var canonicalOrder = []string{
	"en",
	"vi",
	"ch",
	"chinese_cht",
	"japan",
	"korean",
	"french",
	"german",
	"es",
	"ru",
}

// Resolver maps caller-supplied language codes to canonical engine
// identifiers. Resolution is a pure lookup over a fixed alias table.
type Resolver struct {
	aliases  map[string]string
	fallback string
}

// NewResolver creates a resolver with the built-in alias table and the
// built-in default language.
func NewResolver() *Resolver {
	return NewResolverWith(nil, DefaultLanguage)
}

// NewResolverWith creates a resolver whose alias table is the built-in
// table with extra entries merged over it. The fallback must be a
// canonical code; anything else falls back to DefaultLanguage.
func NewResolverWith(extra map[string]string, fallback string) *Resolver {
	aliases := buildAliases()
	for alias, canonical := range extra {
		alias = strings.ToLower(strings.TrimSpace(alias))
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if alias == "" || !isCanonical(canonical) {
			continue
		}
		aliases[alias] = canonical
	}

	if !isCanonical(fallback) {
		fallback = DefaultLanguage
	}

	return &Resolver{
		aliases:  aliases,
		fallback: fallback,
	}
}

// Resolve maps a free-form language code to its canonical identifier.
// Matching is case-insensitive and ignores surrounding whitespace;
// unknown codes resolve to the configured default.
func (r *Resolver) Resolve(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if canonical, ok := r.aliases[normalized]; ok {
		return canonical
	}
	return r.fallback
}

// Default returns the canonical code unknown inputs resolve to.
func (r *Resolver) Default() string {
	return r.fallback
}

// Supported returns the canonical language set in advertised order.
func (r *Resolver) Supported() []string {
	out := make([]string, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// IsSupported reports whether code is a canonical identifier.
func (r *Resolver) IsSupported(code string) bool {
	return isCanonical(strings.ToLower(strings.TrimSpace(code)))
}

func isCanonical(code string) bool {
	for _, c := range canonicalOrder {
		if c == code {
			return true
		}
	}
	return false
}

// buildAliases builds the alias map, identity entries included.
func buildAliases() map[string]string {
	aliases := map[string]string{
		"eng":     "en",
		"vie":     "vi",
		"chi_sim": "ch",
		"chi_tra": "chinese_cht",
		"ja":      "japan",
		"jpn":     "japan",
		"ko":      "korean",
		"kor":     "korean",
		"fr":      "french",
		"fra":     "french",
		"de":      "german",
		"deu":     "german",
		"spa":     "es",
		"rus":     "ru",
	}
	for _, canonical := range canonicalOrder {
		aliases[canonical] = canonical
	}
	return aliases
}
