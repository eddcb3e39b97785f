package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Canonical codes map to themselves
		{"English canonical", "en", "en"},
		{"Vietnamese canonical", "vi", "vi"},
		{"Simplified Chinese canonical", "ch", "ch"},
		{"Traditional Chinese canonical", "chinese_cht", "chinese_cht"},
		{"Japanese canonical", "japan", "japan"},
		{"Korean canonical", "korean", "korean"},
		{"French canonical", "french", "french"},
		{"German canonical", "german", "german"},
		{"Spanish canonical", "es", "es"},
		{"Russian canonical", "ru", "ru"},

		// Aliases collapse to the same canonical as their group
		{"English alias", "eng", "en"},
		{"Vietnamese alias", "vie", "vi"},
		{"Simplified Chinese alias", "chi_sim", "ch"},
		{"Traditional Chinese alias", "chi_tra", "chinese_cht"},
		{"Japanese alias - ja", "ja", "japan"},
		{"Japanese alias - jpn", "jpn", "japan"},
		{"Korean alias - ko", "ko", "korean"},
		{"Korean alias - kor", "kor", "korean"},
		{"French alias - fr", "fr", "french"},
		{"French alias - fra", "fra", "french"},
		{"German alias - de", "de", "german"},
		{"German alias - deu", "deu", "german"},
		{"Spanish alias", "spa", "es"},
		{"Russian alias", "rus", "ru"},

		// Case and whitespace tolerance
		{"Uppercase", "EN", "en"},
		{"Mixed case", "ViE", "vi"},
		{"Surrounding spaces", "  kor  ", "korean"},

		// Unknown codes fall back to the default
		{"Unknown code", "klingon", "en"},
		{"Empty string", "", "en"},
		{"Numeric noise", "1234", "en"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, resolver.Resolve(tc.input))
		})
	}
}

func TestResolver_AliasGroupsAgree(t *testing.T) {
	resolver := NewResolver()

	groups := map[string][]string{
		"en":          {"en", "eng", "EN"},
		"vi":          {"vi", "vie"},
		"ch":          {"ch", "chi_sim"},
		"chinese_cht": {"chinese_cht", "chi_tra"},
		"japan":       {"japan", "ja", "jpn"},
		"korean":      {"korean", "ko", "kor"},
		"french":      {"french", "fr", "fra"},
		"german":      {"german", "de", "deu"},
		"es":          {"es", "spa"},
		"ru":          {"ru", "rus"},
	}

	for canonical, members := range groups {
		for _, member := range members {
			assert.Equal(t, canonical, resolver.Resolve(member),
				"alias %q should resolve to %q", member, canonical)
		}
	}
}

func TestResolver_Supported(t *testing.T) {
	resolver := NewResolver()

	supported := resolver.Supported()
	assert.Equal(t, []string{
		"en", "vi", "ch", "chinese_cht", "japan",
		"korean", "french", "german", "es", "ru",
	}, supported)

	// Every advertised code resolves to itself
	for _, code := range supported {
		assert.Equal(t, code, resolver.Resolve(code))
		assert.True(t, resolver.IsSupported(code))
	}

	// Callers get their own copy
	supported[0] = "mutated"
	assert.Equal(t, "en", resolver.Supported()[0])
}

func TestNewResolverWith(t *testing.T) {
	t.Run("extra aliases merge over defaults", func(t *testing.T) {
		resolver := NewResolverWith(map[string]string{
			"zh-hans": "ch",
			"ZH-Hant": "chinese_cht",
		}, "en")

		assert.Equal(t, "ch", resolver.Resolve("zh-hans"))
		assert.Equal(t, "chinese_cht", resolver.Resolve("zh-hant"))
		// Built-ins still present
		assert.Equal(t, "vi", resolver.Resolve("vie"))
	})

	t.Run("alias to unknown canonical is ignored", func(t *testing.T) {
		resolver := NewResolverWith(map[string]string{"xx": "not_a_language"}, "en")
		assert.Equal(t, "en", resolver.Resolve("xx"))
	})

	t.Run("custom fallback", func(t *testing.T) {
		resolver := NewResolverWith(nil, "vi")
		assert.Equal(t, "vi", resolver.Resolve("unknown"))
		assert.Equal(t, "vi", resolver.Default())
	})

	t.Run("invalid fallback reverts to built-in default", func(t *testing.T) {
		resolver := NewResolverWith(nil, "nope")
		assert.Equal(t, "en", resolver.Default())
	})
}
