// CLAUDE:SUMMARY Word normalization strategies (lowercase, lowercase+strip-accents, none) applied before corpus lookup.
package corpus

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer transforms a word before lookup.
type Normalizer func(string) string

// NormalizeLowercaseASCII lowercases and strips accents (e.g. Beyoncé -> beyonce).
// A transform chain carries state, so each call builds its own.
func NormalizeLowercaseASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, strings.ToLower(s))
	return result
}

// NormalizeLowercaseUTF8 lowercases but preserves accents.
func NormalizeLowercaseUTF8(s string) string {
	return strings.ToLower(s)
}

// NormalizeNone returns the word unchanged.
func NormalizeNone(s string) string {
	return s
}

// GetNormalizer returns the normalizer for the given mode.
// Default is plain lowercase, which is what the CMU dictionary keys expect.
func GetNormalizer(mode string) Normalizer {
	switch mode {
	case "lowercase_ascii":
		return NormalizeLowercaseASCII
	case "lowercase", "lowercase_utf8":
		return NormalizeLowercaseUTF8
	case "none":
		return NormalizeNone
	default:
		return NormalizeLowercaseUTF8
	}
}
