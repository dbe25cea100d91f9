// Package stress derives stress signatures for words and phrases from a
// pronunciation lookup.
//
// A word's signature is the sequence of stress digits (0 unstressed,
// 1 primary, 2 secondary) carried by the vowel phonemes of its first listed
// pronunciation. A phrase's signature is the concatenation of its word
// signatures with no separator, so "cat nap" and "catnap" collide when their
// digits agree. One unknown word leaves the whole phrase without a signature.
package stress

import (
	"regexp"
	"strings"

	"github.com/hazyhaar/stressmatch/pkg/corpus"
)

// Signature is a string of stress digits.
type Signature string

// Lookup is the read-only pronunciation source a Builder depends on.
// *corpus.Corpus satisfies it.
type Lookup interface {
	Pronunciations(word string) ([]corpus.Pronunciation, bool)
}

// nonWord matches everything outside [A-Za-z0-9_ .]. Go's \w is ASCII-only.
var nonWord = regexp.MustCompile(`[^\w .]`)

// Builder computes signatures. It holds no mutable state and is safe for
// concurrent use as long as its Lookup is.
type Builder struct {
	lookup Lookup
}

// NewBuilder returns a Builder backed by lookup.
func NewBuilder(lookup Lookup) *Builder {
	return &Builder{lookup: lookup}
}

// Clean lowercases phrase and removes every character that is not a word
// character, a space or a period. Clean(Clean(s)) == Clean(s).
func Clean(phrase string) string {
	return nonWord.ReplaceAllString(strings.ToLower(phrase), "")
}

// WordStress returns the signature of word's canonical pronunciation.
// The bool is false when the word is unknown; a known word without vowels
// yields the empty signature and true.
func (b *Builder) WordStress(word string) (Signature, bool) {
	prons, ok := b.lookup.Pronunciations(strings.ToLower(word))
	if !ok || len(prons) == 0 {
		return "", false
	}

	var sb strings.Builder
	for _, p := range prons[0] {
		if d, ok := p.Stress(); ok {
			sb.WriteByte(d)
		}
	}
	return Signature(sb.String()), true
}

// PhraseStress returns the concatenated signature of every word in phrase.
// Words are split on single spaces after cleaning, so a doubled space yields
// an empty (unknown) word.
func (b *Builder) PhraseStress(phrase string) (Signature, bool) {
	var sb strings.Builder
	for _, word := range strings.Split(Clean(phrase), " ") {
		sig, ok := b.WordStress(word)
		if !ok {
			return "", false
		}
		sb.WriteString(string(sig))
	}
	return Signature(sb.String()), true
}
