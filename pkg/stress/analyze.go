package stress

import (
	"strings"
)

// WordResult is the signature of one word of an analyzed phrase.
type WordResult struct {
	Word      string    `json:"word"`
	Signature Signature `json:"signature"`
	Known     bool      `json:"known"`
}

// Analysis breaks a phrase down word by word.
type Analysis struct {
	Phrase    string       `json:"phrase"`
	Cleaned   string       `json:"cleaned"`
	Words     []WordResult `json:"words"`
	Unknown   []string     `json:"unknown,omitempty"`
	Signature Signature    `json:"signature"`
	OK        bool         `json:"ok"`
}

// Analyze reports the signature of every word in phrase along with the
// phrase signature. Unlike PhraseStress it keeps going past unknown words so
// all of them are listed. Signature and OK always agree with PhraseStress.
func (b *Builder) Analyze(phrase string) Analysis {
	cleaned := Clean(phrase)
	a := Analysis{Phrase: phrase, Cleaned: cleaned, OK: true}

	var sb strings.Builder
	for _, word := range strings.Split(cleaned, " ") {
		sig, ok := b.WordStress(word)
		a.Words = append(a.Words, WordResult{Word: word, Signature: sig, Known: ok})
		if !ok {
			a.OK = false
			a.Unknown = append(a.Unknown, word)
			continue
		}
		sb.WriteString(string(sig))
	}
	if a.OK {
		a.Signature = Signature(sb.String())
	}
	return a
}
