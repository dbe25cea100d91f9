// CLAUDE:SUMMARY Double Metaphone index over corpus words with Jaro-Winkler ranking, used to suggest spellings for unknown words.
package corpus

import (
	"sort"

	"github.com/antzucaro/matchr"
)

// suggester maps Double Metaphone codes to the corpus words producing them.
type suggester struct {
	codes map[string][]string
}

func newSuggester(entries map[string][]Pronunciation) *suggester {
	s := &suggester{codes: make(map[string][]string, len(entries))}
	for word := range entries {
		p, a := matchr.DoubleMetaphone(word)
		if p != "" {
			s.codes[p] = append(s.codes[p], word)
		}
		if a != "" && a != p {
			s.codes[a] = append(s.codes[a], word)
		}
	}
	return s
}

// Suggest returns up to n corpus words that sound like word, best first.
// The phonetic index is built on first use.
func (c *Corpus) Suggest(word string, n int) []string {
	if n <= 0 {
		return nil
	}
	c.suggestOnce.Do(func() {
		c.suggest = newSuggester(c.Entries)
	})

	w := c.NormalizeWord(word)
	if w == "" {
		return nil
	}
	p, a := matchr.DoubleMetaphone(w)

	type scored struct {
		word  string
		score float64
	}
	seen := make(map[string]struct{})
	var cands []scored
	for _, code := range []string{p, a} {
		if code == "" {
			continue
		}
		for _, cand := range c.suggest.codes[code] {
			if _, dup := seen[cand]; dup || cand == w {
				continue
			}
			seen[cand] = struct{}{}
			cands = append(cands, scored{cand, matchr.JaroWinkler(w, cand, false)})
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].word < cands[j].word
	})
	if len(cands) > n {
		cands = cands[:n]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.word
	}
	return out
}
