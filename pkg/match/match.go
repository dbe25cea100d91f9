// Package match answers "which candidates share this phrase's meter?".
// A match is an exact stress-signature hit; there is no ranking inside a
// bucket and no fuzzy fallback across buckets.
package match

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hazyhaar/stressmatch/pkg/stress"
)

// NoMatchesMessage is returned by MatchPhrase when nothing matches, including
// when the input contains a word the corpus does not know.
const NoMatchesMessage = "No matches found :("

// Source is a signature-indexed candidate set. *phrases.Index satisfies it.
type Source interface {
	Lookup(sig stress.Signature) ([]string, bool)
}

// Suggester proposes known words that sound like an unknown one.
// *corpus.Corpus satisfies it.
type Suggester interface {
	Suggest(word string, n int) []string
}

// Option configures an [Engine].
type Option func(*Engine)

// WithCache memoizes input signatures for ttl. Signatures depend only on the
// corpus and the input text, so cached values never go stale while the corpus
// is loaded.
func WithCache(ttl time.Duration) Option {
	return func(e *Engine) {
		if ttl > 0 {
			e.cache = gocache.New(ttl, 2*ttl)
		}
	}
}

// WithSuggester enables up to n spelling suggestions per unknown word in Explain.
func WithSuggester(s Suggester, n int) Option {
	return func(e *Engine) {
		e.suggester = s
		e.suggestN = n
	}
}

// Engine matches input phrases against a Source.
type Engine struct {
	builder   *stress.Builder
	cache     *gocache.Cache
	suggester Suggester
	suggestN  int
}

// NewEngine returns an Engine computing signatures with b.
func NewEngine(b *stress.Builder, opts ...Option) *Engine {
	e := &Engine{builder: b}
	for _, o := range opts {
		o(e)
	}
	return e
}

type cachedSig struct {
	sig stress.Signature
	ok  bool
}

// Signature returns the phrase signature of input.
func (e *Engine) Signature(input string) (stress.Signature, bool) {
	if e.cache == nil {
		return e.builder.PhraseStress(input)
	}
	if v, found := e.cache.Get(input); found {
		c := v.(cachedSig)
		return c.sig, c.ok
	}
	sig, ok := e.builder.PhraseStress(input)
	e.cache.SetDefault(input, cachedSig{sig: sig, ok: ok})
	return sig, ok
}

// Match returns the bucket sharing input's signature, in stored order.
// The bool is false when input has an unknown word or no candidate shares
// its signature; the two cases are deliberately indistinguishable here.
func (e *Engine) Match(input string, src Source) ([]string, bool) {
	sig, ok := e.Signature(input)
	if !ok {
		return nil, false
	}
	return src.Lookup(sig)
}

// MatchPhrase formats Match for display: matched lines joined by newlines,
// or NoMatchesMessage.
func (e *Engine) MatchPhrase(input string, src Source) string {
	matches, ok := e.Match(input, src)
	if !ok {
		return NoMatchesMessage
	}
	return strings.Join(matches, "\n")
}
