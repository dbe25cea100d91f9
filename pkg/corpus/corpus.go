// CLAUDE:SUMMARY Read-only pronunciation corpus: loads manifest + gob or CMU text, answers case-insensitive lookups.
package corpus

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Phoneme is one ARPAbet unit, e.g. "AE1" or "K".
type Phoneme string

// Stress returns the trailing stress digit of a vowel phoneme.
// Consonants carry no digit and report false.
func (p Phoneme) Stress() (byte, bool) {
	if p == "" {
		return 0, false
	}
	c := p[len(p)-1]
	return c, c >= '0' && c <= '9'
}

// Pronunciation is one way to say a word.
type Pronunciation []Phoneme

// Corpus is an immutable word -> pronunciations map. It is safe for
// concurrent use once loaded; nothing mutates Entries after Load returns.
type Corpus struct {
	Manifest  *Manifest                  `json:"manifest"`
	Entries   map[string][]Pronunciation `json:"-"`
	normalize Normalizer

	suggestOnce sync.Once
	suggest     *suggester
}

// Load opens a corpus. A directory is read through its manifest.yaml;
// a plain file is parsed as CMU dictionary text with a default manifest.
func Load(path string) (*Corpus, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat corpus %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}

	m := &Manifest{
		ID:       strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		DataFile: filepath.Base(path),
	}
	c := newCorpus(m)
	if err := c.loadText(path); err != nil {
		return nil, fmt.Errorf("corpus %s: %w", m.ID, err)
	}
	return c, nil
}

// LoadDir reads dir/manifest.yaml and loads data.gob, falling back to the
// manifest's text data file.
func LoadDir(dir string) (*Corpus, error) {
	manifest, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}
	c := newCorpus(manifest)

	// Gob takes priority over text.
	gobPath := filepath.Join(dir, "data.gob")
	if _, err := os.Stat(gobPath); err == nil {
		if err := c.loadGob(gobPath); err != nil {
			return nil, fmt.Errorf("corpus %s: %w", manifest.ID, err)
		}
		return c, nil
	}

	if err := c.loadText(filepath.Join(dir, manifest.DataFile)); err != nil {
		return nil, fmt.Errorf("corpus %s: %w", manifest.ID, err)
	}
	return c, nil
}

// New builds a corpus from in-memory entries. Keys are normalized with the
// manifest's normalizer; keys that collide after normalization merge their variants.
func New(entries map[string][]Pronunciation, m *Manifest) *Corpus {
	if m == nil {
		m = &Manifest{ID: "memory"}
	}
	c := newCorpus(m)

	// Merge order decides which pronunciation comes first for colliding keys:
	// words already in normalized form first, then lexical.
	words := make([]string, 0, len(entries))
	for word := range entries {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		ni, nj := c.normalize(words[i]) == words[i], c.normalize(words[j]) == words[j]
		if ni != nj {
			return ni
		}
		return words[i] < words[j]
	})

	for _, word := range words {
		prons := entries[word]
		key := c.normalize(word)
		if key == "" || len(prons) == 0 {
			continue
		}
		c.Entries[key] = append(c.Entries[key], prons...)
	}
	return c
}

func newCorpus(m *Manifest) *Corpus {
	return &Corpus{
		Manifest:  m,
		Entries:   make(map[string][]Pronunciation),
		normalize: GetNormalizer(m.Format.Normalize),
	}
}

func (c *Corpus) loadText(path string) error {
	entries, stats, err := ReadCMUFile(path, c.Manifest.Format.Encoding, c.normalize)
	if err != nil {
		return err
	}
	c.Entries = entries
	slog.Debug("corpus parsed", "corpus", c.Manifest.ID,
		"lines", stats.TotalLines, "parsed", stats.ParsedLines, "words", stats.UniqueWords)
	return nil
}

// ReadCMUFile parses the CMU dictionary text at path, transcoding from
// encoding when it is not UTF-8 (cmudict-0.7b is latin-1).
func ReadCMUFile(path, encoding string, normalize Normalizer) (map[string][]Pronunciation, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if encoding != "" && !isUTF8(encoding) {
		e, err := htmlindex.Get(encoding)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}
	return ParseCMU(reader, normalize)
}

// Pronunciations returns the pronunciations of word, canonical variant first.
// The bool is false when the word is not in the corpus; that is an ordinary
// result, not an error. Callers must not modify the returned slice.
func (c *Corpus) Pronunciations(word string) ([]Pronunciation, bool) {
	prons, ok := c.Entries[c.normalize(word)]
	if !ok || len(prons) == 0 {
		return nil, false
	}
	return prons, true
}

// NormalizeWord applies this corpus's normalizer to a word.
func (c *Corpus) NormalizeWord(word string) string {
	return c.normalize(word)
}

// Len returns the number of distinct words.
func (c *Corpus) Len() int {
	return len(c.Entries)
}

// Words returns every word in the corpus, sorted.
func (c *Corpus) Words() []string {
	words := make([]string, 0, len(c.Entries))
	for w := range c.Entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
