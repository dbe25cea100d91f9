// CLAUDE:SUMMARY Signature-indexed phrase buckets built from candidate lines (tab-delimited display fields supported).
package phrases

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hazyhaar/stressmatch/pkg/stress"
)

// Index maps a stress signature to the display lines sharing it, in the
// order they appeared in the source. It is immutable once built.
type Index struct {
	buckets map[stress.Signature][]string
	entries int
	dropped int
}

// Build indexes lines. Text before the first tab is matched; the whole
// trimmed line is what gets stored. Lines containing an unknown word are
// dropped without error. Identical lines are kept as separate entries.
func Build(lines []string, b *stress.Builder) *Index {
	idx := &Index{buckets: make(map[stress.Signature][]string)}
	for _, raw := range lines {
		// Both ends are trimmed, so indented lines match like unindented ones.
		line := strings.TrimSpace(raw)
		phrase := line
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			phrase = line[:i]
		}

		sig, ok := b.PhraseStress(phrase)
		if !ok {
			idx.dropped++
			continue
		}
		idx.buckets[sig] = append(idx.buckets[sig], line)
		idx.entries++
	}
	return idx
}

// Read builds an index from newline-separated UTF-8 text.
func Read(r io.Reader, b *stress.Builder) (*Index, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read phrases: %w", err)
	}
	return Build(lines, b), nil
}

// LoadFile builds an index from the phrase list at path.
func LoadFile(path string, b *stress.Builder) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open phrase list: %w", err)
	}
	defer f.Close()
	return Read(f, b)
}

// Lookup returns a copy of the bucket for sig.
func (idx *Index) Lookup(sig stress.Signature) ([]string, bool) {
	bucket, ok := idx.buckets[sig]
	if !ok {
		return nil, false
	}
	out := make([]string, len(bucket))
	copy(out, bucket)
	return out, true
}

// Len returns the number of buckets.
func (idx *Index) Len() int { return len(idx.buckets) }

// Entries returns the number of indexed lines.
func (idx *Index) Entries() int { return idx.entries }

// Dropped returns the number of lines left out because of unknown words.
func (idx *Index) Dropped() int { return idx.dropped }

// Signatures returns every bucket signature in sorted order.
func (idx *Index) Signatures() []stress.Signature {
	sigs := make([]stress.Signature, 0, len(idx.buckets))
	for s := range idx.buckets {
		sigs = append(sigs, s)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i] < sigs[j] })
	return sigs
}
