// CLAUDE:SUMMARY Parser for CMU Pronouncing Dictionary text (classic 0.7b and modern cmudict.dict layouts) with variant ordering.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// errSkipLine signals that a line carries no entry (comment, blank, malformed).
var errSkipLine = errors.New("skip line")

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	UniqueWords  int
}

type variant struct {
	index int
	pron  Pronunciation
}

// ParseCMU reads CMU dictionary text from r. Keys are passed through normalize;
// pronunciations of a word are ordered by their "(n)" variant suffix, base entry first.
func ParseCMU(r io.Reader, normalize Normalizer) (map[string][]Pronunciation, Stats, error) {
	if normalize == nil {
		normalize = NormalizeLowercaseUTF8
	}

	var stats Stats
	variants := make(map[string][]variant)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		stats.TotalLines++
		line := scanner.Text()

		word, idx, pron, err := parseLine(line)
		if errors.Is(err, errSkipLine) {
			if strings.HasPrefix(line, ";;;") {
				stats.CommentLines++
			}
			continue
		}

		key := normalize(word)
		if key == "" {
			continue
		}
		stats.ParsedLines++
		variants[key] = append(variants[key], variant{index: idx, pron: pron})
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scan cmu data: %w", err)
	}

	entries := make(map[string][]Pronunciation, len(variants))
	for key, vs := range variants {
		sort.SliceStable(vs, func(i, j int) bool { return vs[i].index < vs[j].index })
		prons := make([]Pronunciation, len(vs))
		for i, v := range vs {
			prons[i] = v.pron
		}
		entries[key] = prons
	}
	stats.UniqueWords = len(entries)
	return entries, stats, nil
}

// parseLine parses "WORD  PH1 PH2 ..." or "word(2) ph1 ph2 # comment".
func parseLine(line string) (string, int, Pronunciation, error) {
	if line == "" || strings.HasPrefix(line, ";;;") {
		return "", 0, nil, errSkipLine
	}
	if i := strings.Index(line, " #"); i >= 0 {
		line = line[:i]
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", 0, nil, errSkipLine
	}

	word, idx := parseWordAndVariant(fields[0])
	pron := make(Pronunciation, len(fields)-1)
	for i, f := range fields[1:] {
		pron[i] = Phoneme(f)
	}
	return word, idx, pron, nil
}

// parseWordAndVariant splits "HOUSE(2)" into "HOUSE" and variant index 1.
// The base entry has index 0.
func parseWordAndVariant(raw string) (string, int) {
	if !strings.HasSuffix(raw, ")") {
		return raw, 0
	}
	open := strings.LastIndexByte(raw, '(')
	if open <= 0 {
		return raw, 0
	}
	n, err := strconv.Atoi(raw[open+1 : len(raw)-1])
	if err != nil || n < 1 {
		return raw, 0
	}
	return raw[:open], n - 1
}
