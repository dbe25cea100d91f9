package match

import "github.com/hazyhaar/stressmatch/pkg/stress"

// Explanation is the diagnostic view of a match: it separates "unknown word"
// from "no candidate with this meter", which Match collapses.
type Explanation struct {
	stress.Analysis
	Matches     []string            `json:"matches"`
	Matched     bool                `json:"matched"`
	Suggestions map[string][]string `json:"suggestions,omitempty"`
}

// Explain analyzes input word by word and looks its signature up in src.
// src may be nil to analyze only.
func (e *Engine) Explain(input string, src Source) Explanation {
	ex := Explanation{Analysis: e.builder.Analyze(input), Matches: []string{}}

	if ex.OK && src != nil {
		if m, ok := src.Lookup(ex.Signature); ok {
			ex.Matches = m
			ex.Matched = true
		}
	}

	if e.suggester != nil && e.suggestN > 0 && len(ex.Unknown) > 0 {
		ex.Suggestions = make(map[string][]string, len(ex.Unknown))
		for _, w := range ex.Unknown {
			if w == "" {
				continue
			}
			if s := e.suggester.Suggest(w, e.suggestN); len(s) > 0 {
				ex.Suggestions[w] = s
			}
		}
	}
	return ex
}
