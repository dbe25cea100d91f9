package stress

import (
	"testing"

	"github.com/hazyhaar/stressmatch/pkg/corpus"
)

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	c := corpus.New(map[string][]corpus.Pronunciation{
		"cat":        {{"K", "AE1", "T"}},
		"nap":        {{"N", "AE1", "P"}},
		"banana":     {{"B", "AH0", "N", "AE1", "N", "AH0"}},
		"read":       {{"R", "EH1", "D"}, {"R", "IY1", "D"}},
		"present":    {{"P", "R", "EH1", "Z", "AH0", "N", "T"}, {"P", "R", "IY0", "Z", "EH1", "N", "T"}},
		"hmm":        {{"HH", "M"}},
		"fred":       {{"F", "R", "EH1", "D"}},
		"flintstone": {{"F", "L", "IH1", "N", "T", "S", "T", "OW2", "N"}},
		"mr.":        {{"M", "IH1", "S", "T", "ER0"}},
	}, nil)
	return NewBuilder(c)
}

func TestWordStress(t *testing.T) {
	b := testBuilder(t)

	tests := []struct {
		word string
		want Signature
		ok   bool
	}{
		{"cat", "1", true},
		{"banana", "010", true},
		{"BANANA", "010", true},
		{"present", "10", true}, // first variant only
		{"hmm", "", true},       // known, no vowels
		{"dog", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := b.WordStress(tt.word)
		if got != tt.want || ok != tt.ok {
			t.Errorf("WordStress(%q) = %q,%v want %q,%v", tt.word, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPhraseStress(t *testing.T) {
	b := testBuilder(t)

	tests := []struct {
		phrase string
		want   Signature
		ok     bool
	}{
		{"Cat Nap", "11", true},
		{"cat, nap!", "11", true},
		{"Fred Flintstone", "112", true},
		{"banana cat", "0101", true},
		{"hmm cat", "1", true},
		{"Mr. Cat", "101", true},
		{"cat dog", "", false},  // one unknown word invalidates the phrase
		{"cat  nap", "", false}, // double space yields an empty word
		{"", "", false},
		{"!!!", "", false},
	}
	for _, tt := range tests {
		got, ok := b.PhraseStress(tt.phrase)
		if got != tt.want || ok != tt.ok {
			t.Errorf("PhraseStress(%q) = %q,%v want %q,%v", tt.phrase, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPhraseStress_Deterministic(t *testing.T) {
	b := testBuilder(t)
	for _, p := range []string{"Cat Nap", "banana", "cat dog", ""} {
		s1, ok1 := b.PhraseStress(p)
		s2, ok2 := b.PhraseStress(p)
		if s1 != s2 || ok1 != ok2 {
			t.Errorf("PhraseStress(%q) not deterministic: %q,%v vs %q,%v", p, s1, ok1, s2, ok2)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Cat Nap", "cat nap"},
		{"Don't Stop Me Now!", "dont stop me now"},
		{"Mr. Blue Sky", "mr. blue sky"},
		{"tab\there", "tabhere"},
		{"snake_case 42", "snake_case 42"},
		{"Beyoncé", "beyonc"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Clean(tt.input)
		if got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if again := Clean(got); again != got {
			t.Errorf("Clean not idempotent on %q: %q -> %q", tt.input, got, again)
		}
	}
}

func TestAnalyze(t *testing.T) {
	b := testBuilder(t)

	a := b.Analyze("Cat dog Nap zork")
	if a.OK {
		t.Error("OK = true, want false with unknown words")
	}
	if len(a.Unknown) != 2 || a.Unknown[0] != "dog" || a.Unknown[1] != "zork" {
		t.Errorf("Unknown = %v, want [dog zork]", a.Unknown)
	}
	if len(a.Words) != 4 {
		t.Fatalf("Words = %d, want 4", len(a.Words))
	}
	if a.Words[2].Signature != "1" || !a.Words[2].Known {
		t.Errorf("Words[2] = %+v, want nap/1/known", a.Words[2])
	}

	ok := b.Analyze("Fred Flintstone")
	sig, found := b.PhraseStress("Fred Flintstone")
	if ok.Signature != sig || ok.OK != found {
		t.Errorf("Analyze = %q,%v; PhraseStress = %q,%v", ok.Signature, ok.OK, sig, found)
	}
}
