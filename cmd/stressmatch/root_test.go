package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const testCMU = `;;; test corpus
HELLO  HH AH0 L OW1
WORLD  W ER1 L D
BELOW  B IH0 L OW1
THERE  DH EH1 R
RAINBOW  R EY1 N B OW2
`

const testList = "Below There\tArtist A\nRainbow\nhello zzyzx\n"

type fixture struct {
	dir, config, corpus, list string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:    dir,
		corpus: writeFile(t, dir, "cmudict.txt", testCMU),
		list:   writeFile(t, dir, "list.tsv", testList),
	}
	f.config = writeFile(t, dir, "stressmatch.yaml",
		"corpus: "+f.corpus+"\nlists:\n  default: "+f.list+"\nlog_level: error\ncheck_interval: 0s\nsources_db: "+
			filepath.Join(dir, "sources.db")+"\n")
	return f
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_OneShot(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		phrase string
		want   string
	}{
		{"Hello, world!", "Below There\tArtist A\n"},
		{"rainbow", "Rainbow\n"},
		{"hello there world", "No matches found :(\n"},
		{"zzyzx", "No matches found :(\n"},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			out, err := run(t, "", "--config", f.config, tt.phrase)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRoot_PhraseListFlag(t *testing.T) {
	f := newFixture(t)
	other := writeFile(t, f.dir, "other.txt", "yellow\nworld\n")

	out, err := run(t, "", "--config", f.config, "-l", other, "there")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "world\n" {
		t.Errorf("output = %q, want %q", out, "world\n")
	}
}

func TestRoot_MissingList(t *testing.T) {
	f := newFixture(t)
	missing := filepath.Join(f.dir, "missing.txt")

	out, err := run(t, "", "--config", f.config, "-l", missing, "hello")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	want := "Error: Phrase list file " + missing + " not found.\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRoot_Interactive(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "hello world\nrainbow\nx\nhello world\n", "--config", f.config)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.Count(out, prompt); got != 3 {
		t.Errorf("prompt shown %d times, want 3", got)
	}
	if strings.Count(out, "Below There\tArtist A") != 1 {
		t.Errorf("expected exactly one match before x, got %q", out)
	}
	if !strings.Contains(out, "Rainbow\n") {
		t.Errorf("missing rainbow match in %q", out)
	}
}

func TestRoot_InteractiveEOF(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "zzyzx", "--config", f.config)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "No matches found :(") {
		t.Errorf("output = %q", out)
	}
}

func TestRoot_MissingCorpus(t *testing.T) {
	f := newFixture(t)
	_, err := run(t, "", "--config", f.config, "--corpus", filepath.Join(f.dir, "nope"), "hello")
	if err == nil || !strings.Contains(err.Error(), "stressmatch import") {
		t.Fatalf("err = %v, want hint to import", err)
	}
}

func TestStressCmd(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "", "--config", f.config, "stress", "Hello world")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "signature: 011") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "", "--config", f.config, "stress", "hello wurld")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "signature: none (1 unknown word(s))") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "wurld") {
		t.Errorf("unknown word not listed: %q", out)
	}
}

func TestStressCmd_JSON(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "", "--config", f.config, "stress", "--json", "rainbow")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, `"signature": "12"`) {
		t.Errorf("output = %q", out)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "stressmatch dev\n" {
		t.Errorf("output = %q", out)
	}
}

func TestImportCmd_ListsSources(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "", "--config", f.config, "import")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, id := range []string{"cmudict-en", "cmudict-0.7b"} {
		if !strings.Contains(out, id) {
			t.Errorf("missing %s in %q", id, out)
		}
	}
}
