package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveGobAndLoad(t *testing.T) {
	entries, _, err := ParseCMU(strings.NewReader(sampleCMU), nil)
	if err != nil {
		t.Fatalf("ParseCMU: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "gob-corpus")
	os.MkdirAll(dir, 0o755)
	if err := SaveGob(entries, filepath.Join(dir, "data.gob")); err != nil {
		t.Fatalf("SaveGob: %v", err)
	}
	if err := WriteManifest(filepath.Join(dir, "manifest.yaml"), &Manifest{
		ID:       "gob-corpus",
		DataFile: "data.gob",
	}); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if c.Len() != len(entries) {
		t.Errorf("Len = %d, want %d", c.Len(), len(entries))
	}
	prons, ok := c.Pronunciations("READ")
	if !ok || len(prons) != 2 || prons[0][1] != "EH1" {
		t.Errorf("read after gob load = %v, %v", prons, ok)
	}
}

func TestLoadDir_GobPriority(t *testing.T) {
	dir := writeTestCorpus(t, "prio", "utf-8", "lowercase", []byte(sampleCMU))

	gobEntries := map[string][]Pronunciation{"gobonly": {{"G", "AA1", "B"}}}
	if err := SaveGob(gobEntries, filepath.Join(dir, "data.gob")); err != nil {
		t.Fatalf("SaveGob: %v", err)
	}

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if _, ok := c.Pronunciations("gobonly"); !ok {
		t.Error("expected gob data to take priority over text")
	}
	if _, ok := c.Pronunciations("cat"); ok {
		t.Error("text data should not be loaded when data.gob exists")
	}
}

func TestLoadDir_CorruptGob(t *testing.T) {
	dir := writeTestCorpus(t, "corrupt", "utf-8", "lowercase", []byte(sampleCMU))
	os.WriteFile(filepath.Join(dir, "data.gob"), []byte("not a gob"), 0o644)

	if _, err := LoadDir(dir); err == nil {
		t.Error("expected error for corrupt gob")
	}
}
