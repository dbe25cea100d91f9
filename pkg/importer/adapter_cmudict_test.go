package importer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/stressmatch/pkg/corpus"
)

const modernSample = `;;; test dictionary
hello HH AH0 L OW1
hello(2) HH EH0 L OW1
world W ER1 L D
banana B AH0 N AE1 N AH0 # common
`

func serveText(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRegisteredAdapters(t *testing.T) {
	for _, id := range []string{"cmudict-en", "cmudict-0.7b"} {
		a, err := Get(id)
		if err != nil {
			t.Fatalf("Get(%q): %v", id, err)
		}
		if a.CorpusID() != id {
			t.Errorf("%s: CorpusID = %q", id, a.CorpusID())
		}
		if a.DefaultURL() == "" || a.License() == "" {
			t.Errorf("%s: missing default URL or license", id)
		}
	}
	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown adapter")
	}

	all := All()
	for i := 1; i < len(all); i++ {
		if all[i-1].ID() > all[i].ID() {
			t.Fatalf("All() not sorted: %s before %s", all[i-1].ID(), all[i].ID())
		}
	}
}

func TestCMUDictImport_Modern(t *testing.T) {
	srv := serveText(t, []byte(modernSample))
	out := t.TempDir()

	a, _ := Get("cmudict-en")
	words, err := a.Import(context.Background(), srv.URL, out)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if words != 3 {
		t.Errorf("words = %d, want 3", words)
	}

	if _, err := os.Stat(filepath.Join(out, "_download")); !os.IsNotExist(err) {
		t.Error("download directory should be removed")
	}

	c, err := corpus.LoadDir(filepath.Join(out, "cmudict-en"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if c.Manifest.ID != "cmudict-en" || c.Manifest.SourceURL != srv.URL {
		t.Errorf("manifest = %+v", c.Manifest)
	}

	prons, ok := c.Pronunciations("HELLO")
	if !ok || len(prons) != 2 {
		t.Fatalf("hello pronunciations = %v, %v", prons, ok)
	}
	if prons[0][1] != "AH0" {
		t.Errorf("first variant should be the base entry, got %v", prons[0])
	}
	if _, ok := c.Pronunciations("banana"); !ok {
		t.Error("banana missing; trailing comment broke parsing")
	}
}

func TestCMUDictImport_Latin1(t *testing.T) {
	// "CAFÉ" in ISO-8859-1.
	body := []byte(";;; 0.7b\nCAF\xc9  K AE0 F EY1\nHOUSE  HH AW1 S\n")
	srv := serveText(t, body)
	out := t.TempDir()

	a, _ := Get("cmudict-0.7b")
	if _, err := a.Import(context.Background(), srv.URL, out); err != nil {
		t.Fatalf("Import: %v", err)
	}

	c, err := corpus.LoadDir(filepath.Join(out, "cmudict-0.7b"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if _, ok := c.Pronunciations("café"); !ok {
		t.Error("expected latin-1 word decoded to café")
	}
}

func TestCMUDictImport_Empty(t *testing.T) {
	srv := serveText(t, []byte(";;; nothing here\n"))
	a, _ := Get("cmudict-en")
	if _, err := a.Import(context.Background(), srv.URL, t.TempDir()); err == nil {
		t.Fatal("expected error for a source without entries")
	}
}

func TestRun_RecordsImport(t *testing.T) {
	srv := serveText(t, []byte(modernSample))
	sdb := tempSourceDB(t)
	out := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := sdb.Seed(All()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := sdb.SetURL("cmudict-en", srv.URL); err != nil {
		t.Fatalf("SetURL: %v", err)
	}

	if err := Run(context.Background(), sdb, "cmudict-en", out, logger); err != nil {
		t.Fatalf("Run: %v", err)
	}

	src, err := sdb.Get("cmudict-en")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if src.Words == nil || *src.Words != 3 {
		t.Errorf("recorded words = %v, want 3", src.Words)
	}
	if _, err := os.Stat(filepath.Join(out, "cmudict-en", "data.gob")); err != nil {
		t.Errorf("data.gob not written: %v", err)
	}
}

func TestRun_UnknownAdapter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := Run(context.Background(), nil, "nope", t.TempDir(), logger); err == nil {
		t.Fatal("expected error for unknown adapter")
	}
}
