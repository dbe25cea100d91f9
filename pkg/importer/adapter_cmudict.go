// CLAUDE:SUMMARY Import adapters for the CMU Pronouncing Dictionary (modern cmudict.dict and classic latin-1 0.7b).
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/stressmatch/pkg/corpus"
)

func init() {
	Register(&cmudictAdapter{
		id:       "cmudict-en",
		corpusID: "cmudict-en",
		desc:     "CMU Pronouncing Dictionary (cmusphinx/cmudict, UTF-8)",
		url:      "https://raw.githubusercontent.com/cmusphinx/cmudict/master/cmudict.dict",
		encoding: "utf-8",
	})
	Register(&cmudictAdapter{
		id:       "cmudict-0.7b",
		corpusID: "cmudict-0.7b",
		desc:     "CMU Pronouncing Dictionary 0.7b (classic upper-case, ISO-8859-1)",
		url:      "https://svn.code.sf.net/p/cmusphinx/code/trunk/cmudict/cmudict-0.7b",
		encoding: "iso-8859-1",
	})
}

type cmudictAdapter struct {
	id, corpusID, desc, url, encoding string
}

func (a *cmudictAdapter) ID() string          { return a.id }
func (a *cmudictAdapter) CorpusID() string    { return a.corpusID }
func (a *cmudictAdapter) Description() string { return a.desc }
func (a *cmudictAdapter) DefaultURL() string  { return a.url }
func (a *cmudictAdapter) License() string     { return "BSD-2-Clause" }

func (a *cmudictAdapter) Import(ctx context.Context, sourceURL, outputDir string) (int, error) {
	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return 0, err
	}
	defer os.RemoveAll(dlDir)

	rawPath := filepath.Join(dlDir, a.id+".txt")
	slog.Info("downloading corpus", "adapter", a.id, "url", sourceURL)
	if err := downloadFile(ctx, sourceURL, rawPath); err != nil {
		return 0, fmt.Errorf("download: %w", err)
	}

	entries, stats, err := corpus.ReadCMUFile(rawPath, a.encoding, corpus.NormalizeLowercaseUTF8)
	if err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("parse: no pronunciations in %s", sourceURL)
	}
	slog.Info("corpus parsed", "adapter", a.id, "words", stats.UniqueWords, "variants", stats.ParsedLines)

	corpusDir := filepath.Join(outputDir, a.CorpusID())
	if err := ensureDir(corpusDir); err != nil {
		return 0, err
	}

	if err := corpus.SaveGob(entries, filepath.Join(corpusDir, "data.gob")); err != nil {
		return 0, fmt.Errorf("save gob: %w", err)
	}

	err = writeManifest(corpusDir, &corpus.Manifest{
		ID:        a.CorpusID(),
		Version:   time.Now().UTC().Format("2006-01"),
		Language:  "en-US",
		Source:    a.desc,
		SourceURL: sourceURL,
		License:   a.License(),
		DataFile:  "data.gob",
		Format:    corpus.FormatSpec{Normalize: "lowercase"},
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
