package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Adapter defines a pronunciation source importer that downloads, parses,
// and serializes a corpus into gob format.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "cmudict-en").
	ID() string
	// CorpusID returns the target corpus directory name.
	CorpusID() string
	// Description returns a human-readable description.
	Description() string
	// DefaultURL returns the default source URL used for seeding the database.
	DefaultURL() string
	// License returns the license identifier for this source.
	License() string
	// Import downloads the source from sourceURL, parses it, and writes
	// data.gob + manifest.yaml into a subdirectory of outputDir named after
	// CorpusID(). It returns the number of distinct words written.
	Import(ctx context.Context, sourceURL, outputDir string) (int, error)
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID, or an error if not found.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// Run imports adapterID from the URL recorded in sources (falling back to
// the adapter default when sources is nil) and records the result.
func Run(ctx context.Context, sources *SourceDB, adapterID, outputDir string, logger *slog.Logger) error {
	a, err := Get(adapterID)
	if err != nil {
		return err
	}

	url := a.DefaultURL()
	if sources != nil {
		if err := sources.Seed([]Adapter{a}); err != nil {
			return err
		}
		if url, err = sources.GetURL(a.ID()); err != nil {
			return err
		}
	}

	start := time.Now()
	words, err := a.Import(ctx, url, outputDir)
	if err != nil {
		return fmt.Errorf("import %s: %w", a.ID(), err)
	}
	logger.Info("import complete",
		"adapter", a.ID(),
		"corpus", a.CorpusID(),
		"words", words,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if sources != nil {
		return sources.RecordImport(a.ID(), words)
	}
	return nil
}
