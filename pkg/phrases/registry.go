package phrases

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/hazyhaar/stressmatch/pkg/stress"
)

// ErrUnknownList is returned when a list ID is not registered.
var ErrUnknownList = errors.New("unknown phrase list")

// Registry holds every configured phrase list, each built into an Index.
// Reload rebuilds all lists from disk and swaps them in at once.
type Registry struct {
	mu        sync.RWMutex
	builder   *stress.Builder
	logger    *slog.Logger
	sources   map[string]string
	indexes   map[string]*Index
	defaultID string
}

// NewRegistry creates a registry for the given list ID -> file path sources.
// defaultID names the list used when a caller passes no ID.
func NewRegistry(b *stress.Builder, sources map[string]string, defaultID string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	src := make(map[string]string, len(sources))
	for id, path := range sources {
		src[id] = path
	}
	return &Registry{
		builder:   b,
		logger:    logger,
		sources:   src,
		indexes:   make(map[string]*Index),
		defaultID: defaultID,
	}
}

// Load builds every list. On error the previously loaded lists stay in place.
func (r *Registry) Load() error {
	built := make(map[string]*Index, len(r.sources))
	for id, path := range r.sources {
		idx, err := LoadFile(path, r.builder)
		if err != nil {
			return fmt.Errorf("load phrase list %s: %w", id, err)
		}
		if idx.Dropped() > 0 {
			r.logger.Debug("phrase lines without signature dropped", "list", id, "dropped", idx.Dropped())
		}
		built[id] = idx
	}

	r.mu.Lock()
	r.indexes = built
	r.mu.Unlock()
	return nil
}

// Reload rebuilds all lists from disk (hot reload).
func (r *Registry) Reload() error {
	return r.Load()
}

// Get returns the index for id, or the default list when id is empty.
func (r *Registry) Get(id string) (*Index, error) {
	if id == "" {
		id = r.defaultID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.indexes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownList, id)
	}
	return idx, nil
}

// Default returns the default list.
func (r *Registry) Default() (*Index, error) {
	return r.Get("")
}

// DefaultID returns the ID of the default list.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// Paths returns the file paths of all lists.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.sources))
	for _, p := range r.sources {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ListInfo is the public metadata for a loaded phrase list.
type ListInfo struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	Default    bool   `json:"default"`
	Entries    int    `json:"entries"`
	Dropped    int    `json:"dropped"`
	Signatures int    `json:"signatures"`
}

// List returns metadata for all loaded lists, sorted by ID.
func (r *Registry) List() []ListInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ListInfo, 0, len(r.indexes))
	for id, idx := range r.indexes {
		infos = append(infos, ListInfo{
			ID:         id,
			Path:       r.sources[id],
			Default:    id == r.defaultID,
			Entries:    idx.Entries(),
			Dropped:    idx.Dropped(),
			Signatures: idx.Len(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// ListCount returns the number of loaded lists.
func (r *Registry) ListCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.indexes)
}

// TotalEntries returns the number of indexed lines across all lists.
func (r *Registry) TotalEntries() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, idx := range r.indexes {
		total += idx.Entries()
	}
	return total
}
