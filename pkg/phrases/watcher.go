package phrases

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Registry when one of its list files changes on disk.
// Directories are watched rather than files so editors that replace the
// file by rename are still seen.
type Watcher struct {
	reg      *Registry
	logger   *slog.Logger
	debounce time.Duration
	onReload func(error)
}

// WatcherOption configures a [Watcher].
type WatcherOption func(*Watcher)

// WithDebounce sets how long to wait for writes to settle. Default 500ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithReloadHook is called after every reload attempt with its result.
func WithReloadHook(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher returns a watcher for reg's list files.
func NewWatcher(reg *Registry, logger *slog.Logger, opts ...WatcherOption) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{reg: reg, logger: logger, debounce: 500 * time.Millisecond}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}
	defer fw.Close()

	files := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range w.reg.Paths() {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if _, watched := files[filepath.Clean(ev.Name)]; !watched {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("phrase list watcher error", "error", err)
		case <-fire:
			fire = nil
			err := w.reg.Reload()
			if err != nil {
				w.logger.Error("phrase list reload failed", "error", err)
			} else {
				w.logger.Info("phrase lists reloaded", "lists", w.reg.ListCount(), "entries", w.reg.TotalEntries())
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		}
	}
}
