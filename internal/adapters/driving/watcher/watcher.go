// Package watcher reloads the live corpus when its snapshot changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/manuals/internal/logger"
)

// DefaultDebounce is how long the snapshot must stay quiet before a reload.
const DefaultDebounce = 500 * time.Millisecond

// Reloader reloads the corpus from its snapshot.
type Reloader interface {
	Load(ctx context.Context) error
}

// Watcher triggers debounced reloads on snapshot writes.
type Watcher struct {
	path     string
	names    map[string]bool
	reloader Reloader
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New watches the directory holding path. The directory is watched rather
// than the file because snapshots are replaced by rename.
func New(path string, reloader Reloader, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close() //nolint:errcheck
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	base := filepath.Base(path)
	w := &Watcher{
		path: path,
		// SQLite in WAL mode commits to the -wal file first.
		names:    map[string]bool{base: true, base + "-wal": true},
		reloader: reloader,
		debounce: DefaultDebounce,
		fsw:      fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run handles events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close() //nolint:errcheck

	logger.Info("Watching %s for changes", w.path)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Snapshot event: %s", event)
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", w.path, err)

		case <-timer.C:
			if err := w.reloader.Load(ctx); err != nil {
				logger.Warn("reload failed, keeping previous corpus: %v", err)
				continue
			}
			logger.Info("Reloaded corpus from %s", w.path)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return w.names[filepath.Base(event.Name)]
}
