package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/custodia-labs/manuals/internal/core/corpus"
	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
	"github.com/custodia-labs/manuals/internal/logger"
)

// Ensure Library implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// Library holds the live corpus and swaps it atomically.
type Library struct {
	store   driven.SnapshotStore
	options []corpus.Option
	current atomic.Pointer[corpus.Corpus]
}

// NewLibrary creates a library backed by store. options are applied to
// every corpus the library builds from a snapshot.
func NewLibrary(store driven.SnapshotStore, options ...corpus.Option) *Library {
	return &Library{store: store, options: options}
}

// Current returns the live corpus or ErrCorpusUnavailable.
func (l *Library) Current() (*corpus.Corpus, error) {
	c := l.current.Load()
	if c == nil {
		return nil, domain.ErrCorpusUnavailable
	}
	return c, nil
}

// Replace swaps in c. Readers holding the previous corpus keep using it.
func (l *Library) Replace(c *corpus.Corpus) {
	l.current.Store(c)
}

// Loaded reports whether a corpus is available.
func (l *Library) Loaded() bool {
	return l.current.Load() != nil
}

// Options returns the corpus options the library applies.
func (l *Library) Options() []corpus.Option {
	return append([]corpus.Option(nil), l.options...)
}

// Load reads the persisted snapshot, rebuilds its postings and swaps it in.
// On failure the previous corpus, if any, stays live.
func (l *Library) Load(ctx context.Context) error {
	if l.store == nil {
		return fmt.Errorf("load corpus: no snapshot store: %w", domain.ErrCorpusUnavailable)
	}

	logger.Section("Corpus Load")
	logger.Debug("Snapshot: %s", l.store.Path())

	snap, err := l.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCorpusUnavailable) {
			return fmt.Errorf("load corpus: %w", err)
		}
		return fmt.Errorf("load corpus: %w: %w", domain.ErrCorpusUnavailable, err)
	}

	opts := append(l.Options(), corpus.WithMeta(snap.Meta))
	c, err := corpus.New(snap.Records, opts...)
	if err != nil {
		return fmt.Errorf("load corpus: %w: %w: %w", domain.ErrCorpusUnavailable, domain.ErrCorruptSnapshot, err)
	}

	l.Replace(c)
	logger.Info("Loaded %d records from %d sources (snapshot %s)", c.Len(), len(c.SourceIDs()), snap.Meta.ID)
	return nil
}

// Meta returns the live corpus' snapshot metadata.
func (l *Library) Meta(_ context.Context) (*domain.SnapshotMeta, error) {
	c, err := l.Current()
	if err != nil {
		return nil, err
	}
	meta := c.Meta()
	return &meta, nil
}
