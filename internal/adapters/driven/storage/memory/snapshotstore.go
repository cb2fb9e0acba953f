package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore keeps one snapshot in memory. Saved snapshots are copied
// so callers cannot mutate the stored records.
type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot *domain.Snapshot
}

// NewSnapshotStore creates an empty in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Save replaces the stored snapshot.
func (s *SnapshotStore) Save(_ context.Context, snapshot *domain.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("save snapshot: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = cloneSnapshot(snapshot)
	return nil
}

// Load returns a copy of the stored snapshot.
func (s *SnapshotStore) Load(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, fmt.Errorf("load snapshot: %w", domain.ErrCorpusUnavailable)
	}
	return cloneSnapshot(s.snapshot), nil
}

// Meta returns the stored snapshot's metadata.
func (s *SnapshotStore) Meta(ctx context.Context) (*domain.SnapshotMeta, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &snap.Meta, nil
}

// Path returns the store location.
func (s *SnapshotStore) Path() string {
	return ":memory:"
}

// Close is a no-op.
func (s *SnapshotStore) Close() error {
	return nil
}

func cloneSnapshot(in *domain.Snapshot) *domain.Snapshot {
	out := &domain.Snapshot{Meta: in.Meta}
	out.Meta.Sources = append([]string(nil), in.Meta.Sources...)
	out.Records = append([]domain.Record(nil), in.Records...)
	return out
}
