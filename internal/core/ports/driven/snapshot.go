package driven

import (
	"context"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// SnapshotStore persists the corpus between runs.
// Save replaces any previous snapshot in full.
type SnapshotStore interface {
	// Save writes the snapshot, replacing the previous one atomically.
	Save(ctx context.Context, snapshot *domain.Snapshot) error

	// Load reads the snapshot.
	// Returns ErrCorpusUnavailable when none exists and ErrCorruptSnapshot
	// when it cannot be decoded.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Meta reads only the snapshot metadata.
	Meta(ctx context.Context) (*domain.SnapshotMeta, error)

	// Path returns the snapshot location.
	Path() string

	// Close releases resources.
	Close() error
}
