package driving

import (
	"context"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// LibraryService manages the live corpus.
type LibraryService interface {
	// Load reads the persisted snapshot and swaps it in.
	// A failed load keeps the previous corpus.
	Load(ctx context.Context) error

	// Meta returns the live corpus' snapshot metadata.
	Meta(ctx context.Context) (*domain.SnapshotMeta, error)

	// Loaded reports whether a corpus is available.
	Loaded() bool
}
