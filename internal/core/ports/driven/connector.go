package driven

import (
	"context"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// DocumentSource discovers raw documents for extraction.
// Documents are returned in discovery order: grouped by source, and in a
// stable order within each source.
type DocumentSource interface {
	// Root returns the location being scanned.
	Root() string

	// Discover reads every supported document.
	// Unreadable files are reported through the returned skipped units, not as errors.
	Discover(ctx context.Context) ([]domain.RawDocument, []domain.SkippedUnit, error)
}
