package driving

import (
	"context"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// SearchService provides ranked full-text search over the live corpus.
type SearchService interface {
	// Search returns up to query.Limit() results.
	// Returns ErrCorpusUnavailable before a corpus is loaded.
	Search(ctx context.Context, query domain.Query) ([]domain.SearchResult, error)
}
