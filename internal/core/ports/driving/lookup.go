package driving

import (
	"context"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// LookupService resolves chapters, code examples and records.
// Misses return ErrNotFound; a missing corpus returns ErrCorpusUnavailable.
type LookupService interface {
	// GetChapter returns the concatenated body of every range labelled label.
	GetChapter(ctx context.Context, sourceID, label string) (*domain.Chapter, error)

	// GetCodeExample returns the best code-like record for topic.
	GetCodeExample(ctx context.Context, topic string) (*domain.SearchResult, error)

	// CodeExamples returns up to limit code-like records for topic that
	// clear the minimum score.
	CodeExamples(ctx context.Context, topic string, limit int) ([]domain.SearchResult, error)

	// ChapterRanges returns the chapter ranges of a source.
	ChapterRanges(ctx context.Context, sourceID string) ([]domain.ChapterRange, error)

	// Sources summarises every source in the corpus.
	Sources(ctx context.Context) ([]domain.SourceInfo, error)

	// Record returns one record by key.
	Record(ctx context.Context, sourceID string, ordinal int) (*domain.Record, error)
}
