package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
	"github.com/custodia-labs/manuals/internal/logger"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// defaultCodeExamples caps CodeExamples when no limit is given.
const defaultCodeExamples = 5

// LookupService answers chapter, code example and record lookups.
type LookupService struct {
	library      *Library
	minCodeScore float64
}

// NewLookupService creates a lookup service. Code examples scoring below
// minCodeScore are treated as misses.
func NewLookupService(library *Library, minCodeScore float64) *LookupService {
	return &LookupService{library: library, minCodeScore: minCodeScore}
}

// GetChapter returns the chapter labelled label in sourceID.
func (s *LookupService) GetChapter(_ context.Context, sourceID, label string) (*domain.Chapter, error) {
	c, err := s.library.Current()
	if err != nil {
		return nil, err
	}
	ch, err := c.Chapter(sourceID, label)
	if err != nil {
		return nil, err
	}
	logger.Debug("Chapter %q in %s spans %d ranges", ch.Label, sourceID, len(ch.Ranges))
	return &ch, nil
}

// GetCodeExample returns the single best code example for topic.
func (s *LookupService) GetCodeExample(ctx context.Context, topic string) (*domain.SearchResult, error) {
	results, err := s.CodeExamples(ctx, topic, 1)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// CodeExamples returns up to limit code-like records for topic scoring at
// least the minimum. Returns ErrNotFound when none qualifies.
func (s *LookupService) CodeExamples(_ context.Context, topic string, limit int) ([]domain.SearchResult, error) {
	c, err := s.library.Current()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultCodeExamples
	}

	var out []domain.SearchResult
	for _, r := range c.CodeExamples(domain.Query{Text: topic, MaxResults: limit}) {
		if r.Score < s.minCodeScore {
			// Results are sorted, nothing later can clear the threshold.
			break
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("code example for %q: %w", topic, domain.ErrNotFound)
	}
	return out, nil
}

// ChapterRanges returns the chapter ranges of sourceID.
func (s *LookupService) ChapterRanges(_ context.Context, sourceID string) ([]domain.ChapterRange, error) {
	c, err := s.library.Current()
	if err != nil {
		return nil, err
	}
	return c.ChapterRanges(sourceID)
}

// Sources summarises the corpus.
func (s *LookupService) Sources(_ context.Context) ([]domain.SourceInfo, error) {
	c, err := s.library.Current()
	if err != nil {
		return nil, err
	}
	return c.Sources(), nil
}

// Record returns one record.
func (s *LookupService) Record(_ context.Context, sourceID string, ordinal int) (*domain.Record, error) {
	c, err := s.library.Current()
	if err != nil {
		return nil, err
	}
	return c.Record(sourceID, ordinal)
}
