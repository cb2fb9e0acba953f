package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
	"github.com/custodia-labs/manuals/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs ranked queries against the live corpus.
type SearchService struct {
	library      *Library
	defaultLimit int
}

// NewSearchService creates a new search service.
// defaultLimit replaces a zero MaxResults; zero keeps the domain default.
func NewSearchService(library *Library, defaultLimit int) *SearchService {
	return &SearchService{library: library, defaultLimit: defaultLimit}
}

// Search ranks records against query.
func (s *SearchService) Search(_ context.Context, query domain.Query) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q source=%q max=%d", query.Text, query.SourceID, query.MaxResults)

	c, err := s.library.Current()
	if err != nil {
		return nil, err
	}

	query.Text = strings.TrimSpace(query.Text)
	if query.Text == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}
	if query.MaxResults <= 0 && s.defaultLimit > 0 {
		query.MaxResults = s.defaultLimit
	}

	results := c.Search(query)
	if results == nil {
		results = []domain.SearchResult{}
	}
	logger.Info("Search returned %d results", len(results))
	return results, nil
}
