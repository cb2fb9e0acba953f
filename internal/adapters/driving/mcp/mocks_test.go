package mcp

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.SearchResult
	err       error
	lastQuery domain.Query
}

func (m *mockSearchService) Search(_ context.Context, q domain.Query) ([]domain.SearchResult, error) {
	m.lastQuery = q
	return m.results, m.err
}

// mockLookupService is a mock implementation of driving.LookupService.
// Chapters are keyed by source then lower-cased label.
type mockLookupService struct {
	chapters map[string]map[string]domain.Chapter
	ranges   map[string][]domain.ChapterRange
	examples []domain.SearchResult
	sources  []domain.SourceInfo
	err      error
}

func (m *mockLookupService) GetChapter(_ context.Context, sourceID, label string) (*domain.Chapter, error) {
	if m.err != nil {
		return nil, m.err
	}
	ch, ok := m.chapters[sourceID][strings.ToLower(label)]
	if !ok {
		return nil, fmt.Errorf("chapter %q: %w", label, domain.ErrNotFound)
	}
	return &ch, nil
}

func (m *mockLookupService) GetCodeExample(ctx context.Context, topic string) (*domain.SearchResult, error) {
	results, err := m.CodeExamples(ctx, topic, 1)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

func (m *mockLookupService) CodeExamples(_ context.Context, topic string, limit int) ([]domain.SearchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.examples) == 0 {
		return nil, fmt.Errorf("code example %q: %w", topic, domain.ErrNotFound)
	}
	if limit < len(m.examples) {
		return m.examples[:limit], nil
	}
	return m.examples, nil
}

func (m *mockLookupService) ChapterRanges(_ context.Context, sourceID string) ([]domain.ChapterRange, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.ranges[sourceID]
	if !ok {
		return nil, fmt.Errorf("source %q: %w", sourceID, domain.ErrNotFound)
	}
	return r, nil
}

func (m *mockLookupService) Sources(_ context.Context) ([]domain.SourceInfo, error) {
	return m.sources, m.err
}

func (m *mockLookupService) Record(_ context.Context, sourceID string, ordinal int) (*domain.Record, error) {
	return nil, fmt.Errorf("%s#%d: %w", sourceID, ordinal, domain.ErrNotFound)
}

// mockResourceService is a mock implementation of driving.ResourceService.
type mockResourceService struct {
	resources []domain.Resource
	err       error
}

func (m *mockResourceService) List(_ context.Context) []domain.Resource {
	return m.resources
}

func (m *mockResourceService) Read(_ context.Context, uri string) (*domain.Resource, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.resources {
		if r.URI == uri {
			res := r
			return &res, nil
		}
	}
	return nil, fmt.Errorf("resource %q: %w", uri, domain.ErrNotFound)
}

// mockPromptService is a mock implementation of driving.PromptService.
type mockPromptService struct {
	specs    []domain.PromptSpec
	rendered *domain.RenderedPrompt
	err      error
	lastArgs map[string]string
}

func (m *mockPromptService) List() []domain.PromptSpec {
	return m.specs
}

func (m *mockPromptService) Render(_ context.Context, _ string, args map[string]string) (*domain.RenderedPrompt, error) {
	m.lastArgs = args
	return m.rendered, m.err
}

func newTestLookup() *mockLookupService {
	intro := domain.ChapterRange{Label: "Introduction", Start: 1, End: 2}
	meshing := domain.ChapterRange{Label: "Meshing", Start: 3, End: 4}
	return &mockLookupService{
		chapters: map[string]map[string]domain.Chapter{
			"guide.pdf": {
				"meshing": {SourceID: "guide.pdf", Label: "Meshing", Ranges: []domain.ChapterRange{meshing}, Body: "mesh body"},
			},
		},
		ranges: map[string][]domain.ChapterRange{
			"guide.pdf": {intro, meshing},
		},
		sources: []domain.SourceInfo{
			{ID: "guide.pdf", RecordCount: 4, ChapterCount: 2, FirstOrdinal: 1, LastOrdinal: 4},
			{ID: "pymechanical", RecordCount: 9, ChapterCount: 3, FirstOrdinal: 1, LastOrdinal: 9},
		},
	}
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Search == nil {
		ports.Search = &mockSearchService{}
	}
	if ports.Lookup == nil {
		ports.Lookup = newTestLookup()
	}
	s, err := NewServer(ports)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}
