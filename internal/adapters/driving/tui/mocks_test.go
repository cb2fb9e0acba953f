package tui

import (
	"context"
	"strings"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearchService) Search(context.Context, domain.Query) ([]domain.SearchResult, error) {
	return m.results, m.err
}

// mockLookupService implements driving.LookupService over a fixed record set.
type mockLookupService struct {
	records []domain.Record
	err     error
}

func (m *mockLookupService) GetChapter(_ context.Context, sourceID, label string) (*domain.Chapter, error) {
	ch := &domain.Chapter{SourceID: sourceID}
	var bodies []string
	for _, r := range m.records {
		if r.SourceID != sourceID || !strings.EqualFold(r.Label, label) {
			continue
		}
		ch.Label = r.Label
		ch.Ranges = append(ch.Ranges, domain.ChapterRange{Label: r.Label, Start: r.Ordinal, End: r.Ordinal})
		bodies = append(bodies, r.Body)
	}
	if len(bodies) == 0 {
		return nil, domain.ErrNotFound
	}
	ch.Body = strings.Join(bodies, "\n\n")
	return ch, nil
}

func (m *mockLookupService) GetCodeExample(context.Context, string) (*domain.SearchResult, error) {
	return nil, domain.ErrNotFound
}

func (m *mockLookupService) CodeExamples(context.Context, string, int) ([]domain.SearchResult, error) {
	return nil, domain.ErrNotFound
}

func (m *mockLookupService) ChapterRanges(_ context.Context, sourceID string) ([]domain.ChapterRange, error) {
	var out []domain.ChapterRange
	for _, r := range m.records {
		if r.SourceID == sourceID && r.HasLabel() {
			out = append(out, domain.ChapterRange{Label: r.Label, Start: r.Ordinal, End: r.Ordinal})
		}
	}
	return out, nil
}

func (m *mockLookupService) Sources(context.Context) ([]domain.SourceInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.SourceInfo
	for _, r := range m.records {
		if n := len(out); n > 0 && out[n-1].ID == r.SourceID {
			out[n-1].RecordCount++
			out[n-1].LastOrdinal = r.Ordinal
			continue
		}
		out = append(out, domain.SourceInfo{ID: r.SourceID, RecordCount: 1, FirstOrdinal: r.Ordinal, LastOrdinal: r.Ordinal})
	}
	return out, nil
}

func (m *mockLookupService) Record(_ context.Context, sourceID string, ordinal int) (*domain.Record, error) {
	for i := range m.records {
		if m.records[i].SourceID == sourceID && m.records[i].Ordinal == ordinal {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func testRecords() []domain.Record {
	return []domain.Record{
		{SourceID: "guide.pdf", Ordinal: 1, Label: "Introduction", Body: "Welcome to the guide."},
		{SourceID: "guide.pdf", Ordinal: 2, Label: "Meshing", Body: "Meshing controls element size."},
		{SourceID: "pymechanical", Ordinal: 1, Body: "Embedded app usage."},
	}
}

func newTestPorts() (*Ports, *mockSearchService, *mockLookupService) {
	lookup := &mockLookupService{records: testRecords()}
	search := &mockSearchService{results: []domain.SearchResult{
		{Record: &lookup.records[1], Score: 1.2, Snippet: "Meshing controls element size."},
	}}
	return &Ports{Search: search, Lookup: lookup}, search, lookup
}
