package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manuals/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/manuals/internal/core/domain"
)

func TestSearchService_CorpusUnavailable(t *testing.T) {
	svc := NewSearchService(NewLibrary(memory.NewSnapshotStore()), 0)

	_, err := svc.Search(context.Background(), domain.Query{Text: "mesh"})
	assert.True(t, errors.Is(err, domain.ErrCorpusUnavailable))
}

func TestSearchService_EmptyQuery(t *testing.T) {
	svc := NewSearchService(loadedLibrary(t, scenarioRecords()), 0)

	results, err := svc.Search(context.Background(), domain.Query{Text: "   "})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchService_StopWordQuery(t *testing.T) {
	svc := NewSearchService(loadedLibrary(t, scenarioRecords()), 0)

	results, err := svc.Search(context.Background(), domain.Query{Text: "the of and"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchService_Scenario(t *testing.T) {
	svc := NewSearchService(loadedLibrary(t, scenarioRecords()), 0)

	results, err := svc.Search(context.Background(), domain.Query{Text: "meshing", MaxResults: 5})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEqual(t, 3, r.Record.Ordinal)
		assert.Contains(t, r.Snippet, "meshing")
	}
}

func TestSearchService_DefaultLimit(t *testing.T) {
	var records []domain.Record
	for i := 1; i <= 20; i++ {
		records = append(records, domain.Record{SourceID: "S", Ordinal: i, Body: fmt.Sprintf("solver note %d", i)})
	}
	lib := loadedLibrary(t, records)

	tests := []struct {
		name         string
		defaultLimit int
		maxResults   int
		want         int
	}{
		{"configured default", 4, 0, 4},
		{"explicit wins", 4, 7, 7},
		{"domain default", 0, 0, domain.DefaultMaxResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSearchService(lib, tt.defaultLimit)
			results, err := svc.Search(context.Background(), domain.Query{Text: "solver", MaxResults: tt.maxResults})
			require.NoError(t, err)
			assert.Len(t, results, tt.want)
		})
	}
}
