package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manuals/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/manuals/internal/core/corpus"
	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
	"github.com/custodia-labs/manuals/internal/core/services"
)

// mockExtractionService is a mock implementation of driving.ExtractionService.
type mockExtractionService struct {
	summary  *domain.ExtractionSummary
	err      error
	lastOpts driving.ExtractOptions
}

func (m *mockExtractionService) Run(_ context.Context, opts driving.ExtractOptions) (*domain.ExtractionSummary, error) {
	m.lastOpts = opts
	return m.summary, m.err
}

var testRecords = []domain.Record{
	{SourceID: "guide.pdf", Ordinal: 1, Label: "Introduction", Body: "Welcome to the scripting guide."},
	{SourceID: "guide.pdf", Ordinal: 2, Label: "Meshing", Body: "Meshing controls element size and quality."},
	{SourceID: "guide.pdf", Ordinal: 3, Label: "Meshing", Body: "```python\nmesh = model.Mesh\nmesh.GenerateMesh()\n```"},
	{SourceID: "pymechanical", Ordinal: 1, Label: "Getting started", Body: "Install the package and start an embedded app."},
}

// setupTestServices installs services backed by an in-memory corpus and
// returns a cleanup that restores the package state.
func setupTestServices(t *testing.T) *mockExtractionService {
	t.Helper()

	c, err := corpus.New(testRecords, corpus.WithMeta(domain.SnapshotMeta{ID: "snap-1", Sources: []string{"guide.pdf", "pymechanical"}}))
	require.NoError(t, err)

	library := services.NewLibrary(memory.NewSnapshotStore())
	library.Replace(c)

	cfg := memory.NewConfigStore()
	settings := services.NewSettingsService(cfg)
	settings.SetEnvLookup(nil)

	extraction := &mockExtractionService{summary: &domain.ExtractionSummary{}}

	SetServices(&Services{
		Config:     cfg,
		Settings:   settings,
		Extraction: extraction,
		Library:    library,
		Search:     services.NewSearchService(library, 10),
		Lookup:     services.NewLookupService(library, 0.1),
		Resources:  services.NewResourceService(nil, library, "Ansys"),
		Prompts:    services.NewPromptService(nil, "Ansys"),
	})

	t.Cleanup(func() {
		SetServices(nil)
		searchJSON, searchLimit, searchSource = false, 0, ""
		browseJSON, extractForce = false, false
		exampleLimit, exampleLanguage = 1, "python"
		configDir = ""
	})
	return extraction
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
