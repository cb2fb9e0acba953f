package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusFormat_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		format   CorpusFormat
		expected bool
	}{
		{name: "sqlite is valid", format: CorpusFormatSQLite, expected: true},
		{name: "file is valid", format: CorpusFormatFile, expected: true},
		{name: "empty string is invalid", format: CorpusFormat(""), expected: false},
		{name: "unknown format is invalid", format: CorpusFormat("parquet"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.IsValid())
		})
	}
}

func TestCorpusFormat_Description(t *testing.T) {
	assert.Equal(t, "SQLite database", CorpusFormatSQLite.Description())
	assert.Equal(t, "Compressed CBOR file", CorpusFormatFile.Description())
	assert.Equal(t, "Unknown", CorpusFormat("x").Description())
}

func TestCorpusFormat_FileName(t *testing.T) {
	assert.Equal(t, "corpus.db", CorpusFormatSQLite.FileName())
	assert.Equal(t, "corpus.cbor.zst", CorpusFormatFile.FileName())
}

func TestAllCorpusFormats(t *testing.T) {
	formats := AllCorpusFormats()
	require.Len(t, formats, 2)
	for _, f := range formats {
		assert.True(t, f.IsValid())
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, CorpusFormatSQLite, s.Corpus.Format)
	assert.Equal(t, DefaultMaxResults, s.Search.DefaultLimit)
	assert.Equal(t, DefaultSnippetLength, s.Search.SnippetLength)
	assert.InDelta(t, 0.1, s.Search.MinCodeScore, 1e-9)
	assert.Equal(t, []string{"boilerplate", "normalise"}, s.Pipeline.Processors)
	assert.Positive(t, s.Server.HTTPRate)
}

func TestPipelineConfig_GetProcessorConfig(t *testing.T) {
	cfg := DefaultPipelineConfig()
	assert.Equal(t, 4, cfg.GetProcessorConfig("normalise")["tab_width"])
	assert.Nil(t, cfg.GetProcessorConfig("missing"))

	var empty PipelineConfig
	assert.Nil(t, empty.GetProcessorConfig("normalise"))
}
