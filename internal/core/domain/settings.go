package domain

const unknownDescription = "Unknown"

// CorpusFormat selects the snapshot storage backend.
type CorpusFormat string

// Available corpus formats.
const (
	// CorpusFormatSQLite stores records in a SQLite database.
	CorpusFormatSQLite CorpusFormat = "sqlite"

	// CorpusFormatFile stores records as a zstd-compressed CBOR file.
	CorpusFormatFile CorpusFormat = "file"
)

// IsValid returns true if the format is recognised.
func (f CorpusFormat) IsValid() bool {
	switch f {
	case CorpusFormatSQLite, CorpusFormatFile:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f CorpusFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f CorpusFormat) Description() string {
	switch f {
	case CorpusFormatSQLite:
		return "SQLite database"
	case CorpusFormatFile:
		return "Compressed CBOR file"
	default:
		return unknownDescription
	}
}

// FileName returns the default snapshot file name for the format.
func (f CorpusFormat) FileName() string {
	if f == CorpusFormatFile {
		return "corpus.cbor.zst"
	}
	return "corpus.db"
}

// AllCorpusFormats returns all available corpus formats.
func AllCorpusFormats() []CorpusFormat {
	return []CorpusFormat{CorpusFormatSQLite, CorpusFormatFile}
}

// CorpusSettings locates the documentation and the persisted corpus.
type CorpusSettings struct {
	// DocsDir is the directory scanned for PDFs and HTML sets.
	DocsDir string

	// Format selects the snapshot backend.
	Format CorpusFormat

	// Path is the snapshot location. Empty means <config dir>/<format file name>.
	Path string
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// DefaultLimit is the result cap used when a query sets none.
	DefaultLimit int

	// SnippetLength is the snippet window in runes.
	SnippetLength int

	// MinCodeScore is the lowest score a code example may have.
	MinCodeScore float64
}

// ServerSettings configures the MCP server.
type ServerSettings struct {
	// HTTPRate is the sustained requests per second allowed on the HTTP transport.
	HTTPRate float64

	// HTTPBurst is the request burst allowed on the HTTP transport.
	HTTPBurst int

	// Product names the documented product in prompts and resources.
	Product string

	// CataloguePath points at an optional YAML file with extra resources.
	CataloguePath string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Corpus   CorpusSettings
	Search   SearchSettings
	Server   ServerSettings
	Pipeline PipelineConfig
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Corpus: CorpusSettings{
			DocsDir: "docs",
			Format:  CorpusFormatSQLite,
		},
		Search: SearchSettings{
			DefaultLimit:  DefaultMaxResults,
			SnippetLength: DefaultSnippetLength,
			MinCodeScore:  0.1,
		},
		Server: ServerSettings{
			HTTPRate:  20,
			HTTPBurst: 40,
			Product:   "Ansys",
		},
		Pipeline: DefaultPipelineConfig(),
	}
}

// PipelineConfig holds record post-processor pipeline configuration.
// Uses generic map-based config so new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig returns the default pipeline configuration.
// Boilerplate runs before normalisation so footer patterns match raw lines.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"boilerplate", "normalise"},
		ProcessorConfigs: map[string]map[string]any{
			"normalise": {
				"tab_width": 4,
			},
		},
	}
}
