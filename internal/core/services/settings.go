package services

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDocsDir       = "docs.dir"
	KeyCorpusFormat  = "corpus.format"
	KeyCorpusPath    = "corpus.path"
	KeyDefaultLimit  = "search.default_limit"
	KeySnippetLength = "search.snippet_length"
	KeyMinCodeScore  = "code.min_score"
	KeyStripPatterns = "extract.strip_patterns"
	KeyProcessors    = "pipeline.processors"
	KeyTabWidth      = "normalise.tab_width"
	KeyHTTPRate      = "server.http_rate"
	KeyHTTPBurst     = "server.http_burst"
	KeyProduct       = "prompts.product"
	KeyCataloguePath = "catalogue.path"
)

const (
	envPrefix = "MANUALS_"

	processorBoilerplate = "boilerplate"
	processorNormalise   = "normalise"
)

// EnvVar returns the environment variable that overrides a config key,
// e.g. "corpus.path" -> "MANUALS_CORPUS_PATH".
func EnvVar(key string) string {
	return envPrefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// SettingsService manages application settings.
// Environment variables take precedence over stored values.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// SetEnvLookup replaces the environment lookup. Pass nil to disable overrides.
func (s *SettingsService) SetEnvLookup(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	s.lookupEnv = lookup
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	format := domain.CorpusFormat(s.getString(KeyCorpusFormat, defaults.Corpus.Format.String()))
	if !format.IsValid() {
		format = defaults.Corpus.Format
	}

	pipeline := domain.PipelineConfig{
		Processors: s.getStringSlice(KeyProcessors, defaults.Pipeline.Processors),
		ProcessorConfigs: map[string]map[string]any{
			processorBoilerplate: {
				"patterns": s.getStringSlice(KeyStripPatterns, nil),
			},
			processorNormalise: {
				"tab_width": s.getInt(KeyTabWidth, 4),
			},
		},
	}

	settings := &domain.AppSettings{
		Corpus: domain.CorpusSettings{
			DocsDir: s.getString(KeyDocsDir, defaults.Corpus.DocsDir),
			Format:  format,
			Path:    s.getString(KeyCorpusPath, defaults.Corpus.Path),
		},
		Search: domain.SearchSettings{
			DefaultLimit:  s.getInt(KeyDefaultLimit, defaults.Search.DefaultLimit),
			SnippetLength: s.getInt(KeySnippetLength, defaults.Search.SnippetLength),
			MinCodeScore:  s.getFloat(KeyMinCodeScore, defaults.Search.MinCodeScore),
		},
		Server: domain.ServerSettings{
			HTTPRate:      s.getFloat(KeyHTTPRate, defaults.Server.HTTPRate),
			HTTPBurst:     s.getInt(KeyHTTPBurst, defaults.Server.HTTPBurst),
			Product:       s.getString(KeyProduct, defaults.Server.Product),
			CataloguePath: s.getString(KeyCataloguePath, defaults.Server.CataloguePath),
		},
		Pipeline: pipeline,
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyDocsDir, settings.Corpus.DocsDir},
		{KeyCorpusFormat, settings.Corpus.Format.String()},
		{KeyCorpusPath, settings.Corpus.Path},
		{KeyDefaultLimit, settings.Search.DefaultLimit},
		{KeySnippetLength, settings.Search.SnippetLength},
		{KeyMinCodeScore, settings.Search.MinCodeScore},
		{KeyHTTPRate, settings.Server.HTTPRate},
		{KeyHTTPBurst, settings.Server.HTTPBurst},
		{KeyProduct, settings.Server.Product},
		{KeyCataloguePath, settings.Server.CataloguePath},
		{KeyProcessors, settings.Pipeline.Processors},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if patterns, ok := settings.Pipeline.GetProcessorConfig(processorBoilerplate)["patterns"].([]string); ok {
		if err := s.configStore.Set(KeyStripPatterns, patterns); err != nil {
			return fmt.Errorf("save %s: %w", KeyStripPatterns, err)
		}
	}
	return nil
}

// SetCorpusFormat updates the snapshot backend.
func (s *SettingsService) SetCorpusFormat(format domain.CorpusFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("invalid corpus format %q: %w", format, domain.ErrInvalidInput)
	}
	return s.configStore.Set(KeyCorpusFormat, format.String())
}

// SetDocsDir updates the documentation directory.
func (s *SettingsService) SetDocsDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("empty docs directory: %w", domain.ErrInvalidInput)
	}
	return s.configStore.Set(KeyDocsDir, dir)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Corpus.Format.IsValid() {
		return fmt.Errorf("invalid corpus format: %s", settings.Corpus.Format)
	}
	if settings.Search.DefaultLimit < 1 || settings.Search.DefaultLimit > domain.MaxResultsLimit {
		return fmt.Errorf("%s must be between 1 and %d", KeyDefaultLimit, domain.MaxResultsLimit)
	}
	if settings.Search.SnippetLength < 20 {
		return fmt.Errorf("%s must be at least 20", KeySnippetLength)
	}
	if settings.Search.MinCodeScore < 0 {
		return fmt.Errorf("%s must not be negative", KeyMinCodeScore)
	}
	if settings.Server.HTTPRate <= 0 || settings.Server.HTTPBurst < 1 {
		return fmt.Errorf("%s and %s must be positive", KeyHTTPRate, KeyHTTPBurst)
	}
	if !slices.Contains(settings.Pipeline.Processors, processorNormalise) {
		return fmt.Errorf("%s must include %q", KeyProcessors, processorNormalise)
	}
	for _, p := range s.getStringSlice(KeyStripPatterns, nil) {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%s: invalid pattern %q: %w", KeyStripPatterns, p, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) env(key string) (string, bool) {
	v, ok := s.lookupEnv(EnvVar(key))
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if v, ok := s.env(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if _, exists := s.configStore.Get(key); exists {
		if n := s.configStore.GetInt(key); n != 0 {
			return n
		}
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if v, ok := s.env(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	if _, exists := s.configStore.Get(key); exists {
		return s.configStore.GetFloat(key)
	}
	return defaultVal
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if v, ok := s.env(key); ok {
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	if _, exists := s.configStore.Get(key); exists {
		return s.configStore.GetStringSlice(key)
	}
	return defaultVal
}
