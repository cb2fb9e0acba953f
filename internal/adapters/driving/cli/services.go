package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/manuals/internal/adapters/driven/catalogue"
	"github.com/custodia-labs/manuals/internal/adapters/driven/config/file"
	storagefile "github.com/custodia-labs/manuals/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/manuals/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/manuals/internal/connectors/filesystem"
	"github.com/custodia-labs/manuals/internal/core/corpus"
	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
	"github.com/custodia-labs/manuals/internal/core/services"
	"github.com/custodia-labs/manuals/internal/extractors"
	"github.com/custodia-labs/manuals/internal/extractors/html"
	"github.com/custodia-labs/manuals/internal/extractors/markdown"
	"github.com/custodia-labs/manuals/internal/extractors/pdf"
	"github.com/custodia-labs/manuals/internal/extractors/plaintext"
	"github.com/custodia-labs/manuals/internal/logger"
	"github.com/custodia-labs/manuals/internal/postprocessors"
)

// Services holds everything the commands use. Tests inject fakes through
// SetServices.
type Services struct {
	Config     driven.ConfigStore
	Settings   driving.SettingsService
	Extraction driving.ExtractionService
	Library    driving.LibraryService
	Search     driving.SearchService
	Lookup     driving.LookupService
	Resources  driving.ResourceService
	Prompts    driving.PromptService

	// SnapshotPath is the file the watcher follows.
	SnapshotPath string
}

var (
	configStore       driven.ConfigStore
	settingsService   driving.SettingsService
	extractionService driving.ExtractionService
	libraryService    driving.LibraryService
	searchService     driving.SearchService
	lookupService     driving.LookupService
	resourceService   driving.ResourceService
	promptService     driving.PromptService
	snapshotPath      string

	servicesInjected bool
	closers          []func() error
)

// SetServices installs s and disables bootstrapping. Passing nil restores
// normal wiring.
func SetServices(s *Services) {
	if s == nil {
		servicesInjected = false
		configStore, settingsService, extractionService, libraryService = nil, nil, nil, nil
		searchService, lookupService, resourceService, promptService = nil, nil, nil, nil
		snapshotPath = ""
		return
	}
	servicesInjected = true
	configStore = s.Config
	settingsService = s.Settings
	extractionService = s.Extraction
	libraryService = s.Library
	searchService = s.Search
	lookupService = s.Lookup
	resourceService = s.Resources
	promptService = s.Prompts
	snapshotPath = s.SnapshotPath
}

// bootstrap wires adapters and services from the configuration in dir.
func bootstrap(dir string) error {
	logger.Section("Bootstrap")
	logger.Debug("Config dir: %s", dir)

	cfg, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settings := services.NewSettingsService(cfg)
	app, err := settings.Get()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	path := app.Corpus.Path
	if path == "" {
		path = filepath.Join(dir, app.Corpus.Format.FileName())
	}
	store, err := openSnapshotStore(app.Corpus.Format, path)
	if err != nil {
		return err
	}
	closers = append(closers, store.Close)

	library := services.NewLibrary(store, corpus.WithSnippetLength(app.Search.SnippetLength))

	registry := extractors.NewRegistry(pdf.New(), html.New(), markdown.New(), plaintext.New())

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)
	pipeline, err := processors.BuildPipeline(app.Pipeline)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	connector := filesystem.New(app.Corpus.DocsDir, filesystem.WithMIMETypes(registry.SupportedMIMETypes()))

	prompts, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
	if err != nil {
		return fmt.Errorf("open prompts: %w", err)
	}
	cat, err := catalogue.New(app.Server.CataloguePath)
	if err != nil {
		return fmt.Errorf("load catalogue: %w", err)
	}

	configStore = cfg
	settingsService = settings
	libraryService = library
	extractionService = services.NewExtractionService(connector, registry, pipeline, store, library)
	searchService = services.NewSearchService(library, app.Search.DefaultLimit)
	lookupService = services.NewLookupService(library, app.Search.MinCodeScore)
	resourceService = services.NewResourceService(cat, library, app.Server.Product)
	promptService = services.NewPromptService(prompts, app.Server.Product)
	snapshotPath = store.Path()

	logger.Debug("Snapshot: %s (%s)", snapshotPath, app.Corpus.Format.Description())
	return nil
}

func openSnapshotStore(format domain.CorpusFormat, path string) (driven.SnapshotStore, error) {
	switch format {
	case domain.CorpusFormatFile:
		s, err := storagefile.NewSnapshotStore(path)
		if err != nil {
			return nil, fmt.Errorf("open snapshot %s: %w", path, err)
		}
		return s, nil
	default:
		s, err := sqlite.NewSnapshotStore(path)
		if err != nil {
			return nil, fmt.Errorf("open snapshot %s: %w", path, err)
		}
		return s, nil
	}
}

func closeServices() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("closing: %v", err)
		}
	}
	closers = nil
}

// ensureCorpus loads the persisted corpus unless one is already live.
func ensureCorpus(ctx context.Context) error {
	if libraryService == nil {
		return errors.New("library not configured")
	}
	if libraryService.Loaded() {
		return nil
	}
	if err := libraryService.Load(ctx); err != nil {
		if errors.Is(err, domain.ErrCorpusUnavailable) {
			return fmt.Errorf("%w (run 'manuals extract' first)", err)
		}
		return err
	}
	return nil
}
