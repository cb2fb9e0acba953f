package driving

import "github.com/custodia-labs/manuals/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetCorpusFormat updates the snapshot backend.
	SetCorpusFormat(format domain.CorpusFormat) error

	// SetDocsDir updates the documentation directory.
	SetDocsDir(dir string) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
