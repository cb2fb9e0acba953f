package driving

import (
	"context"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// ExtractOptions controls an extraction run.
type ExtractOptions struct {
	// Force rebuilds even when the inputs are unchanged.
	Force bool
}

// ExtractionService rebuilds the corpus from the documentation directory.
type ExtractionService interface {
	// Run discovers, extracts, persists and swaps in a new corpus.
	// Page and source failures are reported in the summary, never as errors.
	Run(ctx context.Context, opts ExtractOptions) (*domain.ExtractionSummary, error)
}
