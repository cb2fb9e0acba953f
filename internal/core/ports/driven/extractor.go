package driven

import (
	"context"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// Extractor turns one raw document into sections.
// Each extractor handles specific MIME types (e.g., PDF, HTML).
type Extractor interface {
	// Name identifies the extractor in logs.
	Name() string

	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract reads the document. A failed page is reported in
	// ExtractResult.Skipped; an error means the whole document is unreadable.
	Extract(ctx context.Context, raw *domain.RawDocument) (*ExtractResult, error)
}

// Section is one unit of extracted text before normalisation.
type Section struct {
	// Ordinal is the physical position (PDF page number).
	// Zero means the caller assigns the next discovery sequence number.
	Ordinal int

	// Label is the detected heading, or empty.
	Label string

	// Text is the raw extracted text.
	Text string
}

// ExtractResult contains the output of extraction.
type ExtractResult struct {
	Sections []Section
	Skipped  []domain.SkippedUnit
}
