// Package plaintext provides the fallback Extractor for text files.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/extractors/heading"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor turns a whole text file into one section.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return "plaintext"
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		domain.MIMETypePlainText,
		"text/x-rst",
		"text/x-python",
		"text/x-log",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract returns the file as a single section labelled by its leading line.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawDocument) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	body := strings.ToValidUTF8(string(raw.Content), string(utf8.RuneError))

	result := &driven.ExtractResult{}
	if body == "" {
		return result, nil
	}
	label, _ := heading.FromLeadingLine(body)
	result.Sections = []driven.Section{{Label: label, Text: body}}
	return result, nil
}
