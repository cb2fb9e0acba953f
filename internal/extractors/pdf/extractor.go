package pdf

import (
	"context"
	"fmt"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads PDF documents page by page.
type Extractor struct {
	open Opener
}

// New creates a PDF extractor backed by ledongthuc/pdf.
func New() *Extractor {
	return &Extractor{open: openReader}
}

// NewWithOpener creates a PDF extractor with a custom opener.
// Used for testing.
func NewWithOpener(open Opener) *Extractor {
	return &Extractor{open: open}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return "pdf"
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.MIMETypePDF}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract returns one section per readable page. Pages that fail or panic
// inside the parser are reported as skipped. An error is returned only when
// the document itself cannot be opened.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	doc, err := e.safeOpen(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", raw.URI, domain.ErrSourceUnreadable, err)
	}

	pages := doc.NumPages()
	logger.Debug("PDF %s has %d pages", raw.URI, pages)

	result := &driven.ExtractResult{Sections: make([]driven.Section, 0, pages)}
	for n := 1; n <= pages; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := readPage(doc, n)
		if err != nil {
			result.Skipped = append(result.Skipped, domain.SkippedUnit{
				SourceID: raw.SourceID,
				URI:      raw.URI,
				Unit:     n,
				Reason:   err.Error(),
			})
			continue
		}

		result.Sections = append(result.Sections, driven.Section{
			Ordinal: n,
			Label:   pageLabel(page),
			Text:    page.Text,
		})
	}
	return result, nil
}

func (e *Extractor) safeOpen(content []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parser panic: %v", r)
		}
	}()
	return e.open(content)
}

func readPage(doc Document, n int) (page Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			page, err = Page{}, fmt.Errorf("parser panic: %v", r)
		}
	}()
	return doc.Page(n)
}
