package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
)

// mockDocumentSource returns a fixed document list.
type mockDocumentSource struct {
	docs       []domain.RawDocument
	unreadable []domain.SkippedUnit
	err        error
	calls      int
}

func (m *mockDocumentSource) Root() string { return "/docs" }

func (m *mockDocumentSource) Discover(_ context.Context) ([]domain.RawDocument, []domain.SkippedUnit, error) {
	m.calls++
	return m.docs, m.unreadable, m.err
}

// mockRegistry extracts "page:" separated content. A document whose content
// is "broken" fails outright, "panic" panics, and a page whose text is "bad"
// is skipped.
type mockRegistry struct {
	calls int
}

func (m *mockRegistry) Extract(_ context.Context, raw *domain.RawDocument) (*driven.ExtractResult, error) {
	m.calls++
	content := string(raw.Content)
	if content == "broken" {
		return nil, errors.New("cannot open container")
	}
	if content == "panic" {
		panic("index out of range")
	}
	res := &driven.ExtractResult{}
	pages := splitPages(content)
	for i, p := range pages {
		if p.text == "bad" {
			res.Skipped = append(res.Skipped, domain.SkippedUnit{URI: raw.URI, Unit: i + 1, Reason: "malformed page"})
			continue
		}
		ordinal := i + 1
		if raw.MIMEType == domain.MIMETypeHTML {
			ordinal = 0
		}
		res.Sections = append(res.Sections, driven.Section{Ordinal: ordinal, Label: p.label, Text: p.text})
	}
	return res, nil
}

func (m *mockRegistry) Register(driven.Extractor) {}

func (m *mockRegistry) SupportedMIMETypes() []string {
	return []string{domain.MIMETypePDF, domain.MIMETypeHTML}
}

type mockPage struct {
	label string
	text  string
}

// splitPages parses "Label|text;Label|text" into pages.
func splitPages(content string) []mockPage {
	var pages []mockPage
	start := 0
	for i := 0; i <= len(content); i++ {
		if i == len(content) || content[i] == ';' {
			part := content[start:i]
			start = i + 1
			label, text := "", part
			for j := 0; j < len(part); j++ {
				if part[j] == '|' {
					label, text = part[:j], part[j+1:]
					break
				}
			}
			pages = append(pages, mockPage{label: label, text: text})
		}
	}
	return pages
}

// mockPipeline passes records through unless err or panics is set.
type mockPipeline struct {
	err    error
	panics bool
	calls  int
}

func (m *mockPipeline) Process(_ context.Context, records []domain.Record) ([]domain.Record, error) {
	m.calls++
	if m.panics {
		panic("processor bug")
	}
	if m.err != nil {
		return nil, m.err
	}
	return records, nil
}

// mockPromptStore serves templates from a map.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("prompt %s: %w", name, domain.ErrNotFound)
}

func (m *mockPromptStore) Reload() {}

// mockCatalogue serves fixed resources.
type mockCatalogue struct {
	resources []domain.Resource
}

func (m *mockCatalogue) Resources() []domain.Resource { return m.resources }
