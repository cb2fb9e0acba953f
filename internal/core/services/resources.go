package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
)

// Ensure ResourceService implements the interface.
var _ driving.ResourceService = (*ResourceService)(nil)

// Corpus-derived resource URIs.
const (
	URIOverview         = "docs://corpus/overview"
	URISources          = "docs://sources"
	URITemplateChapters = "docs://sources/{sourceId}/chapters"
	URITemplatePage     = "docs://sources/{sourceId}/pages/{ordinal}"
)

const (
	sourcesPrefix  = "docs://sources/"
	chaptersSuffix = "/chapters"
	pagesSegment   = "/pages/"
	mimeMarkdown   = "text/markdown"
	mimeJSON       = "application/json"
	mimePlain      = "text/plain"
)

// ChaptersURI returns the chapter list resource of a source.
func ChaptersURI(sourceID string) string {
	return sourcesPrefix + url.PathEscape(sourceID) + chaptersSuffix
}

// PageURI returns the resource of one record.
func PageURI(sourceID string, ordinal int) string {
	return sourcesPrefix + url.PathEscape(sourceID) + pagesSegment + strconv.Itoa(ordinal)
}

// ResourceService serves static catalogue entries and corpus-derived views.
type ResourceService struct {
	catalogue driven.ResourceCatalogue
	library   *Library
	product   string
}

// NewResourceService creates a resource service. catalogue may be nil.
func NewResourceService(catalogue driven.ResourceCatalogue, library *Library, product string) *ResourceService {
	return &ResourceService{catalogue: catalogue, library: library, product: product}
}

// List returns static resources followed by corpus views.
func (s *ResourceService) List(_ context.Context) []domain.Resource {
	var out []domain.Resource
	if s.catalogue != nil {
		out = append(out, s.catalogue.Resources()...)
	}
	out = append(out,
		domain.Resource{
			URI:         URIOverview,
			Name:        "Corpus overview",
			Description: fmt.Sprintf("Sources and chapter counts of the indexed %s documentation", s.product),
			MIMEType:    mimeMarkdown,
		},
		domain.Resource{
			URI:         URISources,
			Name:        "Sources",
			Description: "Every indexed source with record and chapter counts",
			MIMEType:    mimeJSON,
		},
	)

	c, err := s.library.Current()
	if err != nil {
		return out
	}
	for _, src := range c.Sources() {
		out = append(out, domain.Resource{
			URI:         ChaptersURI(src.ID),
			Name:        src.ID + " chapters",
			Description: fmt.Sprintf("Chapter ranges of %s (%d chapters)", src.ID, src.ChapterCount),
			MIMEType:    mimeJSON,
		})
	}
	return out
}

// Read returns the resource at uri.
func (s *ResourceService) Read(ctx context.Context, uri string) (*domain.Resource, error) {
	if s.catalogue != nil {
		for _, r := range s.catalogue.Resources() {
			if r.URI == uri {
				res := r
				return &res, nil
			}
		}
	}

	switch {
	case uri == URIOverview:
		return s.overview(ctx)
	case uri == URISources:
		return s.sources(ctx)
	case strings.HasPrefix(uri, sourcesPrefix):
		return s.sourceView(uri)
	}
	return nil, fmt.Errorf("resource %q: %w", uri, domain.ErrNotFound)
}

func (s *ResourceService) overview(_ context.Context) (*domain.Resource, error) {
	c, err := s.library.Current()
	if err != nil {
		return nil, err
	}
	meta := c.Meta()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s documentation corpus\n\n", s.product)
	fmt.Fprintf(&b, "Snapshot `%s` built %s, %d records.\n\n", meta.ID, meta.CreatedAt.Format("2006-01-02 15:04 MST"), c.Len())
	b.WriteString("| Source | Records | Chapters | Ordinals |\n|---|---|---|---|\n")
	for _, src := range c.Sources() {
		fmt.Fprintf(&b, "| %s | %d | %d | %d-%d |\n", src.ID, src.RecordCount, src.ChapterCount, src.FirstOrdinal, src.LastOrdinal)
	}
	b.WriteString("\nUse `search_docs` to find pages, `get_chapter_content` to read a chapter ")
	b.WriteString("and `get_code_example` for scripting samples.\n")

	return &domain.Resource{URI: URIOverview, Name: "Corpus overview", MIMEType: mimeMarkdown, Text: b.String()}, nil
}

func (s *ResourceService) sources(_ context.Context) (*domain.Resource, error) {
	c, err := s.library.Current()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(SourceViews(c.Sources()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sources: %w", err)
	}
	return &domain.Resource{URI: URISources, Name: "Sources", MIMEType: mimeJSON, Text: string(data)}, nil
}

func (s *ResourceService) sourceView(uri string) (*domain.Resource, error) {
	rest := strings.TrimPrefix(uri, sourcesPrefix)

	if escaped, ok := strings.CutSuffix(rest, chaptersSuffix); ok {
		sourceID, err := url.PathUnescape(escaped)
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", uri, domain.ErrNotFound)
		}
		c, err := s.library.Current()
		if err != nil {
			return nil, err
		}
		ranges, err := c.ChapterRanges(sourceID)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(ChapterViews(ranges), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode chapters: %w", err)
		}
		return &domain.Resource{URI: uri, Name: sourceID + " chapters", MIMEType: mimeJSON, Text: string(data)}, nil
	}

	if i := strings.LastIndex(rest, pagesSegment); i > 0 {
		sourceID, err := url.PathUnescape(rest[:i])
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", uri, domain.ErrNotFound)
		}
		ordinal, err := strconv.Atoi(rest[i+len(pagesSegment):])
		if err != nil {
			return nil, fmt.Errorf("resource %q: bad ordinal: %w", uri, domain.ErrNotFound)
		}
		c, err := s.library.Current()
		if err != nil {
			return nil, err
		}
		rec, err := c.Record(sourceID, ordinal)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("%s page %d", sourceID, ordinal)
		if rec.HasLabel() {
			name += " (" + rec.Label + ")"
		}
		return &domain.Resource{URI: uri, Name: name, MIMEType: mimePlain, Text: rec.Body}, nil
	}

	return nil, fmt.Errorf("resource %q: %w", uri, domain.ErrNotFound)
}

// SourceView is the JSON shape of a source summary.
type SourceView struct {
	ID           string `json:"id"`
	Records      int    `json:"records"`
	Chapters     int    `json:"chapters"`
	FirstOrdinal int    `json:"first_ordinal"`
	LastOrdinal  int    `json:"last_ordinal"`
}

// SourceViews converts source summaries for JSON output.
func SourceViews(infos []domain.SourceInfo) []SourceView {
	out := make([]SourceView, len(infos))
	for i, in := range infos {
		out[i] = SourceView{
			ID:           in.ID,
			Records:      in.RecordCount,
			Chapters:     in.ChapterCount,
			FirstOrdinal: in.FirstOrdinal,
			LastOrdinal:  in.LastOrdinal,
		}
	}
	return out
}

// ChapterView is the JSON shape of a chapter range.
type ChapterView struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ChapterViews converts chapter ranges for JSON output.
func ChapterViews(ranges []domain.ChapterRange) []ChapterView {
	out := make([]ChapterView, len(ranges))
	for i, r := range ranges {
		out[i] = ChapterView{Label: r.Label, Start: r.Start, End: r.End}
	}
	return out
}
