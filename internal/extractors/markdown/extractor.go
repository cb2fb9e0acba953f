// Package markdown provides an Extractor for Markdown documentation.
// Files are parsed with goldmark and split at ATX or setext headings of
// level one and two. Section bodies keep their Markdown source so fenced
// code samples stay detectable.
package markdown

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/extractors/heading"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// maxSectionLevel is the deepest heading that starts a new section.
const maxSectionLevel = 2

var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func parser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return parserInstance
}

var (
	atxMarker    = regexp.MustCompile(`^ {0,3}#{1,6}[ \t]+`)
	setextMarker = regexp.MustCompile(`^ {0,3}(=+|-+)[ \t]*$`)
	images       = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// Extractor splits Markdown files into heading-delimited sections.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return "markdown"
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.MIMETypeMarkdown, "text/x-markdown"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Generic MIME extractor, higher than plaintext
}

// Extract returns one section per top-level heading. Text before the first
// heading forms an unlabeled section.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := raw.Content
	doc := parser().Parser().Parse(text.NewReader(src))

	type cut struct {
		offset int
		label  string
	}
	cuts := []cut{{offset: 0}}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > maxSectionLevel || h.Lines().Len() == 0 {
			continue
		}
		start := lineStart(src, h.Lines().At(0).Start)
		cuts = append(cuts, cut{offset: start, label: heading.Truncate(headingText(h, src))})
	}

	result := &driven.ExtractResult{}
	for i, c := range cuts {
		end := len(src)
		if i+1 < len(cuts) {
			end = cuts[i+1].offset
		}
		body := cleanBody(string(src[c.offset:end]))
		if body == "" {
			continue
		}
		result.Sections = append(result.Sections, driven.Section{Label: c.label, Text: body})
	}
	return result, nil
}

// headingText joins the inline text of a heading.
func headingText(h *ast.Heading, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return heading.Clean(b.String())
}

// cleanBody removes heading markers and link syntax outside fenced code.
func cleanBody(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			out = append(out, l)
			continue
		}
		if inFence {
			out = append(out, l)
			continue
		}
		if setextMarker.MatchString(l) {
			continue
		}
		l = atxMarker.ReplaceAllString(l, "")
		l = images.ReplaceAllString(l, "$1")
		l = links.ReplaceAllString(l, "$1")
		out = append(out, l)
	}
	return trimBlankLines(strings.Join(out, "\n"))
}

// trimBlankLines drops blank lines around s and trailing blanks on its last
// line. Indentation on the first remaining line is kept.
func trimBlankLines(s string) string {
	s = strings.TrimRight(s, " \t\n")
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 || strings.TrimSpace(s[:i]) != "" {
			break
		}
		s = s[i+1:]
	}
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func lineStart(src []byte, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	if i := bytes.LastIndexByte(src[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}
