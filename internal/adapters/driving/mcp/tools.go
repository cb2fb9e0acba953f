package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/services"
)

// Tool names.
const (
	ToolSearchDocs     = "search_docs"
	ToolCodeExample    = "get_code_example"
	ToolChapterContent = "get_chapter_content"
	ToolListChapters   = "list_chapters"
	ToolListSources    = "list_sources"
)

const (
	// maxChapterRunes caps chapter and example text returned in one call.
	maxChapterRunes = 5000

	truncationNote = "\n\n*[Content truncated - use search for specific topics]*"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"search query terms"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	SourceID   string `json:"source_id,omitempty" jsonschema:"restrict the search to one source"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query   string               `json:"query"`
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	SourceID string  `json:"source_id"`
	Ordinal  int     `json:"ordinal"`
	Label    string  `json:"label,omitempty"`
	URI      string  `json:"uri"`
	Score    float64 `json:"score"`
	Snippet  string  `json:"snippet,omitempty"`
	Body     string  `json:"body,omitempty"`
}

// CodeExampleInput is the input schema for the code example tool.
type CodeExampleInput struct {
	Topic      string `json:"topic" jsonschema:"topic or keyword to find code examples for"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of examples to return (default 1)"`
}

// CodeExampleOutput is the output schema for the code example tool.
type CodeExampleOutput struct {
	Topic    string               `json:"topic"`
	Examples []SearchResultOutput `json:"examples"`
	Count    int                  `json:"count"`
}

// ChapterInput is the input schema for the chapter tool.
type ChapterInput struct {
	SourceID     string `json:"source_id" jsonschema:"source holding the chapter, e.g. scripting_mechanical_2025r1.pdf"`
	ChapterTitle string `json:"chapter_title" jsonschema:"chapter title, matched case-insensitively"`
}

// ChapterOutput is the output schema for the chapter tool.
type ChapterOutput struct {
	SourceID  string        `json:"source_id"`
	Title     string        `json:"title"`
	Found     bool          `json:"found"`
	Ranges    []RangeOutput `json:"ranges,omitempty"`
	Content   string        `json:"content,omitempty"`
	Truncated bool          `json:"truncated,omitempty"`
	Available []string      `json:"available,omitempty"`
}

// RangeOutput is a chapter range.
type RangeOutput struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ListChaptersInput is the input schema for the chapter list tool.
type ListChaptersInput struct {
	SourceID string `json:"source_id" jsonschema:"source to list chapters for"`
}

// ListChaptersOutput is the output schema for the chapter list tool.
type ListChaptersOutput struct {
	SourceID string        `json:"source_id"`
	Found    bool          `json:"found"`
	Chapters []RangeOutput `json:"chapters"`
}

// ListSourcesInput takes no arguments.
type ListSourcesInput struct{}

// ListSourcesOutput is the output schema for the source list tool.
type ListSourcesOutput struct {
	Sources []services.SourceView `json:"sources"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolSearchDocs,
		Description: "Search across all indexed documentation (PDF manuals and HTML sets)",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolCodeExample,
		Description: "Get code examples related to a specific topic",
	}, s.handleCodeExample)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolChapterContent,
		Description: "Get the content of a chapter from an indexed manual",
	}, s.handleChapter)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolListChapters,
		Description: "List the chapters and their page ranges in a source",
	}, s.handleListChapters)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolListSources,
		Description: "List every indexed source with record and chapter counts",
	}, s.handleListSources)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Search.Search(ctx, domain.Query{
		Text:       input.Query,
		SourceID:   input.SourceID,
		MaxResults: input.MaxResults,
	})
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("search: %w", err)
	}

	output := SearchOutput{
		Query:   input.Query,
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = resultOutput(results[i])
	}

	return textResult(formatSearch(input.Query, output.Results)), output, nil
}

// handleCodeExample handles the code example tool invocation.
func (s *Server) handleCodeExample(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CodeExampleInput,
) (*mcp.CallToolResult, CodeExampleOutput, error) {
	limit := input.MaxResults
	if limit <= 0 {
		limit = 1
	}
	output := CodeExampleOutput{Topic: input.Topic, Examples: []SearchResultOutput{}}

	results, err := s.ports.Lookup.CodeExamples(ctx, input.Topic, limit)
	if errors.Is(err, domain.ErrNotFound) {
		return textResult(fmt.Sprintf("No code examples found for topic: '%s'", input.Topic)), output, nil
	}
	if err != nil {
		return nil, CodeExampleOutput{}, fmt.Errorf("code example: %w", err)
	}

	for _, r := range results {
		out := resultOutput(r)
		out.Body, _ = truncateRunes(r.Record.Body, maxChapterRunes)
		output.Examples = append(output.Examples, out)
	}
	output.Count = len(output.Examples)

	return textResult(formatExamples(input.Topic, output.Examples)), output, nil
}

// handleChapter handles the chapter tool invocation.
func (s *Server) handleChapter(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChapterInput,
) (*mcp.CallToolResult, ChapterOutput, error) {
	output := ChapterOutput{SourceID: input.SourceID, Title: input.ChapterTitle}

	ch, err := s.ports.Lookup.GetChapter(ctx, input.SourceID, input.ChapterTitle)
	if errors.Is(err, domain.ErrNotFound) {
		return s.chapterMiss(ctx, input, output)
	}
	if err != nil {
		return nil, ChapterOutput{}, fmt.Errorf("chapter: %w", err)
	}

	output.Found = true
	output.Title = ch.Label
	output.Ranges = rangeOutputs(ch.Ranges)
	output.Content, output.Truncated = truncateRunes(ch.Body, maxChapterRunes)

	return textResult(formatChapter(output)), output, nil
}

// chapterMiss explains a failed chapter lookup and lists what is available.
func (s *Server) chapterMiss(
	ctx context.Context,
	input ChapterInput,
	output ChapterOutput,
) (*mcp.CallToolResult, ChapterOutput, error) {
	ranges, err := s.ports.Lookup.ChapterRanges(ctx, input.SourceID)
	if errors.Is(err, domain.ErrNotFound) {
		ids, err := s.sourceIDs(ctx)
		if err != nil {
			return nil, ChapterOutput{}, err
		}
		output.Available = ids
		text := fmt.Sprintf("Source '%s' not found.\n\nAvailable sources:\n%s", input.SourceID, bulletList(ids))
		return textResult(text), output, nil
	}
	if err != nil {
		return nil, ChapterOutput{}, fmt.Errorf("chapter: %w", err)
	}

	output.Available = uniqueLabels(ranges)
	text := fmt.Sprintf("Chapter '%s' not found in %s.\n\nAvailable chapters:\n%s",
		input.ChapterTitle, input.SourceID, bulletList(output.Available))
	return textResult(text), output, nil
}

// handleListChapters handles the chapter list tool invocation.
func (s *Server) handleListChapters(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListChaptersInput,
) (*mcp.CallToolResult, ListChaptersOutput, error) {
	output := ListChaptersOutput{SourceID: input.SourceID, Chapters: []RangeOutput{}}

	ranges, err := s.ports.Lookup.ChapterRanges(ctx, input.SourceID)
	if errors.Is(err, domain.ErrNotFound) {
		ids, err := s.sourceIDs(ctx)
		if err != nil {
			return nil, ListChaptersOutput{}, err
		}
		text := fmt.Sprintf("Source '%s' not found.\n\nAvailable sources:\n%s", input.SourceID, bulletList(ids))
		return textResult(text), output, nil
	}
	if err != nil {
		return nil, ListChaptersOutput{}, fmt.Errorf("list chapters: %w", err)
	}

	output.Found = true
	output.Chapters = rangeOutputs(ranges)

	var b strings.Builder
	fmt.Fprintf(&b, "# Chapters in %s\n\n", input.SourceID)
	if len(ranges) == 0 {
		b.WriteString("No chapters detected.\n")
	}
	for _, r := range ranges {
		fmt.Fprintf(&b, "- %s (pages %d-%d)\n", r.Label, r.Start, r.End)
	}
	return textResult(b.String()), output, nil
}

// handleListSources handles the source list tool invocation.
func (s *Server) handleListSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListSourcesInput,
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	infos, err := s.ports.Lookup.Sources(ctx)
	if err != nil {
		return nil, ListSourcesOutput{}, fmt.Errorf("list sources: %w", err)
	}
	output := ListSourcesOutput{Sources: services.SourceViews(infos)}

	var b strings.Builder
	b.WriteString("# Indexed sources\n\n")
	for _, in := range infos {
		fmt.Fprintf(&b, "- %s: %d records, %d chapters\n", in.ID, in.RecordCount, in.ChapterCount)
	}
	return textResult(b.String()), output, nil
}

func (s *Server) sourceIDs(ctx context.Context) ([]string, error) {
	infos, err := s.ports.Lookup.Sources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	ids := make([]string, len(infos))
	for i, in := range infos {
		ids[i] = in.ID
	}
	return ids, nil
}

func resultOutput(r domain.SearchResult) SearchResultOutput {
	return SearchResultOutput{
		SourceID: r.Record.SourceID,
		Ordinal:  r.Record.Ordinal,
		Label:    r.Record.Label,
		URI:      services.PageURI(r.Record.SourceID, r.Record.Ordinal),
		Score:    r.Score,
		Snippet:  r.Snippet,
	}
}

func rangeOutputs(ranges []domain.ChapterRange) []RangeOutput {
	out := make([]RangeOutput, len(ranges))
	for i, r := range ranges {
		out[i] = RangeOutput{Label: r.Label, Start: r.Start, End: r.End}
	}
	return out
}

// uniqueLabels returns range labels in first-seen order.
func uniqueLabels(ranges []domain.ChapterRange) []string {
	seen := make(map[string]bool, len(ranges))
	var labels []string
	for _, r := range ranges {
		if seen[r.Label] {
			continue
		}
		seen[r.Label] = true
		labels = append(labels, r.Label)
	}
	return labels
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// truncateRunes cuts s to at most n runes and reports whether it did.
func truncateRunes(s string, n int) (string, bool) {
	if n <= 0 {
		return s, false
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}
