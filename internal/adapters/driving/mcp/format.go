package mcp

import (
	"fmt"
	"strings"
)

func formatSearch(query string, results []SearchResultOutput) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for query: '%s'", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Search Results for: '%s'\n\n", query)
	fmt.Fprintf(&b, "Found %d relevant results:\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "## Result %d: %s\n", i+1, r.SourceID)
		fmt.Fprintf(&b, "**Source**: %s (page %d)\n", r.SourceID, r.Ordinal)
		if r.Label != "" {
			fmt.Fprintf(&b, "**Chapter**: %s\n", r.Label)
		}
		fmt.Fprintf(&b, "**Relevance**: %.3f\n\n", r.Score)
		fmt.Fprintf(&b, "**Context**:\n%s\n\n---\n\n", r.Snippet)
	}
	return b.String()
}

func formatExamples(topic string, examples []SearchResultOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Code Examples for: '%s'\n\n", topic)
	for i, ex := range examples {
		fmt.Fprintf(&b, "## Example %d\n", i+1)
		fmt.Fprintf(&b, "**Source**: %s (page %d)\n", ex.SourceID, ex.Ordinal)
		if ex.Label != "" {
			fmt.Fprintf(&b, "**Chapter**: %s\n", ex.Label)
		}
		fmt.Fprintf(&b, "\n```\n%s\n```\n\n---\n\n", ex.Body)
	}
	return b.String()
}

func formatChapter(ch ChapterOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ch.Title)
	fmt.Fprintf(&b, "**Source**: %s\n", ch.SourceID)
	pages := make([]string, len(ch.Ranges))
	for i, r := range ch.Ranges {
		pages[i] = fmt.Sprintf("%d - %d", r.Start, r.End)
	}
	fmt.Fprintf(&b, "**Pages**: %s\n\n", strings.Join(pages, ", "))
	b.WriteString(ch.Content)
	if ch.Truncated {
		b.WriteString(truncationNote)
	}
	return b.String()
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(it)
	}
	return b.String()
}
