// Package mcp provides an MCP (Model Context Protocol) server adapter for manuals.
// It lets AI assistants search the indexed documentation, read chapters and
// code examples, browse reference resources and fetch prompt templates.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingLookupService is returned when the lookup service is not provided.
	ErrMissingLookupService = errors.New("mcp: lookup service is required")
)
