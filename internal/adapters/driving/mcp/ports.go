package mcp

import (
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks records against free-text queries.
	Search driving.SearchService

	// Lookup resolves chapters, code examples and sources.
	Lookup driving.LookupService

	// Resources lists and reads reference resources. Optional.
	Resources driving.ResourceService

	// Prompts renders prompt templates. Optional.
	Prompts driving.PromptService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Lookup == nil {
		return ErrMissingLookupService
	}
	return nil
}
