// Package tui provides an interactive terminal browser for the indexed
// documentation. It is a driving adapter over the search and lookup ports.
package tui

import (
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Search ranks records against free-text queries.
	Search driving.SearchService

	// Lookup resolves sources, chapters and records.
	Lookup driving.LookupService
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
