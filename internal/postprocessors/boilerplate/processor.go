// Package boilerplate removes page furniture such as "Page 3 of 120"
// footers from record bodies.
package boilerplate

import (
	"context"
	"fmt"
	"regexp"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
)

// Name is the processor name used in configuration.
const Name = "boilerplate"

// Ensure Processor implements the interface.
var _ driven.RecordProcessor = (*Processor)(nil)

var pageFooter = regexp.MustCompile(`(?i)\bpage\s+\d+\s+of\s+\d+\b`)

// Processor deletes every match of its patterns from record bodies.
type Processor struct {
	patterns []*regexp.Regexp
}

// New creates a processor that strips page footers plus the given
// patterns. Patterns are compiled in multi-line mode, so ^ and $ match
// at line boundaries.
func New(patterns ...string) (*Processor, error) {
	p := &Processor{patterns: []*regexp.Regexp{pageFooter}}
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile("(?m)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		p.patterns = append(p.patterns, re)
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process strips boilerplate from every record body.
func (p *Processor) Process(_ context.Context, records []domain.Record) ([]domain.Record, error) {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		for _, re := range p.patterns {
			r.Body = re.ReplaceAllString(r.Body, "")
		}
		out[i] = r
	}
	return out, nil
}
