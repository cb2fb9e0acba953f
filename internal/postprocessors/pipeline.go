// Package postprocessors provides record body processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.RecordPipeline = (*Pipeline)(nil)

// Pipeline chains multiple RecordProcessors and runs them in order.
type Pipeline struct {
	processors []driven.RecordProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.RecordProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the records through all processors in order.
// A processor that changes a record key is a programming error and is reported.
func (p *Pipeline) Process(ctx context.Context, records []domain.Record) ([]domain.Record, error) {
	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		before := keySet(records)
		out, err := processor.Process(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
		for _, r := range out {
			if !before[r.Key()] {
				return nil, fmt.Errorf("processor %s: introduced record %s", processor.Name(), r.Key())
			}
		}
		records = out
	}

	return records, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.RecordProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}

func keySet(records []domain.Record) map[domain.RecordKey]bool {
	set := make(map[domain.RecordKey]bool, len(records))
	for _, r := range records {
		set[r.Key()] = true
	}
	return set
}
