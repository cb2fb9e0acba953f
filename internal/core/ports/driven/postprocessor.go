package driven

import (
	"context"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// RecordProcessor rewrites record bodies after extraction.
// Processors are chained in a pipeline (e.g., boilerplate removal, normalisation).
type RecordProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the transformed records. Processors may drop records
	// but must not change their keys.
	Process(ctx context.Context, records []domain.Record) ([]domain.Record, error)
}

// RecordPipeline chains multiple RecordProcessors.
type RecordPipeline interface {
	// Process runs the records through all processors in order.
	Process(ctx context.Context, records []domain.Record) ([]domain.Record, error)
}
