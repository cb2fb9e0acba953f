package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/manuals/internal/core/corpus"
	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
	"github.com/custodia-labs/manuals/internal/logger"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// ExtractionService turns the documentation directory into a corpus.
type ExtractionService struct {
	source   driven.DocumentSource
	registry driven.ExtractorRegistry
	pipeline driven.RecordPipeline
	store    driven.SnapshotStore
	library  *Library
	now      func() time.Time
}

// NewExtractionService creates an extraction service.
// pipeline and store may be nil; without a store the corpus is only swapped
// into the library.
func NewExtractionService(
	source driven.DocumentSource,
	registry driven.ExtractorRegistry,
	pipeline driven.RecordPipeline,
	store driven.SnapshotStore,
	library *Library,
) *ExtractionService {
	return &ExtractionService{
		source:   source,
		registry: registry,
		pipeline: pipeline,
		store:    store,
		library:  library,
		now:      time.Now,
	}
}

// Run discovers documents, extracts them, persists the snapshot and swaps
// the new corpus into the library. When the inputs are unchanged since the
// stored snapshot and opts.Force is false, nothing is rebuilt.
func (s *ExtractionService) Run(ctx context.Context, opts driving.ExtractOptions) (*domain.ExtractionSummary, error) {
	logger.Section("Extraction")
	logger.Info("Scanning %s", s.source.Root())

	docs, unreadable, err := s.source.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover documents: %w", err)
	}
	logger.Info("Discovered %d documents", len(docs))

	fingerprint := Fingerprint(docs)
	if !opts.Force && s.store != nil {
		if meta, err := s.store.Meta(ctx); err == nil && meta.Fingerprint == fingerprint {
			logger.Info("Inputs unchanged since snapshot %s", meta.ID)
			summary := &domain.ExtractionSummary{Fingerprint: fingerprint, Unchanged: true}
			if !s.library.Loaded() {
				if err := s.library.Load(ctx); err != nil {
					return summary, err
				}
			}
			return summary, nil
		}
	}

	meta := domain.SnapshotMeta{
		ID:          uuid.NewString(),
		Fingerprint: fingerprint,
	}
	c, summary, err := s.Extract(ctx, docs, meta)
	if err != nil {
		return nil, err
	}
	mergeUnreadable(summary, unreadable)
	summary.Fingerprint = fingerprint

	if s.store != nil {
		if err := s.store.Save(ctx, c.Snapshot()); err != nil {
			return summary, fmt.Errorf("save snapshot: %w", err)
		}
		logger.Info("Snapshot written to %s", s.store.Path())
	}
	s.library.Replace(c)

	logger.Info("Extracted %d records from %d sources, %d units skipped",
		summary.TotalRecords(), len(c.SourceIDs()), summary.SkippedCount())
	return summary, nil
}

// sourceBatch is one source's documents in discovery order.
type sourceBatch struct {
	id   string
	docs []domain.RawDocument
}

// Extract builds a corpus from raw documents. Malformed pages and files are
// skipped and reported; a source that yields no records is reported as failed.
// The only error is context cancellation.
func (s *ExtractionService) Extract(
	ctx context.Context, docs []domain.RawDocument, meta domain.SnapshotMeta,
) (*corpus.Corpus, *domain.ExtractionSummary, error) {
	summary := &domain.ExtractionSummary{}
	var records []domain.Record

	for _, batch := range groupBySource(docs) {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		recs, report := s.extractSource(ctx, batch)
		records = append(records, recs...)
		summary.Sources = append(summary.Sources, report)
	}

	meta.CreatedAt = s.now().UTC()
	meta.Sources = nil
	for _, r := range summary.Sources {
		if !r.Failed {
			meta.Sources = append(meta.Sources, r.SourceID)
		}
	}

	opts := append(s.library.Options(), corpus.WithMeta(meta))
	c, err := corpus.New(records, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("build corpus: %w", err)
	}
	return c, summary, nil
}

func (s *ExtractionService) extractSource(ctx context.Context, batch sourceBatch) ([]domain.Record, domain.SourceReport) {
	report := domain.SourceReport{SourceID: batch.id}
	var (
		records  []domain.Record
		last     int
		firstErr string
	)

	for i := range batch.docs {
		doc := &batch.docs[i]
		res, err := s.extractDocument(ctx, doc)
		if err != nil {
			logger.Warn("Skipping %s: %v", doc.URI, err)
			report.Skipped = append(report.Skipped, domain.SkippedUnit{SourceID: batch.id, URI: doc.URI, Reason: err.Error()})
			if firstErr == "" {
				firstErr = err.Error()
			}
			continue
		}
		for _, sk := range res.Skipped {
			sk.SourceID = batch.id
			logger.Warn("Skipping %s page %d: %s", sk.URI, sk.Unit, sk.Reason)
			report.Skipped = append(report.Skipped, sk)
		}

		// Explicit ordinals are offset by what earlier files in the same
		// source used, so a single PDF keeps its page numbers.
		base := last
		for _, sec := range res.Sections {
			ordinal := last + 1
			if sec.Ordinal > 0 {
				ordinal = base + sec.Ordinal
			}
			if ordinal <= last {
				logger.Warn("Skipping %s section %d: ordinal out of order", doc.URI, sec.Ordinal)
				continue
			}
			last = ordinal
			records = append(records, domain.Record{
				SourceID: batch.id,
				Ordinal:  ordinal,
				Label:    strings.TrimSpace(sec.Label),
				Body:     sec.Text,
			})
		}
	}

	if s.pipeline != nil && len(records) > 0 {
		processed, err := s.process(ctx, records)
		if err != nil {
			logger.Warn("Post-processing %s failed: %v", batch.id, err)
			report.Failed = true
			report.Reason = err.Error()
			return nil, report
		}
		records = processed
	}

	// Blank pages stay as records with an empty body. A source with no
	// text at all, such as a scanned PDF, is reported as failed.
	if !hasText(records) {
		report.Failed = true
		report.Reason = firstErr
		if report.Reason == "" {
			report.Reason = "no extractable text"
		}
		logger.Warn("Source %s produced no records: %s", batch.id, report.Reason)
		return nil, report
	}
	report.Records = len(records)
	return records, report
}

// extractDocument runs the registry on one document. A panic inside an
// extractor fails that document only.
func (s *ExtractionService) extractDocument(ctx context.Context, doc *domain.RawDocument) (res *driven.ExtractResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("extractor panic: %v", r)
		}
	}()
	return s.registry.Extract(ctx, doc)
}

// process runs the record pipeline, turning a processor panic into an error.
func (s *ExtractionService) process(ctx context.Context, records []domain.Record) (out []domain.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("processor panic: %v", r)
		}
	}()
	return s.pipeline.Process(ctx, records)
}

func hasText(records []domain.Record) bool {
	for _, r := range records {
		if r.Body != "" {
			return true
		}
	}
	return false
}

func groupBySource(docs []domain.RawDocument) []sourceBatch {
	var batches []sourceBatch
	index := make(map[string]int)
	for _, d := range docs {
		i, ok := index[d.SourceID]
		if !ok {
			i = len(batches)
			index[d.SourceID] = i
			batches = append(batches, sourceBatch{id: d.SourceID})
		}
		batches[i].docs = append(batches[i].docs, d)
	}
	return batches
}

// mergeUnreadable attaches discovery failures to their source reports.
// A source with no readable documents at all gets a failed report.
func mergeUnreadable(summary *domain.ExtractionSummary, unreadable []domain.SkippedUnit) {
	for _, u := range unreadable {
		found := false
		for i := range summary.Sources {
			if summary.Sources[i].SourceID == u.SourceID {
				summary.Sources[i].Skipped = append(summary.Sources[i].Skipped, u)
				found = true
				break
			}
		}
		if !found {
			summary.Sources = append(summary.Sources, domain.SourceReport{
				SourceID: u.SourceID,
				Skipped:  []domain.SkippedUnit{u},
				Failed:   true,
				Reason:   u.Reason,
			})
		}
	}
}
