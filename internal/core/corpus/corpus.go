package corpus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// sourceSpan is the half-open index range of a source's records.
type sourceSpan struct {
	lo, hi int
}

// Corpus is an immutable collection of records with derived indexes.
// It is safe for concurrent read access.
type Corpus struct {
	meta     domain.SnapshotMeta
	records  []domain.Record
	keys     map[domain.RecordKey]int
	postings Postings
	sources  []string
	spans    map[string]sourceSpan
	chapters map[string][]domain.ChapterRange
	codeLike []bool

	snippetLength int
}

// Option configures a Corpus at construction.
type Option func(*Corpus)

// WithMeta attaches snapshot metadata.
func WithMeta(meta domain.SnapshotMeta) Option {
	return func(c *Corpus) {
		c.meta = meta
	}
}

// WithSnippetLength sets the snippet window in runes.
func WithSnippetLength(n int) Option {
	return func(c *Corpus) {
		if n > 0 {
			c.snippetLength = n
		}
	}
}

// New builds a corpus from records. The input slice is copied.
// Returns ErrInvalidInput for an empty source ID or a duplicate
// (source, ordinal) key.
func New(records []domain.Record, opts ...Option) (*Corpus, error) {
	c := &Corpus{
		records:       make([]domain.Record, len(records)),
		keys:          make(map[domain.RecordKey]int, len(records)),
		spans:         make(map[string]sourceSpan),
		chapters:      make(map[string][]domain.ChapterRange),
		snippetLength: domain.DefaultSnippetLength,
	}
	for _, opt := range opts {
		opt(c)
	}

	copy(c.records, records)
	sort.SliceStable(c.records, func(i, j int) bool {
		return c.records[i].Key().Less(c.records[j].Key())
	})

	for i, r := range c.records {
		if strings.TrimSpace(r.SourceID) == "" {
			return nil, fmt.Errorf("record %d has no source id: %w", i, domain.ErrInvalidInput)
		}
		key := r.Key()
		if _, dup := c.keys[key]; dup {
			return nil, fmt.Errorf("duplicate record %s: %w", key, domain.ErrInvalidInput)
		}
		c.keys[key] = i

		span, ok := c.spans[r.SourceID]
		if !ok {
			c.sources = append(c.sources, r.SourceID)
			span.lo = i
		}
		span.hi = i + 1
		c.spans[r.SourceID] = span
	}

	c.postings = BuildPostings(c.records)

	c.codeLike = make([]bool, len(c.records))
	for i := range c.records {
		c.codeLike[i] = IsCodeLike(c.records[i].Body)
	}

	for _, id := range c.sources {
		span := c.spans[id]
		c.chapters[id] = BuildChapterRanges(c.records[span.lo:span.hi])
	}

	if len(c.meta.Sources) == 0 {
		c.meta.Sources = append([]string(nil), c.sources...)
	}

	return c, nil
}

// Meta returns the snapshot metadata the corpus was built with.
func (c *Corpus) Meta() domain.SnapshotMeta {
	return c.meta
}

// Len returns the total number of records.
func (c *Corpus) Len() int {
	return len(c.records)
}

// Records returns a copy of every record in (source, ordinal) order.
func (c *Corpus) Records() []domain.Record {
	out := make([]domain.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Snapshot returns the persistable form of the corpus.
func (c *Corpus) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{Meta: c.meta, Records: c.Records()}
}

// Postings returns the token postings. Callers must not modify the result.
func (c *Corpus) Postings() Postings {
	return c.postings
}

// SourceIDs returns the source identifiers in sorted order.
func (c *Corpus) SourceIDs() []string {
	return append([]string(nil), c.sources...)
}

// HasSource reports whether the corpus holds records for sourceID.
func (c *Corpus) HasSource(sourceID string) bool {
	_, ok := c.spans[sourceID]
	return ok
}

// Sources summarises every source.
func (c *Corpus) Sources() []domain.SourceInfo {
	infos := make([]domain.SourceInfo, 0, len(c.sources))
	for _, id := range c.sources {
		span := c.spans[id]
		infos = append(infos, domain.SourceInfo{
			ID:           id,
			RecordCount:  span.hi - span.lo,
			ChapterCount: len(c.chapters[id]),
			FirstOrdinal: c.records[span.lo].Ordinal,
			LastOrdinal:  c.records[span.hi-1].Ordinal,
		})
	}
	return infos
}

// Record returns a pointer to the record with the given key.
func (c *Corpus) Record(sourceID string, ordinal int) (*domain.Record, error) {
	i, ok := c.keys[domain.RecordKey{SourceID: sourceID, Ordinal: ordinal}]
	if !ok {
		return nil, fmt.Errorf("record %s#%d: %w", sourceID, ordinal, domain.ErrNotFound)
	}
	return &c.records[i], nil
}

// SourceRecords returns the records of one source in ordinal order.
func (c *Corpus) SourceRecords(sourceID string) ([]domain.Record, error) {
	span, ok := c.spans[sourceID]
	if !ok {
		return nil, fmt.Errorf("source %q: %w", sourceID, domain.ErrNotFound)
	}
	out := make([]domain.Record, span.hi-span.lo)
	copy(out, c.records[span.lo:span.hi])
	return out, nil
}

// ChapterRanges returns the chapter ranges of a source sorted by start.
func (c *Corpus) ChapterRanges(sourceID string) ([]domain.ChapterRange, error) {
	ranges, ok := c.chapters[sourceID]
	if !ok {
		return nil, fmt.Errorf("source %q: %w", sourceID, domain.ErrNotFound)
	}
	return append([]domain.ChapterRange(nil), ranges...), nil
}

// Chapter concatenates the bodies of every range whose label matches
// label case-insensitively. Bodies are joined with a blank line.
func (c *Corpus) Chapter(sourceID, label string) (domain.Chapter, error) {
	span, ok := c.spans[sourceID]
	if !ok {
		return domain.Chapter{}, fmt.Errorf("source %q: %w", sourceID, domain.ErrNotFound)
	}

	want := strings.TrimSpace(label)
	if want == "" {
		return domain.Chapter{}, fmt.Errorf("empty chapter label: %w", domain.ErrNotFound)
	}
	var (
		matched []domain.ChapterRange
		bodies  []string
	)
	for _, rng := range c.chapters[sourceID] {
		if !strings.EqualFold(rng.Label, want) {
			continue
		}
		matched = append(matched, rng)
		for _, r := range c.records[span.lo:span.hi] {
			if rng.Contains(r.Ordinal) {
				bodies = append(bodies, r.Body)
			}
		}
	}
	if len(matched) == 0 {
		return domain.Chapter{}, fmt.Errorf("chapter %q in %q: %w", label, sourceID, domain.ErrNotFound)
	}

	return domain.Chapter{
		SourceID: sourceID,
		Label:    matched[0].Label,
		Ranges:   matched,
		Body:     strings.Join(bodies, "\n\n"),
	}, nil
}
