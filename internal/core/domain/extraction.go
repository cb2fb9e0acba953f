package domain

// SkippedUnit is a page or file that could not be extracted.
type SkippedUnit struct {
	// SourceID is the source the unit belongs to.
	SourceID string

	// URI is the file the unit came from.
	URI string

	// Unit is the page number, or zero for a whole file.
	Unit int

	// Reason is the error text.
	Reason string
}

// SourceReport records what extraction produced for one source.
type SourceReport struct {
	SourceID string
	Records  int
	Skipped  []SkippedUnit

	// Failed is set when the source contributed no records.
	Failed bool
	Reason string
}

// ExtractionSummary is returned by every extraction run.
type ExtractionSummary struct {
	Sources []SourceReport

	// Fingerprint is the hash of the raw inputs.
	Fingerprint string

	// Unchanged is set when the fingerprint matched the stored snapshot
	// and no rebuild took place.
	Unchanged bool
}

// TotalRecords sums records over all sources.
func (s ExtractionSummary) TotalRecords() int {
	n := 0
	for _, r := range s.Sources {
		n += r.Records
	}
	return n
}

// FailedSources returns the IDs of sources absent from the corpus.
func (s ExtractionSummary) FailedSources() []string {
	var ids []string
	for _, r := range s.Sources {
		if r.Failed {
			ids = append(ids, r.SourceID)
		}
	}
	return ids
}

// SkippedCount sums skipped units over all sources.
func (s ExtractionSummary) SkippedCount() int {
	n := 0
	for _, r := range s.Sources {
		n += len(r.Skipped)
	}
	return n
}
