package domain

import "fmt"

// Record is one addressable unit of extracted text: a PDF page or an HTML section.
// Records are immutable once extracted.
type Record struct {
	// SourceID identifies the originating document or document set.
	SourceID string

	// Ordinal is the record's position within its source.
	// Page number for PDFs, section sequence for HTML.
	Ordinal int

	// Label is the chapter or section heading in force for this record.
	// Empty means no label was detected.
	Label string

	// Body is the normalised text.
	Body string
}

// Key returns the record's unique identity.
func (r Record) Key() RecordKey {
	return RecordKey{SourceID: r.SourceID, Ordinal: r.Ordinal}
}

// HasLabel reports whether a chapter label was detected.
func (r Record) HasLabel() bool {
	return r.Label != ""
}

// RecordKey is the (SourceID, Ordinal) pair that identifies a record.
type RecordKey struct {
	SourceID string
	Ordinal  int
}

// String renders the key as "source#ordinal".
func (k RecordKey) String() string {
	return fmt.Sprintf("%s#%d", k.SourceID, k.Ordinal)
}

// Less orders keys by source then ordinal.
func (k RecordKey) Less(other RecordKey) bool {
	if k.SourceID != other.SourceID {
		return k.SourceID < other.SourceID
	}
	return k.Ordinal < other.Ordinal
}

// ChapterRange is a contiguous, inclusive run of ordinals within one source
// that share a chapter label.
type ChapterRange struct {
	Label string
	Start int
	End   int
}

// Contains reports whether ordinal falls inside the range.
func (c ChapterRange) Contains(ordinal int) bool {
	return ordinal >= c.Start && ordinal <= c.End
}

// Len returns the number of ordinals covered.
func (c ChapterRange) Len() int {
	return c.End - c.Start + 1
}

// Chapter is the assembled text of every range matching a label.
type Chapter struct {
	SourceID string
	Label    string
	Ranges   []ChapterRange
	Body     string
}

// SourceInfo summarises one source held in a corpus.
type SourceInfo struct {
	ID           string
	RecordCount  int
	ChapterCount int
	FirstOrdinal int
	LastOrdinal  int
}
