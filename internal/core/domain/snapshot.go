package domain

import "time"

// SnapshotMeta describes a persisted corpus.
type SnapshotMeta struct {
	// ID is a random identifier assigned when the snapshot is built.
	ID string

	// CreatedAt is when extraction finished.
	CreatedAt time.Time

	// Fingerprint is a hash of every raw input, used to skip unchanged rebuilds.
	Fingerprint string

	// Sources lists the sources included in the snapshot.
	Sources []string
}

// Snapshot is the persisted form of a corpus: metadata plus records.
// Postings are rebuilt on load.
type Snapshot struct {
	Meta    SnapshotMeta
	Records []Record
}
