// Package corpus holds the immutable, in-memory documentation corpus.
//
// A Corpus is built once from a set of records. Construction sorts the
// records by (source, ordinal), builds the token postings and derives
// every source's chapter ranges in a single pass. After New returns the
// value is never mutated, so any number of goroutines may call Search,
// Chapter and the other readers without coordination. Re-extraction
// produces a new Corpus which callers swap in atomically.
//
// Scoring is plain TF x IDF with the IDF floored at MinIDF so that
// tokens present in every record still contribute a little weight.
package corpus
