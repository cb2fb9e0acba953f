package domain

// Search limits.
const (
	// DefaultMaxResults is used when a query does not set MaxResults.
	DefaultMaxResults = 10

	// MaxResultsLimit caps any requested result count.
	MaxResultsLimit = 100

	// DefaultSnippetLength is the snippet window in runes.
	DefaultSnippetLength = 200
)

// Query is a ranked full-text search request.
type Query struct {
	// Text is the free-text query.
	Text string

	// SourceID restricts the search to one source. Empty searches everything.
	SourceID string

	// MaxResults caps the number of results. Zero means DefaultMaxResults.
	MaxResults int
}

// Limit returns the effective result cap.
func (q Query) Limit() int {
	switch {
	case q.MaxResults <= 0:
		return DefaultMaxResults
	case q.MaxResults > MaxResultsLimit:
		return MaxResultsLimit
	default:
		return q.MaxResults
	}
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Record points at the matched record inside the corpus.
	Record *Record

	// Score is the TF x IDF relevance score.
	Score float64

	// Snippet is a short excerpt around the query terms.
	Snippet string
}
