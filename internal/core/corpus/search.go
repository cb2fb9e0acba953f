package corpus

import (
	"math"
	"sort"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// MinIDF floors the inverse document frequency so that tokens present in
// every record keep a small positive weight.
const MinIDF = 0.01

// IDF returns max(log(N/df), MinIDF) for a token, or zero if the token
// is absent from the corpus.
func (c *Corpus) IDF(token string) float64 {
	df := c.postings.DocumentFrequency(token)
	if df == 0 || len(c.records) == 0 {
		return 0
	}
	return math.Max(math.Log(float64(len(c.records))/float64(df)), MinIDF)
}

// Search ranks records against q. Results are ordered by descending score,
// ties broken by (source, ordinal) ascending, and capped at q.Limit().
// A query with no indexable tokens returns nil.
func (c *Corpus) Search(q domain.Query) []domain.SearchResult {
	return c.rank(q, nil)
}

// CodeExamples ranks only records whose body looks like code.
func (c *Corpus) CodeExamples(q domain.Query) []domain.SearchResult {
	return c.rank(q, func(i int) bool { return c.codeLike[i] })
}

type candidate struct {
	record int
	score  float64
}

func (c *Corpus) rank(q domain.Query, accept func(int) bool) []domain.SearchResult {
	tokens := UniqueTokens(q.Text)
	if len(tokens) == 0 {
		return nil
	}

	lo, hi := 0, len(c.records)
	if q.SourceID != "" {
		span, ok := c.spans[q.SourceID]
		if !ok {
			return nil
		}
		lo, hi = span.lo, span.hi
	}

	scores := make(map[int]float64)
	for _, tok := range tokens {
		idf := c.IDF(tok)
		if idf == 0 {
			continue
		}
		for _, p := range c.postings[tok] {
			if p.Record < lo || p.Record >= hi {
				continue
			}
			if accept != nil && !accept(p.Record) {
				continue
			}
			scores[p.Record] += float64(p.Frequency) * idf
		}
	}
	if len(scores) == 0 {
		return nil
	}

	hits := make([]candidate, 0, len(scores))
	for i, s := range scores {
		hits = append(hits, candidate{record: i, score: s})
	}
	// Record indexes follow (source, ordinal) order, so they are the tie-break.
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].score != hits[b].score {
			return hits[a].score > hits[b].score
		}
		return hits[a].record < hits[b].record
	})

	if limit := q.Limit(); len(hits) > limit {
		hits = hits[:limit]
	}

	results := make([]domain.SearchResult, len(hits))
	for i, h := range hits {
		rec := &c.records[h.record]
		results[i] = domain.SearchResult{
			Record:  rec,
			Score:   h.score,
			Snippet: Snippet(rec.Body, tokens, c.snippetLength),
		}
	}
	return results
}
