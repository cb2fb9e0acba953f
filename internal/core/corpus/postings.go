package corpus

import "github.com/custodia-labs/manuals/internal/core/domain"

// Posting records how often a token occurs in one record.
// Record is the index of the record in the corpus' sorted record slice.
type Posting struct {
	Record    int
	Frequency int
}

// Postings maps a token to the records containing it, ordered by record index.
type Postings map[string][]Posting

// DocumentFrequency returns the number of records containing token.
func (p Postings) DocumentFrequency(token string) int {
	return len(p[token])
}

// BuildPostings indexes records in a single pass. Record indexes refer to
// positions in the given slice, so postings lists come out already sorted.
func BuildPostings(records []domain.Record) Postings {
	postings := make(Postings)
	for i := range records {
		counts := make(map[string]int)
		var order []string
		for _, tok := range Tokenize(records[i].Body) {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
		for _, tok := range order {
			postings[tok] = append(postings[tok], Posting{Record: i, Frequency: counts[tok]})
		}
	}
	return postings
}
