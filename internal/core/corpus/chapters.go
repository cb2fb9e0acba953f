package corpus

import "github.com/custodia-labs/manuals/internal/core/domain"

// BuildChapterRanges derives chapter ranges for one source. records must
// belong to a single source and be sorted by ordinal.
//
// A present label that differs from the current range's label opens a new
// range. An absent label extends the current range. Records before the
// first label form a range with an empty label.
func BuildChapterRanges(records []domain.Record) []domain.ChapterRange {
	var ranges []domain.ChapterRange
	for _, r := range records {
		n := len(ranges)
		switch {
		case n == 0:
			ranges = append(ranges, domain.ChapterRange{Label: r.Label, Start: r.Ordinal, End: r.Ordinal})
		case !r.HasLabel() || r.Label == ranges[n-1].Label:
			ranges[n-1].End = r.Ordinal
		default:
			ranges = append(ranges, domain.ChapterRange{Label: r.Label, Start: r.Ordinal, End: r.Ordinal})
		}
	}
	return ranges
}
