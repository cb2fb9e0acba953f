package pdf

import (
	"sort"
	"unicode"

	"github.com/custodia-labs/manuals/internal/extractors/heading"
)

const (
	// headingSizeRatio is how much larger than the median row a heading must be.
	headingSizeRatio = 1.25

	// minRowsForFontCue avoids treating a lone row as its own median.
	minRowsForFontCue = 3
)

// pageLabel detects the chapter label of a page: first the font-size cue,
// then the leading-line pattern. Empty means no label.
func pageLabel(p Page) string {
	if label := labelFromRows(p.Rows); label != "" {
		return label
	}
	if label, ok := heading.FromLeadingLine(p.Text); ok {
		return label
	}
	return ""
}

// labelFromRows returns the topmost row in the upper third of the page whose
// font size is at least headingSizeRatio times the median row size.
func labelFromRows(rows []Row) string {
	if len(rows) < minRowsForFontCue {
		return ""
	}

	sizes := make([]float64, 0, len(rows))
	minY, maxY := rows[0].Y, rows[0].Y
	for _, r := range rows {
		sizes = append(sizes, r.FontSize)
		minY = min(minY, r.Y)
		maxY = max(maxY, r.Y)
	}
	median := medianOf(sizes)
	if median <= 0 {
		return ""
	}
	topThird := maxY - (maxY-minY)/3

	ordered := make([]Row, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Y > ordered[j].Y })

	for _, r := range ordered {
		if r.Y < topThird {
			break
		}
		if r.FontSize < median*headingSizeRatio {
			continue
		}
		label := heading.Clean(r.Text)
		if hasLetter(label) {
			return heading.Truncate(label)
		}
	}
	return ""
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
