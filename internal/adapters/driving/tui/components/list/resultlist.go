// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/manuals/internal/core/domain"
)

// linesPerResult is the most lines one result renders to.
const linesPerResult = 3

// ResultList displays ranked search results. Each entry shows the page, its
// score, the chapter when known and the snippet.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 10}
}

// Update moves the selection on arrow and j/k keys.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	start, end := r.window()
	var b strings.Builder
	b.WriteString(r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))))
	b.WriteString("\n\n")
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(r.renderResult(i))
	}
	return b.String()
}

// window returns the slice bounds of results that fit the height.
func (r *ResultList) window() (int, int) {
	visible := max((r.height-4)/linesPerResult, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	return start, min(start+visible, len(r.results))
}

func (r *ResultList) renderResult(index int) string {
	result := &r.results[index]
	titleWidth := max(r.width-20, 10)
	title := fmt.Sprintf("%-*s", titleWidth, truncate(Title(result), titleWidth))
	score := fmt.Sprintf("%.2f", result.Score)

	var lines []string
	if index == r.selected {
		lines = append(lines, r.styles.Selected.Render("> "+title+"  "+score))
	} else {
		lines = append(lines, r.styles.Normal.Render("  "+title+"  ")+r.styles.Muted.Render(score))
	}
	if result.Record != nil && result.Record.HasLabel() {
		lines = append(lines, r.styles.Subtitle.Render("    "+result.Record.Label))
	}
	lines = append(lines, r.styles.Muted.Render("    "+truncate(result.Snippet, max(r.width-6, 20))))
	return strings.Join(lines, "\n")
}

// Title names the record a result points at, e.g. "guide.pdf p.12".
func Title(result *domain.SearchResult) string {
	if result == nil || result.Record == nil {
		return "(unknown)"
	}
	return fmt.Sprintf("%s p.%d", result.Record.SourceID, result.Record.Ordinal)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// SetResults replaces the results and selects the first.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected selects index when it is in range.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
