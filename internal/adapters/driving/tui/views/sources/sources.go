// Package sources provides the source and chapter browser for the TUI.
package sources

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
)

// View lists the indexed sources. Opening a source lists its chapters;
// opening a chapter hands it to the reader.
type View struct {
	styles        *styles.Styles
	lookupService driving.LookupService
	ctx           context.Context

	sources        []domain.SourceInfo
	selectedSource int

	// source is set while its chapters are shown.
	source          string
	chapters        []domain.ChapterRange
	selectedChapter int

	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

// NewView creates a new sources view.
func NewView(s *styles.Styles, lookupService driving.LookupService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		lookupService: lookupService,
		ctx:           context.Background(),
	}
}

// WithContext sets the context used for lookups.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init returns to the source list and loads it.
func (v *View) Init() tea.Cmd {
	v.source = ""
	v.chapters = nil
	v.loading = true
	return LoadSources(v.ctx, v.lookupService)
}

// LoadSources returns a command that summarises the corpus.
func LoadSources(ctx context.Context, lookup driving.LookupService) tea.Cmd {
	return func() tea.Msg {
		if lookup == nil {
			return messages.SourcesLoaded{Err: fmt.Errorf("lookup service not available")}
		}
		infos, err := lookup.Sources(ctx)
		return messages.SourcesLoaded{Sources: infos, Err: err}
	}
}

func (v *View) loadChapters(sourceID string) tea.Cmd {
	lookup, ctx := v.lookupService, v.ctx
	return func() tea.Msg {
		if lookup == nil {
			return messages.ChaptersLoaded{SourceID: sourceID, Err: fmt.Errorf("lookup service not available")}
		}
		ranges, err := lookup.ChapterRanges(ctx, sourceID)
		return messages.ChaptersLoaded{SourceID: sourceID, Ranges: ranges, Err: err}
	}
}

// Update handles messages for the sources view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SourcesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.sources = msg.Sources
			if v.selectedSource >= len(v.sources) {
				v.selectedSource = 0
			}
		}
		return v, nil

	case messages.ChaptersLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.source = msg.SourceID
			v.chapters = msg.Ranges
			v.selectedChapter = 0
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.source != "" {
		return v.handleChapterKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		if v.selectedSource > 0 {
			v.selectedSource--
		}
	case "down", "j":
		if v.selectedSource < len(v.sources)-1 {
			v.selectedSource++
		}
	case "enter":
		if src, ok := v.current(); ok {
			v.loading = true
			return v, v.loadChapters(src.ID)
		}
	case "/":
		if src, ok := v.current(); ok {
			scoped := messages.SearchScoped{SourceID: src.ID}
			return v, func() tea.Msg { return scoped }
		}
	case "r":
		v.loading = true
		return v, LoadSources(v.ctx, v.lookupService)
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) handleChapterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selectedChapter > 0 {
			v.selectedChapter--
		}
	case "down", "j":
		if v.selectedChapter < len(v.chapters)-1 {
			v.selectedChapter++
		}
	case "enter":
		if v.selectedChapter < len(v.chapters) {
			sel := messages.ChapterSelected{SourceID: v.source, Label: v.chapters[v.selectedChapter].Label}
			return v, func() tea.Msg { return sel }
		}
	case "/":
		scoped := messages.SearchScoped{SourceID: v.source}
		return v, func() tea.Msg { return scoped }
	case "esc":
		v.source = ""
		v.chapters = nil
	}
	return v, nil
}

func (v *View) current() (domain.SourceInfo, bool) {
	if v.selectedSource < 0 || v.selectedSource >= len(v.sources) {
		return domain.SourceInfo{}, false
	}
	return v.sources[v.selectedSource], true
}

// View renders the sources view.
func (v *View) View() string {
	var b strings.Builder

	title := "Sources"
	if v.source != "" {
		title = v.source
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.source != "":
		v.renderChapters(&b)
	case len(v.sources) == 0:
		b.WriteString(v.styles.Muted.Render("No sources indexed. Run 'manuals extract' first."))
	default:
		v.renderSources(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderSources(b *strings.Builder) {
	for i, src := range v.sources {
		text := fmt.Sprintf("%-32s %5d records %4d chapters", src.ID, src.RecordCount, src.ChapterCount)
		if i == v.selectedSource {
			b.WriteString(v.styles.Selected.Render("> " + text))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + text))
		}
		b.WriteString("\n")
	}
}

func (v *View) renderChapters(b *strings.Builder) {
	if len(v.chapters) == 0 {
		b.WriteString(v.styles.Muted.Render("No chapters detected."))
		return
	}

	visible := v.height - 6
	if visible < 1 {
		visible = len(v.chapters)
	}
	start := 0
	if v.selectedChapter >= visible {
		start = v.selectedChapter - visible + 1
	}
	end := start + visible
	if end > len(v.chapters) {
		end = len(v.chapters)
	}

	for i := start; i < end; i++ {
		r := v.chapters[i]
		pages := fmt.Sprintf("%4d-%-4d", r.Start, r.End)
		if i == v.selectedChapter {
			b.WriteString(v.styles.Selected.Render("> " + pages + " " + r.Label))
		} else {
			b.WriteString(v.styles.Muted.Render("  "+pages+" ") + v.styles.Normal.Render(r.Label))
		}
		b.WriteString("\n")
	}
}

func (v *View) renderHelp() string {
	if v.source != "" {
		return v.styles.Help.Render("[enter] read  [/] search source  [esc] sources")
	}
	return v.styles.Help.Render("[enter] chapters  [/] search source  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Sources returns the loaded source summaries.
func (v *View) Sources() []domain.SourceInfo {
	return v.sources
}

// Source returns the source whose chapters are shown, or "".
func (v *View) Source() string {
	return v.source
}

// Chapters returns the chapter ranges shown.
func (v *View) Chapters() []domain.ChapterRange {
	return v.chapters
}

// SelectedIndex returns the selected source, or chapter when one is open.
func (v *View) SelectedIndex() int {
	if v.source != "" {
		return v.selectedChapter
	}
	return v.selectedSource
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
