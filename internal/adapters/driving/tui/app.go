package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/views/reader"
	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/views/sources"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView    *menu.View
	searchView  *search.View
	sourcesView *sources.View
	readerView  *reader.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingSearchService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s),
		searchView:  search.NewView(s, km, ports.Search),
		sourcesView: sources.NewView(s, ports.Lookup),
		readerView:  reader.NewView(s, km),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context used for every service call.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.sourcesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("manuals"),
		sources.LoadSources(a.ctx, a.ports.Lookup),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.routeKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.Reset("")
			return a, a.searchView.Init()
		case messages.ViewSources:
			return a, a.sourcesView.Init()
		case messages.ViewMenu:
			return a, sources.LoadSources(a.ctx, a.ports.Lookup)
		case messages.ViewReader, messages.ViewHelp:
		}
		return a, nil

	case messages.SearchScoped:
		a.currentView = messages.ViewSearch
		a.searchView.Reset(msg.SourceID)
		return a, a.searchView.Init()

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.SourcesLoaded:
		a.menuView, _ = a.menuView.Update(msg)
		a.sourcesView, cmd = a.sourcesView.Update(msg)
		return a, cmd

	case messages.ChaptersLoaded:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
		return a, cmd

	case messages.ChapterSelected:
		a.readerView.Loading(a.currentView)
		back := a.currentView
		a.currentView = messages.ViewReader
		return a, a.loadChapter(msg, back)

	case messages.RecordSelected:
		a.readerView.Loading(a.currentView)
		back := a.currentView
		a.currentView = messages.ViewReader
		return a, a.loadRecord(msg, back)

	case messages.ContentLoaded:
		a.err = msg.Err
		a.readerView, cmd = a.readerView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewReader:
			a.readerView, cmd = a.readerView.Update(msg)
		case messages.ViewMenu, messages.ViewSources, messages.ViewHelp:
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	if a.currentView == messages.ViewSearch {
		a.searchView, cmd = a.searchView.Update(msg)
	}
	return a, cmd
}

// routeKey forwards a key press to the active view.
func (a *App) routeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewSources:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
	case messages.ViewReader:
		a.readerView, cmd = a.readerView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

func (a *App) loadChapter(sel messages.ChapterSelected, back messages.ViewType) tea.Cmd {
	lookup, ctx := a.ports.Lookup, a.ctx
	return func() tea.Msg {
		ch, err := lookup.GetChapter(ctx, sel.SourceID, sel.Label)
		if err != nil {
			return messages.ContentLoaded{Back: back, Err: err}
		}
		var pages []string
		for _, r := range ch.Ranges {
			pages = append(pages, fmt.Sprintf("%d-%d", r.Start, r.End))
		}
		return messages.ContentLoaded{
			Title: fmt.Sprintf("%s: %s (pages %s)", ch.SourceID, ch.Label, strings.Join(pages, ", ")),
			Body:  ch.Body,
			Back:  back,
		}
	}
}

func (a *App) loadRecord(sel messages.RecordSelected, back messages.ViewType) tea.Cmd {
	lookup, ctx := a.ports.Lookup, a.ctx
	return func() tea.Msg {
		rec, err := lookup.Record(ctx, sel.SourceID, sel.Ordinal)
		if err != nil {
			return messages.ContentLoaded{Back: back, Err: err}
		}
		title := fmt.Sprintf("%s p.%d", rec.SourceID, rec.Ordinal)
		if rec.HasLabel() {
			title += " (" + rec.Label + ")"
		}
		return messages.ContentLoaded{Title: title, Body: rec.Body, Back: back}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewSources:
		return a.sourcesView.View()
	case messages.ViewReader:
		return a.readerView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

// viewHelp lists every keybinding group.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("Sources: [enter] chapters  [/] search within a source"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.sourcesView.SetDimensions(width, height)
	a.readerView.SetDimensions(width, height)
}
