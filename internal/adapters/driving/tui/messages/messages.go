// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/manuals/internal/core/domain"
)

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewSources lists sources and their chapters.
	ViewSources
	// ViewReader shows the text of a chapter or record.
	ViewReader
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewSources:
		return "sources"
	case ViewReader:
		return "reader"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SourcesLoaded carries the source summaries of the live corpus.
type SourcesLoaded struct {
	Sources []domain.SourceInfo
	Err     error
}

// ChaptersLoaded carries the chapter ranges of one source.
type ChaptersLoaded struct {
	SourceID string
	Ranges   []domain.ChapterRange
	Err      error
}

// ChapterSelected asks for a chapter to be opened in the reader.
type ChapterSelected struct {
	SourceID string
	Label    string
}

// RecordSelected asks for a single record to be opened in the reader.
type RecordSelected struct {
	SourceID string
	Ordinal  int
}

// ContentLoaded carries the text shown by the reader. Back is the view the
// reader returns to.
type ContentLoaded struct {
	Title string
	Body  string
	Back  ViewType
	Err   error
}

// SearchScoped opens the search view restricted to one source.
type SearchScoped struct {
	SourceID string
}
