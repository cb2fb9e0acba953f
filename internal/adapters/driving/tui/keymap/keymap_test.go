package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Keys(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"search", km.Search, []string{"enter"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"page up", km.PageUp, []string{"pgup", "ctrl+u"}},
		{"page down", km.PageDown, []string{"pgdown", "ctrl+d"}},
		{"top", km.Top, []string{"home", "g"}},
		{"bottom", km.Bottom, []string{"end", "G"}},
		{"open", km.Open, []string{"enter"}},
		{"new search", km.NewSearch, []string{"n"}},
		{"chapter", km.Chapter, []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Key)
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []key.Binding{km.Quit, km.Help}, km.ShortHelp())
	assert.Equal(t, []key.Binding{km.NewSearch, km.Open, km.Chapter, km.Back}, km.ResultsHelp())
	assert.Len(t, km.ReaderHelp(), 6)

	full := km.FullHelp()
	require.Len(t, full, 3)
	assert.Len(t, full[0], 6)
	assert.Len(t, full[1], 4)
	assert.Len(t, full[2], 3)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("G", km.Bottom))

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.Up))
	assert.False(t, Matches("g", km.Bottom))
}

func TestHelpLine(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, "[q] quit  [?] help", HelpLine(km.ShortHelp()))
	assert.Empty(t, HelpLine(nil))
}
