package menu

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/manuals/internal/core/domain"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewView(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v)
	assert.Equal(t, 0, v.Selected())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Navigation(t *testing.T) {
	v := NewView(nil)

	v, _ = v.Update(keyRune('k'))
	assert.Equal(t, 0, v.Selected())

	v, _ = v.Update(keyRune('j'))
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, v.Selected())

	for i := 0; i < 5; i++ {
		v, _ = v.Update(keyRune('j'))
	}
	assert.Equal(t, 3, v.Selected())
}

func TestView_EnterChangesView(t *testing.T) {
	tests := []struct {
		name  string
		moves int
		want  messages.ViewType
	}{
		{"search", 0, messages.ViewSearch},
		{"sources", 1, messages.ViewSources},
		{"help", 2, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(nil)
			for i := 0; i < tt.moves; i++ {
				v, _ = v.Update(keyRune('j'))
			}

			_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_SlashOpensSearch(t *testing.T) {
	v := NewView(nil)

	_, cmd := v.Update(keyRune('/'))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
}

func TestView_Quit(t *testing.T) {
	v := NewView(nil)

	_, cmd := v.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	for i := 0; i < 3; i++ {
		v, _ = v.Update(keyRune('j'))
	}
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Summary(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	v, _ = v.Update(messages.SourcesLoaded{Sources: make([]domain.SourceInfo, 3)})
	assert.Equal(t, "3 sources indexed", v.Summary())
	assert.Contains(t, v.View(), "3 sources indexed")

	v, _ = v.Update(messages.SourcesLoaded{Sources: make([]domain.SourceInfo, 1)})
	assert.Equal(t, "1 source indexed", v.Summary())

	v, _ = v.Update(messages.SourcesLoaded{Err: errors.New("no corpus")})
	assert.Contains(t, v.Summary(), "manuals extract")
}

func TestView_Render(t *testing.T) {
	v := NewView(nil)
	v, _ = v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := v.View()

	assert.Contains(t, view, "Manuals")
	assert.Contains(t, view, "> ")
	for _, label := range []string{"Search", "Sources", "Help", "Quit"} {
		assert.Contains(t, view, label)
	}
}
