package reader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manuals/internal/adapters/driving/tui/messages"
)

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newLoaded(body string) *View {
	v := NewView(nil, nil)
	v.SetDimensions(80, 16) // ten visible lines
	v.Loading(messages.ViewSearch)
	v, _ = v.Update(messages.ContentLoaded{Title: "guide.pdf: Meshing", Body: body, Back: messages.ViewSearch})
	return v
}

func TestView_Loading(t *testing.T) {
	v := NewView(nil, nil)
	v.Loading(messages.ViewSources)

	assert.Contains(t, v.View(), "Loading...")
}

func TestView_RendersContent(t *testing.T) {
	v := newLoaded("Meshing controls\nelement size")

	view := v.View()

	assert.Equal(t, "guide.pdf: Meshing", v.Title())
	assert.Contains(t, view, "guide.pdf: Meshing")
	assert.Contains(t, view, "element size")
	assert.NotContains(t, view, "Line 1-")
}

func TestView_Empty(t *testing.T) {
	v := newLoaded("")

	assert.Contains(t, v.View(), "(No content)")
}

func TestView_Error(t *testing.T) {
	v := NewView(nil, nil)

	v, _ = v.Update(messages.ContentLoaded{Err: errors.New("chapter not found"), Back: messages.ViewSources})

	assert.Contains(t, v.View(), "Error: chapter not found")
}

func TestView_Scrolling(t *testing.T) {
	v := newLoaded(numberedLines(30))

	tests := []struct {
		key  string
		want int
	}{
		{"j", 1},
		{"k", 0},
		{"k", 0},
		{"pgdown", 10},
		{"G", 20},
		{"j", 20},
		{"pgup", 10},
		{"g", 0},
	}
	for _, tt := range tests {
		v, _ = v.Update(keyMsg(tt.key))
		require.Equal(t, tt.want, v.ScrollOffset(), "after %q", tt.key)
	}

	assert.Contains(t, v.View(), "Line 1-10 of 30")
}

func TestView_WrapsLongLines(t *testing.T) {
	v := newLoaded(strings.Repeat("é", 100))

	assert.Len(t, v.lines, 2)
	assert.Len(t, []rune(v.lines[0]), 76)
}

func TestView_EscReturnsToOrigin(t *testing.T) {
	v := newLoaded("text")

	_, cmd := v.Update(keyMsg("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
}

func TestView_ResizeClampsScroll(t *testing.T) {
	v := newLoaded(numberedLines(30))
	v, _ = v.Update(keyMsg("G"))

	v.SetDimensions(80, 40)

	assert.Equal(t, 0, v.ScrollOffset())
}
