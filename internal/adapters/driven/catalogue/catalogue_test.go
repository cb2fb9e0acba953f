package catalogue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNew_Builtin(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)

	resources := c.Resources()
	require.Len(t, resources, 8)
	assert.Equal(t, "ansys://workbench/overview", resources[0].URI)
	assert.Equal(t, "ansys://api/reference", resources[7].URI)
	for _, r := range resources {
		assert.NotEmpty(t, r.Name, r.URI)
		assert.NotEmpty(t, r.Text, r.URI)
		assert.Equal(t, "text/markdown", r.MIMEType, r.URI)
	}
}

func TestNew_ExtraReplacesAndAppends(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "# Site notes\n")
	path := writeFile(t, dir, "extra.yaml", `
resources:
  - uri: ansys://api/reference
    name: Local API Reference
    text: local text
  - uri: local://notes
    name: Site notes
    file: notes.md
  - uri: local://plain
    name: Plain
    mime_type: text/plain
    text: hello
`)

	c, err := New(path)
	require.NoError(t, err)

	resources := c.Resources()
	require.Len(t, resources, 10)
	assert.Equal(t, "Local API Reference", resources[7].Name)
	assert.Equal(t, "local text", resources[7].Text)
	assert.Equal(t, "local://notes", resources[8].URI)
	assert.Equal(t, "# Site notes\n", resources[8].Text)
	assert.Equal(t, "text/markdown", resources[8].MIMEType)
	assert.Equal(t, "text/plain", resources[9].MIMEType)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"malformed yaml", "resources: [", domain.ErrInvalidInput},
		{"missing uri", "resources:\n  - name: x\n", domain.ErrInvalidInput},
		{"missing name", "resources:\n  - uri: a://b\n", domain.ErrInvalidInput},
		{"duplicate uri", "resources:\n  - uri: a://b\n    name: x\n  - uri: a://b\n    name: y\n", domain.ErrInvalidInput},
		{"missing text file", "resources:\n  - uri: a://b\n    name: x\n    file: nope.md\n", domain.ErrSourceUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "extra.yaml", tt.content)

			_, err := New(path)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_MissingExtraFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
}

func TestResources_ReturnsCopy(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)

	first := c.Resources()
	first[0].Name = "changed"

	assert.NotEqual(t, "changed", c.Resources()[0].Name)
}
