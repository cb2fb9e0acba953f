package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	want := []string{"search", "example", "sources", "chapters", "chapter", "page", "extract", "mcp", "tui", "config", "version"}

	var got []string
	for _, c := range rootCmd.Commands() {
		got = append(got, c.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name)
	}
}

func TestResolveConfigDir(t *testing.T) {
	t.Cleanup(func() { configDir = "" })

	configDir = "/from/flag"
	t.Setenv("MANUALS_CONFIG_DIR", "/from/env")
	assert.Equal(t, "/from/flag", resolveConfigDir())

	configDir = ""
	assert.Equal(t, "/from/env", resolveConfigDir())

	t.Setenv("MANUALS_CONFIG_DIR", "")
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ".manuals"), resolveConfigDir())
}

func TestMCPServeCmd_Flags(t *testing.T) {
	port := mcpServeCmd.Flags().Lookup("port")
	if assert.NotNil(t, port) {
		assert.Equal(t, "p", port.Shorthand)
		assert.Equal(t, "0", port.DefValue)
	}
	assert.NotNil(t, mcpServeCmd.Flags().Lookup("watch"))
}
