package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
)

func TestPromptStore_ImplementsInterface(t *testing.T) {
	var _ driven.PromptStore = (*PromptStore)(nil)
}

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".manuals", "prompts"), store.Dir())
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptGenerateScript)
	require.NoError(t, err)

	files := []string{
		"generate_script.txt",
		"debug_error.txt",
		"convert_script.txt",
		"README.md",
	}
	for _, f := range files {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected file %s to exist", f)
	}
}

func TestPromptStore_Load_ReturnsDefaultContent(t *testing.T) {
	tests := []struct {
		name     string
		contains []string
	}{
		{driven.PromptGenerateScript, []string{"{{.task_description}}", "{{.product_version}}"}},
		{driven.PromptDebugError, []string{"{{.error_message}}", "{{.context}}"}},
		{driven.PromptConvertScript, []string{"{{.source_code}}", "{{.target_features}}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewPromptStore(t.TempDir())
			require.NoError(t, err)

			prompt, err := store.Load(tt.name)

			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, prompt, want)
			}
		})
	}
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()

	customContent := "Write a script for {{.task_description}}"
	err := os.WriteFile(filepath.Join(dir, "generate_script.txt"), []byte(customContent), 0600)
	require.NoError(t, err)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptGenerateScript)

	require.NoError(t, err)
	assert.Equal(t, customContent, prompt)
}

func TestPromptStore_Load_FallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, _ = store.Load(driven.PromptDebugError)
	require.NoError(t, os.Remove(filepath.Join(dir, "debug_error.txt")))
	store.Reload()

	prompt, err := store.Load(driven.PromptDebugError)

	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.error_message}}")
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent_prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "nonexistent_prompt")
}

func TestPromptStore_Load_RejectsPathNames(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(filepath.Dir(dir), "escape.txt")
	_ = os.WriteFile(outside, []byte("outside"), 0600)
	t.Cleanup(func() { _ = os.Remove(outside) })

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load("../escape")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPromptStore_Load_ExtraUserPrompt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("  extra  \n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load("extra")

	require.NoError(t, err)
	assert.Equal(t, "extra", prompt)
}

func TestPromptStore_Load_CachesResults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt1, err := store.Load(driven.PromptConvertScript)
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(dir, "convert_script.txt"), []byte("modified content"), 0600)
	require.NoError(t, err)

	prompt2, err := store.Load(driven.PromptConvertScript)
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}

func TestPromptStore_Reload_ClearsCache(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptConvertScript)
	require.NoError(t, err)

	modifiedContent := "port {{.source_code}}"
	err = os.WriteFile(filepath.Join(dir, "convert_script.txt"), []byte(modifiedContent), 0600)
	require.NoError(t, err)

	store.Reload()

	prompt, err := store.Load(driven.PromptConvertScript)
	require.NoError(t, err)
	assert.Equal(t, modifiedContent, prompt)
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)

	errs := make(chan error, goroutines)
	prompts := make(chan string, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			prompt, err := store.Load(driven.PromptGenerateScript)
			if err != nil {
				errs <- err
				return
			}
			prompts <- prompt
		}()
	}

	wg.Wait()
	close(errs)
	close(prompts)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}

	var first string
	for prompt := range prompts {
		if first == "" {
			first = prompt
		} else {
			assert.Equal(t, first, prompt)
		}
	}
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()

	customContent := "pre-existing custom prompt"
	err := os.WriteFile(filepath.Join(dir, "generate_script.txt"), []byte(customContent), 0600)
	require.NoError(t, err)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, _ = store.Load(driven.PromptDebugError)

	data, err := os.ReadFile(filepath.Join(dir, "generate_script.txt"))
	require.NoError(t, err)
	assert.Equal(t, customContent, string(data))
}

func TestPromptStore_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "debug_error.txt"), []byte("\n\n  prompt content  \n\n"), 0600)
	require.NoError(t, err)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptDebugError)
	require.NoError(t, err)

	assert.Equal(t, "prompt content", prompt)
}
