package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads MCP prompt templates from user-editable files on disk.
// Templates are read from a configurable directory with fallback to embedded
// defaults.
//
// Initialisation is lazy: the directory and default files are only written
// on the first Load, never in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts holds the embedded templates, in text/template syntax.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptGenerateScript: `Generate a {{.Product}} automation script for the following task:

**Task**: {{.task_description}}
**Target Version**: {{.product_version}}
**Python Framework**: {{if eq .python_type "IronPython"}}IronPython scripting{{else}}PyMechanical (recommended){{end}}

Please provide:

1. **Complete Python Script**
   - Proper imports and initialisation
   - Error handling and validation
   - Clear comments explaining each step
   - Idiomatic {{.python_type}} usage

2. **Setup Requirements**
   - Required modules and licences
   - Python package dependencies
   - Environment setup instructions

3. **Usage Instructions**
   - How to run the script
   - Expected inputs and outputs
   - Troubleshooting common issues

4. **Code Structure**
   - Main automation logic
   - Helper functions if needed
   - Proper resource cleanup

Follow the {{.Product}} {{.product_version}} API patterns and conventions.`,

	driven.PromptDebugError: `Help diagnose and resolve this {{.Product}} scripting error:

**Error Message**: {{.error_message}}
**Context**: {{.context}}
**Version**: {{.product_version}}

Please provide:

1. **Error Analysis**
   - Likely root cause of the error
   - Common scenarios that trigger it
   - Whether it is version-specific

2. **Solution Steps**
   - Step-by-step resolution
   - Code fixes or workarounds
   - Alternative approaches if needed

3. **Prevention**
   - Practices that avoid this error
   - Error handling patterns
   - Validation checks to add

4. **Related Issues**
   - Similar errors and their fixes
   - Known limitations
   - Version compatibility notes

Include specific code examples for both the immediate fix and longer-term improvements.`,

	driven.PromptConvertScript: `Convert the following IronPython {{.Product}} script to modern CPython using PyMechanical:

**Original IronPython Code**:
` + "```python" + `
{{.source_code}}
` + "```" + `

**Target Features**: {{.target_features}}

Please provide:

1. **Converted CPython Script**
   - Modern PyMechanical syntax
   - Proper initialisation and setup
   - Python 3 conventions

2. **Key Changes Explained**
   - What changed and why
   - New capabilities enabled

3. **Migration Notes**
   - Dependencies to install
   - Environment setup requirements
   - Testing recommendations

Keep the result compatible with {{.Product}} automation requirements.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.manuals/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".manuals", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the template for the given prompt name.
// A user file in the prompt directory takes precedence over the embedded
// default. Names with neither yield domain.ErrNotFound.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// No lock held during I/O.
	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("load prompt %q: %w", name, domain.ErrNotFound)
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Double-check so concurrent loads agree on one value.
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Existing files are user edits and are never overwritten.
	for _, name := range driven.AllPromptNames() {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(defaultPrompts[name]), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) || name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("invalid prompt name: %w", os.ErrNotExist)
	}
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# Manuals Prompts

This directory holds the prompt templates served by ` + "`manuals mcp serve`" + `.

## Files

- ` + "`generate_script.txt`" + ` - Asks for an automation script for a task
- ` + "`debug_error.txt`" + ` - Asks for help diagnosing a scripting error
- ` + "`convert_script.txt`" + ` - Asks for a legacy IronPython script to be ported

## Customisation

Edit any file to change what the prompt says. Changes take effect when the
server restarts.

## Template Fields

Templates use Go text/template syntax. Every prompt argument is available
as a field of the same name, for example ` + "`{{.task_description}}`" + `.
` + "`{{.Product}}`" + ` expands to the configured product name. Missing optional
arguments render as their default value.
`
	return os.WriteFile(path, []byte(content), 0600)
}
