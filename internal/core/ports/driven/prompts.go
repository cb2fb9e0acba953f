package driven

// PromptStore provides access to prompt templates served over MCP.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the template text for the given name.
	// Returns ErrNotFound when neither a user file nor a default exists.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names.
// Templates use Go text/template syntax with the prompt arguments as fields.
const (
	// PromptGenerateScript asks for an automation script for a task.
	PromptGenerateScript = "generate_script"

	// PromptDebugError asks for help diagnosing an error message.
	PromptDebugError = "debug_error"

	// PromptConvertScript asks for a legacy script to be ported.
	PromptConvertScript = "convert_script"
)

// AllPromptNames lists the well-known prompts in presentation order.
func AllPromptNames() []string {
	return []string{PromptGenerateScript, PromptDebugError, PromptConvertScript}
}
