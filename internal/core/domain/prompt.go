package domain

import "fmt"

// PromptArgument describes one prompt parameter.
type PromptArgument struct {
	Name        string
	Description string
	Required    bool

	// Default is used when an optional argument is omitted.
	Default string
}

// PromptSpec describes a parameterised prompt template.
type PromptSpec struct {
	Name        string
	Description string
	Arguments   []PromptArgument
}

// Resolve fills defaults and checks required arguments.
// Unknown arguments are dropped.
func (p PromptSpec) Resolve(args map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(p.Arguments))
	for _, a := range p.Arguments {
		v, ok := args[a.Name]
		if !ok || v == "" {
			if a.Required {
				return nil, fmt.Errorf("prompt %s: argument %q is required: %w", p.Name, a.Name, ErrInvalidInput)
			}
			v = a.Default
		}
		out[a.Name] = v
	}
	return out, nil
}

// RenderedPrompt is a prompt template filled with arguments.
type RenderedPrompt struct {
	Description string
	Text        string
}
