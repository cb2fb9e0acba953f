package driving

import (
	"context"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// PromptService renders parameterised prompts.
type PromptService interface {
	// List returns every prompt definition.
	List() []domain.PromptSpec

	// Render fills the named template.
	// Unknown names return ErrNotFound, missing required arguments ErrInvalidInput.
	Render(ctx context.Context, name string, args map[string]string) (*domain.RenderedPrompt, error)
}
