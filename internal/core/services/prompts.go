package services

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/core/ports/driving"
	"github.com/custodia-labs/manuals/internal/logger"
)

// Ensure PromptService implements the interface.
var _ driving.PromptService = (*PromptService)(nil)

// PromptSpecs returns the prompt definitions served over MCP.
func PromptSpecs(product string) []domain.PromptSpec {
	return []domain.PromptSpec{
		{
			Name:        driven.PromptGenerateScript,
			Description: fmt.Sprintf("Generate a %s automation script for a task", product),
			Arguments: []domain.PromptArgument{
				{Name: "task_description", Description: "What the script should do", Required: true},
				{Name: "product_version", Description: "Product release, e.g. 2025 R1", Default: "2025 R1"},
				{Name: "python_type", Description: "CPython or IronPython", Default: "CPython"},
			},
		},
		{
			Name:        driven.PromptDebugError,
			Description: fmt.Sprintf("Diagnose a %s scripting error", product),
			Arguments: []domain.PromptArgument{
				{Name: "error_message", Description: "The error text or traceback", Required: true},
				{Name: "context", Description: "What the script was doing when it failed"},
				{Name: "product_version", Description: "Product release, e.g. 2025 R1", Default: "2025 R1"},
			},
		},
		{
			Name:        driven.PromptConvertScript,
			Description: "Convert a legacy IronPython script to CPython",
			Arguments: []domain.PromptArgument{
				{Name: "source_code", Description: "The script to convert", Required: true},
				{Name: "target_features", Description: "Extra features to add while converting", Default: "basic conversion"},
			},
		},
	}
}

// PromptService renders prompt templates loaded from a PromptStore.
type PromptService struct {
	store   driven.PromptStore
	product string
	specs   []domain.PromptSpec
}

// NewPromptService creates a prompt service for product.
func NewPromptService(store driven.PromptStore, product string) *PromptService {
	return &PromptService{store: store, product: product, specs: PromptSpecs(product)}
}

// List returns every prompt definition.
func (s *PromptService) List() []domain.PromptSpec {
	return append([]domain.PromptSpec(nil), s.specs...)
}

// Render fills the named template with args. Templates see each argument
// as a field plus .Product.
func (s *PromptService) Render(_ context.Context, name string, args map[string]string) (*domain.RenderedPrompt, error) {
	spec, ok := s.spec(name)
	if !ok {
		return nil, fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}
	values, err := spec.Resolve(args)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, fmt.Errorf("prompt %q: no prompt store: %w", name, domain.ErrNotFound)
	}

	text, err := s.store.Load(name)
	if err != nil {
		return nil, fmt.Errorf("load prompt %q: %w", name, err)
	}
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt %q: %w", name, err)
	}

	data := make(map[string]string, len(values)+1)
	for k, v := range values {
		data[k] = v
	}
	data["Product"] = s.product

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return nil, fmt.Errorf("render prompt %q: %w", name, err)
	}
	logger.Debug("Rendered prompt %s (%d bytes)", name, b.Len())

	return &domain.RenderedPrompt{Description: spec.Description, Text: strings.TrimSpace(b.String())}, nil
}

func (s *PromptService) spec(name string) (domain.PromptSpec, bool) {
	for _, sp := range s.specs {
		if sp.Name == name {
			return sp, true
		}
	}
	return domain.PromptSpec{}, false
}
