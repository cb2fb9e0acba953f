package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts registers every prompt the prompt service offers.
func (s *Server) registerPrompts() {
	if s.ports.Prompts == nil {
		return
	}

	for _, spec := range s.ports.Prompts.List() {
		args := make([]*mcp.PromptArgument, len(spec.Arguments))
		for i, a := range spec.Arguments {
			args[i] = &mcp.PromptArgument{
				Name:        a.Name,
				Description: a.Description,
				Required:    a.Required,
			}
		}
		s.server.AddPrompt(&mcp.Prompt{
			Name:        spec.Name,
			Description: spec.Description,
			Arguments:   args,
		}, s.handlePrompt)
	}
}

// handlePrompt renders the requested prompt as a single user message.
func (s *Server) handlePrompt(
	ctx context.Context,
	req *mcp.GetPromptRequest,
) (*mcp.GetPromptResult, error) {
	rendered, err := s.ports.Prompts.Render(ctx, req.Params.Name, req.Params.Arguments)
	if err != nil {
		return nil, fmt.Errorf("prompt %s: %w", req.Params.Name, err)
	}

	return &mcp.GetPromptResult{
		Description: rendered.Description,
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: rendered.Text},
		}},
	}, nil
}
