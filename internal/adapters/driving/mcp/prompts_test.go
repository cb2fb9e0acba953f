package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

func TestServer_handlePrompt(t *testing.T) {
	ctx := context.Background()

	t.Run("renders user message", func(t *testing.T) {
		prompts := &mockPromptService{rendered: &domain.RenderedPrompt{Description: "Debug", Text: "Explain the error"}}
		server := newTestServer(t, &Ports{Prompts: prompts})

		res, err := server.handlePrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{
			Name:      "debug_error",
			Arguments: map[string]string{"error_message": "boom"},
		}})

		require.NoError(t, err)
		assert.Equal(t, "Debug", res.Description)
		require.Len(t, res.Messages, 1)
		assert.Equal(t, mcp.Role("user"), res.Messages[0].Role)
		text, ok := res.Messages[0].Content.(*mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, "Explain the error", text.Text)
		assert.Equal(t, "boom", prompts.lastArgs["error_message"])
	})

	t.Run("missing argument", func(t *testing.T) {
		prompts := &mockPromptService{err: domain.ErrInvalidInput}
		server := newTestServer(t, &Ports{Prompts: prompts})

		_, err := server.handlePrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{Name: "debug_error"}})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
