package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Lookup: &mockLookupService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("nil lookup service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingLookupService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search: &mockSearchService{},
			Lookup: &mockLookupService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("search and lookup are enough", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}, Lookup: &mockLookupService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Search:    &mockSearchService{},
			Lookup:    &mockLookupService{},
			Resources: &mockResourceService{},
			Prompts:   &mockPromptService{},
		}
		assert.NoError(t, ports.Validate())
	})
}

func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := s.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestServer_ListsTools(t *testing.T) {
	cs := connect(t, newTestServer(t, &Ports{}))

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, len(res.Tools))
	for i, tool := range res.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		ToolChapterContent,
		ToolCodeExample,
		ToolListChapters,
		ToolListSources,
		ToolSearchDocs,
	}, names)
}

func TestServer_CallSearchTool(t *testing.T) {
	search := &mockSearchService{results: []domain.SearchResult{{
		Record:  &domain.Record{SourceID: "guide.pdf", Ordinal: 3, Label: "Meshing", Body: "mesh"},
		Score:   1.5,
		Snippet: "mesh",
	}}}
	cs := connect(t, newTestServer(t, &Ports{Search: search}))

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      ToolSearchDocs,
		Arguments: map[string]any{"query": "mesh", "max_results": 3},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "guide.pdf (page 3)")
	assert.Equal(t, 3, search.lastQuery.MaxResults)
}

func TestServer_GetPrompt(t *testing.T) {
	prompts := &mockPromptService{
		specs: []domain.PromptSpec{{
			Name:        "generate_script",
			Description: "Generate a script",
			Arguments:   []domain.PromptArgument{{Name: "task_description", Required: true}},
		}},
		rendered: &domain.RenderedPrompt{Description: "Generate a script", Text: "Write it"},
	}
	cs := connect(t, newTestServer(t, &Ports{Prompts: prompts}))

	list, err := cs.ListPrompts(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list.Prompts, 1)
	assert.Equal(t, "generate_script", list.Prompts[0].Name)

	res, err := cs.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name:      "generate_script",
		Arguments: map[string]string{"task_description": "mesh a bracket"},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Write it", text.Text)
	assert.Equal(t, "mesh a bracket", prompts.lastArgs["task_description"])
}

func TestServer_Handler_RateLimited(t *testing.T) {
	s, err := NewServer(&Ports{
		Search: &mockSearchService{},
		Lookup: &mockLookupService{},
	}, WithRateLimit(0.001, 1))
	require.NoError(t, err)

	handler := s.Handler()

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEqual(t, http.StatusTooManyRequests, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestWithRateLimit_Disabled(t *testing.T) {
	s, err := NewServer(&Ports{
		Search: &mockSearchService{},
		Lookup: &mockLookupService{},
	}, WithRateLimit(0, 10))
	require.NoError(t, err)

	assert.Nil(t, s.limiter)
}
