package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/services"
)

// sourcesPrefix marks per-source resources, which are served by templates.
const sourcesPrefix = "docs://sources/"

// registerResources registers all resource handlers with the MCP server.
// Static entries are listed once at startup; per-source views are served
// through templates so they follow corpus reloads.
func (s *Server) registerResources() {
	if s.ports.Resources == nil {
		return
	}

	for _, r := range s.ports.Resources.List(context.Background()) {
		if strings.HasPrefix(r.URI, sourcesPrefix) {
			continue
		}
		s.server.AddResource(&mcp.Resource{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			MIMEType:    r.MIMEType,
		}, s.handleResource)
	}

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: services.URITemplateChapters,
		Name:        "source-chapters",
		Description: "Chapter ranges of a source",
		MIMEType:    "application/json",
	}, s.handleResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: services.URITemplatePage,
		Name:        "source-page",
		Description: "Text of one page or section of a source",
		MIMEType:    "text/plain",
	}, s.handleResource)
}

// handleResource reads any resource through the resource service.
func (s *Server) handleResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI

	res, err := s.ports.Resources.Read(ctx, uri)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("reading resource %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: res.MIMEType,
			Text:     res.Text,
		}},
	}, nil
}
