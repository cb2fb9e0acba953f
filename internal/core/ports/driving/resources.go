package driving

import (
	"context"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// ResourceService lists and reads reference resources.
type ResourceService interface {
	// List returns every static and corpus-derived resource.
	List(ctx context.Context) []domain.Resource

	// Read returns the resource at uri, or ErrNotFound.
	Read(ctx context.Context, uri string) (*domain.Resource, error)
}
