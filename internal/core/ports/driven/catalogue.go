package driven

import "github.com/custodia-labs/manuals/internal/core/domain"

// ResourceCatalogue supplies static reference resources.
type ResourceCatalogue interface {
	// Resources returns every static resource in presentation order.
	Resources() []domain.Resource
}
