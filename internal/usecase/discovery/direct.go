package discovery

import (
	"context"
	"log"

	"github.com/bookmuse/bookmuse-api/internal/domain/models"
	"github.com/bookmuse/bookmuse-api/internal/domain/repository"
)

// DirectSearcher answers a free-text query with a single filtered catalog
// search: no prioritized title lookups, no merging.
type DirectSearcher struct {
	extractor *Extractor
	catalog   repository.CatalogClient
}

// NewDirectSearcher creates a direct search pipeline.
func NewDirectSearcher(extractor *Extractor, catalog repository.CatalogClient) *DirectSearcher {
	return &DirectSearcher{
		extractor: extractor,
		catalog:   catalog,
	}
}

// Search extracts filters from the query and returns the catalog results
// verbatim.
func (d *DirectSearcher) Search(ctx context.Context, query string) ([]models.Book, error) {
	filter := d.extractor.Extract(ctx, query)
	log.Printf("[Direct] Extracted filters for direct search: %+v", filter)

	return d.catalog.Search(ctx, filter, genericSearchCap)
}
