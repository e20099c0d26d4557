package repository

import (
	"context"

	"github.com/bookmuse/bookmuse-api/internal/domain/models"
)

// CatalogClient defines the interface for searching the external book
// catalog. Implementations absorb remote failures: a transport or parse error
// yields an empty slice and a nil error, never an error the pipelines have to
// branch on.
type CatalogClient interface {
	Search(ctx context.Context, filter models.SearchFilter, maxResults int) ([]models.Book, error)
}
