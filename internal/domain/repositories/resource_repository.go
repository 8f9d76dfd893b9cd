package repositories

import (
	"context"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
)

// ResourceFilter is the user-supplied search filter set. Empty fields are
// omitted from the predicate entirely, never treated as "match nothing".
type ResourceFilter struct {
	Category    string
	Description string
	ZipCode     string
	AgeRange    []string
	Limit       int
	Offset      int
}

// ResourceRepository provides persistence for resources.
type ResourceRepository interface {
	Create(ctx context.Context, resource *entities.Resource) error
	GetByID(ctx context.Context, id string) (*entities.Resource, error)
	Update(ctx context.Context, resource *entities.Resource) error
	// Delete soft-deletes; favorites, ratings and reviews are retained.
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter ResourceFilter) ([]*entities.Resource, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Resource, error)
}

// ResourceSearchRepository is the full-text index over resource name and
// description.
type ResourceSearchRepository interface {
	InitSchema(ctx context.Context) error
	Index(ctx context.Context, resource *entities.Resource) error
	Delete(ctx context.Context, id string) error
	// Search returns matching resource IDs ranked by relevance.
	Search(ctx context.Context, query string, filter ResourceFilter) ([]string, error)
}
