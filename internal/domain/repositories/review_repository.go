package repositories

import (
	"context"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
)

// ReviewRepository provides persistence for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	GetByID(ctx context.Context, id string) (*entities.Review, error)
	ListByResource(ctx context.Context, resourceID string) ([]*entities.Review, error)
	Update(ctx context.Context, review *entities.Review) error
	Delete(ctx context.Context, id string) error
}
