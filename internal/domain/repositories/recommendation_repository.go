package repositories

import (
	"context"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
)

// RecommendationRepository provides persistence for resource
// recommendations.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *entities.ResourceRecommendation) error
	GetByID(ctx context.Context, id string) (*entities.ResourceRecommendation, error)
	// List returns recommendations, optionally filtered by status
	// (empty status means all).
	List(ctx context.Context, status entities.RecommendationStatus) ([]*entities.ResourceRecommendation, error)
	UpdateStatus(ctx context.Context, id string, status entities.RecommendationStatus) (*entities.ResourceRecommendation, error)
}
