package services

import (
	"context"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

// RatingSummary is the aggregate view returned after every rating read or
// mutation. UserRating is nil for anonymous callers or users without a vote.
type RatingSummary struct {
	Upvotes            int  `json:"upvotes"`
	Downvotes          int  `json:"downvotes"`
	ApprovalPercentage int  `json:"approvalPercentage"`
	UserRating         *int `json:"userRating,omitempty"`
}

// FavoriteSummary is the favorite state for one (user, resource) pair.
// Anonymous callers always see isFavorited=false.
type FavoriteSummary struct {
	IsFavorited   bool `json:"isFavorited"`
	FavoriteCount int  `json:"favoriteCount"`
}

// EngagementService maintains per-user ratings and favorites and their
// resource-level aggregates.
type EngagementService struct {
	ratings      repositories.RatingRepository
	favorites    repositories.FavoriteRepository
	resourceRepo repositories.ResourceRepository
}

// NewEngagementService creates a new engagement service
func NewEngagementService(ratings repositories.RatingRepository, favorites repositories.FavoriteRepository, resourceRepo repositories.ResourceRepository) *EngagementService {
	return &EngagementService{
		ratings:      ratings,
		favorites:    favorites,
		resourceRepo: resourceRepo,
	}
}

// SubmitRating applies a vote for the user. A nil value clears any existing
// vote; +1 and -1 upsert. Any other value is rejected. The returned summary
// reflects the recomputed aggregate.
func (s *EngagementService) SubmitRating(ctx context.Context, userID, resourceID string, value *int) (RatingSummary, error) {
	if _, err := s.resourceRepo.GetByID(ctx, resourceID); err != nil {
		return RatingSummary{}, err
	}

	var (
		tally entities.RatingTally
		err   error
	)
	if value == nil {
		tally, err = s.ratings.Clear(ctx, userID, resourceID)
	} else if *value == entities.RatingUp || *value == entities.RatingDown {
		tally, err = s.ratings.Set(ctx, userID, resourceID, *value)
	} else {
		return RatingSummary{}, apperrors.NewValidationError("rating must be UP, DOWN or null")
	}
	if err != nil {
		return RatingSummary{}, err
	}

	summary := summarize(tally)
	summary.UserRating = value
	return summary, nil
}

// GetRating returns the aggregate tally, plus the caller's own vote when
// userID is non-empty.
func (s *EngagementService) GetRating(ctx context.Context, userID, resourceID string) (RatingSummary, error) {
	if _, err := s.resourceRepo.GetByID(ctx, resourceID); err != nil {
		return RatingSummary{}, err
	}

	tally, err := s.ratings.Tally(ctx, resourceID)
	if err != nil {
		return RatingSummary{}, err
	}
	summary := summarize(tally)

	if userID != "" {
		rating, err := s.ratings.Get(ctx, userID, resourceID)
		if err != nil {
			return RatingSummary{}, err
		}
		if rating != nil {
			v := rating.Value
			summary.UserRating = &v
		}
	}
	return summary, nil
}

// ToggleFavorite flips the favorite state for the user. Two consecutive
// calls restore both the state and the count.
func (s *EngagementService) ToggleFavorite(ctx context.Context, userID, resourceID string) (FavoriteSummary, error) {
	if _, err := s.resourceRepo.GetByID(ctx, resourceID); err != nil {
		return FavoriteSummary{}, err
	}

	isFavorited, count, err := s.favorites.Toggle(ctx, userID, resourceID)
	if err != nil {
		return FavoriteSummary{}, err
	}
	return FavoriteSummary{IsFavorited: isFavorited, FavoriteCount: count}, nil
}

// FavoriteStatus returns the favorite state. Anonymous callers (empty
// userID) get isFavorited=false with the real count rather than an error.
func (s *EngagementService) FavoriteStatus(ctx context.Context, userID, resourceID string) (FavoriteSummary, error) {
	count, err := s.favorites.Count(ctx, resourceID)
	if err != nil {
		return FavoriteSummary{}, err
	}

	summary := FavoriteSummary{FavoriteCount: count}
	if userID != "" {
		favorited, err := s.favorites.IsFavorited(ctx, userID, resourceID)
		if err != nil {
			return FavoriteSummary{}, err
		}
		summary.IsFavorited = favorited
	}
	return summary, nil
}

// ListFavorites returns the user's favorited resources, newest first.
func (s *EngagementService) ListFavorites(ctx context.Context, userID string) ([]*entities.Resource, error) {
	ids, err := s.favorites.ListResourceIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*entities.Resource{}, nil
	}

	resources, err := s.resourceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, r := range resources {
		r.Normalize()
	}
	return resources, nil
}

func summarize(tally entities.RatingTally) RatingSummary {
	return RatingSummary{
		Upvotes:            tally.Upvotes,
		Downvotes:          tally.Downvotes,
		ApprovalPercentage: tally.ApprovalPercentage(),
	}
}
