package repositories

import (
	"context"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
)

// RatingRepository maintains per-user up/down votes and keeps the
// resource-level aggregate in sync. Every mutation recomputes the tally
// from the ratings table and persists upvote_count inside the same
// transaction.
type RatingRepository interface {
	// Set upserts the (user, resource) vote with value +1 or -1 and
	// returns the recomputed tally.
	Set(ctx context.Context, userID, resourceID string, value int) (entities.RatingTally, error)
	// Clear deletes the (user, resource) vote if present and returns the
	// recomputed tally.
	Clear(ctx context.Context, userID, resourceID string) (entities.RatingTally, error)
	// Get returns the user's vote, or nil when the user has not voted.
	Get(ctx context.Context, userID, resourceID string) (*entities.Rating, error)
	Tally(ctx context.Context, resourceID string) (entities.RatingTally, error)
}

// FavoriteRepository maintains favorite pairs and the resource-level
// favorite_count cache, recomputed transactionally on every toggle.
type FavoriteRepository interface {
	// Toggle flips the favorite state and returns the new state plus the
	// recomputed count.
	Toggle(ctx context.Context, userID, resourceID string) (isFavorited bool, favoriteCount int, err error)
	IsFavorited(ctx context.Context, userID, resourceID string) (bool, error)
	Count(ctx context.Context, resourceID string) (int, error)
	ListResourceIDs(ctx context.Context, userID string) ([]string, error)
}
