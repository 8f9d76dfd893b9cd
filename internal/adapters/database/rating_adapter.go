package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

const ratingTallyQuery = `
	SELECT
		COUNT(*) FILTER (WHERE value = 1),
		COUNT(*) FILTER (WHERE value = -1)
	FROM ratings
	WHERE resource_id = $1
`

// RatingAdapter implements the RatingRepository interface. Every mutation
// recomputes the tally from the ratings table and writes the cached
// upvote_count back to the resource inside the same transaction, so two
// concurrent votes can never leave a stale aggregate behind.
type RatingAdapter struct {
	client *postgres.Client
}

// NewRatingAdapter creates a new rating adapter
func NewRatingAdapter(client *postgres.Client) repositories.RatingRepository {
	return &RatingAdapter{client: client}
}

// Set upserts the (user, resource) vote and returns the recomputed tally.
// Submitting the value that already exists rewrites the row in place.
func (a *RatingAdapter) Set(ctx context.Context, userID, resourceID string, value int) (entities.RatingTally, error) {
	if value != entities.RatingUp && value != entities.RatingDown {
		return entities.RatingTally{}, apperrors.NewValidationError("rating value must be +1 or -1")
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return entities.RatingTally{}, apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	now := time.Now()
	upsert := `
		INSERT INTO ratings (user_id, resource_id, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id, resource_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := tx.ExecContext(ctx, upsert, userID, resourceID, value, now); err != nil {
		return entities.RatingTally{}, apperrors.NewInternalError("failed to upsert rating", err)
	}

	tally, err := a.syncTally(ctx, tx, resourceID, now)
	if err != nil {
		return entities.RatingTally{}, err
	}

	if err := tx.Commit(); err != nil {
		return entities.RatingTally{}, apperrors.NewInternalError("failed to commit rating", err)
	}
	return tally, nil
}

// Clear removes the (user, resource) vote if present and returns the
// recomputed tally. Clearing an absent vote is a no-op on the detail
// table but still refreshes the aggregate.
func (a *RatingAdapter) Clear(ctx context.Context, userID, resourceID string) (entities.RatingTally, error) {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return entities.RatingTally{}, apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	del := `DELETE FROM ratings WHERE user_id = $1 AND resource_id = $2`
	if _, err := tx.ExecContext(ctx, del, userID, resourceID); err != nil {
		return entities.RatingTally{}, apperrors.NewInternalError("failed to delete rating", err)
	}

	tally, err := a.syncTally(ctx, tx, resourceID, time.Now())
	if err != nil {
		return entities.RatingTally{}, err
	}

	if err := tx.Commit(); err != nil {
		return entities.RatingTally{}, apperrors.NewInternalError("failed to commit rating", err)
	}
	return tally, nil
}

// Get returns the user's vote, or nil when the user has not voted.
func (a *RatingAdapter) Get(ctx context.Context, userID, resourceID string) (*entities.Rating, error) {
	query := `
		SELECT user_id, resource_id, value, created_at, updated_at
		FROM ratings
		WHERE user_id = $1 AND resource_id = $2
	`

	rating := &entities.Rating{}
	err := a.client.DB().QueryRowContext(ctx, query, userID, resourceID).Scan(
		&rating.UserID,
		&rating.ResourceID,
		&rating.Value,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rating", err)
	}
	return rating, nil
}

// Tally counts the up and down votes for a resource.
func (a *RatingAdapter) Tally(ctx context.Context, resourceID string) (entities.RatingTally, error) {
	var tally entities.RatingTally
	err := a.client.DB().QueryRowContext(ctx, ratingTallyQuery, resourceID).Scan(&tally.Upvotes, &tally.Downvotes)
	if err != nil {
		return entities.RatingTally{}, apperrors.NewInternalError("failed to tally ratings", err)
	}
	return tally, nil
}

// syncTally recomputes the tally inside the transaction and persists the
// net vote cache on the resource.
func (a *RatingAdapter) syncTally(ctx context.Context, tx *sql.Tx, resourceID string, now time.Time) (entities.RatingTally, error) {
	var tally entities.RatingTally
	if err := tx.QueryRowContext(ctx, ratingTallyQuery, resourceID).Scan(&tally.Upvotes, &tally.Downvotes); err != nil {
		return entities.RatingTally{}, apperrors.NewInternalError("failed to tally ratings", err)
	}

	update := `UPDATE resources SET upvote_count = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, update, resourceID, tally.NetVotes(), now); err != nil {
		return entities.RatingTally{}, apperrors.NewInternalError("failed to update resource vote count", err)
	}
	return tally, nil
}
