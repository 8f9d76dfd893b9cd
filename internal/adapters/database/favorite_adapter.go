package database

import (
	"context"
	"time"

	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

// FavoriteAdapter implements the FavoriteRepository interface. Like the
// rating adapter, the favorite_count cache is recomputed from the detail
// table inside the toggle transaction rather than incremented.
type FavoriteAdapter struct {
	client *postgres.Client
}

// NewFavoriteAdapter creates a new favorite adapter
func NewFavoriteAdapter(client *postgres.Client) repositories.FavoriteRepository {
	return &FavoriteAdapter{client: client}
}

// Toggle flips the favorite state for the (user, resource) pair and
// returns the new state plus the recomputed count.
func (a *FavoriteAdapter) Toggle(ctx context.Context, userID, resourceID string) (bool, int, error) {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return false, 0, apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	del := `DELETE FROM favorites WHERE user_id = $1 AND resource_id = $2`
	result, err := tx.ExecContext(ctx, del, userID, resourceID)
	if err != nil {
		return false, 0, apperrors.NewInternalError("failed to toggle favorite", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return false, 0, apperrors.NewInternalError("failed to get rows affected", err)
	}

	isFavorited := removed == 0
	if isFavorited {
		ins := `INSERT INTO favorites (user_id, resource_id, created_at) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, ins, userID, resourceID, time.Now()); err != nil {
			return false, 0, apperrors.NewInternalError("failed to insert favorite", err)
		}
	}

	var count int
	countQuery := `SELECT COUNT(*) FROM favorites WHERE resource_id = $1`
	if err := tx.QueryRowContext(ctx, countQuery, resourceID).Scan(&count); err != nil {
		return false, 0, apperrors.NewInternalError("failed to count favorites", err)
	}

	update := `UPDATE resources SET favorite_count = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, update, resourceID, count, time.Now()); err != nil {
		return false, 0, apperrors.NewInternalError("failed to update resource favorite count", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, apperrors.NewInternalError("failed to commit favorite toggle", err)
	}

	return isFavorited, count, nil
}

// IsFavorited reports whether the user has favorited the resource.
func (a *FavoriteAdapter) IsFavorited(ctx context.Context, userID, resourceID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND resource_id = $2)`

	var exists bool
	if err := a.client.DB().QueryRowContext(ctx, query, userID, resourceID).Scan(&exists); err != nil {
		return false, apperrors.NewInternalError("failed to check favorite", err)
	}
	return exists, nil
}

// Count returns the number of users who favorited the resource.
func (a *FavoriteAdapter) Count(ctx context.Context, resourceID string) (int, error) {
	query := `SELECT COUNT(*) FROM favorites WHERE resource_id = $1`

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, resourceID).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count favorites", err)
	}
	return count, nil
}

// ListResourceIDs returns the IDs of every resource the user has
// favorited, newest first.
func (a *FavoriteAdapter) ListResourceIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT resource_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := a.client.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list favorites", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan favorite", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate favorites", err)
	}
	return ids, nil
}
