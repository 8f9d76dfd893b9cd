package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

const recommendationColumns = `
	id, name, type, state, description, category, note,
	contact, address, submitted_by, email, status, created_at, updated_at
`

// RecommendationAdapter implements recommendation persistence in Postgres.
type RecommendationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRecommendationAdapter creates a new recommendation adapter.
func NewRecommendationAdapter(client *postgres.Client) repositories.RecommendationRepository {
	return &RecommendationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a recommendation record.
func (a *RecommendationAdapter) Create(ctx context.Context, rec *entities.ResourceRecommendation) error {
	contactJSON, err := json.Marshal(rec.Contact)
	if err != nil {
		return apperrors.NewInternalError("failed to encode recommendation contact", err)
	}
	addressJSON, err := json.Marshal(rec.Address)
	if err != nil {
		return apperrors.NewInternalError("failed to encode recommendation address", err)
	}

	record := goqu.Record{
		"id":           rec.ID,
		"name":         rec.Name,
		"type":         rec.Type,
		"state":        rec.State,
		"description":  rec.Description,
		"category":     rec.Category,
		"note":         rec.Note,
		"contact":      contactJSON,
		"address":      addressJSON,
		"submitted_by": rec.SubmittedBy,
		"email":        rec.Email,
		"status":       rec.Status,
		"created_at":   rec.CreatedAt,
		"updated_at":   rec.UpdatedAt,
	}

	query, args, err := a.db.Insert("resource_recommendations").Prepared(true).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build recommendation insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create recommendation", err)
	}
	return nil
}

// GetByID retrieves a recommendation by ID.
func (a *RecommendationAdapter) GetByID(ctx context.Context, id string) (*entities.ResourceRecommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM resource_recommendations WHERE id = $1`

	rec, err := scanRecommendation(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("recommendation with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get recommendation", err)
	}
	return rec, nil
}

// List returns recommendations, newest first, optionally filtered by
// status.
func (a *RecommendationAdapter) List(ctx context.Context, status entities.RecommendationStatus) ([]*entities.ResourceRecommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM resource_recommendations`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list recommendations", err)
	}
	defer rows.Close()

	recs := []*entities.ResourceRecommendation{}
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan recommendation", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate recommendations", err)
	}
	return recs, nil
}

// UpdateStatus resolves a pending recommendation. The WHERE clause pins
// the current status to pending so resolved records can never transition
// again.
func (a *RecommendationAdapter) UpdateStatus(ctx context.Context, id string, status entities.RecommendationStatus) (*entities.ResourceRecommendation, error) {
	query := `
		UPDATE resource_recommendations
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := a.client.DB().ExecContext(ctx, query, id, status)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update recommendation status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		// Either missing or already resolved.
		existing, err := a.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.NewConflictError(fmt.Sprintf("recommendation is already %s", existing.Status))
	}

	return a.GetByID(ctx, id)
}

func scanRecommendation(row rowScanner) (*entities.ResourceRecommendation, error) {
	rec := &entities.ResourceRecommendation{}
	var contactJSON, addressJSON []byte

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Type,
		&rec.State,
		&rec.Description,
		&rec.Category,
		&rec.Note,
		&contactJSON,
		&addressJSON,
		&rec.SubmittedBy,
		&rec.Email,
		&rec.Status,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(contactJSON) > 0 {
		if err := json.Unmarshal(contactJSON, &rec.Contact); err != nil {
			return nil, fmt.Errorf("failed to decode recommendation contact: %w", err)
		}
	}
	if len(addressJSON) > 0 {
		if err := json.Unmarshal(addressJSON, &rec.Address); err != nil {
			return nil, fmt.Errorf("failed to decode recommendation address: %w", err)
		}
	}
	return rec, nil
}
