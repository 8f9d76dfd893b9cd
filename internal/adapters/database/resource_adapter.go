package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

var resourceColumns = []interface{}{
	"id", "name", "description", "categories",
	"phone", "email", "website",
	"street", "city", "state", "zip_code",
	"latitude", "longitude",
	"operating_hours", "eligibility_criteria",
	"services_provided", "target_audience", "accessibility_features",
	"cost", "tags",
	"favorite_count", "upvote_count",
	"profile_photo_url", "banner_image_url",
	"is_active", "created_at", "updated_at",
}

// ResourceAdapter implements the ResourceRepository interface
type ResourceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewResourceAdapter creates a new resource adapter
func NewResourceAdapter(client *postgres.Client) repositories.ResourceRepository {
	return &ResourceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new resource
func (a *ResourceAdapter) Create(ctx context.Context, resource *entities.Resource) error {
	record, err := resourceRecord(resource)
	if err != nil {
		return apperrors.NewInternalError("failed to encode resource", err)
	}

	query, args, err := a.db.Insert("resources").Prepared(true).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build resource insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create resource", err)
	}

	return nil
}

// GetByID retrieves an active resource by ID
func (a *ResourceAdapter) GetByID(ctx context.Context, id string) (*entities.Resource, error) {
	query, args, err := a.db.From("resources").
		Select(resourceColumns...).
		Where(goqu.C("id").Eq(id), goqu.C("is_active").IsTrue()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build resource select query", err)
	}

	resource, err := scanResource(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("resource with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get resource", err)
	}

	return resource, nil
}

// Update updates a resource
func (a *ResourceAdapter) Update(ctx context.Context, resource *entities.Resource) error {
	resource.UpdatedAt = time.Now()

	record, err := resourceRecord(resource)
	if err != nil {
		return apperrors.NewInternalError("failed to encode resource", err)
	}
	delete(record, "id")
	delete(record, "created_at")
	delete(record, "favorite_count")
	delete(record, "upvote_count")

	query, args, err := a.db.Update("resources").
		Prepared(true).
		Set(record).
		Where(goqu.C("id").Eq(resource.ID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build resource update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update resource", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("resource with id %s not found", resource.ID))
	}

	return nil
}

// Delete soft-deletes a resource. Favorites, ratings and reviews that
// reference it are retained; the resource simply stops appearing in reads
// and search.
func (a *ResourceAdapter) Delete(ctx context.Context, id string) error {
	query := `UPDATE resources SET is_active = false, updated_at = $2 WHERE id = $1 AND is_active = true`

	result, err := a.client.DB().ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return apperrors.NewInternalError("failed to delete resource", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("resource with id %s not found", id))
	}

	return nil
}

// Search retrieves active resources matching the filter. Empty filter
// fields are omitted from the predicate entirely.
func (a *ResourceAdapter) Search(ctx context.Context, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	ds := a.db.From("resources").
		Select(resourceColumns...).
		Where(goqu.C("is_active").IsTrue())

	if filter.Category != "" {
		ds = ds.Where(goqu.L("categories @> ?", pq.Array([]string{filter.Category})))
	}
	if filter.Description != "" {
		pattern := "%" + filter.Description + "%"
		ds = ds.Where(goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("description").ILike(pattern),
		))
	}
	if filter.ZipCode != "" {
		ds = ds.Where(goqu.C("zip_code").Eq(filter.ZipCode))
	}
	if len(filter.AgeRange) > 0 {
		ds = ds.Where(goqu.L("target_audience && ?", pq.Array(filter.AgeRange)))
	}

	ds = ds.Order(goqu.C("name").Asc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit)).Offset(uint(filter.Offset))
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build resource search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search resources", err)
	}
	defer rows.Close()

	return collectResources(rows)
}

// GetByIDs retrieves active resources by ID, preserving the input order.
func (a *ResourceAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Resource, error) {
	if len(ids) == 0 {
		return []*entities.Resource{}, nil
	}

	query, args, err := a.db.From("resources").
		Select(resourceColumns...).
		Where(goqu.C("id").In(ids), goqu.C("is_active").IsTrue()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build resource select query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get resources", err)
	}
	defer rows.Close()

	resources, err := collectResources(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.Resource, len(resources))
	for _, r := range resources {
		byID[r.ID] = r
	}

	ordered := make([]*entities.Resource, 0, len(resources))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

func resourceRecord(resource *entities.Resource) (goqu.Record, error) {
	hours := resource.OperatingHours
	if hours == nil {
		hours = entities.OperatingHours{}
	}
	hoursJSON, err := json.Marshal(hours)
	if err != nil {
		return nil, err
	}

	return goqu.Record{
		"id":                     resource.ID,
		"name":                   resource.Name,
		"description":            resource.Description,
		"categories":             pq.Array(resource.Categories),
		"phone":                  resource.Contact.Phone,
		"email":                  resource.Contact.Email,
		"website":                resource.Contact.Website,
		"street":                 resource.Address.Street,
		"city":                   resource.Address.City,
		"state":                  resource.Address.State,
		"zip_code":               resource.Address.ZipCode,
		"latitude":               resource.Location.Latitude,
		"longitude":              resource.Location.Longitude,
		"operating_hours":        hoursJSON,
		"eligibility_criteria":   resource.EligibilityCriteria,
		"services_provided":      pq.Array(resource.ServicesProvided),
		"target_audience":        pq.Array(resource.TargetAudience),
		"accessibility_features": pq.Array(resource.AccessibilityFeatures),
		"cost":                   resource.Cost,
		"tags":                   pq.Array(resource.Tags),
		"favorite_count":         resource.FavoriteCount,
		"upvote_count":           resource.UpvoteCount,
		"profile_photo_url":      resource.ProfilePhotoURL,
		"banner_image_url":       resource.BannerImageURL,
		"is_active":              resource.IsActive,
		"created_at":             resource.CreatedAt,
		"updated_at":             resource.UpdatedAt,
	}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResource(row rowScanner) (*entities.Resource, error) {
	resource := &entities.Resource{}
	var hoursJSON []byte

	err := row.Scan(
		&resource.ID,
		&resource.Name,
		&resource.Description,
		pq.Array(&resource.Categories),
		&resource.Contact.Phone,
		&resource.Contact.Email,
		&resource.Contact.Website,
		&resource.Address.Street,
		&resource.Address.City,
		&resource.Address.State,
		&resource.Address.ZipCode,
		&resource.Location.Latitude,
		&resource.Location.Longitude,
		&hoursJSON,
		&resource.EligibilityCriteria,
		pq.Array(&resource.ServicesProvided),
		pq.Array(&resource.TargetAudience),
		pq.Array(&resource.AccessibilityFeatures),
		&resource.Cost,
		pq.Array(&resource.Tags),
		&resource.FavoriteCount,
		&resource.UpvoteCount,
		&resource.ProfilePhotoURL,
		&resource.BannerImageURL,
		&resource.IsActive,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(hoursJSON) > 0 {
		if err := json.Unmarshal(hoursJSON, &resource.OperatingHours); err != nil {
			return nil, fmt.Errorf("failed to decode operating hours: %w", err)
		}
	}
	resource.Normalize()

	return resource, nil
}

func collectResources(rows *sql.Rows) ([]*entities.Resource, error) {
	resources := []*entities.Resource{}
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan resource", err)
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate resources", err)
	}
	return resources, nil
}
