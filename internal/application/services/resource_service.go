package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
	"github.com/advocacy-resources/advo-sub001/pkg/geo"
)

// ResourceService handles business logic for resources
type ResourceService struct {
	repo       repositories.ResourceRepository
	searchRepo repositories.ResourceSearchRepository
	geocoder   *GeocodingService
}

// NewResourceService creates a new resource service
func NewResourceService(repo repositories.ResourceRepository, searchRepo repositories.ResourceSearchRepository, geocoder *GeocodingService) *ResourceService {
	return &ResourceService{
		repo:       repo,
		searchRepo: searchRepo,
		geocoder:   geocoder,
	}
}

// Create validates, geocodes and stores a new resource, then indexes it
func (s *ResourceService) Create(ctx context.Context, resource *entities.Resource) error {
	if strings.TrimSpace(resource.Name) == "" {
		return apperrors.NewValidationError("resource name is required")
	}
	if resource.ID == "" {
		resource.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = now
	}
	resource.UpdatedAt = now
	resource.IsActive = true
	resource.Normalize()

	if resource.Location.IsZero() && s.geocoder != nil {
		resource.Location = s.locate(ctx, resource.Address)
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, resource); err != nil {
			// Log error but don't fail the request (eventual consistency)
			log.Printf("Warning: Failed to index resource %s: %v", resource.ID, err)
		}
	}

	return nil
}

// GetByID retrieves a resource by ID
func (s *ResourceService) GetByID(ctx context.Context, id string) (*entities.Resource, error) {
	resource, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resource.Normalize()
	return resource, nil
}

// Update updates a resource and refreshes its index entry. When the address
// changed and no explicit coordinates were supplied, the location is
// re-geocoded.
func (s *ResourceService) Update(ctx context.Context, resource *entities.Resource) error {
	if strings.TrimSpace(resource.Name) == "" {
		return apperrors.NewValidationError("resource name is required")
	}
	resource.UpdatedAt = time.Now().UTC()
	resource.Normalize()

	if resource.Location.IsZero() && s.geocoder != nil {
		resource.Location = s.locate(ctx, resource.Address)
	}

	if err := s.repo.Update(ctx, resource); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, resource); err != nil {
			log.Printf("Warning: Failed to update resource index %s: %v", resource.ID, err)
		}
	}

	return nil
}

// RepEditableFields is the restricted subset a business representative may
// change on their managed resource.
type RepEditableFields struct {
	Description      *string                 `json:"description,omitempty"`
	Contact          *entities.Contact       `json:"contact,omitempty"`
	OperatingHours   entities.OperatingHours `json:"operating_hours,omitempty"`
	Cost             *string                 `json:"cost,omitempty"`
	ProfilePhotoURL  *string                 `json:"profile_photo_url,omitempty"`
	BannerImageURL   *string                 `json:"banner_image_url,omitempty"`
	ServicesProvided []string                `json:"services_provided,omitempty"`
}

// ApplyRepUpdate applies the restricted field subset to the resource and
// persists it. Fields outside the subset are ignored by construction.
func (s *ResourceService) ApplyRepUpdate(ctx context.Context, resourceID string, fields RepEditableFields) (*entities.Resource, error) {
	resource, err := s.repo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	if fields.Description != nil {
		resource.Description = *fields.Description
	}
	if fields.Contact != nil {
		resource.Contact = *fields.Contact
	}
	if fields.OperatingHours != nil {
		resource.OperatingHours = fields.OperatingHours
	}
	if fields.Cost != nil {
		resource.Cost = *fields.Cost
	}
	if fields.ProfilePhotoURL != nil {
		resource.ProfilePhotoURL = *fields.ProfilePhotoURL
	}
	if fields.BannerImageURL != nil {
		resource.BannerImageURL = *fields.BannerImageURL
	}
	if fields.ServicesProvided != nil {
		resource.ServicesProvided = fields.ServicesProvided
	}

	if err := s.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Delete soft-deletes a resource and removes it from the index. Favorites,
// ratings and reviews are retained.
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			log.Printf("Warning: Failed to delete resource from index %s: %v", id, err)
		}
	}

	return nil
}

// Search resolves a filter set to normalized resources. When a description
// query is present and the search engine is available, the full-text index
// ranks the results; otherwise the database predicate path is used.
func (s *ResourceService) Search(ctx context.Context, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, apperrors.NewValidationError("limit and offset must be non-negative")
	}

	var (
		results []*entities.Resource
		err     error
	)

	if filter.Description != "" && s.searchRepo != nil {
		var ids []string
		ids, err = s.searchRepo.Search(ctx, filter.Description, filter)
		if err != nil {
			// Fall back to the database predicate path on index failure.
			log.Printf("Warning: search index query failed, falling back to database: %v", err)
			results, err = s.repo.Search(ctx, filter)
		} else {
			results, err = s.repo.GetByIDs(ctx, ids)
		}
	} else {
		results, err = s.repo.Search(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	if results == nil {
		results = []*entities.Resource{}
	}
	for _, r := range results {
		r.Normalize()
	}
	return results, nil
}

// FilterByProximity keeps only resources whose geocoded location falls
// within maxMiles of the origin. Resources with the unresolved (0,0)
// sentinel are excluded because their position is unknown.
func (s *ResourceService) FilterByProximity(resources []*entities.Resource, originLat, originLon, maxMiles float64) []*entities.Resource {
	filtered := []*entities.Resource{}
	for _, r := range resources {
		if r.Location.IsZero() {
			continue
		}
		if geo.IsWithinDistance(originLat, originLon, r.Location.Latitude, r.Location.Longitude, maxMiles) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// locate absorbs geocoding failures to the unresolved sentinel.
func (s *ResourceService) locate(ctx context.Context, address entities.Address) entities.Location {
	coords := s.geocoder.Locate(ctx, formatAddress(address))
	return entities.Location{Latitude: coords.Latitude, Longitude: coords.Longitude}
}

func formatAddress(a entities.Address) string {
	parts := []string{}
	for _, p := range []string{a.Street, a.City, a.State, a.ZipCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}
