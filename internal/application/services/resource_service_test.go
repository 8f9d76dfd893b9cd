package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/providers"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

func TestResourceService_Create_GeocodesAddress(t *testing.T) {
	repo := newStubResourceRepo()
	geocoder := services.NewGeocodingService(&stubGeocoder{known: map[string]providers.Coordinates{
		"1 Main St, Springfield, IL, 62701": {Latitude: 39.8, Longitude: -89.65},
	}}, "stub", 10, 0, nil)
	svc := services.NewResourceService(repo, nil, geocoder)

	resource := &entities.Resource{
		Name:    "Springfield Shelter",
		Address: entities.Address{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"},
	}
	require.NoError(t, svc.Create(context.Background(), resource))

	assert.NotEmpty(t, resource.ID)
	assert.True(t, resource.IsActive)
	assert.InDelta(t, 39.8, resource.Location.Latitude, 0.001)
	assert.NotNil(t, resource.Categories)
}

func TestResourceService_Create_UnresolvedAddressKeepsSentinel(t *testing.T) {
	geocoder := services.NewGeocodingService(&stubGeocoder{}, "stub", 10, 0, nil)
	svc := services.NewResourceService(newStubResourceRepo(), nil, geocoder)

	resource := &entities.Resource{Name: "Somewhere", Address: entities.Address{City: "Nowhere"}}
	require.NoError(t, svc.Create(context.Background(), resource))

	assert.True(t, resource.Location.IsZero())
}

func TestResourceService_Create_RequiresName(t *testing.T) {
	svc := services.NewResourceService(newStubResourceRepo(), nil, nil)

	err := svc.Create(context.Background(), &entities.Resource{Name: "   "})
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestResourceService_Search_EmptyResultIsNotAnError(t *testing.T) {
	repo := newStubResourceRepo()
	repo.searchFn = func(repositories.ResourceFilter) ([]*entities.Resource, error) {
		return nil, nil
	}
	svc := services.NewResourceService(repo, nil, nil)

	results, err := svc.Search(context.Background(), repositories.ResourceFilter{ZipCode: "99999"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestResourceService_Search_NormalizesProjections(t *testing.T) {
	repo := newStubResourceRepo(&entities.Resource{ID: "r1", Name: "Center"})
	svc := services.NewResourceService(repo, nil, nil)

	results, err := svc.Search(context.Background(), repositories.ResourceFilter{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NotNil(t, results[0].Categories)
	assert.NotNil(t, results[0].OperatingHours)
}

func TestResourceService_Search_RejectsNegativePaging(t *testing.T) {
	svc := services.NewResourceService(newStubResourceRepo(), nil, nil)

	_, err := svc.Search(context.Background(), repositories.ResourceFilter{Limit: -1})
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestResourceService_ApplyRepUpdate_RestrictedSubset(t *testing.T) {
	repo := newStubResourceRepo(&entities.Resource{ID: "r1", Name: "Center", Cost: "free"})
	svc := services.NewResourceService(repo, nil, nil)

	desc := "Updated description"
	updated, err := svc.ApplyRepUpdate(context.Background(), "r1", services.RepEditableFields{Description: &desc})
	require.NoError(t, err)

	assert.Equal(t, "Updated description", updated.Description)
	// Fields outside the subset are untouched.
	assert.Equal(t, "Center", updated.Name)
	assert.Equal(t, "free", updated.Cost)
}

func TestResourceService_FilterByProximity_ExcludesUnresolved(t *testing.T) {
	svc := services.NewResourceService(newStubResourceRepo(), nil, nil)

	near := &entities.Resource{ID: "near", Location: entities.Location{Latitude: 40.75, Longitude: -73.99}}
	far := &entities.Resource{ID: "far", Location: entities.Location{Latitude: 34.09, Longitude: -118.40}}
	unresolved := &entities.Resource{ID: "unknown"}

	got := svc.FilterByProximity([]*entities.Resource{near, far, unresolved}, 40.7506, -73.9972, 50)

	require.Len(t, got, 1)
	assert.Equal(t, "near", got[0].ID)
}
