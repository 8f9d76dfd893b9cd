package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

func newEngagementFixture() (*services.EngagementService, *stubResourceRepo) {
	resources := newStubResourceRepo(&entities.Resource{ID: "res-1", Name: "Community Center"})
	svc := services.NewEngagementService(newStubRatingRepo(), newStubFavoriteRepo(), resources)
	return svc, resources
}

func intPtr(v int) *int { return &v }

func TestEngagementService_SubmitRating_UpThenDownReplaces(t *testing.T) {
	svc, _ := newEngagementFixture()
	ctx := context.Background()

	summary, err := svc.SubmitRating(ctx, "user-1", "res-1", intPtr(entities.RatingUp))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Upvotes)
	assert.Equal(t, 100, summary.ApprovalPercentage)

	summary, err = svc.SubmitRating(ctx, "user-1", "res-1", intPtr(entities.RatingDown))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Upvotes)
	assert.Equal(t, 1, summary.Downvotes)
	assert.Equal(t, 0, summary.ApprovalPercentage)
}

func TestEngagementService_SubmitRating_NullClears(t *testing.T) {
	svc, _ := newEngagementFixture()
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, "user-1", "res-1", intPtr(entities.RatingUp))
	require.NoError(t, err)

	summary, err := svc.SubmitRating(ctx, "user-1", "res-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Upvotes)
	assert.Equal(t, 0, summary.Downvotes)

	got, err := svc.GetRating(ctx, "user-1", "res-1")
	require.NoError(t, err)
	assert.Nil(t, got.UserRating)
}

func TestEngagementService_SubmitRating_RejectsInvalidValue(t *testing.T) {
	svc, _ := newEngagementFixture()

	_, err := svc.SubmitRating(context.Background(), "user-1", "res-1", intPtr(5))
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestEngagementService_SubmitRating_UnknownResource(t *testing.T) {
	svc, _ := newEngagementFixture()

	_, err := svc.SubmitRating(context.Background(), "user-1", "missing", intPtr(entities.RatingUp))
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestEngagementService_GetRating_AnonymousOmitsUserRating(t *testing.T) {
	svc, _ := newEngagementFixture()
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, "user-1", "res-1", intPtr(entities.RatingUp))
	require.NoError(t, err)

	summary, err := svc.GetRating(ctx, "", "res-1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Upvotes)
	assert.Nil(t, summary.UserRating)
}

func TestEngagementService_ApprovalPercentageRounds(t *testing.T) {
	svc, _ := newEngagementFixture()
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, "user-1", "res-1", intPtr(entities.RatingUp))
	require.NoError(t, err)
	_, err = svc.SubmitRating(ctx, "user-2", "res-1", intPtr(entities.RatingUp))
	require.NoError(t, err)
	summary, err := svc.SubmitRating(ctx, "user-3", "res-1", intPtr(entities.RatingDown))
	require.NoError(t, err)

	// 2 of 3 = 66.67 rounds to 67.
	assert.Equal(t, 67, summary.ApprovalPercentage)
}

func TestEngagementService_ToggleFavorite_IsXOR(t *testing.T) {
	svc, _ := newEngagementFixture()
	ctx := context.Background()

	first, err := svc.ToggleFavorite(ctx, "user-1", "res-1")
	require.NoError(t, err)
	assert.True(t, first.IsFavorited)
	assert.Equal(t, 1, first.FavoriteCount)

	second, err := svc.ToggleFavorite(ctx, "user-1", "res-1")
	require.NoError(t, err)
	assert.False(t, second.IsFavorited)
	assert.Equal(t, 0, second.FavoriteCount)
}

func TestEngagementService_FavoriteStatus_AnonymousDegrades(t *testing.T) {
	svc, _ := newEngagementFixture()
	ctx := context.Background()

	_, err := svc.ToggleFavorite(ctx, "user-1", "res-1")
	require.NoError(t, err)

	status, err := svc.FavoriteStatus(ctx, "", "res-1")
	require.NoError(t, err)
	assert.False(t, status.IsFavorited)
	assert.Equal(t, 1, status.FavoriteCount)
}

func TestEngagementService_ListFavorites(t *testing.T) {
	svc, resources := newEngagementFixture()
	resources.resources["res-2"] = &entities.Resource{ID: "res-2", Name: "Food Bank"}
	ctx := context.Background()

	_, err := svc.ToggleFavorite(ctx, "user-1", "res-1")
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(ctx, "user-1", "res-2")
	require.NoError(t, err)

	favorites, err := svc.ListFavorites(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, favorites, 2)

	favorites, err = svc.ListFavorites(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}
