package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocacy-resources/advo-sub001/internal/adapters/database"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

var resourceTestColumns = []string{
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

func addResourceRow(rows *sqlmock.Rows, id, name string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, name, "A description", "{MENTAL}",
		"555-0100", "info@example.org", "https://example.org",
		"1 Main St", "Springfield", "NY", "10001",
		40.7, -73.9,
		[]byte(`{}`), "",
		"{}", "{18-24}", "{}",
		"free", "{}",
		0, 0,
		"", "",
		true, now, now,
	)
}

func TestResourceAdapter_Search_AllFiltersInPredicate(t *testing.T) {
	db, mock := setupMockDB(t)
	adapter := database.NewResourceAdapter(postgres.NewClientFromDB(db))

	mock.ExpectQuery(`(?s)"is_active" IS TRUE.*categories @>.*ILIKE.*"zip_code".*target_audience &&`).
		WillReturnRows(addResourceRow(sqlmock.NewRows(resourceTestColumns), "res-1", "Community Center"))

	resources, err := adapter.Search(context.Background(), repositories.ResourceFilter{
		Category:    "MENTAL",
		Description: "counsel",
		ZipCode:     "10001",
		AgeRange:    []string{"18-24"},
		Limit:       30,
	})
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "res-1", resources[0].ID)
	assert.Equal(t, []string{"MENTAL"}, resources[0].Categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceAdapter_Search_EmptyFiltersAreOmitted(t *testing.T) {
	db, mock := setupMockDB(t)
	adapter := database.NewResourceAdapter(postgres.NewClientFromDB(db))

	// With no filters the predicate is the is_active guard alone.
	mock.ExpectQuery(`WHERE \("is_active" IS TRUE\) ORDER BY "name" ASC`).
		WillReturnRows(sqlmock.NewRows(resourceTestColumns))

	resources, err := adapter.Search(context.Background(), repositories.ResourceFilter{})
	require.NoError(t, err)
	assert.Empty(t, resources)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceAdapter_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	adapter := database.NewResourceAdapter(postgres.NewClientFromDB(db))

	mock.ExpectQuery(`FROM "resources"`).
		WillReturnRows(sqlmock.NewRows(resourceTestColumns))

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceAdapter_Delete_SoftDeletesActiveOnly(t *testing.T) {
	db, mock := setupMockDB(t)
	adapter := database.NewResourceAdapter(postgres.NewClientFromDB(db))

	mock.ExpectExec(`UPDATE resources SET is_active = false`).
		WithArgs("res-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.Delete(context.Background(), "res-1"))

	mock.ExpectExec(`UPDATE resources SET is_active = false`).
		WithArgs("res-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Delete(context.Background(), "res-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceAdapter_GetByIDs_PreservesRequestedOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	adapter := database.NewResourceAdapter(postgres.NewClientFromDB(db))

	rows := sqlmock.NewRows(resourceTestColumns)
	rows = addResourceRow(rows, "res-2", "Second")
	rows = addResourceRow(rows, "res-1", "First")
	mock.ExpectQuery(`"id" IN`).WillReturnRows(rows)

	resources, err := adapter.GetByIDs(context.Background(), []string{"res-1", "res-2"})
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "res-1", resources[0].ID)
	assert.Equal(t, "res-2", resources[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceAdapter_GetByIDs_EmptyInput(t *testing.T) {
	db, mock := setupMockDB(t)
	adapter := database.NewResourceAdapter(postgres.NewClientFromDB(db))

	resources, err := adapter.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, resources)
	assert.NoError(t, mock.ExpectationsWereMet())
}
