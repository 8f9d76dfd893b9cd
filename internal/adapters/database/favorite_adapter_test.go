package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocacy-resources/advo-sub001/internal/adapters/database"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/postgres"
)

func TestFavoriteAdapter_Toggle_On(t *testing.T) {
	db, mock := setupMockDB(t)
	adapter := database.NewFavoriteAdapter(postgres.NewClientFromDB(db))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM favorites").
		WithArgs("user-1", "res-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO favorites").
		WithArgs("user-1", "res-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectExec("UPDATE resources SET favorite_count").
		WithArgs("res-1", 5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	isFavorited, count, err := adapter.Toggle(context.Background(), "user-1", "res-1")
	require.NoError(t, err)
	assert.True(t, isFavorited)
	assert.Equal(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteAdapter_Toggle_Off(t *testing.T) {
	db, mock := setupMockDB(t)
	adapter := database.NewFavoriteAdapter(postgres.NewClientFromDB(db))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM favorites").
		WithArgs("user-1", "res-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectExec("UPDATE resources SET favorite_count").
		WithArgs("res-1", 4, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	isFavorited, count, err := adapter.Toggle(context.Background(), "user-1", "res-1")
	require.NoError(t, err)
	assert.False(t, isFavorited)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteAdapter_IsFavorited(t *testing.T) {
	db, mock := setupMockDB(t)
	adapter := database.NewFavoriteAdapter(postgres.NewClientFromDB(db))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("user-1", "res-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	favorited, err := adapter.IsFavorited(context.Background(), "user-1", "res-1")
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteAdapter_ListResourceIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	adapter := database.NewFavoriteAdapter(postgres.NewClientFromDB(db))

	mock.ExpectQuery("SELECT resource_id FROM favorites").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"resource_id"}).AddRow("res-2").AddRow("res-1"))

	ids, err := adapter.ListResourceIDs(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"res-2", "res-1"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
