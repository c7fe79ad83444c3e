package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "email", "password_hash", "created_at"}

func TestUserGetByEmailLowercases(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(id.String(), "ana@example.com", "hash", time.Now()))

	user, isExist, err := NewUserRepository(db).GetByEmail(context.Background(), "  Ana@Example.COM ")
	require.NoError(t, err)
	assert.True(t, isExist)
	assert.Equal(t, id, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByIDMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	user, isExist, err := NewUserRepository(db).GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.False(t, isExist)
	assert.Nil(t, user)
}

func TestProfileGetByIDNullColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name", "avatar_url"}).AddRow(id.String(), "Ana", nil))

	profile, err := NewProfileRepository(db).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, profile.DisplayName)
	assert.Equal(t, "Ana", *profile.DisplayName)
	assert.Nil(t, profile.AvatarURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}
