package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/salidas/internal/models"
)

func TestPhotoCreateReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO photos (event_id, user_id, photo_url)")).
		WithArgs(int64(4), userID.String(), "https://media.test/albums/albums/4/a.png").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), now))

	photo := &models.Photo{EventID: 4, UserID: userID, PhotoURL: "https://media.test/albums/albums/4/a.png"}
	id, err := NewPhotoRepository(db).Create(context.Background(), photo)
	require.NoError(t, err)

	assert.Equal(t, int64(10), id)
	assert.Equal(t, int64(10), photo.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRemoveByEventID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM photos WHERE event_id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, NewPhotoRepository(db).RemoveByEventID(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRemoveByEventIDError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM videos WHERE event_id = $1")).
		WithArgs(int64(4)).
		WillReturnError(errors.New("connection reset"))

	assert.Error(t, NewVideoRepository(db).RemoveByEventID(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoListURLs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT video_url FROM videos")).
		WillReturnRows(sqlmock.NewRows([]string{"video_url"}).AddRow("a").AddRow("b"))

	urls, err := NewVideoRepository(db).ListURLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, urls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
