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

	"github.com/maheshrc27/salidas/internal/models"
)

func TestReviewUpsertTargetsEventAndUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepository(db)
	userID := uuid.New()
	rating := 4
	text := "repetiríamos"
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (event_id, user_id) DO UPDATE SET")).
		WithArgs(int64(12), sqlmock.AnyArg(), 4, "repetiríamos").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	review := &models.Review{EventID: 12, UserID: userID, Rating: &rating, ReviewText: &text}
	require.NoError(t, repo.Upsert(context.Background(), review))

	assert.Equal(t, int64(3), review.ID)
	assert.Equal(t, now, review.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewListScansNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews")).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "rating", "review_text", "created_at"}).
			AddRow(int64(1), int64(12), userID.String(), nil, nil, now).
			AddRow(int64(2), int64(12), uuid.New().String(), int64(5), "genial", now))

	reviews, err := NewReviewRepository(db).ListByEventID(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, userID, reviews[0].UserID)
	assert.Nil(t, reviews[0].Rating)
	assert.Nil(t, reviews[0].ReviewText)
	require.NotNil(t, reviews[1].Rating)
	assert.Equal(t, 5, *reviews[1].Rating)
	assert.Equal(t, "genial", *reviews[1].ReviewText)
	assert.NoError(t, mock.ExpectationsWereMet())
}
