package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/salidas/internal/models"
)

type ReviewRepository interface {
	Upsert(ctx context.Context, review *models.Review) error
	ListByEventID(ctx context.Context, eventID int64) ([]models.Review, error)
	RemoveByEventID(ctx context.Context, eventID int64) error
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Upsert writes the review keyed on (event_id, user_id); a second save by the
// same user replaces the first one in place.
func (r *reviewRepository) Upsert(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (event_id, user_id, rating, review_text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, user_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			review_text = EXCLUDED.review_text,
			created_at = now()
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, review.EventID, review.UserID, review.Rating, review.ReviewText).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *reviewRepository) ListByEventID(ctx context.Context, eventID int64) ([]models.Review, error) {
	query := `
		SELECT id, event_id, user_id, rating, review_text, created_at
		FROM reviews
		WHERE event_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.EventID, &rv.UserID, &rv.Rating, &rv.ReviewText, &rv.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		reviews = append(reviews, rv)
	}

	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) RemoveByEventID(ctx context.Context, eventID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE event_id = $1`, eventID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
