package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/salidas/internal/models"
)

type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	ListByEventID(ctx context.Context, eventID int64) ([]models.Video, error)
	ListURLs(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, id int64) error
	RemoveByEventID(ctx context.Context, eventID int64) error
}

type videoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) (int64, error) {
	query := `
		INSERT INTO videos (event_id, user_id, video_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, video.EventID, video.UserID, video.VideoURL).Scan(&video.ID, &video.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return video.ID, nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	query := `SELECT id, event_id, user_id, video_url, created_at FROM videos WHERE id = $1`

	var v models.Video
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.EventID, &v.UserID, &v.VideoURL, &v.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &v, nil
}

func (r *videoRepository) ListByEventID(ctx context.Context, eventID int64) ([]models.Video, error) {
	query := `
		SELECT id, event_id, user_id, video_url, created_at
		FROM videos
		WHERE event_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	videos := make([]models.Video, 0)
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.EventID, &v.UserID, &v.VideoURL, &v.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		videos = append(videos, v)
	}

	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return videos, nil
}

func (r *videoRepository) ListURLs(ctx context.Context) ([]string, error) {
	return listStrings(ctx, r.db, `SELECT video_url FROM videos`)
}

func (r *videoRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *videoRepository) RemoveByEventID(ctx context.Context, eventID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE event_id = $1`, eventID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
