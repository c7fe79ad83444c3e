package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/salidas/internal/models"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Photo, error)
	ListByEventID(ctx context.Context, eventID int64) ([]models.Photo, error)
	ListURLs(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, id int64) error
	RemoveByEventID(ctx context.Context, eventID int64) error
}

type photoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *models.Photo) (int64, error) {
	query := `
		INSERT INTO photos (event_id, user_id, photo_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, photo.EventID, photo.UserID, photo.PhotoURL).Scan(&photo.ID, &photo.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return photo.ID, nil
}

func (r *photoRepository) GetByID(ctx context.Context, id int64) (*models.Photo, error) {
	query := `SELECT id, event_id, user_id, photo_url, created_at FROM photos WHERE id = $1`

	var p models.Photo
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.EventID, &p.UserID, &p.PhotoURL, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &p, nil
}

func (r *photoRepository) ListByEventID(ctx context.Context, eventID int64) ([]models.Photo, error) {
	query := `
		SELECT id, event_id, user_id, photo_url, created_at
		FROM photos
		WHERE event_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	photos := make([]models.Photo, 0)
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.PhotoURL, &p.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		photos = append(photos, p)
	}

	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return photos, nil
}

func (r *photoRepository) ListURLs(ctx context.Context) ([]string, error) {
	return listStrings(ctx, r.db, `SELECT photo_url FROM photos`)
}

func (r *photoRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *photoRepository) RemoveByEventID(ctx context.Context, eventID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE event_id = $1`, eventID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
