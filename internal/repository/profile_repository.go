package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/maheshrc27/salidas/internal/models"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	UpsertDisplayName(ctx context.Context, id uuid.UUID, displayName *string) error
	UpsertAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT id, display_name, avatar_url FROM profiles WHERE id = $1`

	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.DisplayName, &p.AvatarURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, display_name, avatar_url FROM profiles ORDER BY display_name`)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.AvatarURL); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepository) UpsertDisplayName(ctx context.Context, id uuid.UUID, displayName *string) error {
	query := `
		INSERT INTO profiles (id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name
	`
	_, err := r.db.ExecContext(ctx, query, id, displayName)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *profileRepository) UpsertAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	query := `
		INSERT INTO profiles (id, avatar_url)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET avatar_url = EXCLUDED.avatar_url
	`
	_, err := r.db.ExecContext(ctx, query, id, avatarURL)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
