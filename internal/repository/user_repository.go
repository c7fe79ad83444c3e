// repository/user_repository.go
package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/maheshrc27/salidas/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, bool, error)
	Create(ctx context.Context, tx *sql.Tx, user *models.User) (uuid.UUID, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, bool, error) {
	var user models.User
	query := "SELECT id, email, password_hash, created_at FROM users WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &user, true, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	var user models.User
	query := "SELECT id, email, password_hash, created_at FROM users WHERE email = $1"
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &user, true, nil
}

func (r *userRepository) Create(ctx context.Context, tx *sql.Tx, user *models.User) (uuid.UUID, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query := "INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3) RETURNING created_at"
	email := strings.ToLower(strings.TrimSpace(user.Email))

	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, user.ID, email, user.PasswordHash).Scan(&user.CreatedAt)
	} else {
		err = r.db.QueryRowContext(ctx, query, user.ID, email, user.PasswordHash).Scan(&user.CreatedAt)
	}
	if err != nil {
		slog.Info(err.Error())
		return uuid.Nil, err
	}
	user.Email = email
	return user.ID, nil
}
