package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	config "github.com/maheshrc27/salidas/configs"
	"github.com/maheshrc27/salidas/internal/repository"
	"github.com/maheshrc27/salidas/internal/transfer"
	"github.com/maheshrc27/salidas/pkg/utils"
)

type AuthService interface {
	SignInWithPassword(ctx context.Context, email, password string) (*transfer.Session, string, error)
	GetSession(ctx context.Context, token string) (*transfer.Session, error)
	SessionTTL() time.Duration
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		cfg: cfg,
		u:   u,
	}
}

func (s *authService) SessionTTL() time.Duration {
	return time.Duration(s.cfg.SessionTTLHours) * time.Hour
}

// SignInWithPassword returns the session and the signed token that carries it.
func (s *authService) SignInWithPassword(ctx context.Context, email, password string) (*transfer.Session, string, error) {
	errs := ValidationErrors{}
	if strings.TrimSpace(email) == "" {
		errs.Add("email", "El correo es obligatorio.")
	}
	if password == "" {
		errs.Add("password", "La contraseña es obligatoria.")
	}
	if err := errs.Err(); err != nil {
		return nil, "", err
	}

	user, isExist, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if !isExist || !utils.CheckPassword(user.PasswordHash, password) {
		slog.Info("sign in rejected", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	ttl := s.SessionTTL()
	token, err := utils.GenerateToken(s.cfg.SecretKey, user.ID.String(), ttl)
	if err != nil {
		return nil, "", err
	}

	return &transfer.Session{UserID: user.ID, ExpiresAt: time.Now().Add(ttl)}, token, nil
}

func (s *authService) GetSession(ctx context.Context, token string) (*transfer.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	claims, err := utils.ValidateToken(s.cfg.SecretKey, token)
	if err != nil {
		return nil, ErrNoSession
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		slog.Info(err.Error())
		return nil, ErrNoSession
	}

	_, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, errors.Join(ErrNoSession, errors.New("user no longer exists"))
	}

	session := &transfer.Session{UserID: userID}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
