package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/maheshrc27/salidas/internal/models"
	"github.com/maheshrc27/salidas/internal/repository"
	"github.com/maheshrc27/salidas/internal/transfer"
)

const maxDisplayNameLength = 60

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (*models.Profile, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar *transfer.File) (*models.Profile, error)
}

type profileService struct {
	pf      repository.ProfileRepository
	storage ObjectStorage
	cleaner Cleaner
}

func NewProfileService(pf repository.ProfileRepository, storage ObjectStorage, cleaner Cleaner) ProfileService {
	return &profileService{pf: pf, storage: storage, cleaner: cleaner}
}

// Get never returns nil for a valid user: a missing row is an empty profile.
func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.pf.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &models.Profile{ID: userID}, nil
	}
	return profile, nil
}

func (s *profileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.pf.List(ctx)
}

func (s *profileService) UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (*models.Profile, error) {
	name := optional(displayName)
	if name != nil && len([]rune(*name)) > maxDisplayNameLength {
		return nil, invalid("display_name", fmt.Sprintf("El nombre no puede superar %d caracteres.", maxDisplayNameLength))
	}

	if err := s.pf.UpsertDisplayName(ctx, userID, name); err != nil {
		return nil, fmt.Errorf("error saving profile: %w", err)
	}
	return s.Get(ctx, userID)
}

// UpdateAvatar overwrites {userId}/avatar.{ext}. When the extension changes the
// previous object is cleaned up.
func (s *profileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar *transfer.File) (*models.Profile, error) {
	if avatar == nil || len(avatar.Content) == 0 {
		return nil, invalid("avatar", "Selecciona una imagen.")
	}

	kind, err := detectType(*avatar, imageTypes)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFile) {
			return nil, invalid("avatar", err.Error())
		}
		return nil, err
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	path := AvatarPath(userID, kind.Extension)
	if err := s.storage.Upload(ctx, BucketAvatars, path, avatar.Content, kind.MIME.Value); err != nil {
		return nil, fmt.Errorf("error uploading avatar: %w", err)
	}

	avatarURL := s.storage.PublicURL(BucketAvatars, path)
	if err := s.pf.UpsertAvatar(ctx, userID, avatarURL); err != nil {
		return nil, fmt.Errorf("error saving avatar: %w", err)
	}

	if current.AvatarURL != nil && *current.AvatarURL != avatarURL {
		cleanupURLs(context.WithoutCancel(ctx), s.storage, s.cleaner, BucketAvatars, []string{*current.AvatarURL})
	}

	current.AvatarURL = &avatarURL
	return current, nil
}
