package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/maheshrc27/salidas/internal/models"
	"github.com/maheshrc27/salidas/internal/repository"
	"github.com/maheshrc27/salidas/internal/transfer"
)

type MediaService interface {
	UploadPhotos(ctx context.Context, userID uuid.UUID, eventID int64, files []transfer.File) ([]models.Photo, error)
	ListPhotos(ctx context.Context, eventID int64) ([]models.Photo, error)
	RemovePhoto(ctx context.Context, photoID int64) error
	UploadVideos(ctx context.Context, userID uuid.UUID, eventID int64, files []transfer.File) ([]models.Video, error)
	ListVideos(ctx context.Context, eventID int64) ([]models.Video, error)
	RemoveVideo(ctx context.Context, videoID int64) error
}

type mediaService struct {
	er      repository.EventRepository
	pr      repository.PhotoRepository
	vr      repository.VideoRepository
	storage ObjectStorage
	cleaner Cleaner
}

func NewMediaService(
	er repository.EventRepository,
	pr repository.PhotoRepository,
	vr repository.VideoRepository,
	storage ObjectStorage,
	cleaner Cleaner) MediaService {
	return &mediaService{
		er:      er,
		pr:      pr,
		vr:      vr,
		storage: storage,
		cleaner: cleaner,
	}
}

// doneEvent loads the event and refuses planned ones: albums, videos and
// reviews only exist for outings that already happened.
func doneEvent(ctx context.Context, er repository.EventRepository, eventID int64) (*models.Event, error) {
	if eventID <= 0 {
		return nil, ErrEventNotFound
	}
	event, err := er.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if !event.IsDone() {
		return nil, ErrEventNotDone
	}
	return event, nil
}

// UploadPhotos handles files one at a time, each upload followed by its row.
// The first failure aborts the rest; photos saved before it are kept and
// returned along with the error.
func (s *mediaService) UploadPhotos(ctx context.Context, userID uuid.UUID, eventID int64, files []transfer.File) ([]models.Photo, error) {
	if len(files) == 0 {
		return nil, invalid("files", "Selecciona al menos una foto.")
	}
	event, err := doneEvent(ctx, s.er, eventID)
	if err != nil {
		return nil, err
	}

	saved := make([]models.Photo, 0, len(files))
	for _, file := range files {
		photoURL, err := store(ctx, s.storage, BucketAlbums, file, imageTypes, func(id, ext string) string {
			return AlbumPath(event.ID, id, ext)
		})
		if err != nil {
			return saved, err
		}

		photo := models.Photo{EventID: event.ID, UserID: userID, PhotoURL: photoURL}
		if _, err := s.pr.Create(ctx, &photo); err != nil {
			cleanupURLs(context.WithoutCancel(ctx), s.storage, s.cleaner, BucketAlbums, []string{photoURL})
			return saved, fmt.Errorf("error saving photo %s: %w", file.Filename, err)
		}
		saved = append(saved, photo)
	}

	slog.Info("photos uploaded", "event_id", event.ID, "count", len(saved))
	return saved, nil
}

func (s *mediaService) ListPhotos(ctx context.Context, eventID int64) ([]models.Photo, error) {
	if _, err := doneEvent(ctx, s.er, eventID); err != nil {
		return nil, err
	}
	return s.pr.ListByEventID(ctx, eventID)
}

func (s *mediaService) RemovePhoto(ctx context.Context, photoID int64) error {
	photo, err := s.pr.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo == nil {
		return ErrPhotoNotFound
	}

	if err := s.pr.Remove(ctx, photo.ID); err != nil {
		return fmt.Errorf("error removing photo: %w", err)
	}
	cleanupURLs(context.WithoutCancel(ctx), s.storage, s.cleaner, BucketAlbums, []string{photo.PhotoURL})
	return nil
}

// UploadVideos follows the same sequential contract as UploadPhotos.
func (s *mediaService) UploadVideos(ctx context.Context, userID uuid.UUID, eventID int64, files []transfer.File) ([]models.Video, error) {
	if len(files) == 0 {
		return nil, invalid("files", "Selecciona al menos un video.")
	}
	event, err := doneEvent(ctx, s.er, eventID)
	if err != nil {
		return nil, err
	}

	saved := make([]models.Video, 0, len(files))
	for _, file := range files {
		videoURL, err := store(ctx, s.storage, BucketVideos, file, videoTypes, func(id, ext string) string {
			return VideoPath(event.ID, id, ext)
		})
		if err != nil {
			return saved, err
		}

		video := models.Video{EventID: event.ID, UserID: userID, VideoURL: videoURL}
		if _, err := s.vr.Create(ctx, &video); err != nil {
			cleanupURLs(context.WithoutCancel(ctx), s.storage, s.cleaner, BucketVideos, []string{videoURL})
			return saved, fmt.Errorf("error saving video %s: %w", file.Filename, err)
		}
		saved = append(saved, video)
	}

	slog.Info("videos uploaded", "event_id", event.ID, "count", len(saved))
	return saved, nil
}

func (s *mediaService) ListVideos(ctx context.Context, eventID int64) ([]models.Video, error) {
	if _, err := doneEvent(ctx, s.er, eventID); err != nil {
		return nil, err
	}
	return s.vr.ListByEventID(ctx, eventID)
}

func (s *mediaService) RemoveVideo(ctx context.Context, videoID int64) error {
	video, err := s.vr.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}

	if err := s.vr.Remove(ctx, video.ID); err != nil {
		return fmt.Errorf("error removing video: %w", err)
	}
	cleanupURLs(context.WithoutCancel(ctx), s.storage, s.cleaner, BucketVideos, []string{video.VideoURL})
	return nil
}
