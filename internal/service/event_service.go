package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/salidas/internal/calendar"
	"github.com/maheshrc27/salidas/internal/models"
	"github.com/maheshrc27/salidas/internal/repository"
	"github.com/maheshrc27/salidas/internal/transfer"
)

const maxTitleLength = 120

type EventService interface {
	Create(ctx context.Context, userID uuid.UUID, ec *transfer.EventCreation, cover *transfer.File) (*models.Event, error)
	List(ctx context.Context, status models.EventStatus) ([]models.Event, error)
	Get(ctx context.Context, eventID int64) (*models.Event, error)
	ToggleStatus(ctx context.Context, eventID int64) (*models.Event, error)
	AssignDate(ctx context.Context, eventID int64, es *transfer.EventSchedule) (*models.Event, error)
	ClearDate(ctx context.Context, eventID int64) (*models.Event, error)
	ReplaceCover(ctx context.Context, eventID int64, cover *transfer.File) (*models.Event, error)
	Remove(ctx context.Context, eventID int64) error
	Day(ctx context.Context, day string) (*calendar.DayView, error)
	Month(ctx context.Context, month string) (map[string]int, error)
	Feed(ctx context.Context, host string) (string, error)
	Summary(ctx context.Context, eventID int64) (string, error)
}

type eventService struct {
	er      repository.EventRepository
	pr      repository.PhotoRepository
	vr      repository.VideoRepository
	rr      repository.ReviewRepository
	pf      repository.ProfileRepository
	storage ObjectStorage
	cleaner Cleaner
}

func NewEventService(
	er repository.EventRepository,
	pr repository.PhotoRepository,
	vr repository.VideoRepository,
	rr repository.ReviewRepository,
	pf repository.ProfileRepository,
	storage ObjectStorage,
	cleaner Cleaner) EventService {
	return &eventService{
		er:      er,
		pr:      pr,
		vr:      vr,
		rr:      rr,
		pf:      pf,
		storage: storage,
		cleaner: cleaner,
	}
}

func validLink(link string) bool {
	u, err := url.ParseRequestURI(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func validateEventCreation(ec *transfer.EventCreation, cover *transfer.File) error {
	errs := ValidationErrors{}
	title := strings.TrimSpace(ec.Title)
	switch {
	case title == "":
		errs.Add("title", "El título es obligatorio.")
	case len([]rune(title)) > maxTitleLength:
		errs.Add("title", fmt.Sprintf("El título no puede superar %d caracteres.", maxTitleLength))
	}
	if link := strings.TrimSpace(ec.Link); link != "" && !validLink(link) {
		errs.Add("link", "El link no es una URL válida.")
	}
	if cover == nil || len(cover.Content) == 0 {
		errs.Add("cover", "La portada es obligatoria.")
	}
	return errs.Err()
}

// Create stores the cover first and then inserts the event as planned with
// no date.
func (s *eventService) Create(ctx context.Context, userID uuid.UUID, ec *transfer.EventCreation, cover *transfer.File) (*models.Event, error) {
	if ec == nil {
		err := errors.New("event creation data is nil")
		slog.Error(err.Error())
		return nil, err
	}
	if err := validateEventCreation(ec, cover); err != nil {
		return nil, err
	}

	coverURL, err := store(ctx, s.storage, BucketCovers, *cover, imageTypes, CoverPath)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFile) {
			return nil, invalid("cover", err.Error())
		}
		return nil, err
	}

	event := &models.Event{
		Title:     strings.TrimSpace(ec.Title),
		Location:  optional(ec.Location),
		Link:      optional(ec.Link),
		CoverURL:  &coverURL,
		Status:    models.EventStatusPlanned,
		CreatedBy: userID,
	}

	if _, err := s.er.Create(ctx, nil, event); err != nil {
		cleanupURLs(context.WithoutCancel(ctx), s.storage, s.cleaner, BucketCovers, []string{coverURL})
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	return event, nil
}

func (s *eventService) List(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	if status != "" && !status.Valid() {
		return nil, invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	return s.er.List(ctx, status)
}

func (s *eventService) Get(ctx context.Context, eventID int64) (*models.Event, error) {
	if eventID <= 0 {
		return nil, ErrEventNotFound
	}
	event, err := s.er.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *eventService) ToggleStatus(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	event.ToggleStatus()
	if err := s.er.UpdateStatus(ctx, event.ID, event.Status); err != nil {
		return nil, fmt.Errorf("error updating status: %w", err)
	}
	return event, nil
}

func (s *eventService) AssignDate(ctx context.Context, eventID int64, es *transfer.EventSchedule) (*models.Event, error) {
	if es == nil {
		return nil, invalid("date_start", "La fecha es obligatoria.")
	}

	start, err := calendar.LocalInputToInstant(strings.TrimSpace(es.DateStart))
	if err != nil {
		return nil, invalid("date_start", err.Error())
	}

	var end *time.Time
	if es.DateEnd != nil && strings.TrimSpace(*es.DateEnd) != "" {
		t, err := calendar.LocalInputToInstant(strings.TrimSpace(*es.DateEnd))
		if err != nil {
			return nil, invalid("date_end", err.Error())
		}
		end = &t
	}

	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := event.Schedule(start, end); err != nil {
		return nil, invalid("date_end", err.Error())
	}

	if err := s.er.UpdateSchedule(ctx, event.ID, event.DateStart, event.DateEnd); err != nil {
		return nil, fmt.Errorf("error updating date: %w", err)
	}
	return event, nil
}

func (s *eventService) ClearDate(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	event.ClearDate()
	if err := s.er.UpdateSchedule(ctx, event.ID, nil, nil); err != nil {
		return nil, fmt.Errorf("error clearing date: %w", err)
	}
	return event, nil
}

func (s *eventService) ReplaceCover(ctx context.Context, eventID int64, cover *transfer.File) (*models.Event, error) {
	if cover == nil || len(cover.Content) == 0 {
		return nil, invalid("cover", "La portada es obligatoria.")
	}

	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	coverURL, err := store(ctx, s.storage, BucketCovers, *cover, imageTypes, CoverPath)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFile) {
			return nil, invalid("cover", err.Error())
		}
		return nil, err
	}

	if err := s.er.UpdateCover(ctx, event.ID, &coverURL); err != nil {
		cleanupURLs(context.WithoutCancel(ctx), s.storage, s.cleaner, BucketCovers, []string{coverURL})
		return nil, fmt.Errorf("error updating cover: %w", err)
	}

	old := event.CoverURL
	event.CoverURL = &coverURL
	if old != nil {
		cleanupURLs(context.WithoutCancel(ctx), s.storage, s.cleaner, BucketCovers, []string{*old})
	}
	return event, nil
}

// Remove deletes the event's reviews, photos, videos and then the event row,
// each table on its own. A failure stops the sequence without rolling back
// what was already removed. Stored files are cleaned up afterwards on a
// best-effort basis.
func (s *eventService) Remove(ctx context.Context, eventID int64) error {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return err
	}

	photos, err := s.pr.ListByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("error listing photos: %w", err)
	}
	videos, err := s.vr.ListByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("error listing videos: %w", err)
	}

	if err := s.rr.RemoveByEventID(ctx, eventID); err != nil {
		return fmt.Errorf("error removing reviews: %w", err)
	}
	if err := s.pr.RemoveByEventID(ctx, eventID); err != nil {
		return fmt.Errorf("error removing photos: %w", err)
	}
	if err := s.vr.RemoveByEventID(ctx, eventID); err != nil {
		return fmt.Errorf("error removing videos: %w", err)
	}
	if err := s.er.Remove(ctx, eventID); err != nil {
		return fmt.Errorf("error removing event: %w", err)
	}

	cleanupCtx := context.WithoutCancel(ctx)

	photoURLs := make([]string, 0, len(photos))
	for _, p := range photos {
		photoURLs = append(photoURLs, p.PhotoURL)
	}
	cleanupURLs(cleanupCtx, s.storage, s.cleaner, BucketAlbums, photoURLs)

	videoURLs := make([]string, 0, len(videos))
	for _, v := range videos {
		videoURLs = append(videoURLs, v.VideoURL)
	}
	cleanupURLs(cleanupCtx, s.storage, s.cleaner, BucketVideos, videoURLs)

	if event.CoverURL != nil {
		cleanupURLs(cleanupCtx, s.storage, s.cleaner, BucketCovers, []string{*event.CoverURL})
	}

	slog.Info("event removed", "event_id", eventID, "photos", len(photos), "videos", len(videos))
	return nil
}

func (s *eventService) Day(ctx context.Context, day string) (*calendar.DayView, error) {
	if _, err := calendar.ParseDayKey(day); err != nil {
		return nil, invalid("day", err.Error())
	}

	events, err := s.er.List(ctx, "")
	if err != nil {
		return nil, err
	}

	view := calendar.Day(events, day)
	return &view, nil
}

func (s *eventService) Month(ctx context.Context, month string) (map[string]int, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, invalid("month", fmt.Sprintf("invalid month %q", month))
	}

	events, err := s.er.List(ctx, "")
	if err != nil {
		return nil, err
	}

	return calendar.MonthCounts(events, month), nil
}

func (s *eventService) Feed(ctx context.Context, host string) (string, error) {
	events, err := s.er.List(ctx, "")
	if err != nil {
		return "", err
	}
	return calendar.Feed(events, host, time.Now()), nil
}
