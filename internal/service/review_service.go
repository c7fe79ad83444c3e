package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/maheshrc27/salidas/internal/models"
	"github.com/maheshrc27/salidas/internal/repository"
	"github.com/maheshrc27/salidas/internal/transfer"
)

const maxReviewLength = 4000

type ReviewService interface {
	Save(ctx context.Context, userID uuid.UUID, eventID int64, in *transfer.ReviewInput) (*models.Review, error)
	List(ctx context.Context, eventID int64) ([]models.Review, error)
}

type reviewService struct {
	er repository.EventRepository
	rr repository.ReviewRepository
}

func NewReviewService(er repository.EventRepository, rr repository.ReviewRepository) ReviewService {
	return &reviewService{er: er, rr: rr}
}

// Save writes the caller's review for the event, replacing any earlier one.
func (s *reviewService) Save(ctx context.Context, userID uuid.UUID, eventID int64, in *transfer.ReviewInput) (*models.Review, error) {
	if in == nil {
		in = &transfer.ReviewInput{}
	}

	errs := ValidationErrors{}
	if in.Rating != nil && (*in.Rating < models.MinRating || *in.Rating > models.MaxRating) {
		errs.Add("rating", fmt.Sprintf("La calificación debe estar entre %d y %d.", models.MinRating, models.MaxRating))
	}
	var text *string
	if in.ReviewText != nil {
		text = optional(*in.ReviewText)
		if text != nil && len([]rune(*text)) > maxReviewLength {
			errs.Add("review_text", fmt.Sprintf("La reseña no puede superar %d caracteres.", maxReviewLength))
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if _, err := doneEvent(ctx, s.er, eventID); err != nil {
		return nil, err
	}

	review := &models.Review{
		EventID:    eventID,
		UserID:     userID,
		Rating:     in.Rating,
		ReviewText: text,
	}
	if err := s.rr.Upsert(ctx, review); err != nil {
		return nil, fmt.Errorf("error saving review: %w", err)
	}
	return review, nil
}

func (s *reviewService) List(ctx context.Context, eventID int64) ([]models.Review, error) {
	if _, err := doneEvent(ctx, s.er, eventID); err != nil {
		return nil, err
	}
	return s.rr.ListByEventID(ctx, eventID)
}
