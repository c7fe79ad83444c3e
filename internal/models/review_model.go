package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is unique per (event_id, user_id).
type Review struct {
	ID         int64     `db:"id" json:"id"`
	EventID    int64     `db:"event_id" json:"event_id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Rating     *int      `db:"rating" json:"rating"`
	ReviewText *string   `db:"review_text" json:"review_text"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
