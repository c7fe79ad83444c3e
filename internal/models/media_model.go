package models

import (
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID        int64     `db:"id" json:"id"`
	EventID   int64     `db:"event_id" json:"event_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	PhotoURL  string    `db:"photo_url" json:"photo_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Video struct {
	ID        int64     `db:"id" json:"id"`
	EventID   int64     `db:"event_id" json:"event_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	VideoURL  string    `db:"video_url" json:"video_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
