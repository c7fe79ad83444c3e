package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusPlanned EventStatus = "planned"
	EventStatusDone    EventStatus = "done"
)

var ErrDateEndBeforeStart = errors.New("date_end cannot be before date_start")

type Event struct {
	ID        int64       `db:"id" json:"id"`
	Title     string      `db:"title" json:"title"`
	Location  *string     `db:"location" json:"location"`
	Link      *string     `db:"link" json:"link"`
	CoverURL  *string     `db:"cover_url" json:"cover_url"`
	Status    EventStatus `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	CreatedBy uuid.UUID   `db:"created_by" json:"created_by"`
	DateStart *time.Time  `db:"date_start" json:"date_start"`
	DateEnd   *time.Time  `db:"date_end" json:"date_end"` // never read by the calendar
}

func (s EventStatus) Valid() bool {
	return s == EventStatusPlanned || s == EventStatusDone
}

// Toggled returns the other status. Anything that is not done becomes done.
func (s EventStatus) Toggled() EventStatus {
	if s == EventStatusDone {
		return EventStatusPlanned
	}
	return EventStatusDone
}

func (e *Event) IsDone() bool {
	return e.Status == EventStatusDone
}

// ToggleStatus flips planned <-> done. There is no terminal state.
func (e *Event) ToggleStatus() {
	e.Status = e.Status.Toggled()
}

// AssignDate overwrites date_start regardless of status. date_end is left as is.
func (e *Event) AssignDate(start time.Time) {
	t := start.UTC()
	e.DateStart = &t
}

// Schedule sets both ends of the event. A nil end clears date_end.
func (e *Event) Schedule(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return ErrDateEndBeforeStart
	}
	e.AssignDate(start)
	if end == nil {
		e.DateEnd = nil
		return nil
	}
	t := end.UTC()
	e.DateEnd = &t
	return nil
}

func (e *Event) ClearDate() {
	e.DateStart = nil
	e.DateEnd = nil
}

func (e *Event) IsDated() bool {
	return e.DateStart != nil
}
