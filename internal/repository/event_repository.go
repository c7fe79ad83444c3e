package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/salidas/internal/models"
)

type EventRepository interface {
	Create(ctx context.Context, tx *sql.Tx, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, status models.EventStatus) ([]models.Event, error)
	UpdateStatus(ctx context.Context, id int64, status models.EventStatus) error
	UpdateSchedule(ctx context.Context, id int64, dateStart, dateEnd *time.Time) error
	UpdateCover(ctx context.Context, id int64, coverURL *string) error
	ListCoverURLs(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, id int64) error
}

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, location, link, cover_url, status, created_at, created_by, date_start, date_end`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Location, &e.Link, &e.CoverURL, &e.Status, &e.CreatedAt, &e.CreatedBy, &e.DateStart, &e.DateEnd)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) Create(ctx context.Context, tx *sql.Tx, event *models.Event) (int64, error) {
	query := `
		INSERT INTO events (title, location, link, cover_url, status, created_by, date_start, date_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	args := []any{event.Title, event.Location, event.Link, event.CoverURL, event.Status, event.CreatedBy, event.DateStart, event.DateEnd}

	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return event.ID, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return event, nil
}

// List returns every event, newest first. An empty status means no filter.
func (r *eventRepository) List(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	var rows *sql.Rows
	var err error

	if status == "" {
		rows, err = r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events WHERE status = $1 ORDER BY created_at DESC`, status)
	}
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return events, nil
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id int64, status models.EventStatus) error {
	query := `UPDATE events SET status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *eventRepository) UpdateSchedule(ctx context.Context, id int64, dateStart, dateEnd *time.Time) error {
	query := `
		UPDATE events
		SET date_start = $1,
			date_end = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, dateStart, dateEnd, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *eventRepository) UpdateCover(ctx context.Context, id int64, coverURL *string) error {
	query := `UPDATE events SET cover_url = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, coverURL, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *eventRepository) ListCoverURLs(ctx context.Context) ([]string, error) {
	return listStrings(ctx, r.db, `SELECT cover_url FROM events WHERE cover_url IS NOT NULL`)
}

func (r *eventRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func listStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		out = append(out, s)
	}

	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return out, nil
}
