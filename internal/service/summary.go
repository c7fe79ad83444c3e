package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/maheshrc27/salidas/internal/calendar"
)

// Summary builds the shareable plain-text résumé of an event.
func (s *eventService) Summary(ctx context.Context, eventID int64) (string, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return "", err
	}

	reviews, err := s.rr.ListByEventID(ctx, eventID)
	if err != nil {
		return "", err
	}
	photos, err := s.pr.ListByEventID(ctx, eventID)
	if err != nil {
		return "", err
	}
	videos, err := s.vr.ListByEventID(ctx, eventID)
	if err != nil {
		return "", err
	}
	profiles, err := s.pf.List(ctx)
	if err != nil {
		return "", err
	}

	names := make(map[uuid.UUID]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = deref(p.DisplayName, "")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Salida #%d: %s\n", event.ID, event.Title)
	fmt.Fprintf(&b, "Estado: %s\n", calendar.StatusLabel(event.Status))
	if event.DateStart != nil {
		fmt.Fprintf(&b, "Fecha: %s\n", calendar.FormatDateTime(*event.DateStart))
	} else {
		b.WriteString("Fecha: sin fecha\n")
	}
	fmt.Fprintf(&b, "Ubicación: %s\n", deref(event.Location, "-"))
	fmt.Fprintf(&b, "Link: %s\n", deref(event.Link, "-"))
	b.WriteString("\nRESEÑAS\n")
	if len(reviews) == 0 {
		b.WriteString("- (sin reseñas)\n")
	}
	for _, r := range reviews {
		name := names[r.UserID]
		if name == "" {
			name = r.UserID.String()
		}
		rating := "-"
		if r.Rating != nil {
			rating = fmt.Sprint(*r.Rating)
		}
		fmt.Fprintf(&b, "- %s: %s /5\n", name, rating)
		fmt.Fprintf(&b, "  %s\n", deref(r.ReviewText, ""))
	}
	fmt.Fprintf(&b, "\nFOTOS: %d\n", len(photos))
	fmt.Fprintf(&b, "VIDEOS: %d", len(videos))

	return b.String(), nil
}
