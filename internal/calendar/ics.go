package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/maheshrc27/salidas/internal/models"
)

// Feed renders the dated events as a VCALENDAR. Instants are written in UTC;
// subscribers apply their own zone.
func Feed(events []models.Event, host string, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//salidas//agenda//ES")

	for _, e := range events {
		if e.DateStart == nil {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("event-%d@%s", e.ID, host))
		ev.SetDtStampTime(now.UTC())
		ev.SetCreatedTime(e.CreatedAt.UTC())
		ev.SetStartAt(e.DateStart.UTC())
		if e.DateEnd != nil {
			ev.SetEndAt(e.DateEnd.UTC())
		}
		ev.SetSummary(e.Title)
		if e.Location != nil && *e.Location != "" {
			ev.SetLocation(*e.Location)
		}
		if e.Link != nil && *e.Link != "" {
			ev.SetURL(*e.Link)
		}
		ev.SetDescription(StatusLabel(e.Status) + " · " + FormatDateTime(*e.DateStart))
	}

	return cal.Serialize()
}

func StatusLabel(s models.EventStatus) string {
	if s == models.EventStatusDone {
		return "Realizada"
	}
	return "Pendiente"
}
