package calendar

import (
	"slices"
	"strings"

	"github.com/maheshrc27/salidas/internal/models"
)

type DayView struct {
	Day     string         `json:"day"`
	Events  []models.Event `json:"events"`
	Undated []models.Event `json:"undated"`
}

// EventsOnDay keeps the dated events whose civil day key equals dayKey,
// ordered by date_start ascending.
func EventsOnDay(events []models.Event, dayKey string) []models.Event {
	out := make([]models.Event, 0)
	for _, e := range events {
		if e.DateStart == nil {
			continue
		}
		if CivilDateKey(*e.DateStart) == dayKey {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Event) int {
		return a.DateStart.Compare(*b.DateStart)
	})
	return out
}

func Undated(events []models.Event) []models.Event {
	out := make([]models.Event, 0)
	for _, e := range events {
		if e.DateStart == nil {
			out = append(out, e)
		}
	}
	return out
}

func Day(events []models.Event, dayKey string) DayView {
	return DayView{
		Day:     dayKey,
		Events:  EventsOnDay(events, dayKey),
		Undated: Undated(events),
	}
}

// MonthCounts counts dated events per civil day for a YYYY-MM month,
// used to highlight calendar cells.
func MonthCounts(events []models.Event, month string) map[string]int {
	counts := make(map[string]int)
	prefix := month + "-"
	for _, e := range events {
		if e.DateStart == nil {
			continue
		}
		key := CivilDateKey(*e.DateStart)
		if strings.HasPrefix(key, prefix) {
			counts[key]++
		}
	}
	return counts
}
