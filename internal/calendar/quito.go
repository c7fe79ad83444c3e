// Package calendar maps stored UTC instants onto the fixed Quito civil
// calendar used for every date the application displays.
package calendar

import (
	"fmt"
	"time"
)

// LocalInputLayout is the wall-clock form exchanged with date pickers.
const LocalInputLayout = "2006-01-02T15:04"

// DayKeyLayout is the sortable civil day key.
const DayKeyLayout = "2006-01-02"

// Offset is a fixed distance from UTC. It carries no daylight saving rules,
// so it is only correct for zones that never observe DST.
type Offset struct {
	Name  string
	Delta time.Duration
}

// Quito is UTC-5 all year round.
var Quito = Offset{Name: "ECT", Delta: -5 * time.Hour}

// Display is the offset every mapper function below is evaluated in.
var Display = Quito

var localInputLayouts = []string{
	LocalInputLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

var monthAbbr = [...]string{
	time.January:   "ene",
	time.February:  "feb",
	time.March:     "mar",
	time.April:     "abr",
	time.May:       "may",
	time.June:      "jun",
	time.July:      "jul",
	time.August:    "ago",
	time.September: "sept",
	time.October:   "oct",
	time.November:  "nov",
	time.December:  "dic",
}

// CivilDate is a calendar day with no time or zone attached.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func (d CivilDate) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CivilDate) String() string {
	return d.Key()
}

// ParseDayKey parses a YYYY-MM-DD key.
func ParseDayKey(key string) (CivilDate, error) {
	t, err := time.Parse(DayKeyLayout, key)
	if err != nil {
		return CivilDate{}, fmt.Errorf("invalid day %q: %w", key, err)
	}
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Location returns a fixed *time.Location for the offset.
func (o Offset) Location() *time.Location {
	return time.FixedZone(o.Name, int(o.Delta/time.Second))
}

// wall shifts t so that its UTC fields read as the offset's wall clock.
func (o Offset) wall(t time.Time) time.Time {
	return t.UTC().Add(o.Delta)
}

func (o Offset) ToCivilDate(t time.Time) CivilDate {
	w := o.wall(t)
	return CivilDate{Year: w.Year(), Month: w.Month(), Day: w.Day()}
}

func (o Offset) CivilDateKey(t time.Time) string {
	return o.ToCivilDate(t).Key()
}

// FormatDateTime renders e.g. "8 feb 2026, 16:00".
func (o Offset) FormatDateTime(t time.Time) string {
	w := o.wall(t)
	return fmt.Sprintf("%d %s %d, %02d:%02d", w.Day(), monthAbbr[w.Month()], w.Year(), w.Hour(), w.Minute())
}

func (o Offset) FormatTime(t time.Time) string {
	w := o.wall(t)
	return fmt.Sprintf("%02d:%02d", w.Hour(), w.Minute())
}

// LocalInputToInstant reads a wall-clock string with no offset as local time
// at o, i.e. UTC = local - Delta.
func (o Offset) LocalInputToInstant(s string) (time.Time, error) {
	for _, layout := range localInputLayouts {
		if local, err := time.Parse(layout, s); err == nil {
			return local.Add(-o.Delta).UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid local date time %q, expected %s", s, LocalInputLayout)
}

// InstantToLocalInput is the inverse of LocalInputToInstant at minute precision.
func (o Offset) InstantToLocalInput(t time.Time) string {
	return o.wall(t).Format(LocalInputLayout)
}

func ToCivilDate(t time.Time) CivilDate { return Display.ToCivilDate(t) }

func CivilDateKey(t time.Time) string { return Display.CivilDateKey(t) }

func FormatDateTime(t time.Time) string { return Display.FormatDateTime(t) }

func FormatTime(t time.Time) string { return Display.FormatTime(t) }

func LocalInputToInstant(s string) (time.Time, error) { return Display.LocalInputToInstant(s) }

func InstantToLocalInput(t time.Time) string { return Display.InstantToLocalInput(t) }

// DefaultEventTime proposes 19:00 on day as read on the viewer's own clock,
// not on Display. Callers that want Quito semantics pass Display.Location().
func DefaultEventTime(day time.Time, viewer *time.Location) string {
	if viewer == nil {
		viewer = time.Local
	}
	d := day.In(viewer)
	return time.Date(d.Year(), d.Month(), d.Day(), 19, 0, 0, 0, viewer).Format(LocalInputLayout)
}
