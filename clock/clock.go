// Package clock resolves the canonical "now" for attendance operations and
// owns the date/time display formats used across the API and exports.
package clock

import (
	"fmt"
	"strings"
	"time"

	_ "time/tzdata"
)

// Closed marks a weekday on which a store does not open at all.
const Closed = "Zatvorené"

// Location is the wall clock of the chain's stores.
var Location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Bratislava")
	if err != nil {
		// tzdata is compiled in, so this should not happen; CET is the
		// closest usable fallback.
		return time.FixedZone("CET", 3600)
	}
	return loc
}

var slovakDays = map[time.Weekday]string{
	time.Monday:    "Pondelok",
	time.Tuesday:   "Utorok",
	time.Wednesday: "Streda",
	time.Thursday:  "Štvrtok",
	time.Friday:    "Piatok",
	time.Saturday:  "Sobota",
	time.Sunday:    "Nedeľa",
}

// DayLabels lists the Slovak weekday labels in Monday-first order, the key
// set of the opening-hours and fix-override documents on the wire.
var DayLabels = []string{"Pondelok", "Utorok", "Streda", "Štvrtok", "Piatok", "Sobota", "Nedeľa"}

// SlovakWeekday returns the Slovak label for t's weekday.
func SlovakWeekday(t time.Time) string {
	return slovakDays[t.Weekday()]
}

// WeekdayForLabel is the inverse of SlovakWeekday.
func WeekdayForLabel(label string) (time.Weekday, bool) {
	for wd, l := range slovakDays {
		if l == label {
			return wd, true
		}
	}
	return 0, false
}

// Now resolves the request's reference instant: the client-supplied
// timestamp when present, otherwise the server clock projected into
// Location. Kiosks send timestamps from their own clock synchronisation.
func Now(clientTimestamp string) time.Time {
	if clientTimestamp != "" {
		if t, err := time.Parse(time.RFC3339, clientTimestamp); err == nil {
			return t.In(Location)
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", clientTimestamp, Location); err == nil {
			return t
		}
	}
	return time.Now().In(Location)
}

// FormatDate renders the zero-padded Slovak calendar date, e.g. 05.01.2024.
// The instant is projected into Location first, so values read back from a
// connection in another zone still render the store wall clock.
func FormatDate(t time.Time) string {
	return t.In(Location).Format("02.01.2006")
}

// FormatTime renders a 24-hour zero-padded clock time, e.g. 09:05:00, in
// Location.
func FormatTime(t time.Time) string {
	return t.In(Location).Format("15:04:05")
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CompareDays orders a and b by calendar date only, ignoring time of day
// and location offsets: -1, 0 or +1.
func CompareDays(a, b time.Time) int {
	ak, bk := a.Format("2006-01-02"), b.Format("2006-01-02")
	switch {
	case ak < bk:
		return -1
	case ak > bk:
		return 1
	default:
		return 0
	}
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// OnDay carries the clock time of at over to the calendar date of day.
func OnDay(day, at time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, at.Hour(), at.Minute(), at.Second(), 0, Location)
}

// RoundHalfHour snaps t to the nearest 30-minute boundary, with exact
// midpoints rounding up.
func RoundHalfHour(t time.Time) time.Time {
	const step = 30 * 60
	sec := (t.Unix() + step/2) / step * step
	return time.Unix(sec, 0).In(t.Location())
}

// AtTime places an "HH:mm" clock time onto the calendar date of ref.
func AtTime(ref time.Time, hhmm string) (time.Time, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(hhmm), "%d:%d", &h, &m); err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q", hhmm)
	}
	y, mo, d := ref.Date()
	return time.Date(y, mo, d, h, m, 0, 0, ref.Location()), nil
}

// ParseWindow splits an "HH:mm-HH:mm" opening-hours window into the opening
// and closing instants on the calendar date of ref.
func ParseWindow(window string, ref time.Time) (opens, closes time.Time, err error) {
	parts := strings.SplitN(window, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid opening hours %q", window)
	}
	if opens, err = AtTime(ref, parts[0]); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if closes, err = AtTime(ref, parts[1]); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return opens, closes, nil
}

// ParseISODate parses the "YYYY-MM-DD" dates sent by the admin UI.
func ParseISODate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), Location)
}
