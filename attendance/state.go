// Package attendance validates punch actions against an employee's log
// history and store configuration, and computes the rounded timestamps
// recorded alongside the raw punch time.
package attendance

import (
	"sort"
	"strings"
	"time"

	"dochadzka/clock"
	"dochadzka/models"
)

// sortDesc orders logs newest first by punch instant. Equal instants keep
// insertion order, which follows the generated record ids.
func sortDesc(logs []models.AttendanceLog) []models.AttendanceLog {
	sorted := make([]models.AttendanceLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.After(sorted[j].At)
	})
	return sorted
}

// LastShiftLog returns the employee's most recent arrival or departure
// entry, or nil when none exists.
func LastShiftLog(logs []models.AttendanceLog, code string) *models.AttendanceLog {
	search := strings.TrimSpace(code)
	sorted := sortDesc(logs)
	for i := range sorted {
		l := &sorted[i]
		if strings.TrimSpace(l.Code) == search && l.Action.IsShift() {
			return l
		}
	}
	return nil
}

// ActiveShifts lists the entries of employees whose most recent shift
// action is an arrival, i.e. everyone currently clocked in.
func ActiveShifts(logs []models.AttendanceLog) []models.AttendanceLog {
	sorted := sortDesc(logs)
	seen := make(map[string]bool)
	var active []models.AttendanceLog
	for _, l := range sorted {
		code := strings.TrimSpace(l.Code)
		if code == "" || !l.Action.IsShift() || seen[code] {
			continue
		}
		seen[code] = true
		if l.Action == models.ActionArrival {
			active = append(active, l)
		}
	}
	return active
}

// CheckArrival validates a non-manual clock-in: the store's capacity must
// not be exhausted and the employee must not be clocked in already.
func CheckArrival(logs []models.AttendanceLog, code, store string, limit int) error {
	if limit > 0 {
		var details []string
		count := 0
		for _, l := range ActiveShifts(logs) {
			if l.Store != store {
				continue
			}
			count++
			details = append(details, l.Name+" "+clock.FormatDate(l.Day)+" "+clock.FormatTime(l.At))
		}
		if count >= limit {
			return errf("ERR_LIMIT_EXCEEDED|%s", strings.Join(details, "\n"))
		}
	}

	if last := LastShiftLog(logs, code); last != nil && last.Action == models.ActionArrival {
		from := last.Store
		if from == "" {
			from = "neznámej"
		}
		return errf("Zabudol si sa odhlásiť. Napíš manažérovi, ináč sa ti nezaráta zmena. Si prihlásený od %s %s na prevádzke %s",
			clock.FormatDate(last.Day), clock.FormatTime(last.At), from)
	}
	return nil
}

// CheckDeparture validates a non-manual clock-out against the employee's
// open arrival: there must be one, at the same store, from today.
func CheckDeparture(logs []models.AttendanceLog, code, store string, now time.Time) error {
	last := LastShiftLog(logs, code)
	if last == nil || last.Action != models.ActionArrival {
		return errf("ERR_NO_ARRIVAL")
	}
	// Kept from the legacy rule order; the check above already covers it.
	if last.Action == models.ActionDeparture {
		return errf("Zabudol si sa prihlásiť. Napíš manažérovi ináč sa ti nezapíše zmena.")
	}
	if last.Store != "" && last.Store != store {
		return errf("ERR_WRONG_STORE:%s", last.Store)
	}
	if !clock.SameDay(last.Day, now) {
		return errf("ERR_NEW_DAY")
	}
	return nil
}

// StoreDay is the configuration applying to one store on one weekday: the
// opening window plus any enabled fix-rounding override times.
type StoreDay struct {
	Window     string // "HH:mm-HH:mm", clock.Closed, or "" when unset
	FixOpening string // "HH:mm" when the opening override applies today
	FixClosing string
}

// ResolveStamp computes the rounded timestamp recorded next to the raw
// punch time. Manual entries skip the opening-hours rules entirely and
// round unconditionally, as do stores without a configured window.
func ResolveStamp(action models.ActionKind, now time.Time, day StoreDay, manual bool) (time.Time, error) {
	if manual || day.Window == "" {
		return clock.RoundHalfHour(now), nil
	}
	if day.Window == clock.Closed {
		verb := "prihlásiť"
		if action == models.ActionDeparture {
			verb = "odhlásiť"
		}
		return time.Time{}, errf("ERR_STORE_CLOSED_DAY|Je zatvorené. Nemôžeš sa %s!", verb)
	}

	opens, closes, err := clock.ParseWindow(day.Window, now)
	if err != nil {
		// A malformed window behaves like an unconfigured day.
		return clock.RoundHalfHour(now), nil
	}

	if action == models.ActionArrival {
		switch {
		case now.Before(opens):
			if day.FixOpening != "" {
				if fix, ferr := clock.AtTime(now, day.FixOpening); ferr == nil {
					return fix, nil
				}
			}
			return opens, nil
		case now.After(closes):
			return time.Time{}, errf("ERR_STORE_CLOSED|Je zatvorené nemôžeš sa prihlásiť!")
		default:
			return clock.RoundHalfHour(now), nil
		}
	}

	switch {
	case now.Before(opens):
		return time.Time{}, errf("ERR_STORE_CLOSED_DEPARTURE|Je zatvorené! Nemôžeš sa odhlásiť.")
	case now.After(closes):
		if day.FixClosing != "" {
			if fix, ferr := clock.AtTime(now, day.FixClosing); ferr == nil {
				return fix, nil
			}
		}
		return closes, nil
	default:
		return clock.RoundHalfHour(now), nil
	}
}

// CheckLunch validates a lunch entry for the given calendar day: the
// employee must have clocked in that day at the selected store and must not
// have had lunch yet.
func CheckLunch(logs []models.AttendanceLog, code string, day time.Time, store string) error {
	search := strings.TrimSpace(code)
	var arrival *models.AttendanceLog
	hadLunch := false
	for i := range logs {
		l := &logs[i]
		if strings.TrimSpace(l.Code) != search || !clock.SameDay(l.Day, day) {
			continue
		}
		switch l.Action {
		case models.ActionArrival:
			if arrival == nil {
				arrival = l
			}
		case models.ActionLunch:
			hadLunch = true
		}
	}
	if arrival == nil {
		return errf("ERR_NOT_WORKED")
	}
	if hadLunch {
		return errf("ERR_ALREADY_HAD_LUNCH")
	}
	if arrival.Store != "" && arrival.Store != store {
		return errf("ERR_WRONG_STORE:%s", arrival.Store)
	}
	return nil
}

// Vacations returns the employee's vacation entries for the given day,
// used for duplicate detection and overwrite deletes.
func Vacations(logs []models.AttendanceLog, code string, day time.Time) []models.AttendanceLog {
	var found []models.AttendanceLog
	for _, l := range logs {
		if l.Code == code && l.Action == models.ActionVacation && clock.SameDay(l.Day, day) {
			found = append(found, l)
		}
	}
	return found
}

// PlanVacation decides what recording a vacation replaces: the entries to
// delete when overwrite is set, ErrDuplicateVacation when one exists and it
// is not.
func PlanVacation(logs []models.AttendanceLog, code string, day time.Time, overwrite bool) ([]models.AttendanceLog, error) {
	existing := Vacations(logs, code, day)
	if len(existing) > 0 && !overwrite {
		return nil, ErrDuplicateVacation
	}
	return existing, nil
}

// DeleteRangeTargets selects the ids of entries in the given action family
// within an inclusive date range. Store "all" spans every store, anything
// else matches exactly.
func DeleteRangeTargets(logs []models.AttendanceLog, actions []models.ActionKind, start, end time.Time, store string) []string {
	var ids []string
	for _, l := range logs {
		matched := false
		for _, a := range actions {
			if l.Action == a {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if clock.CompareDays(l.Day, start) < 0 || clock.CompareDays(l.Day, end) > 0 {
			continue
		}
		if store != "all" && l.Store != store {
			continue
		}
		ids = append(ids, l.ID)
	}
	return ids
}
