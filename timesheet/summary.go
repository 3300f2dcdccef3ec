// Package timesheet aggregates attendance logs into per-employee summaries
// and the per-day attendance-code matrix used by the summary export.
package timesheet

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"dochadzka/models"
)

// Summary is one employee's aggregated row for a reporting period.
type Summary struct {
	Code           string
	Name           string
	StoreGroup     string
	RawSeconds     int
	RoundedSeconds int
	Lunches        int
	VacationHours  float64
}

// TotalHours is the rounded worked hours plus vacation hours, rendered
// with two decimals.
func (s *Summary) TotalHours() string {
	rounded, _ := strconv.ParseFloat(FormatHours(s.RoundedSeconds), 64)
	return strconv.FormatFloat(rounded+s.VacationHours, 'f', 2, 64)
}

// FormatHours renders seconds as hours with two decimals.
func FormatHours(sec int) string {
	return strconv.FormatFloat(float64(sec)/3600, 'f', 2, 64)
}

// The suffix after the last "- " of a display name clusters employees into
// store groups; names without one fall into "Ostatné".
var storeGroupRe = regexp.MustCompile(`.*-\s*(.+)$`)

func storeGroup(name string) string {
	m := storeGroupRe.FindStringSubmatch(name)
	if m == nil {
		return "Ostatné"
	}
	return strings.TrimSpace(m[1])
}

func secondsOfDay(t time.Time) int {
	h, m, s := t.Clock()
	return h*3600 + m*60 + s
}

func sortAsc(logs []models.AttendanceLog) []models.AttendanceLog {
	sorted := make([]models.AttendanceLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})
	return sorted
}

// Summarize groups logs by employee and accumulates worked seconds, lunch
// counts and vacation hours. Names resolve through the directory first,
// then the log's snapshot, then "Neznámy". Rows come back sorted by store
// group, then name.
//
// Arrival/departure pairs match within one calendar date, raw seconds from
// the punch times and rounded seconds from the rounded times; pairs where
// either side lacks a rounded time are skipped for the rounded sum only,
// and a departure earlier than its arrival contributes zero.
func Summarize(logs []models.AttendanceLog, directory models.Directory) []*Summary {
	byCode := make(map[string][]models.AttendanceLog)
	summaries := make(map[string]*Summary)

	for _, l := range logs {
		code := l.Code
		byCode[code] = append(byCode[code], l)

		s := summaries[code]
		if s == nil {
			name := directory[code]
			if name == "" {
				name = l.Name
			}
			if name == "" {
				name = "Neznámy"
			}
			s = &Summary{Code: code, Name: name, StoreGroup: storeGroup(name)}
			summaries[code] = s
		}

		switch l.Action {
		case models.ActionLunch:
			s.Lunches++
		case models.ActionVacation:
			s.VacationHours += l.VacationHours
		}
	}

	for code, empLogs := range byCode {
		s := summaries[code]
		sorted := sortAsc(empLogs)
		for i := range sorted {
			cur := sorted[i]
			if cur.Action != models.ActionArrival {
				continue
			}
			for j := i + 1; j < len(sorted); j++ {
				next := sorted[j]
				if next.Action != models.ActionDeparture || !sameDate(next, cur) {
					continue
				}
				if d := secondsOfDay(next.At) - secondsOfDay(cur.At); d > 0 {
					s.RawSeconds += d
				}
				if cur.RoundedAt != nil && next.RoundedAt != nil {
					if d := secondsOfDay(*next.RoundedAt) - secondsOfDay(*cur.RoundedAt); d > 0 {
						s.RoundedSeconds += d
					}
				}
				break
			}
		}
	}

	rows := make([]*Summary, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, s)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StoreGroup != rows[j].StoreGroup {
			return rows[i].StoreGroup < rows[j].StoreGroup
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

func sameDate(a, b models.AttendanceLog) bool {
	ay, am, ad := a.Day.Date()
	by, bm, bd := b.Day.Date()
	return ay == by && am == bm && ad == bd
}

// Row is one employee line of the day-of-month matrix. Cells are keyed
// "01".."31" and concatenate shift hours, lunch and vacation markers, e.g.
// "S8.00,O".
type Row struct {
	Name       string
	StoreGroup string
	Cells      map[string]string
}

// DayMatrix builds the per-day attendance-code table for the export. Days
// are bucketed by day-of-month only, exactly like the legacy export, so a
// range spanning a month boundary folds same-numbered days together.
func DayMatrix(logs []models.AttendanceLog, rows []*Summary, lastDay int) []Row {
	byCode := make(map[string][]models.AttendanceLog)
	for _, l := range logs {
		byCode[l.Code] = append(byCode[l.Code], l)
	}

	out := make([]Row, 0, len(rows))
	for _, s := range rows {
		row := Row{Name: s.Name, StoreGroup: s.StoreGroup, Cells: make(map[string]string, lastDay)}
		empLogs := byCode[s.Code]

		for d := 1; d <= lastDay; d++ {
			key := fmt.Sprintf("%02d", d)
			var dayLogs []models.AttendanceLog
			for _, l := range empLogs {
				if l.Day.Day() == d {
					dayLogs = append(dayLogs, l)
				}
			}
			row.Cells[key] = dayCell(dayLogs)
		}
		out = append(out, row)
	}
	return out
}

func dayCell(dayLogs []models.AttendanceLog) string {
	hasShift, hasLunch := false, false
	var vacation *models.AttendanceLog
	for i := range dayLogs {
		switch dayLogs[i].Action {
		case models.ActionArrival:
			hasShift = true
		case models.ActionLunch:
			hasLunch = true
		case models.ActionVacation:
			if vacation == nil {
				vacation = &dayLogs[i]
			}
		}
	}

	var parts []string
	if hasShift {
		if sec := roundedSecondsFor(dayLogs); sec > 0 {
			parts = append(parts, "S"+FormatHours(sec))
		} else {
			parts = append(parts, "S")
		}
	}
	if hasLunch {
		parts = append(parts, "O")
	}
	if vacation != nil {
		dur := strconv.FormatFloat(vacation.VacationHours, 'f', -1, 64)
		if dur != "" && dur != "0" {
			parts = append(parts, "D"+dur)
		} else {
			parts = append(parts, "D")
		}
	}
	return strings.Join(parts, ",")
}

// roundedSecondsFor pairs arrivals with the next departure among the day's
// logs sorted by time of day, summing rounded diffs.
func roundedSecondsFor(dayLogs []models.AttendanceLog) int {
	sorted := make([]models.AttendanceLog, len(dayLogs))
	copy(sorted, dayLogs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return secondsOfDay(sorted[i].At) < secondsOfDay(sorted[j].At)
	})

	total := 0
	for i := range sorted {
		cur := sorted[i]
		if cur.Action != models.ActionArrival {
			continue
		}
		for j := i + 1; j < len(sorted); j++ {
			next := sorted[j]
			if next.Action != models.ActionDeparture {
				continue
			}
			if cur.RoundedAt != nil && next.RoundedAt != nil {
				if d := secondsOfDay(*next.RoundedAt) - secondsOfDay(*cur.RoundedAt); d > 0 {
					total += d
				}
			}
			break
		}
	}
	return total
}
