package models

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"dochadzka/clock"
)

// ActionKind is the closed set of attendance actions. The values are the
// English names used on the wire; Slovak labels are presentation only.
type ActionKind string

const (
	ActionArrival   ActionKind = "arrival"
	ActionDeparture ActionKind = "departure"
	ActionLunch     ActionKind = "lunch"
	ActionVacation  ActionKind = "vacation"
)

var actionLabels = map[ActionKind]string{
	ActionArrival:   "Príchod",
	ActionDeparture: "Odchod",
	ActionLunch:     "Obed",
	ActionVacation:  "Dovolenka",
}

// Label returns the Slovak display label, as persisted by the legacy
// system and still shown in exports.
func (a ActionKind) Label() string {
	return actionLabels[a]
}

// IsShift reports whether the action is a clock-in or clock-out.
func (a ActionKind) IsShift() bool {
	return a == ActionArrival || a == ActionDeparture
}

// ParseAction accepts the English action names used on the wire as well as
// the Slovak labels found in legacy records.
func ParseAction(s string) (ActionKind, bool) {
	switch strings.TrimSpace(s) {
	case "arrival", "Príchod":
		return ActionArrival, true
	case "departure", "Odchod":
		return ActionDeparture, true
	case "lunch", "Obed":
		return ActionLunch, true
	case "vacation", "Dovolenka":
		return ActionVacation, true
	}
	return "", false
}

// AttendanceLog is one punch record. Day, At and RoundedAt are structured
// values; the D.M.YYYY / HH:mm:ss strings of the legacy store exist only in
// the wire view.
type AttendanceLog struct {
	ID            string `gorm:"primaryKey;size:40"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Code          string     `gorm:"not null;index;size:32"`
	Name          string     `gorm:"not null;size:200"`
	Day           time.Time  `gorm:"not null;type:date;index"`
	At            time.Time  `gorm:"not null"`
	RoundedAt     *time.Time // nil for lunch and vacation entries
	Action        ActionKind `gorm:"not null;size:20;index"`
	Store         string     `gorm:"size:100"`
	PhotoURL      string     `gorm:"size:300"`
	VacationHours float64
}

var lastLogID int64

// NewLogID generates the log_<epoch millis> record key. Two punches in the
// same millisecond would collide on the primary key, so the counter bumps
// past the last issued value.
func NewLogID() string {
	ms := time.Now().UnixMilli()
	for {
		prev := atomic.LoadInt64(&lastLogID)
		if ms <= prev {
			ms = prev + 1
		}
		if atomic.CompareAndSwapInt64(&lastLogID, prev, ms) {
			return fmt.Sprintf("log_%d", ms)
		}
	}
}

// LogView is the JSON shape of a log entry, with dates and times rendered
// in the Slovak display formats the kiosk expects.
type LogView struct {
	ID             string `json:"id"`
	Kod            string `json:"kod"`
	Meno           string `json:"meno"`
	Datum          string `json:"datum"`
	Cas            string `json:"cas"`
	ZaokruhlenyCas string `json:"zaokruhlenyCas"`
	Akcia          string `json:"akcia"`
	Prevadzka      string `json:"prevadzka"`
	Foto           string `json:"foto"`
	Dovolenka      string `json:"dovolenka,omitempty"`
}

// View renders the wire representation of the log entry.
func (l *AttendanceLog) View() LogView {
	v := LogView{
		ID:        l.ID,
		Kod:       l.Code,
		Meno:      l.Name,
		Datum:     clock.FormatDate(l.Day),
		Akcia:     l.Action.Label(),
		Prevadzka: l.Store,
		Foto:      l.PhotoURL,
	}
	if l.Action != ActionVacation {
		v.Cas = clock.FormatTime(l.At)
	}
	if l.RoundedAt != nil {
		v.ZaokruhlenyCas = clock.FormatTime(*l.RoundedAt)
	}
	if l.Action == ActionVacation {
		v.Dovolenka = FormatVacation(l.VacationHours)
	}
	return v
}

// FormatVacation renders a vacation duration the way the legacy store kept
// it, e.g. "8 hod".
func FormatVacation(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64) + " hod"
}

// ParseHours extracts the leading numeric value of a duration input, which
// may arrive as "8", "7.5" or "8 hod".
func ParseHours(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
