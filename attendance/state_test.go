package attendance

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"dochadzka/clock"
	"dochadzka/models"
)

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04:05", s, clock.Location)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

func entry(t *testing.T, code, name string, action models.ActionKind, store, stamp string) models.AttendanceLog {
	t.Helper()
	ts := at(t, stamp)
	return models.AttendanceLog{
		ID:     models.NewLogID(),
		Code:   code,
		Name:   name,
		Day:    clock.DateOf(ts),
		At:     ts,
		Action: action,
		Store:  store,
	}
}

func TestLastShiftLog(t *testing.T) {
	logs := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "Pekáreň - Centrum", "2024-01-10T06:55:00"),
		entry(t, "101", "Anna", models.ActionLunch, "Pekáreň - Centrum", "2024-01-10T12:00:00"),
		entry(t, "202", "Beáta", models.ActionArrival, "Pekáreň - Centrum", "2024-01-10T07:10:00"),
		entry(t, "101", "Anna", models.ActionDeparture, "Pekáreň - Centrum", "2024-01-10T15:05:00"),
	}

	last := LastShiftLog(logs, "101")
	if last == nil || last.Action != models.ActionDeparture {
		t.Fatalf("LastShiftLog(101) = %+v, want the departure", last)
	}
	if last := LastShiftLog(logs, " 202 "); last == nil || last.Action != models.ActionArrival {
		t.Fatalf("LastShiftLog trimmed lookup failed: %+v", last)
	}
	if LastShiftLog(logs, "999") != nil {
		t.Error("LastShiftLog found an entry for an unknown code")
	}
}

func TestActiveShifts(t *testing.T) {
	logs := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "A", "2024-01-10T06:55:00"),
		entry(t, "202", "Beáta", models.ActionArrival, "A", "2024-01-10T07:00:00"),
		entry(t, "202", "Beáta", models.ActionDeparture, "A", "2024-01-10T15:00:00"),
		entry(t, "303", "Cyril", models.ActionLunch, "A", "2024-01-10T12:00:00"),
	}

	active := ActiveShifts(logs)
	if len(active) != 1 {
		t.Fatalf("ActiveShifts = %d entries, want 1", len(active))
	}
	if active[0].Code != "101" {
		t.Errorf("active employee = %s, want 101", active[0].Code)
	}
}

func TestCheckArrivalDoubleClockIn(t *testing.T) {
	logs := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "Pekáreň - Centrum", "2024-01-09T06:55:00"),
	}

	err := CheckArrival(logs, "101", "Pekáreň - Centrum", 0)
	if err == nil {
		t.Fatal("CheckArrival allowed a second clock-in")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "Zabudol si sa odhlásiť.") {
		t.Errorf("unexpected message: %q", msg)
	}
	if !strings.Contains(msg, "09.01.2024") || !strings.Contains(msg, "06:55:00") {
		t.Errorf("message is missing the open arrival details: %q", msg)
	}
	if !strings.Contains(msg, "Pekáreň - Centrum") {
		t.Errorf("message is missing the store: %q", msg)
	}
}

func TestCheckArrivalUnknownStoreFallback(t *testing.T) {
	arrival := entry(t, "101", "Anna", models.ActionArrival, "", "2024-01-09T06:55:00")
	err := CheckArrival([]models.AttendanceLog{arrival}, "101", "A", 0)
	if err == nil || !strings.Contains(err.Error(), "na prevádzke neznámej") {
		t.Errorf("expected the unknown-store fallback, got %v", err)
	}
}

func TestCheckArrivalCapacity(t *testing.T) {
	logs := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "A", "2024-01-10T06:55:00"),
		entry(t, "202", "Beáta", models.ActionArrival, "A", "2024-01-10T07:00:00"),
		entry(t, "303", "Cyril", models.ActionArrival, "B", "2024-01-10T07:05:00"),
	}

	err := CheckArrival(logs, "404", "A", 2)
	if err == nil {
		t.Fatal("CheckArrival allowed a clock-in over the limit")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "ERR_LIMIT_EXCEEDED|") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if !strings.Contains(msg, "Anna") || !strings.Contains(msg, "Beáta") {
		t.Errorf("details are missing the occupants: %q", msg)
	}
	if strings.Contains(msg, "Cyril") {
		t.Errorf("details include an employee from another store: %q", msg)
	}

	// The other store still has room, and limit 0 means unlimited.
	if err := CheckArrival(logs, "404", "B", 2); err != nil {
		t.Errorf("CheckArrival(B) = %v", err)
	}
	if err := CheckArrival(logs, "404", "A", 0); err != nil {
		t.Errorf("CheckArrival(unlimited) = %v", err)
	}
}

func TestCheckDeparture(t *testing.T) {
	now := at(t, "2024-01-10T15:00:00")

	if err := CheckDeparture(nil, "101", "A", now); err == nil || err.Error() != "ERR_NO_ARRIVAL" {
		t.Errorf("no history: %v", err)
	}

	closed := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "A", "2024-01-09T07:00:00"),
		entry(t, "101", "Anna", models.ActionDeparture, "A", "2024-01-09T15:00:00"),
	}
	if err := CheckDeparture(closed, "101", "A", now); err == nil || err.Error() != "ERR_NO_ARRIVAL" {
		t.Errorf("closed shift: %v", err)
	}

	wrongStore := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "B", "2024-01-10T07:00:00"),
	}
	if err := CheckDeparture(wrongStore, "101", "A", now); err == nil || err.Error() != "ERR_WRONG_STORE:B" {
		t.Errorf("wrong store: %v", err)
	}

	yesterday := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "A", "2024-01-09T07:00:00"),
	}
	if err := CheckDeparture(yesterday, "101", "A", now); err == nil || err.Error() != "ERR_NEW_DAY" {
		t.Errorf("stale arrival: %v", err)
	}

	open := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "A", "2024-01-10T07:00:00"),
	}
	if err := CheckDeparture(open, "101", "A", now); err != nil {
		t.Errorf("valid departure: %v", err)
	}
}

func TestResolveStampManualAndUnconfigured(t *testing.T) {
	now := at(t, "2024-01-10T05:40:00")

	got, err := ResolveStamp(models.ActionArrival, now, StoreDay{Window: clock.Closed}, true)
	if err != nil {
		t.Fatalf("manual entry on a closed day: %v", err)
	}
	if clock.FormatTime(got) != "05:30:00" {
		t.Errorf("manual rounding = %s", clock.FormatTime(got))
	}

	got, err = ResolveStamp(models.ActionArrival, now, StoreDay{}, false)
	if err != nil || clock.FormatTime(got) != "05:30:00" {
		t.Errorf("unconfigured store = %s, %v", clock.FormatTime(got), err)
	}

	// A malformed window behaves like an unconfigured day.
	got, err = ResolveStamp(models.ActionArrival, now, StoreDay{Window: "garbage"}, false)
	if err != nil || clock.FormatTime(got) != "05:30:00" {
		t.Errorf("malformed window = %s, %v", clock.FormatTime(got), err)
	}
}

func TestResolveStampClosedDay(t *testing.T) {
	now := at(t, "2024-01-10T10:00:00")
	day := StoreDay{Window: clock.Closed}

	_, err := ResolveStamp(models.ActionArrival, now, day, false)
	if err == nil || err.Error() != "ERR_STORE_CLOSED_DAY|Je zatvorené. Nemôžeš sa prihlásiť!" {
		t.Errorf("closed-day arrival: %v", err)
	}
	_, err = ResolveStamp(models.ActionDeparture, now, day, false)
	if err == nil || err.Error() != "ERR_STORE_CLOSED_DAY|Je zatvorené. Nemôžeš sa odhlásiť!" {
		t.Errorf("closed-day departure: %v", err)
	}
}

func TestResolveStampArrival(t *testing.T) {
	day := StoreDay{Window: "07:00-18:00"}

	got, err := ResolveStamp(models.ActionArrival, at(t, "2024-01-10T06:40:00"), day, false)
	if err != nil || clock.FormatTime(got) != "07:00:00" {
		t.Errorf("early arrival clamps to opening: %s, %v", clock.FormatTime(got), err)
	}

	withFix := StoreDay{Window: "07:00-18:00", FixOpening: "06:30"}
	got, err = ResolveStamp(models.ActionArrival, at(t, "2024-01-10T06:40:00"), withFix, false)
	if err != nil || clock.FormatTime(got) != "06:30:00" {
		t.Errorf("fix opening override: %s, %v", clock.FormatTime(got), err)
	}

	_, err = ResolveStamp(models.ActionArrival, at(t, "2024-01-10T18:30:00"), day, false)
	if err == nil || err.Error() != "ERR_STORE_CLOSED|Je zatvorené nemôžeš sa prihlásiť!" {
		t.Errorf("late arrival: %v", err)
	}

	got, err = ResolveStamp(models.ActionArrival, at(t, "2024-01-10T09:14:00"), day, false)
	if err != nil || clock.FormatTime(got) != "09:00:00" {
		t.Errorf("in-window arrival rounds: %s, %v", clock.FormatTime(got), err)
	}
}

func TestResolveStampDeparture(t *testing.T) {
	day := StoreDay{Window: "07:00-18:00"}

	_, err := ResolveStamp(models.ActionDeparture, at(t, "2024-01-10T06:40:00"), day, false)
	if err == nil || err.Error() != "ERR_STORE_CLOSED_DEPARTURE|Je zatvorené! Nemôžeš sa odhlásiť." {
		t.Errorf("pre-opening departure: %v", err)
	}

	got, err := ResolveStamp(models.ActionDeparture, at(t, "2024-01-10T18:20:00"), day, false)
	if err != nil || clock.FormatTime(got) != "18:00:00" {
		t.Errorf("late departure clamps to closing: %s, %v", clock.FormatTime(got), err)
	}

	withFix := StoreDay{Window: "07:00-18:00", FixClosing: "18:30"}
	got, err = ResolveStamp(models.ActionDeparture, at(t, "2024-01-10T18:20:00"), withFix, false)
	if err != nil || clock.FormatTime(got) != "18:30:00" {
		t.Errorf("fix closing override: %s, %v", clock.FormatTime(got), err)
	}

	got, err = ResolveStamp(models.ActionDeparture, at(t, "2024-01-10T15:50:00"), day, false)
	if err != nil || clock.FormatTime(got) != "16:00:00" {
		t.Errorf("in-window departure rounds: %s, %v", clock.FormatTime(got), err)
	}
}

func TestCheckLunch(t *testing.T) {
	day := at(t, "2024-01-10T00:00:00")

	if err := CheckLunch(nil, "101", day, "A"); err == nil || err.Error() != "ERR_NOT_WORKED" {
		t.Errorf("no arrival: %v", err)
	}

	logs := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "A", "2024-01-10T07:00:00"),
		entry(t, "101", "Anna", models.ActionLunch, "A", "2024-01-10T12:00:00"),
	}
	if err := CheckLunch(logs, "101", day, "A"); err == nil || err.Error() != "ERR_ALREADY_HAD_LUNCH" {
		t.Errorf("second lunch: %v", err)
	}

	// The duplicate check wins over the store mismatch.
	if err := CheckLunch(logs, "101", day, "B"); err == nil || err.Error() != "ERR_ALREADY_HAD_LUNCH" {
		t.Errorf("duplicate precedence: %v", err)
	}

	elsewhere := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "A", "2024-01-10T07:00:00"),
	}
	if err := CheckLunch(elsewhere, "101", day, "B"); err == nil || err.Error() != "ERR_WRONG_STORE:A" {
		t.Errorf("wrong store: %v", err)
	}
	if err := CheckLunch(elsewhere, "101", day, "A"); err != nil {
		t.Errorf("valid lunch: %v", err)
	}

	yesterday := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "A", "2024-01-09T07:00:00"),
	}
	if err := CheckLunch(yesterday, "101", day, "A"); err == nil || err.Error() != "ERR_NOT_WORKED" {
		t.Errorf("arrival from another day: %v", err)
	}
}

func TestPlanVacation(t *testing.T) {
	day := at(t, "2024-01-10T00:00:00")
	old := entry(t, "101", "Anna", models.ActionVacation, "", "2024-01-10T00:00:00")
	logs := []models.AttendanceLog{
		old,
		entry(t, "101", "Anna", models.ActionVacation, "", "2024-01-11T00:00:00"),
		entry(t, "202", "Beáta", models.ActionVacation, "", "2024-01-10T00:00:00"),
	}

	if _, err := PlanVacation(logs, "101", day, false); err != ErrDuplicateVacation {
		t.Errorf("duplicate without overwrite: %v", err)
	}

	// Overwrite removes exactly the employee's entry for that day.
	toDelete, err := PlanVacation(logs, "101", day, true)
	if err != nil {
		t.Fatalf("PlanVacation(overwrite): %v", err)
	}
	if len(toDelete) != 1 || toDelete[0].ID != old.ID {
		t.Errorf("overwrite plan = %+v, want only the old entry", toDelete)
	}

	toDelete, err = PlanVacation(logs, "101", at(t, "2024-01-12T00:00:00"), false)
	if err != nil || len(toDelete) != 0 {
		t.Errorf("free day: %v, %v", toDelete, err)
	}
}

func TestDeleteRangeTargets(t *testing.T) {
	logs := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionArrival, "A", "2024-01-10T07:00:00"),
		entry(t, "101", "Anna", models.ActionDeparture, "A", "2024-01-10T15:00:00"),
		entry(t, "101", "Anna", models.ActionLunch, "A", "2024-01-10T12:00:00"),
		entry(t, "202", "Beáta", models.ActionArrival, "B", "2024-01-11T07:00:00"),
		entry(t, "303", "Cyril", models.ActionArrival, "A", "2024-01-20T07:00:00"),
	}
	for i := range logs {
		logs[i].ID = fmt.Sprintf("log_%d", i)
	}
	shifts := []models.ActionKind{models.ActionArrival, models.ActionDeparture}
	start, end := at(t, "2024-01-10T00:00:00"), at(t, "2024-01-15T00:00:00")

	// Store "all" spans every store but still only the shift family.
	ids := DeleteRangeTargets(logs, shifts, start, end, "all")
	if len(ids) != 3 {
		t.Fatalf("all stores = %v, want the three shift entries", ids)
	}
	for _, id := range ids {
		if id == logs[2].ID {
			t.Error("lunch entry selected by a shift delete")
		}
		if id == logs[4].ID {
			t.Error("entry outside the range selected")
		}
	}

	ids = DeleteRangeTargets(logs, shifts, start, end, "A")
	if len(ids) != 2 {
		t.Errorf("store A = %v, want Anna's pair", ids)
	}

	ids = DeleteRangeTargets(logs, []models.ActionKind{models.ActionLunch}, start, end, "all")
	if len(ids) != 1 || ids[0] != logs[2].ID {
		t.Errorf("lunch family = %v", ids)
	}

	if ids := DeleteRangeTargets(logs, shifts, at(t, "2024-02-01T00:00:00"), at(t, "2024-02-28T00:00:00"), "all"); len(ids) != 0 {
		t.Errorf("empty range = %v", ids)
	}
}

func TestVacations(t *testing.T) {
	day := at(t, "2024-01-10T00:00:00")
	logs := []models.AttendanceLog{
		entry(t, "101", "Anna", models.ActionVacation, "", "2024-01-10T00:00:00"),
		entry(t, "101", "Anna", models.ActionVacation, "", "2024-01-11T00:00:00"),
		entry(t, "202", "Beáta", models.ActionVacation, "", "2024-01-10T00:00:00"),
	}
	found := Vacations(logs, "101", day)
	if len(found) != 1 {
		t.Fatalf("Vacations = %d entries, want 1", len(found))
	}
}
