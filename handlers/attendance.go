package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"dochadzka/attendance"
	"dochadzka/clock"
	"dochadzka/config"
	"dochadzka/database"
	"dochadzka/models"

	"gorm.io/gorm"
)

const unknownStore = "Neznáma prevádzka"

type AttendanceHandler struct {
	config *config.Config
}

func NewAttendanceHandler(cfg *config.Config) *AttendanceHandler {
	return &AttendanceHandler{config: cfg}
}

type createRequest struct {
	Code            string `json:"code"`
	Type            string `json:"type"`
	SelectedStore   string `json:"selectedStore"`
	PhotoPath       string `json:"photoPath"`
	ClientTimestamp string `json:"clientTimestamp"`
	IsManual        bool   `json:"isManual"`
}

// Create records a punch action after running it through the state
// machine. Responds 201 with the created record or 400 with the
// validation message.
func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}
	action, ok := models.ParseAction(req.Type)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Neznáma akcia")
		return
	}

	db := database.GetDB()
	directory, err := loadDirectory(db)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	name, ok := directory.Lookup(req.Code)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Neplatný kód zamestnanca")
		return
	}

	now := clock.Now(req.ClientTimestamp)
	store := req.SelectedStore
	if store == "" {
		store = unknownStore
	}

	logs, err := loadLogs(db)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	if action == models.ActionArrival && !req.IsManual {
		if err := attendance.CheckArrival(logs, req.Code, store, storeLimit(db, store)); err != nil {
			respondValidation(w, err)
			return
		}
	}
	if action == models.ActionDeparture && !req.IsManual {
		if err := attendance.CheckDeparture(logs, req.Code, store, now); err != nil {
			respondValidation(w, err)
			return
		}
	}

	entry := models.AttendanceLog{
		ID:       models.NewLogID(),
		Code:     req.Code,
		Name:     name,
		Day:      clock.DateOf(now),
		At:       now,
		Action:   action,
		Store:    store,
		PhotoURL: req.PhotoPath,
	}

	if action.IsShift() {
		day, err := storeDayFor(db, store, now)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, err.Error())
			return
		}
		rounded, rerr := attendance.ResolveStamp(action, now, day, req.IsManual)
		if rerr != nil {
			respondValidation(w, rerr)
			return
		}
		entry.RoundedAt = &rounded
	}

	if err := db.Create(&entry).Error; err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        entry.ID,
		"code":      entry.Code,
		"type":      string(action),
		"meno":      name,
		"createdAt": now,
	})
}

// List keeps the legacy contract of GET /api/attendance, which always
// returned an empty collection; clients read logs via /overview.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, []models.LogView{})
}

type activeEmployee struct {
	Meno           string `json:"meno"`
	Datum          string `json:"datum"`
	Cas            string `json:"cas"`
	ZaokruhlenyCas string `json:"zaokruhlenyCas"`
	Prevadzka      string `json:"prevadzka"`
}

// Active lists currently clocked-in employees.
func (h *AttendanceHandler) Active(w http.ResponseWriter, r *http.Request) {
	logs, err := loadLogs(database.GetDB())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	active := attendance.ActiveShifts(logs)
	out := make([]activeEmployee, 0, len(active))
	for _, l := range active {
		rounded := ""
		if l.RoundedAt != nil {
			rounded = clock.FormatTime(*l.RoundedAt)
		}
		out = append(out, activeEmployee{
			Meno:           l.Name,
			Datum:          clock.FormatDate(l.Day),
			Cas:            clock.FormatTime(l.At),
			ZaokruhlenyCas: rounded,
			Prevadzka:      l.Store,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Overview returns the raw log list filtered by an inclusive date range
// and optional store, newest first.
func (h *AttendanceHandler) Overview(w http.ResponseWriter, r *http.Request) {
	logs, err := loadLogs(database.GetDB())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	from, fromOK := parseDateParam(r.URL.Query().Get("from"))
	to, toOK := parseDateParam(r.URL.Query().Get("to"))
	store := r.URL.Query().Get("store")

	var filtered []models.AttendanceLog
	for _, l := range logs {
		if fromOK && clock.CompareDays(l.Day, from) < 0 {
			continue
		}
		if toOK && clock.CompareDays(l.Day, to) > 0 {
			continue
		}
		if store != "" && store != "all" {
			if !strings.EqualFold(strings.TrimSpace(l.Store), strings.TrimSpace(store)) {
				continue
			}
		}
		filtered = append(filtered, l)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].At.After(filtered[j].At)
	})

	out := make([]models.LogView, 0, len(filtered))
	for i := range filtered {
		out = append(out, filtered[i].View())
	}
	writeJSON(w, http.StatusOK, out)
}

// Lunches returns one employee's lunch entries in a date range, newest
// first.
func (h *AttendanceHandler) Lunches(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	from, fromOK := parseDateParam(r.URL.Query().Get("from"))
	to, toOK := parseDateParam(r.URL.Query().Get("to"))
	if code == "" || !fromOK || !toOK {
		writeMessage(w, http.StatusBadRequest, "Chýbajúce parametre")
		return
	}

	logs, err := loadLogs(database.GetDB())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	var lunches []models.AttendanceLog
	for _, l := range logs {
		if l.Action != models.ActionLunch || l.Code != code {
			continue
		}
		if clock.CompareDays(l.Day, from) < 0 || clock.CompareDays(l.Day, to) > 0 {
			continue
		}
		lunches = append(lunches, l)
	}
	sort.SliceStable(lunches, func(i, j int) bool {
		return lunches[i].Day.After(lunches[j].Day)
	})

	out := make([]models.LogView, 0, len(lunches))
	for i := range lunches {
		out = append(out, lunches[i].View())
	}
	writeJSON(w, http.StatusOK, out)
}

type lunchRequest struct {
	Code            string `json:"code"`
	Date            string `json:"date"`
	SelectedStore   string `json:"selectedStore"`
	ClientTimestamp string `json:"clientTimestamp"`
}

// CreateLunch records a lunch for a work-day. The time of day is the
// resolved "now", never rounded.
func (h *AttendanceHandler) CreateLunch(w http.ResponseWriter, r *http.Request) {
	var req lunchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}

	db := database.GetDB()
	directory, err := loadDirectory(db)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	name, ok := directory.Lookup(req.Code)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Neplatný kód zamestnanca")
		return
	}

	day, err := clock.ParseISODate(req.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Neplatný dátum")
		return
	}

	store := req.SelectedStore
	if store == "" {
		store = unknownStore
	}

	logs, err := loadLogs(db)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := attendance.CheckLunch(logs, req.Code, day, store); err != nil {
		respondValidation(w, err)
		return
	}

	now := clock.Now(req.ClientTimestamp)
	entry := models.AttendanceLog{
		ID:     models.NewLogID(),
		Code:   req.Code,
		Name:   name,
		Day:    day,
		At:     clock.OnDay(day, now),
		Action: models.ActionLunch,
		Store:  store,
	}
	if err := db.Create(&entry).Error; err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "meno": name})
}

type vacationRequest struct {
	Code      string      `json:"code"`
	Date      string      `json:"date"`
	Duration  interface{} `json:"duration"`
	Overwrite bool        `json:"overwrite"`
}

// CreateVacation records a vacation day. A second vacation for the same
// employee and date conflicts unless overwrite replaces the existing one.
func (h *AttendanceHandler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	var req vacationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}

	db := database.GetDB()
	directory, err := loadDirectory(db)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	name, ok := directory.Lookup(req.Code)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Neplatný kód zamestnanca")
		return
	}

	day, err := clock.ParseISODate(req.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Neplatný dátum")
		return
	}

	logs, err := loadLogs(db)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	existing, perr := attendance.PlanVacation(logs, req.Code, day, req.Overwrite)
	if perr != nil {
		respondValidation(w, perr)
		return
	}

	entry := models.AttendanceLog{
		ID:            models.NewLogID(),
		Code:          req.Code,
		Name:          name,
		Day:           day,
		At:            day,
		Action:        models.ActionVacation,
		VacationHours: models.ParseHours(fmt.Sprint(req.Duration)),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, old := range existing {
			if err := tx.Delete(&models.AttendanceLog{}, "id = ?", old.ID).Error; err != nil {
				return err
			}
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "meno": name})
}

// DeleteVacations removes every vacation entry, the admin panel's reset.
func (h *AttendanceHandler) DeleteVacations(w http.ResponseWriter, r *http.Request) {
	err := database.GetDB().
		Where("action = ?", models.ActionVacation).
		Delete(&models.AttendanceLog{}).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type deleteRangeRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Store     string `json:"store"`
}

func (h *AttendanceHandler) deleteRange(w http.ResponseWriter, r *http.Request, actions []models.ActionKind) {
	var req deleteRangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}
	if req.StartDate == "" || req.EndDate == "" {
		writeError(w, http.StatusBadRequest, "Chýba dátum od alebo do")
		return
	}
	start, err := clock.ParseISODate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Neplatný dátum")
		return
	}
	end, err := clock.ParseISODate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Neplatný dátum")
		return
	}

	db := database.GetDB()
	logs, err := loadLogs(db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ids := attendance.DeleteRangeTargets(logs, actions, start, end, req.Store)
	if len(ids) > 0 {
		if err := db.Delete(&models.AttendanceLog{}, "id IN ?", ids).Error; err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"deletedCount": len(ids),
	})
}

// DeleteShiftRange removes arrival/departure entries in a date range,
// leaving lunches and vacations untouched.
func (h *AttendanceHandler) DeleteShiftRange(w http.ResponseWriter, r *http.Request) {
	h.deleteRange(w, r, []models.ActionKind{models.ActionArrival, models.ActionDeparture})
}

func (h *AttendanceHandler) DeleteLunchRange(w http.ResponseWriter, r *http.Request) {
	h.deleteRange(w, r, []models.ActionKind{models.ActionLunch})
}

func (h *AttendanceHandler) DeleteVacationRange(w http.ResponseWriter, r *http.Request) {
	h.deleteRange(w, r, []models.ActionKind{models.ActionVacation})
}

// storeLimit reads a store's capacity limit, 0 when unset.
func storeLimit(db *gorm.DB, store string) int {
	var s models.Store
	if err := db.Where("name = ?", store).First(&s).Error; err != nil {
		return 0
	}
	return s.Limit
}

// storeDayFor assembles the opening window and enabled fix overrides for
// the store on the weekday of now.
func storeDayFor(db *gorm.DB, store string, now time.Time) (attendance.StoreDay, error) {
	var day attendance.StoreDay

	var hours models.OpeningHours
	if err := db.Where("store_name = ?", store).First(&hours).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return day, nil
		}
		return day, err
	}
	day.Window = hours.For(now.Weekday())
	if day.Window == "" || day.Window == clock.Closed {
		return day, nil
	}

	for _, kind := range []models.FixKind{models.FixOpening, models.FixClosing} {
		var fix models.FixHours
		err := db.Where("store_name = ? AND kind = ?", store, kind).First(&fix).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return day, err
		}
		if !fix.Enabled {
			continue
		}
		t := fix.For(now.Weekday())
		if !strings.Contains(t, ":") {
			continue
		}
		if kind == models.FixOpening {
			day.FixOpening = t
		} else {
			day.FixClosing = t
		}
	}
	return day, nil
}

func parseDateParam(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := clock.ParseISODate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
