package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dochadzka/clock"
	"dochadzka/config"
	"dochadzka/database"
	"dochadzka/models"

	"gorm.io/gorm"
)

type StoreHandler struct {
	config *config.Config
}

func NewStoreHandler(cfg *config.Config) *StoreHandler {
	return &StoreHandler{config: cfg}
}

// List returns store names in picker order.
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	var stores []models.Store
	if err := database.GetDB().Order("position asc, name asc").Find(&stores).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	names := make([]string, 0, len(stores))
	for _, s := range stores {
		names = append(names, s.Name)
	}
	writeJSON(w, http.StatusOK, names)
}

// GetLimits returns every store's capacity limit as a name → "<n>" map,
// the shape the admin UI expects.
func (h *StoreHandler) GetLimits(w http.ResponseWriter, r *http.Request) {
	var stores []models.Store
	if err := database.GetDB().Order("position asc, name asc").Find(&stores).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	limits := make(map[string]string, len(stores))
	for _, s := range stores {
		limits[s.Name] = strconv.Itoa(s.Limit)
	}
	writeJSON(w, http.StatusOK, limits)
}

type limitRequest struct {
	Store string      `json:"store"`
	Limit interface{} `json:"limit"`
}

// SetLimits upserts a store and its capacity limit.
func (h *StoreHandler) SetLimits(w http.ResponseWriter, r *http.Request) {
	var req limitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}
	if req.Store == "" {
		writeError(w, http.StatusBadRequest, "Store name is required")
		return
	}

	limit, _ := strconv.Atoi(strings.TrimSpace(fmt.Sprint(req.Limit)))

	db := database.GetDB()
	var store models.Store
	err := db.Where("name = ?", req.Store).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		store = models.Store{Name: req.Store}
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	store.Limit = limit
	if err := db.Save(&store).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// weekToWire renders a Week as the Slovak-day-keyed document of the API.
func weekToWire(week *models.Week) map[string]string {
	out := make(map[string]string, len(clock.DayLabels))
	for _, label := range clock.DayLabels {
		wd, _ := clock.WeekdayForLabel(label)
		out[label] = week.For(wd)
	}
	return out
}

func weekFromWire(week *models.Week, doc map[string]string) {
	for _, label := range clock.DayLabels {
		if v, ok := doc[label]; ok {
			wd, _ := clock.WeekdayForLabel(label)
			week.Set(wd, strings.TrimSpace(v))
		}
	}
}

// GetOpeningHours returns one store's weekly schedule keyed by Slovak day
// names, or {} when unconfigured.
func (h *StoreHandler) GetOpeningHours(w http.ResponseWriter, r *http.Request) {
	store := r.URL.Query().Get("store")
	if store == "" {
		writeError(w, http.StatusBadRequest, "Store name is required")
		return
	}

	var hours models.OpeningHours
	err := database.GetDB().Where("store_name = ?", store).First(&hours).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeJSON(w, http.StatusOK, map[string]string{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, weekToWire(&hours.Week))
}

type hoursRequest struct {
	Store string            `json:"store"`
	Hours map[string]string `json:"hours"`
}

// SetOpeningHours replaces one store's weekly schedule.
func (h *StoreHandler) SetOpeningHours(w http.ResponseWriter, r *http.Request) {
	var req hoursRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}
	if req.Store == "" || req.Hours == nil {
		writeError(w, http.StatusBadRequest, "Store and hours are required")
		return
	}

	db := database.GetDB()
	var hours models.OpeningHours
	err := db.Where("store_name = ?", req.Store).First(&hours).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hours = models.OpeningHours{StoreName: req.Store}
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	weekFromWire(&hours.Week, req.Hours)
	if err := db.Save(&hours).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *StoreHandler) GetFixOpeningHours(w http.ResponseWriter, r *http.Request) {
	h.getFixHours(w, r, models.FixOpening)
}

func (h *StoreHandler) GetFixClosingHours(w http.ResponseWriter, r *http.Request) {
	h.getFixHours(w, r, models.FixClosing)
}

func (h *StoreHandler) SetFixOpeningHours(w http.ResponseWriter, r *http.Request) {
	h.setFixHours(w, r, models.FixOpening)
}

func (h *StoreHandler) SetFixClosingHours(w http.ResponseWriter, r *http.Request) {
	h.setFixHours(w, r, models.FixClosing)
}

// getFixHours returns a fix-override document: the per-day literal times
// plus a "Status" flag ("1" enabled, "0" disabled).
func (h *StoreHandler) getFixHours(w http.ResponseWriter, r *http.Request, kind models.FixKind) {
	store := r.URL.Query().Get("store")
	if store == "" {
		writeError(w, http.StatusBadRequest, "Store name is required")
		return
	}

	var fix models.FixHours
	err := database.GetDB().Where("store_name = ? AND kind = ?", store, kind).First(&fix).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeJSON(w, http.StatusOK, map[string]string{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	doc := weekToWire(&fix.Week)
	doc["Status"] = "0"
	if fix.Enabled {
		doc["Status"] = "1"
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *StoreHandler) setFixHours(w http.ResponseWriter, r *http.Request, kind models.FixKind) {
	var req hoursRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}
	if req.Store == "" || req.Hours == nil {
		writeError(w, http.StatusBadRequest, "Store and hours are required")
		return
	}

	db := database.GetDB()
	var fix models.FixHours
	err := db.Where("store_name = ? AND kind = ?", req.Store, kind).First(&fix).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fix = models.FixHours{StoreName: req.Store, Kind: kind}
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	weekFromWire(&fix.Week, req.Hours)
	fix.Enabled = req.Hours["Status"] == "1"
	if err := db.Save(&fix).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
