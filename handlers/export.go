package handlers

import (
	"encoding/base64"
	"net/http"
	"time"

	"dochadzka/clock"
	"dochadzka/config"
	"dochadzka/database"
	"dochadzka/export"
	"dochadzka/models"
	"dochadzka/timesheet"
)

type ExportHandler struct {
	config   *config.Config
	uploader export.Uploader
}

func NewExportHandler(cfg *config.Config, uploader export.Uploader) *ExportHandler {
	return &ExportHandler{config: cfg, uploader: uploader}
}

type exportRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Store     string `json:"store"`
}

func filterLogs(logs []models.AttendanceLog, start, end time.Time, store string) []models.AttendanceLog {
	var filtered []models.AttendanceLog
	for _, l := range logs {
		if clock.CompareDays(l.Day, start) < 0 || clock.CompareDays(l.Day, end) > 0 {
			continue
		}
		if store != "" && store != "all" && l.Store != store {
			continue
		}
		filtered = append(filtered, l)
	}
	return filtered
}

func (h *ExportHandler) rangeOf(w http.ResponseWriter, r *http.Request) (exportRequest, time.Time, time.Time, bool) {
	var req exportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neplatná požiadavka")
		return req, time.Time{}, time.Time{}, false
	}
	if req.StartDate == "" || req.EndDate == "" {
		writeError(w, http.StatusBadRequest, "Chýba dátum od alebo do")
		return req, time.Time{}, time.Time{}, false
	}
	start, err := clock.ParseISODate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Neplatný dátum")
		return req, time.Time{}, time.Time{}, false
	}
	end, err := clock.ParseISODate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Neplatný dátum")
		return req, time.Time{}, time.Time{}, false
	}
	return req, start, end, true
}

// Individual exports the raw log listing for a range and pushes it to the
// file host, returning its public URL.
func (h *ExportHandler) Individual(w http.ResponseWriter, r *http.Request) {
	req, start, end, ok := h.rangeOf(w, r)
	if !ok {
		return
	}

	logs, err := loadLogs(database.GetDB())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	f, err := export.BuildIndividual(filterLogs(logs, start, end, req.Store))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := export.Filename("Vypis_Jednotlivo", clock.Now(""))
	url, err := h.uploader.Upload("Exporty", name, buf.Bytes())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "objectPath": url})
}

// Summary exports per-employee totals and the day matrix for a range.
func (h *ExportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	req, start, end, ok := h.rangeOf(w, r)
	if !ok {
		return
	}

	db := database.GetDB()
	logs, err := loadLogs(db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	directory, err := loadDirectory(db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filtered := filterLogs(logs, start, end, req.Store)
	rows := timesheet.Summarize(filtered, directory)

	// Matrix columns run 01..last day of the range's starting month.
	lastDay := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, clock.Location).Day()
	matrix := timesheet.DayMatrix(filtered, rows, lastDay)

	f, err := export.BuildSummary(rows, matrix, lastDay)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := export.Filename("Vypis_Spolu", clock.Now(""))
	url, err := h.uploader.Upload("Exporty", name, buf.Bytes())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "objectPath": url})
}

// UploadPhoto pushes a kiosk snapshot to the file host and back-fills the
// log entry's photo URL when a log id is given.
func (h *ExportHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Base64Data string `json:"base64Data"`
		LogID      string `json:"logId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}
	if req.Name == "" || req.Base64Data == "" {
		writeError(w, http.StatusBadRequest, "Chýbajúce údaje")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Base64Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Neplatné dáta fotografie")
		return
	}

	url, err := h.uploader.Upload("Fotky", req.Name, data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.LogID != "" {
		database.GetDB().
			Model(&models.AttendanceLog{}).
			Where("id = ?", req.LogID).
			Update("photo_url", url)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "objectPath": url})
}
