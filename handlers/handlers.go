package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dochadzka/attendance"
	"dochadzka/models"

	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeMessage emits the {message, field} validation shape of the kiosk
// API.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg, "field": "code"})
}

// writeError emits the {error} shape used by the admin endpoints.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// respondValidation maps business-rule failures onto 400/409 responses.
func respondValidation(w http.ResponseWriter, err error) {
	var verr *attendance.ValidationError
	if errors.As(err, &verr) {
		status := http.StatusBadRequest
		if verr.Conflict {
			status = http.StatusConflict
		}
		writeMessage(w, status, verr.Message)
		return
	}
	writeMessage(w, http.StatusBadRequest, err.Error())
}

// loadDirectory reads the whole employee directory. It is small enough to
// scan per request, which the PIN lookup's numeric-equality rule requires.
func loadDirectory(db *gorm.DB) (models.Directory, error) {
	var employees []models.Employee
	if err := db.Find(&employees).Error; err != nil {
		return nil, err
	}
	dir := make(models.Directory, len(employees))
	for _, e := range employees {
		dir[e.Code] = e.Name
	}
	return dir, nil
}

// loadLogs reads all attendance logs in insertion order.
func loadLogs(db *gorm.DB) ([]models.AttendanceLog, error) {
	var logs []models.AttendanceLog
	err := db.Order("created_at asc, id asc").Find(&logs).Error
	return logs, err
}

func getSetting(db *gorm.DB, key, fallback string) string {
	var s models.Setting
	if err := db.First(&s, "key = ?", key).Error; err != nil {
		return fallback
	}
	return s.Value
}

func setSetting(db *gorm.DB, key, value string) error {
	return db.Save(&models.Setting{Key: key, Value: value}).Error
}
