package handlers

import (
	"net/http"
	"strings"

	"dochadzka/config"
	"dochadzka/database"
	"dochadzka/middleware"
	"dochadzka/models"
)

type AdminHandler struct {
	config *config.Config
}

func NewAdminHandler(cfg *config.Config) *AdminHandler {
	return &AdminHandler{config: cfg}
}

// VerifyCode checks the shared manager PIN and, on success, issues the
// session token the admin endpoints require.
func (h *AdminHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}

	adminCode := getSetting(database.GetDB(), models.SettingAdminCode, models.DefaultAdminCode)
	if strings.TrimSpace(req.Code) != adminCode {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Nesprávny PIN kód"})
		return
	}

	token, err := middleware.GenerateAdminToken(h.config.AdminSessionTTL)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "token": token})
}

func (h *AdminHandler) GetCode(w http.ResponseWriter, r *http.Request) {
	adminCode := getSetting(database.GetDB(), models.SettingAdminCode, models.DefaultAdminCode)
	writeJSON(w, http.StatusOK, map[string]string{"adminCode": adminCode})
}

// UpdateCode replaces the shared manager PIN.
func (h *AdminHandler) UpdateCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewCode string `json:"newCode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}
	if len(strings.TrimSpace(req.NewCode)) < 4 {
		writeMessage(w, http.StatusBadRequest, "Kód musí mať aspoň 4 znaky")
		return
	}
	if err := setSetting(database.GetDB(), models.SettingAdminCode, strings.TrimSpace(req.NewCode)); err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Employees returns the directory as a code → name map.
func (h *AdminHandler) Employees(w http.ResponseWriter, r *http.Request) {
	directory, err := loadDirectory(database.GetDB())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, directory)
}

// RenameEmployee changes an employee's display name. The code matches by
// the same trimmed/numeric rules as PIN lookup.
func (h *AdminHandler) RenameEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code    string `json:"code"`
		NewName string `json:"newName"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}
	if req.Code == "" || req.NewName == "" {
		writeError(w, http.StatusBadRequest, "Chýbajúce údaje")
		return
	}

	db := database.GetDB()
	directory, err := loadDirectory(db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	key, ok := directory.FindKey(req.Code)
	if !ok {
		writeError(w, http.StatusNotFound, "Zamestnanec s týmto kódom neexistuje")
		return
	}

	if err := db.Model(&models.Employee{}).Where("code = ?", key).Update("name", req.NewName).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "newName": req.NewName})
}

// GetSettings returns the kiosk's persisted preferences.
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	out := map[string]string{}
	if store := getSetting(database.GetDB(), models.SettingSelectedStore, ""); store != "" {
		out["selectedStore"] = store
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SelectedStore string `json:"selectedStore"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Neplatná požiadavka")
		return
	}
	if req.SelectedStore != "" {
		if err := setSetting(database.GetDB(), models.SettingSelectedStore, req.SelectedStore); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
