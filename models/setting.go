package models

import "time"

// Setting is a single key/value configuration row.
type Setting struct {
	Key       string `gorm:"primaryKey;size:50"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

const (
	SettingAdminCode     = "admin_code"
	SettingSelectedStore = "selected_store"

	// DefaultAdminCode is the shared manager PIN used until changed.
	DefaultAdminCode = "12345"
)
