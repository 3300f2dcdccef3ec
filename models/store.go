package models

import "time"

// Store is one shop of the chain. Limit caps simultaneously clocked-in
// employees, 0 meaning unlimited. Position orders the kiosk's store picker.
type Store struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"uniqueIndex;not null;size:100"`
	Limit     int    `gorm:"not null;default:0"`
	Position  int    `gorm:"not null;default:0"`
}

// Week holds one value per weekday. Embedded by the schedule models so the
// wire documents keyed by Slovak day names map onto columns.
type Week struct {
	Monday    string `gorm:"size:20"`
	Tuesday   string `gorm:"size:20"`
	Wednesday string `gorm:"size:20"`
	Thursday  string `gorm:"size:20"`
	Friday    string `gorm:"size:20"`
	Saturday  string `gorm:"size:20"`
	Sunday    string `gorm:"size:20"`
}

// For returns the value stored for the given weekday.
func (w *Week) For(d time.Weekday) string {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Set stores a value for the given weekday.
func (w *Week) Set(d time.Weekday, v string) {
	switch d {
	case time.Monday:
		w.Monday = v
	case time.Tuesday:
		w.Tuesday = v
	case time.Wednesday:
		w.Wednesday = v
	case time.Thursday:
		w.Thursday = v
	case time.Friday:
		w.Friday = v
	case time.Saturday:
		w.Saturday = v
	default:
		w.Sunday = v
	}
}

// OpeningHours is a store's weekly schedule. Each day holds an
// "HH:mm-HH:mm" window, the closed sentinel, or "" when unconfigured.
type OpeningHours struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	StoreName string `gorm:"uniqueIndex;not null;size:100"`
	Week
}

// FixKind selects which rounding boundary a fix override replaces.
type FixKind string

const (
	FixOpening FixKind = "opening"
	FixClosing FixKind = "closing"
)

// FixHours is a per-store literal-time override: when enabled, the day's
// configured "HH:mm" replaces the clamped arrival (opening kind) or
// departure (closing kind) rounded time.
type FixHours struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	StoreName string  `gorm:"index:idx_fix_store_kind,unique;not null;size:100"`
	Kind      FixKind `gorm:"index:idx_fix_store_kind,unique;not null;size:10"`
	Enabled   bool    `gorm:"not null;default:false"`
	Week
}
