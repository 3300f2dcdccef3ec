package models

import (
	"strconv"
	"strings"
	"time"
)

type Employee struct {
	Code      string `gorm:"primaryKey;size:32" json:"code"`
	Name      string `gorm:"not null;size:200" json:"name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Directory is the employee code → display name mapping used by PIN lookup.
type Directory map[string]string

// Lookup resolves a PIN code. Codes match on the trimmed string or, for
// numeric-looking codes, on numeric value, so "007" resolves an employee
// keyed "7".
func (d Directory) Lookup(code string) (string, bool) {
	search := strings.TrimSpace(code)
	searchNum, numErr := strconv.ParseFloat(search, 64)
	for key, name := range d {
		k := strings.TrimSpace(key)
		if k == search {
			return name, true
		}
		if numErr == nil {
			if kn, err := strconv.ParseFloat(k, 64); err == nil && kn == searchNum {
				return name, true
			}
		}
	}
	return "", false
}

// FindKey returns the stored directory key matching code, using the same
// equality rules as Lookup. Used by rename, which must update the original
// key.
func (d Directory) FindKey(code string) (string, bool) {
	search := strings.TrimSpace(code)
	searchNum, numErr := strconv.ParseFloat(search, 64)
	for key := range d {
		k := strings.TrimSpace(key)
		if k == search {
			return key, true
		}
		if numErr == nil {
			if kn, err := strconv.ParseFloat(k, 64); err == nil && kn == searchNum {
				return key, true
			}
		}
	}
	return "", false
}
