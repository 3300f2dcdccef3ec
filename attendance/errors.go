package attendance

import "fmt"

// ValidationError is a business-rule failure surfaced to the kiosk as HTTP
// 400 (409 for vacation duplicates). The message is either an ERR_* machine
// code, optionally carrying a payload after "|" or ":", or a Slovak
// sentence shown to the employee verbatim.
type ValidationError struct {
	Message  string
	Conflict bool
}

func (e *ValidationError) Error() string {
	return e.Message
}

func errf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrDuplicateVacation is returned when a vacation entry already exists for
// the employee and date and overwrite was not requested.
var ErrDuplicateVacation = &ValidationError{Message: "ERR_ALREADY_HAD_VACATION", Conflict: true}
