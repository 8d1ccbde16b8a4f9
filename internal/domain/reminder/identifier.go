package reminder

import (
	"fmt"
	"strings"
	"time"
)

// AlertID names one recurring weekly alert: the reminder for one program on
// one weekday. The string form is stable across process runs so cancellation
// can find exactly the alerts this engine created.
type AlertID struct {
	ProgramID string
	Day       time.Weekday
}

// String renders the identifier in its wire form, "reminder:<program>:<day>".
func (a AlertID) String() string {
	return fmt.Sprintf("reminder:%s:%d", a.ProgramID, int(a.Day))
}

// ProgramPrefix returns the identifier prefix shared by every alert of the
// given program, regardless of weekday. Disabling cancels by this prefix so
// alerts created under an older weekday grid are still found.
func ProgramPrefix(programID string) string {
	return fmt.Sprintf("reminder:%s:", programID)
}

// BelongsTo reports whether a scheduled alert id was created for the given
// program.
func BelongsTo(alertID, programID string) bool {
	return strings.HasPrefix(alertID, ProgramPrefix(programID))
}
