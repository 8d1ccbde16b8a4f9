package reminder

import (
	"context"
	"errors"
	"time"
)

// PermissionState is the transient permission status of the notification
// capability. It is never persisted; it is re-derived from the capability at
// the moment it is needed.
type PermissionState int

const (
	PermissionUnknown PermissionState = iota
	PermissionGranted
	PermissionDenied
)

func (s PermissionState) String() string {
	switch s {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// ErrUnsupportedPlatform is returned alongside PermissionDenied by a
// capability that has no delivery channel at all, so callers can tell "user
// said no" apart from "nothing to ask".
var ErrUnsupportedPlatform = errors.New("notification capability unsupported on this platform")

// Payload is the notification content attached to a weekly alert.
type Payload struct {
	ProgramID string
	Title     string
	Body      string
}

// Capability is the narrow contract to the underlying notification service.
// Weekdays cross this boundary in the 1..7 convention (1 = Sunday) used by
// weekly-trigger APIs; engine-side weekdays are time.Weekday (0 = Sunday).
type Capability interface {
	// PermissionStatus reports the live permission state without prompting.
	PermissionStatus(ctx context.Context) (PermissionState, error)
	// RequestPermission prompts for permission and blocks on the decision.
	RequestPermission(ctx context.Context) (PermissionState, error)
	// ScheduleWeekly registers a recurring alert firing every week at the
	// given weekday and wall-clock time until cancelled.
	ScheduleWeekly(ctx context.Context, id string, weekday, hour, minute int, payload Payload) error
	// Cancel removes one scheduled alert. Cancelling an unknown id is a no-op.
	Cancel(ctx context.Context, id string) error
	// ListScheduled returns the ids of every alert currently registered.
	ListScheduled(ctx context.Context) ([]string, error)
}

// CapabilityWeekday converts an engine weekday to the capability's 1..7
// convention.
func CapabilityWeekday(d time.Weekday) int {
	return int(d) + 1
}
