package notify

import (
	"context"

	"program_reminder_bot/internal/domain/reminder"
)

// UnsupportedCapability stands in on runtimes with no delivery channel
// configured. Permission reads as denied with the distinct
// unsupported-platform reason and no prompt is ever attempted; the alert
// registry is permanently empty so reconciliation still works.
type UnsupportedCapability struct{}

func NewUnsupportedCapability() *UnsupportedCapability {
	return &UnsupportedCapability{}
}

func (UnsupportedCapability) PermissionStatus(context.Context) (reminder.PermissionState, error) {
	return reminder.PermissionDenied, reminder.ErrUnsupportedPlatform
}

func (UnsupportedCapability) RequestPermission(context.Context) (reminder.PermissionState, error) {
	return reminder.PermissionDenied, reminder.ErrUnsupportedPlatform
}

func (UnsupportedCapability) ScheduleWeekly(_ context.Context, _ string, _, _, _ int, _ reminder.Payload) error {
	return reminder.ErrUnsupportedPlatform
}

func (UnsupportedCapability) Cancel(context.Context, string) error {
	return nil
}

func (UnsupportedCapability) ListScheduled(context.Context) ([]string, error) {
	return nil, nil
}
