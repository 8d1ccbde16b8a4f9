package app

import (
	"context"
	"errors"

	"program_reminder_bot/internal/domain/reminder"

	"github.com/sirupsen/logrus"
)

// PermissionGate mediates access to the notification capability. It holds no
// persisted state: every call re-queries the live capability so grants and
// revocations made outside the app are observed promptly.
type PermissionGate struct {
	capability reminder.Capability
	logger     *logrus.Entry
}

func NewPermissionGate(capability reminder.Capability, logger *logrus.Entry) *PermissionGate {
	return &PermissionGate{capability: capability, logger: logger}
}

// CheckOrRequest returns the current permission state, prompting only when
// the state is still Unknown. Granted short-circuits without a prompt. A
// Denied result is reported, never acted on; navigation to system settings is
// the presentation layer's affordance. On a platform with no capability the
// result is Denied with reminder.ErrUnsupportedPlatform as the reason and no
// prompt is attempted.
func (g *PermissionGate) CheckOrRequest(ctx context.Context) (reminder.PermissionState, error) {
	state, err := g.capability.PermissionStatus(ctx)
	if err != nil {
		if errors.Is(err, reminder.ErrUnsupportedPlatform) {
			g.logger.Debug("Notification capability unsupported; reporting denied without prompt.")
			return reminder.PermissionDenied, err
		}
		return reminder.PermissionUnknown, err
	}
	if state != reminder.PermissionUnknown {
		return state, nil
	}

	g.logger.Info("Notification permission unknown; requesting from capability.")
	state, err = g.capability.RequestPermission(ctx)
	if err != nil {
		if errors.Is(err, reminder.ErrUnsupportedPlatform) {
			return reminder.PermissionDenied, err
		}
		return reminder.PermissionUnknown, err
	}
	g.logger.WithField("permission", state.String()).Info("Permission request resolved.")
	return state, nil
}
