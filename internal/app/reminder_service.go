package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"program_reminder_bot/internal/domain/program"
	"program_reminder_bot/internal/domain/reminder"

	"github.com/sirupsen/logrus"
)

// ReminderService keeps the device-side alert set in lockstep with the user's
// per-program opt-in. It owns the in-memory preference mapping; the
// PreferenceStore is its durability backstop.
type ReminderService struct {
	table      *program.Table
	store      reminder.PreferenceStore
	capability reminder.Capability
	gate       *PermissionGate
	logger     *logrus.Entry

	mu    sync.Mutex
	prefs reminder.Preferences

	// Per-program toggle serialization: a second toggle for the same program
	// waits for the first to finish, so enable/disable races cannot leave a
	// partial alert set. Toggles for different programs proceed in parallel.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewReminderService(
	table *program.Table,
	store reminder.PreferenceStore,
	capability reminder.Capability,
	gate *PermissionGate,
	logger *logrus.Entry,
) *ReminderService {
	return &ReminderService{
		table:      table,
		store:      store,
		capability: capability,
		gate:       gate,
		logger:     logger,
		prefs:      reminder.Preferences{},
		locks:      make(map[string]*sync.Mutex),
	}
}

// LoadPreferences replaces the in-memory mapping with the persisted one.
// Called once at startup before any toggle is accepted.
func (s *ReminderService) LoadPreferences(ctx context.Context) error {
	prefs, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load: %v", ErrStorage, err)
	}
	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
	s.logger.WithField("programs", len(prefs)).Info("Notification preferences loaded.")
	return nil
}

// Enabled reports the current opt-in for a program. Unknown ids read as
// disabled.
func (s *ReminderService) Enabled(programID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs[programID]
}

// IsLive reports whether the program is on air at the given instant.
func (s *ReminderService) IsLive(programID string, now time.Time) (bool, error) {
	sched := s.table.ByID(programID)
	if sched == nil {
		return false, fmt.Errorf("%w: %s", ErrUnknownProgram, programID)
	}
	return sched.IsLive(now), nil
}

// Programs returns the weekly grid in display order.
func (s *ReminderService) Programs() []*program.Schedule {
	return s.table.All()
}

// LiveNow returns the program on air at the given instant, or nil.
func (s *ReminderService) LiveNow(now time.Time) *program.Schedule {
	return s.table.LiveNow(now)
}

// SetEnabled applies a user toggle. The preference is persisted only after
// every capability call has succeeded; on failure the preference keeps its
// prior value and the error wraps one of the app sentinels. SetEnabled is
// idempotent: re-applying the current state changes nothing.
func (s *ReminderService) SetEnabled(ctx context.Context, programID string, enabled bool) error {
	sched := s.table.ByID(programID)
	if sched == nil {
		return fmt.Errorf("%w: %s", ErrUnknownProgram, programID)
	}

	unlock := s.lockProgram(programID)
	defer unlock()

	if enabled {
		return s.enable(ctx, sched)
	}
	return s.disable(ctx, sched)
}

func (s *ReminderService) enable(ctx context.Context, sched *program.Schedule) error {
	logCtx := s.logger.WithField("program_id", sched.ID)

	state, reason := s.gate.CheckOrRequest(ctx)
	if state != reminder.PermissionGranted {
		logCtx.WithField("permission", state.String()).Info("Enable refused: permission not granted.")
		if reason != nil {
			return fmt.Errorf("%w: %w", ErrPermissionDenied, reason)
		}
		return ErrPermissionDenied
	}

	if s.Enabled(sched.ID) {
		// Already enabled; permission was re-verified above, nothing to do.
		logCtx.Debug("Enable is a no-op: reminders already on.")
		return nil
	}

	hour, minute := sched.ReminderTime()
	payload := reminder.Payload{
		ProgramID: sched.ID,
		Title:     sched.Title,
		Body:      fmt.Sprintf("%s starts in %d minutes.", sched.Title, program.ReminderLeadMinutes),
	}

	var created []string
	for _, day := range sched.DaysOfWeek {
		id := reminder.AlertID{ProgramID: sched.ID, Day: day}.String()
		err := s.capability.ScheduleWeekly(ctx, id, reminder.CapabilityWeekday(day), hour, minute, payload)
		if err != nil {
			logCtx.WithError(err).WithField("alert_id", id).Error("Scheduling failed; rolling back alerts created so far.")
			s.cancelAll(ctx, created)
			return fmt.Errorf("%w: schedule %s: %v", ErrCapability, id, err)
		}
		created = append(created, id)
	}

	s.setPref(sched.ID, true)
	if err := s.persist(ctx); err != nil {
		// Keep the persisted truth authoritative: revert the in-memory value
		// and take the fresh alerts back out.
		s.setPref(sched.ID, false)
		s.cancelAll(ctx, created)
		logCtx.WithError(err).Error("Persisting preference failed; enable rolled back.")
		return err
	}

	logCtx.WithFields(logrus.Fields{
		"alerts": len(created),
		"fires":  fmt.Sprintf("%02d:%02d", hour, minute),
	}).Info("Program reminders enabled.")
	return nil
}

func (s *ReminderService) disable(ctx context.Context, sched *program.Schedule) error {
	logCtx := s.logger.WithField("program_id", sched.ID)

	// Cancel whatever exists under the program's prefix rather than the set
	// implied by the current weekday grid, so alerts created under an older
	// grid are still removed.
	ids, err := s.capability.ListScheduled(ctx)
	if err != nil {
		return fmt.Errorf("%w: list scheduled: %v", ErrCapability, err)
	}
	cancelled := 0
	for _, id := range ids {
		if !reminder.BelongsTo(id, sched.ID) {
			continue
		}
		if err := s.capability.Cancel(ctx, id); err != nil {
			return fmt.Errorf("%w: cancel %s: %v", ErrCapability, id, err)
		}
		cancelled++
	}

	prev := s.Enabled(sched.ID)
	s.setPref(sched.ID, false)
	if err := s.persist(ctx); err != nil {
		s.setPref(sched.ID, prev)
		logCtx.WithError(err).Error("Persisting preference failed; disable rolled back.")
		return err
	}

	logCtx.WithField("alerts_cancelled", cancelled).Info("Program reminders disabled.")
	return nil
}

// Reconcile re-derives the desired alert set from the loaded preferences and
// drives the capability to match: strays are cancelled, missing alerts are
// scheduled. Called at startup, where the capability's alert registry starts
// empty, and safe to call again after a permission change.
func (s *ReminderService) Reconcile(ctx context.Context) error {
	type alertSpec struct {
		weekday int
		hour    int
		minute  int
		payload reminder.Payload
	}
	desired := make(map[string]alertSpec)

	s.mu.Lock()
	prefs := s.prefs.Clone()
	s.mu.Unlock()

	for id, enabled := range prefs {
		if !enabled {
			continue
		}
		sched := s.table.ByID(id)
		if sched == nil {
			s.logger.WithField("program_id", id).Warn("Preference references a program no longer on the grid; skipping.")
			continue
		}
		hour, minute := sched.ReminderTime()
		for _, day := range sched.DaysOfWeek {
			desired[reminder.AlertID{ProgramID: sched.ID, Day: day}.String()] = alertSpec{
				weekday: reminder.CapabilityWeekday(day),
				hour:    hour,
				minute:  minute,
				payload: reminder.Payload{
					ProgramID: sched.ID,
					Title:     sched.Title,
					Body:      fmt.Sprintf("%s starts in %d minutes.", sched.Title, program.ReminderLeadMinutes),
				},
			}
		}
	}

	if len(desired) > 0 {
		state, reason := s.gate.CheckOrRequest(ctx)
		if state != reminder.PermissionGranted {
			s.logger.WithFields(logrus.Fields{
				"permission": state.String(),
				"reason":     fmt.Sprint(reason),
			}).Warn("Permission not granted; enabled programs will not get alerts this run.")
			desired = nil
		}
	}

	existing, err := s.capability.ListScheduled(ctx)
	if err != nil {
		return fmt.Errorf("%w: list scheduled: %v", ErrCapability, err)
	}

	for _, id := range existing {
		if _, keep := desired[id]; keep {
			delete(desired, id)
			continue
		}
		if err := s.capability.Cancel(ctx, id); err != nil {
			return fmt.Errorf("%w: cancel stray %s: %v", ErrCapability, id, err)
		}
		s.logger.WithField("alert_id", id).Info("Cancelled stray alert during reconcile.")
	}

	for id, spec := range desired {
		if err := s.capability.ScheduleWeekly(ctx, id, spec.weekday, spec.hour, spec.minute, spec.payload); err != nil {
			return fmt.Errorf("%w: schedule %s: %v", ErrCapability, id, err)
		}
	}
	if len(desired) > 0 {
		s.logger.WithField("alerts", len(desired)).Info("Restored alerts for enabled programs.")
	}
	return nil
}

func (s *ReminderService) setPref(programID string, enabled bool) {
	s.mu.Lock()
	s.prefs[programID] = enabled
	s.mu.Unlock()
}

func (s *ReminderService) persist(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.prefs.Clone()
	s.mu.Unlock()
	if err := s.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("%w: save: %v", ErrStorage, err)
	}
	return nil
}

func (s *ReminderService) cancelAll(ctx context.Context, ids []string) {
	for _, id := range ids {
		if err := s.capability.Cancel(ctx, id); err != nil {
			s.logger.WithError(err).WithField("alert_id", id).Error("Rollback cancel failed; alert may linger until next reconcile.")
		}
	}
}

func (s *ReminderService) lockProgram(id string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.locksMu.Unlock()
	l.Lock()
	return l.Unlock
}
