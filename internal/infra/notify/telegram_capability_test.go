package notify

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"sync"
	"testing"

	"program_reminder_bot/internal/domain/reminder"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// fakeClient stands in for the Telegram adapter.
type fakeClient struct {
	mu          sync.Mutex
	unreachable bool
	sent        []string
}

func (f *fakeClient) SendMessage(_ int64, text string, _ *telebot.SendOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeClient) ChatReachable(chatID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unreachable {
		return fmt.Errorf("chat %d not reachable", chatID)
	}
	return nil
}

func testEntry() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("test", true)
}

func newTestCapability() (*TelegramCapability, *fakeClient) {
	client := &fakeClient{}
	return NewTelegramCapability(client, 42, testEntry()), client
}

func TestWeeklySpec(t *testing.T) {
	tests := []struct {
		weekday, hour, minute int
		want                  string
	}{
		{1, 8, 45, "45 8 * * 0"},   // Sunday
		{2, 8, 45, "45 8 * * 1"},   // Monday
		{7, 17, 45, "45 17 * * 6"}, // Saturday
	}
	for _, tt := range tests {
		if got := weeklySpec(tt.weekday, tt.hour, tt.minute); got != tt.want {
			t.Errorf("weeklySpec(%d, %d, %d) = %q, want %q", tt.weekday, tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestScheduleWeeklyValidatesArguments(t *testing.T) {
	capability, _ := newTestCapability()
	ctx := context.Background()
	payload := reminder.Payload{ProgramID: "p1"}

	tests := []struct {
		name                  string
		weekday, hour, minute int
	}{
		{"weekday zero", 0, 8, 45},
		{"weekday eight", 8, 8, 45},
		{"hour out of range", 2, 24, 0},
		{"minute out of range", 2, 8, 60},
		{"negative hour", 2, -1, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := capability.ScheduleWeekly(ctx, "a", tt.weekday, tt.hour, tt.minute, payload); err == nil {
				t.Error("ScheduleWeekly accepted invalid arguments")
			}
		})
	}
	if ids, _ := capability.ListScheduled(ctx); len(ids) != 0 {
		t.Errorf("ListScheduled = %v after rejected calls, want empty", ids)
	}
}

func TestScheduleCancelListRoundTrip(t *testing.T) {
	capability, _ := newTestCapability()
	ctx := context.Background()
	payload := reminder.Payload{ProgramID: "p1", Title: "Morning Show", Body: "Morning Show starts in 15 minutes."}

	for _, id := range []string{"reminder:p1:3", "reminder:p1:1"} {
		if err := capability.ScheduleWeekly(ctx, id, 2, 8, 45, payload); err != nil {
			t.Fatalf("ScheduleWeekly(%s): %v", id, err)
		}
	}

	ids, err := capability.ListScheduled(ctx)
	if err != nil {
		t.Fatalf("ListScheduled: %v", err)
	}
	if want := []string{"reminder:p1:1", "reminder:p1:3"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ListScheduled = %v, want %v (sorted)", ids, want)
	}

	if err := capability.Cancel(ctx, "reminder:p1:1"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := capability.Cancel(ctx, "reminder:p1:1"); err != nil {
		t.Errorf("cancelling an unknown id must be a no-op, got %v", err)
	}

	ids, _ = capability.ListScheduled(ctx)
	if want := []string{"reminder:p1:3"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ListScheduled = %v, want %v", ids, want)
	}
}

func TestScheduleWeeklyReplacesExistingID(t *testing.T) {
	capability, _ := newTestCapability()
	ctx := context.Background()
	payload := reminder.Payload{ProgramID: "p1"}

	if err := capability.ScheduleWeekly(ctx, "reminder:p1:1", 2, 8, 45, payload); err != nil {
		t.Fatalf("first ScheduleWeekly: %v", err)
	}
	if err := capability.ScheduleWeekly(ctx, "reminder:p1:1", 2, 9, 45, payload); err != nil {
		t.Fatalf("second ScheduleWeekly: %v", err)
	}

	ids, _ := capability.ListScheduled(ctx)
	if len(ids) != 1 {
		t.Errorf("ListScheduled = %v, want a single entry after replacement", ids)
	}
}

func TestPermissionProbes(t *testing.T) {
	capability, client := newTestCapability()
	ctx := context.Background()

	state, err := capability.PermissionStatus(ctx)
	if err != nil || state != reminder.PermissionGranted {
		t.Errorf("PermissionStatus = (%v, %v), want granted while chat reachable", state, err)
	}

	client.unreachable = true
	state, err = capability.PermissionStatus(ctx)
	if err != nil || state != reminder.PermissionUnknown {
		t.Errorf("PermissionStatus = (%v, %v), want unknown while chat unreachable", state, err)
	}
	state, err = capability.RequestPermission(ctx)
	if err != nil || state != reminder.PermissionDenied {
		t.Errorf("RequestPermission = (%v, %v), want denied while chat unreachable", state, err)
	}

	client.unreachable = false
	state, err = capability.RequestPermission(ctx)
	if err != nil || state != reminder.PermissionGranted {
		t.Errorf("RequestPermission = (%v, %v), want granted once chat reachable", state, err)
	}
}

func TestDeliverSendsPayloadBody(t *testing.T) {
	capability, client := newTestCapability()
	capability.deliver(reminder.Payload{ProgramID: "p1", Body: "Morning Show starts in 15 minutes."})

	if len(client.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(client.sent))
	}
	if want := "⏰ Morning Show starts in 15 minutes."; client.sent[0] != want {
		t.Errorf("sent %q, want %q", client.sent[0], want)
	}
}

func TestUnsupportedCapability(t *testing.T) {
	capability := NewUnsupportedCapability()
	ctx := context.Background()

	state, err := capability.PermissionStatus(ctx)
	if state != reminder.PermissionDenied || err != reminder.ErrUnsupportedPlatform {
		t.Errorf("PermissionStatus = (%v, %v), want denied with the unsupported reason", state, err)
	}
	if err := capability.ScheduleWeekly(ctx, "a", 2, 8, 45, reminder.Payload{}); err != reminder.ErrUnsupportedPlatform {
		t.Errorf("ScheduleWeekly error = %v, want ErrUnsupportedPlatform", err)
	}
	if err := capability.Cancel(ctx, "a"); err != nil {
		t.Errorf("Cancel error = %v, want nil", err)
	}
	ids, err := capability.ListScheduled(ctx)
	if err != nil || len(ids) != 0 {
		t.Errorf("ListScheduled = (%v, %v), want an empty registry", ids, err)
	}
}
