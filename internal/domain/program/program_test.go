package program

import (
	"strings"
	"testing"
	"time"
)

// 2024-01-01 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func sunday(hour, minute int) time.Time {
	return time.Date(2024, 1, 7, hour, minute, 0, 0, time.UTC)
}

func mondayShow() *Schedule {
	return &Schedule{
		ID:          "p1",
		Title:       "Morning Show",
		DaysOfWeek:  []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		StartHour:   9,
		StartMinute: 0,
		EndHour:     9,
		EndMinute:   50,
		HasEnd:      true,
	}
}

func TestIsLive(t *testing.T) {
	s := mondayShow()

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before start", monday(8, 59), false},
		{"at start minute", monday(9, 0), true},
		{"mid window", monday(9, 25), true},
		{"last live minute", monday(9, 49), true},
		{"at end minute", monday(9, 50), false},
		{"after end", monday(10, 0), false},
		{"right time wrong weekday", sunday(9, 25), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsLive(tt.now); got != tt.want {
				t.Errorf("IsLive(%s) = %v, want %v", tt.now.Format("Mon 15:04"), got, tt.want)
			}
		})
	}
}

func TestIsLiveWithoutEndTime(t *testing.T) {
	s := mondayShow()
	s.HasEnd = false
	if s.IsLive(monday(9, 25)) {
		t.Error("program without an end time must never report live")
	}
}

func TestReminderTime(t *testing.T) {
	tests := []struct {
		name        string
		startHour   int
		startMinute int
		wantHour    int
		wantMinute  int
	}{
		{"no borrow", 9, 30, 9, 15},
		{"exactly the lead", 9, 15, 9, 0},
		{"borrow one hour", 9, 0, 8, 45},
		{"borrow near lead boundary", 12, 14, 11, 59},
		{"late evening", 18, 0, 17, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mondayShow()
			s.StartHour = tt.startHour
			s.StartMinute = tt.startMinute
			hour, minute := s.ReminderTime()
			if hour != tt.wantHour || minute != tt.wantMinute {
				t.Errorf("ReminderTime() = %02d:%02d, want %02d:%02d", hour, minute, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Schedule)
		wantErr string
	}{
		{"valid", func(s *Schedule) {}, ""},
		{"empty id", func(s *Schedule) { s.ID = "" }, "empty id"},
		{"empty title", func(s *Schedule) { s.Title = "" }, "empty title"},
		{"no weekdays", func(s *Schedule) { s.DaysOfWeek = nil }, "no scheduled weekdays"},
		{"weekday out of domain", func(s *Schedule) { s.DaysOfWeek = []time.Weekday{7} }, "outside 0..6"},
		{"duplicate weekday", func(s *Schedule) { s.DaysOfWeek = []time.Weekday{time.Monday, time.Monday} }, "repeats weekday"},
		{"start hour out of domain", func(s *Schedule) { s.StartHour = 24 }, "start hour"},
		{"start minute out of domain", func(s *Schedule) { s.StartMinute = 60 }, "start minute"},
		{"start inside reminder lead", func(s *Schedule) { s.StartHour = 0; s.StartMinute = 10 }, "reminder lead"},
		{"midnight start at lead boundary is fine", func(s *Schedule) {
			s.StartHour = 0
			s.StartMinute = 15
			s.EndHour = 1
			s.EndMinute = 0
		}, ""},
		{"window crosses midnight", func(s *Schedule) { s.StartHour = 23; s.StartMinute = 0; s.EndHour = 0; s.EndMinute = 30 }, "does not end after it starts"},
		{"zero-length window", func(s *Schedule) { s.EndHour = 9; s.EndMinute = 0 }, "does not end after it starts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mondayShow()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewTableRejectsDuplicateIDs(t *testing.T) {
	a := mondayShow()
	b := mondayShow()
	if _, err := NewTable([]*Schedule{a, b}); err == nil || !strings.Contains(err.Error(), "duplicate program id") {
		t.Errorf("NewTable() = %v, want duplicate id error", err)
	}
}

func TestNewTableRejectsInvalidRecord(t *testing.T) {
	bad := mondayShow()
	bad.StartHour = 0
	bad.StartMinute = 5
	if _, err := NewTable([]*Schedule{bad}); err == nil {
		t.Error("NewTable() accepted a record inside the reminder lead")
	}
}

func TestTableLookupAndLiveNow(t *testing.T) {
	table, err := NewTable([]*Schedule{mondayShow()})
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	if table.ByID("p1") == nil {
		t.Error("ByID(p1) = nil, want the schedule")
	}
	if table.ByID("missing") != nil {
		t.Error("ByID(missing) != nil")
	}
	if live := table.LiveNow(monday(9, 25)); live == nil || live.ID != "p1" {
		t.Errorf("LiveNow() = %v, want p1", live)
	}
	if live := table.LiveNow(monday(20, 0)); live != nil {
		t.Errorf("LiveNow() = %v, want nil", live)
	}
}

func TestDefaultTableIsValid(t *testing.T) {
	table := DefaultTable()
	if table.Len() != 9 {
		t.Errorf("DefaultTable().Len() = %d, want 9", table.Len())
	}
	for _, s := range table.All() {
		if err := s.Validate(); err != nil {
			t.Errorf("built-in grid entry %s invalid: %v", s.ID, err)
		}
	}
}
