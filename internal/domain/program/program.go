package program

import (
	"fmt"
	"time"
)

// ReminderLeadMinutes is the fixed lead time between a program's reminder
// alert and its start.
const ReminderLeadMinutes = 15

// Schedule describes one recurring program on the weekly broadcast grid.
// Records are immutable after table load; weekdays follow time.Weekday
// numbering (0 = Sunday).
type Schedule struct {
	ID          string
	Title       string
	Host        string
	DaysOfWeek  []time.Weekday
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
	HasEnd      bool
}

// Validate checks that a schedule record is usable by the reminder engine.
// It is called once at table load so downstream code can assume every record
// is well formed.
func (s *Schedule) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("program has empty id")
	}
	if s.Title == "" {
		return fmt.Errorf("program %s has empty title", s.ID)
	}
	if len(s.DaysOfWeek) == 0 {
		return fmt.Errorf("program %s has no scheduled weekdays", s.ID)
	}
	seen := make(map[time.Weekday]bool, len(s.DaysOfWeek))
	for _, d := range s.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("program %s has weekday %d outside 0..6", s.ID, d)
		}
		if seen[d] {
			return fmt.Errorf("program %s repeats weekday %s", s.ID, d)
		}
		seen[d] = true
	}
	if s.StartHour < 0 || s.StartHour > 23 {
		return fmt.Errorf("program %s has start hour %d outside 0..23", s.ID, s.StartHour)
	}
	if s.StartMinute < 0 || s.StartMinute > 59 {
		return fmt.Errorf("program %s has start minute %d outside 0..59", s.ID, s.StartMinute)
	}
	// A start inside the first ReminderLeadMinutes of the day would put the
	// reminder on the previous day, which the weekly trigger contract cannot
	// express. Rejected at load instead of guessed at toggle time.
	if s.StartHour == 0 && s.StartMinute < ReminderLeadMinutes {
		return fmt.Errorf("program %s starts at 00:%02d, inside the %d-minute reminder lead", s.ID, s.StartMinute, ReminderLeadMinutes)
	}
	if s.HasEnd {
		if s.EndHour < 0 || s.EndHour > 23 {
			return fmt.Errorf("program %s has end hour %d outside 0..23", s.ID, s.EndHour)
		}
		if s.EndMinute < 0 || s.EndMinute > 59 {
			return fmt.Errorf("program %s has end minute %d outside 0..59", s.ID, s.EndMinute)
		}
		// Windows crossing midnight are not supported by the live-status rule.
		if s.startMinutes() >= s.endMinutes() {
			return fmt.Errorf("program %s window %02d:%02d-%02d:%02d does not end after it starts",
				s.ID, s.StartHour, s.StartMinute, s.EndHour, s.EndMinute)
		}
	}
	return nil
}

func (s *Schedule) startMinutes() int { return s.StartHour*60 + s.StartMinute }
func (s *Schedule) endMinutes() int   { return s.EndHour*60 + s.EndMinute }

// AirsOn reports whether the program recurs on the given weekday.
func (s *Schedule) AirsOn(day time.Weekday) bool {
	for _, d := range s.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// IsLive reports whether the program is on air at the given instant. The
// window is half open: live at the start minute, no longer live at the end
// minute. Programs without an end time are never reported live.
func (s *Schedule) IsLive(now time.Time) bool {
	if !s.HasEnd {
		return false
	}
	if !s.AirsOn(now.Weekday()) {
		return false
	}
	m := now.Hour()*60 + now.Minute()
	return m >= s.startMinutes() && m < s.endMinutes()
}

// ReminderTime returns the wall-clock time of day the reminder alert fires,
// ReminderLeadMinutes before the program start. Borrows an hour when the
// start minute is inside the lead; Validate guarantees the hour never goes
// below zero.
func (s *Schedule) ReminderTime() (hour, minute int) {
	minute = s.StartMinute - ReminderLeadMinutes
	hour = s.StartHour
	if minute < 0 {
		minute += 60
		hour--
	}
	return hour, minute
}
