package program

import (
	"fmt"
	"time"
)

// Table is the immutable set of programs the process serves. It is built once
// at startup; screens and services are pure consumers.
type Table struct {
	byID  map[string]*Schedule
	order []*Schedule
}

// NewTable validates every record and builds the lookup table. Any invalid
// record fails the whole load.
func NewTable(schedules []*Schedule) (*Table, error) {
	t := &Table{byID: make(map[string]*Schedule, len(schedules))}
	for _, s := range schedules {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid program schedule: %w", err)
		}
		if _, dup := t.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate program id %s", s.ID)
		}
		t.byID[s.ID] = s
		t.order = append(t.order, s)
	}
	return t, nil
}

// ByID returns the schedule for the given program id, or nil when unknown.
func (t *Table) ByID(id string) *Schedule {
	return t.byID[id]
}

// All returns the schedules in their load order. Callers must not mutate the
// returned records.
func (t *Table) All() []*Schedule {
	return t.order
}

// Len returns the number of programs on the grid.
func (t *Table) Len() int {
	return len(t.order)
}

// LiveNow returns the program on air at the given instant, or nil when
// nothing is live.
func (t *Table) LiveNow(now time.Time) *Schedule {
	for _, s := range t.order {
		if s.IsLive(now) {
			return s
		}
	}
	return nil
}

var weekdaysMonFri = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// DefaultTable returns the built-in Dominion TV weekly grid, used when no
// database is configured.
func DefaultTable() *Table {
	t, err := NewTable([]*Schedule{
		{ID: "1", Title: "DAYBREAK LIVE", Host: "Morning Team", DaysOfWeek: weekdaysMonFri, StartHour: 7, StartMinute: 0, EndHour: 8, EndMinute: 50, HasEnd: true},
		{ID: "2", Title: "AGENDA", Host: "News Desk", DaysOfWeek: weekdaysMonFri, StartHour: 9, StartMinute: 0, EndHour: 9, EndMinute: 50, HasEnd: true},
		{ID: "3", Title: "The Big Conversation", Host: "Discussion Panel", DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday, time.Friday}, StartHour: 10, StartMinute: 0, EndHour: 10, EndMinute: 50, HasEnd: true},
		{ID: "4", Title: "Dominion Sport", Host: "Sports Desk", DaysOfWeek: []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}, StartHour: 11, StartMinute: 0, EndHour: 11, EndMinute: 55, HasEnd: true},
		{ID: "5", Title: "NEWS at 12 noon", Host: "News Anchors", DaysOfWeek: weekdaysMonFri, StartHour: 12, StartMinute: 0, EndHour: 13, EndMinute: 50, HasEnd: true},
		{ID: "6", Title: "E-Plus", Host: "Entertainment Team", DaysOfWeek: []time.Weekday{time.Saturday, time.Sunday}, StartHour: 13, StartMinute: 0, EndHour: 13, EndMinute: 50, HasEnd: true},
		{ID: "7", Title: "LOJUDE DOMINION", Host: "Cultural Team", DaysOfWeek: []time.Weekday{time.Sunday}, StartHour: 14, StartMinute: 0, EndHour: 14, EndMinute: 50, HasEnd: true},
		{ID: "8", Title: "IYO AYE", Host: "Lifestyle Team", DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday}, StartHour: 15, StartMinute: 30, EndHour: 16, EndMinute: 30, HasEnd: true},
		{ID: "9", Title: "The POLISCOPE", Host: "Political Analysts", DaysOfWeek: []time.Weekday{time.Thursday, time.Sunday}, StartHour: 18, StartMinute: 0, EndHour: 19, EndMinute: 0, HasEnd: true},
	})
	if err != nil {
		// The built-in grid is covered by tests; a validation failure here is
		// a programming error.
		panic(err)
	}
	return t
}
