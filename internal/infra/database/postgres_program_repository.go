package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"program_reminder_bot/internal/domain/program"

	"github.com/lib/pq" // For pq.Array and driver registration
)

type PostgresProgramRepository struct {
	db *sql.DB
}

func NewPostgresProgramRepository(db *sql.DB) *PostgresProgramRepository {
	return &PostgresProgramRepository{db: db}
}

// ListAll fetches the whole weekly grid in display order. Validation happens
// in program.NewTable, not here.
func (r *PostgresProgramRepository) ListAll(ctx context.Context) ([]*program.Schedule, error) {
	query := `SELECT id, title, host, days_of_week, start_hour, start_minute, end_hour, end_minute
               FROM programs ORDER BY start_hour, start_minute, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing programs: %w", err)
	}
	defer rows.Close()

	var schedules []*program.Schedule
	for rows.Next() {
		s := &program.Schedule{}
		var days []int64
		var endHour, endMinute sql.NullInt64
		err := rows.Scan(&s.ID, &s.Title, &s.Host, pq.Array(&days), &s.StartHour, &s.StartMinute, &endHour, &endMinute)
		if err != nil {
			return nil, fmt.Errorf("error scanning program row: %w", err)
		}
		for _, d := range days {
			s.DaysOfWeek = append(s.DaysOfWeek, time.Weekday(d))
		}
		if endHour.Valid && endMinute.Valid {
			s.HasEnd = true
			s.EndHour = int(endHour.Int64)
			s.EndMinute = int(endMinute.Int64)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating program rows: %w", err)
	}
	return schedules, nil
}
