package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"program_reminder_bot/internal/domain/reminder"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// preferencesKey is the single well-known row holding the serialized
// programId → enabled mapping.
const preferencesKey = "notification_preferences"

// PostgresPreferenceStore persists the preference mapping as one JSON value
// in the app_state key/value table. The upsert makes Save atomic from the
// caller's perspective: a later Load sees either the old mapping or the new
// one, never a partial write.
type PostgresPreferenceStore struct {
	db *sql.DB
}

func NewPostgresPreferenceStore(db *sql.DB) *PostgresPreferenceStore {
	return &PostgresPreferenceStore{db: db}
}

func (s *PostgresPreferenceStore) Load(ctx context.Context) (reminder.Preferences, error) {
	query := `SELECT value FROM app_state WHERE key = $1`
	var raw []byte
	err := s.db.QueryRowContext(ctx, query, preferencesKey).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			// Nothing persisted yet is not a failure.
			return reminder.Preferences{}, nil
		}
		return nil, fmt.Errorf("error loading preferences: %w", err)
	}

	prefs := reminder.Preferences{}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("error decoding preferences: %w", err)
	}
	return prefs, nil
}

func (s *PostgresPreferenceStore) Save(ctx context.Context, prefs reminder.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("error encoding preferences: %w", err)
	}

	query := `INSERT INTO app_state (key, value, updated_at)
               VALUES ($1, $2, NOW())
               ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	if _, err := s.db.ExecContext(ctx, query, preferencesKey, raw); err != nil {
		return fmt.Errorf("error saving preferences: %w", err)
	}
	return nil
}
