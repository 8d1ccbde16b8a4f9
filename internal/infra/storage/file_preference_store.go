package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"program_reminder_bot/internal/domain/reminder"
)

// FilePreferenceStore persists the preference mapping as a JSON file. Used on
// runtimes without a database. Writes go through a temp file plus rename so a
// crash mid-save never leaves a partial mapping on disk.
type FilePreferenceStore struct {
	path string
	mu   sync.Mutex
}

func NewFilePreferenceStore(path string) (*FilePreferenceStore, error) {
	if path == "" {
		return nil, errors.New("preferences file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create preferences dir: %w", err)
	}
	return &FilePreferenceStore{path: path}, nil
}

func (f *FilePreferenceStore) Load(_ context.Context) (reminder.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// First run: nothing persisted yet.
			return reminder.Preferences{}, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}

	prefs := reminder.Preferences{}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return prefs, nil
}

func (f *FilePreferenceStore) Save(_ context.Context, prefs reminder.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	// Atomic write
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}
