package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken     string // empty means no notification capability on this runtime
	NotifyChatID      int64  // chat that receives reminder alerts and owns the toggles
	AdminTelegramID   int64  // chat allowed to post news
	DatabaseURL       string // empty means file-backed preferences and the built-in grid
	PreferencesFile   string // used when DatabaseURL is empty
	LogLevel          string
	Environment       string
	CronSpecLiveCheck string // cadence of the on-air status poll
}

// TelegramEnabled reports whether a bot transport is configured at all.
func (c *AppConfig) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

// UseDatabase reports whether Postgres backs the schedule, preferences and news.
func (c *AppConfig) UseDatabase() bool {
	return c.DatabaseURL != ""
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	if cfg.TelegramToken != "" {
		notifyIDStr := os.Getenv("NOTIFY_CHAT_ID")
		if notifyIDStr == "" {
			return nil, fmt.Errorf("NOTIFY_CHAT_ID is not set")
		}
		cfg.NotifyChatID, err = strconv.ParseInt(notifyIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_CHAT_ID: %w", err)
		}

		adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
		if adminIDStr == "" {
			return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
		}
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.PreferencesFile = os.Getenv("PREFERENCES_FILE")
	if cfg.PreferencesFile == "" {
		cfg.PreferencesFile = defaultPreferencesPath()
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecLiveCheck = os.Getenv("CRON_SPEC_LIVE_CHECK")
	if cfg.CronSpecLiveCheck == "" {
		cfg.CronSpecLiveCheck = "* * * * *" // Default: every minute
	}

	return cfg, nil
}

// defaultPreferencesPath returns ~/.config/program-reminder-bot/preferences.json
// (or a working-directory fallback).
func defaultPreferencesPath() string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", "program-reminder-bot", "preferences.json")
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, "preferences.json")
}
