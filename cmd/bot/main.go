package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"program_reminder_bot/internal/app"
	"program_reminder_bot/internal/domain/program"
	"program_reminder_bot/internal/domain/reminder"
	"program_reminder_bot/internal/infra/config"
	idb "program_reminder_bot/internal/infra/database"
	"program_reminder_bot/internal/infra/logger"
	"program_reminder_bot/internal/infra/notify"
	"program_reminder_bot/internal/infra/scheduler"
	"program_reminder_bot/internal/infra/storage"
	"program_reminder_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Program Reminder Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	mainLogger := logger.Log.WithField("component", "main")
	mainLogger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"telegram":    cfg.TelegramEnabled(),
		"database":    cfg.UseDatabase(),
	}).Info("Configuration loaded.")

	ctx := context.Background()

	// Schedule table, preference store and news backend: Postgres when
	// configured, built-in grid plus file/in-memory stores otherwise.
	var table *program.Table
	var prefStore reminder.PreferenceStore
	var newsService *app.NewsService

	if cfg.UseDatabase() {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not connect to database.")
		}
		defer db.Close()
		mainLogger.Info("Database connection established successfully.")

		schedules, err := idb.NewPostgresProgramRepository(db).ListAll(ctx)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not load the program grid.")
		}
		table, err = program.NewTable(schedules)
		if err != nil {
			mainLogger.WithError(err).Fatal("Program grid failed validation.")
		}
		prefStore = idb.NewPostgresPreferenceStore(db)
		newsService = app.NewNewsService(idb.NewPostgresNewsRepository(db), cfg.AdminTelegramID)
	} else {
		table = program.DefaultTable()
		fileStore, err := storage.NewFilePreferenceStore(cfg.PreferencesFile)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not open the preferences file.")
		}
		prefStore = fileStore
		newsService = app.NewNewsService(storage.NewMemoryNewsRepository(storage.SeedNews(time.Now())), cfg.AdminTelegramID)
	}
	mainLogger.WithField("programs", table.Len()).Info("Program grid loaded.")

	// Notification capability: cron-driven Telegram delivery, or the
	// unsupported stand-in when no bot token is configured.
	var capability reminder.Capability
	var bot *telebot.Bot
	var telegramCapability *notify.TelegramCapability

	if cfg.TelegramEnabled() {
		pref := telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) { // Global error handler
				entry := logger.Log.WithField("component", "telebot").WithError(err)
				if c != nil && c.Sender() != nil && c.Chat() != nil {
					entry = entry.WithFields(logrus.Fields{
						"message": c.Text(),
						"sender":  c.Sender().ID,
						"chat":    c.Chat().ID,
					})
				}
				entry.Error("Telegram handler error")
			},
		}
		bot, err = telebot.NewBot(pref)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not create Telegram bot.")
		}

		telegramCapability = notify.NewTelegramCapability(
			telegram.NewTelebotAdapter(bot),
			cfg.NotifyChatID,
			logger.Log.WithField("component", "capability"),
		)
		telegramCapability.Start()
		capability = telegramCapability
	} else {
		mainLogger.Warn("TELEGRAM_TOKEN not set; notifications run with the unsupported-platform capability.")
		capability = notify.NewUnsupportedCapability()
	}

	gate := app.NewPermissionGate(capability, logger.Log.WithField("component", "permission_gate"))
	reminderService := app.NewReminderService(table, prefStore, capability, gate, logger.Log.WithField("component", "reminder_service"))

	if err := reminderService.LoadPreferences(ctx); err != nil {
		mainLogger.WithError(err).Fatal("Could not load notification preferences.")
	}
	if err := reminderService.Reconcile(ctx); err != nil {
		mainLogger.WithError(err).Error("Alert reconciliation failed; continuing with whatever was restored.")
	}

	// Periodic on-air status refresh.
	livePoller := scheduler.NewLivePoller(table, logger.Log.WithField("component", "live_poller"), cfg.CronSpecLiveCheck, nil)
	if err := livePoller.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start the live-status poller.")
	}

	if bot != nil {
		handlersLogger := logger.Log.WithField("component", "telegram")
		telegram.RegisterBotCommands(ctx, bot, cfg, reminderService, newsService, handlersLogger)
		telegram.RegisterReminderToggleHandlers(ctx, bot, reminderService)
		telegram.RegisterAdminHandlers(ctx, bot, newsService, cfg.AdminTelegramID, handlersLogger)
		mainLogger.Info("Telegram handlers registered.")

		// Start bot in a goroutine so it doesn't block graceful shutdown handling
		go bot.Start()
	}

	mainLogger.Info("Application setup complete.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	livePoller.Stop()
	if telegramCapability != nil {
		telegramCapability.Stop()
	}
	if bot != nil {
		bot.Stop()
	}
	// db.Close() is handled by defer
	mainLogger.Info("Application shut down gracefully.")
}
