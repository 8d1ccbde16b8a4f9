// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"program_reminder_bot/internal/app"
	"program_reminder_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	cfg *config.AppConfig, // For NotifyChatID / AdminTelegramID
	reminderService *app.ReminderService,
	newsService *app.NewsService,
	baseLogger *logrus.Entry, // For contextual logging
) {
	commandsLogger := baseLogger.WithField("handler_group", "commands")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/start").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /start command")
		return c.Send("Welcome to Dominion TV! Use /schedule for the weekly grid, /live for what's on air, /news for headlines and /reminders to manage program alerts.")
	})

	b.Handle("/help", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/help").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /help command")

		var helpText strings.Builder
		helpText.WriteString("Available commands:\n\n")
		helpText.WriteString("`/schedule`\n - Show the weekly program grid.\n\n")
		helpText.WriteString("`/live`\n - Show the program currently on air.\n\n")
		helpText.WriteString("`/news`\n - Show the latest headlines.\n\n")
		helpText.WriteString("`/reminders`\n - Toggle the 15-minute reminder per program.\n\n")
		if c.Sender().ID == cfg.AdminTelegramID {
			helpText.WriteString("`/add_news <headline>`\n - Post a headline to the news feed.\n\n")
		}
		helpText.WriteString("`/help`\n - Show this help message.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/schedule", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/schedule").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /schedule command")

		var out strings.Builder
		out.WriteString("*Weekly program grid*\n\n")
		for _, p := range reminderService.Programs() {
			days := make([]string, 0, len(p.DaysOfWeek))
			for _, d := range p.DaysOfWeek {
				days = append(days, d.String()[:3])
			}
			out.WriteString(fmt.Sprintf("*%s* — %s\n%s %02d:%02d", p.Title, p.Host, strings.Join(days, "/"), p.StartHour, p.StartMinute))
			if p.HasEnd {
				out.WriteString(fmt.Sprintf("–%02d:%02d", p.EndHour, p.EndMinute))
			}
			out.WriteString("\n\n")
		}
		return c.Send(out.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/live", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/live").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /live command")

		live := reminderService.LiveNow(time.Now())
		if live == nil {
			return c.Send("Nothing is on air right now. Use /schedule to see what's coming up.")
		}
		return c.Send(fmt.Sprintf("🔴 LIVE now: *%s* with %s (until %02d:%02d)",
			live.Title, live.Host, live.EndHour, live.EndMinute),
			&telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/news", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/news").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /news command")

		items, err := newsService.LatestNews(ctx)
		if err != nil {
			logCtx.WithError(err).Error("Failed to load news feed")
			return c.Send("Could not load the news feed. Please try again later.")
		}
		if len(items) == 0 {
			return c.Send("No headlines yet.")
		}

		var out strings.Builder
		out.WriteString("*Latest headlines*\n\n")
		for _, item := range items {
			out.WriteString(fmt.Sprintf("• %s _(%s)_\n", item.Title, item.PublishedAt.Format("Jan 2 15:04")))
		}
		return c.Send(out.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/reminders", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/reminders").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /reminders command")

		if c.Sender().ID != cfg.NotifyChatID {
			logCtx.Warn("Reminders requested from a chat that is not the subscriber chat")
			return c.Send("Reminders are managed from the subscriber chat this bot was configured for.")
		}

		text, markup := reminderKeyboard(reminderService)
		return c.Send(text, &telebot.SendOptions{ReplyMarkup: markup})
	})
}

// reminderKeyboard renders one inline button per program reflecting the
// current toggle state.
func reminderKeyboard(reminderService *app.ReminderService) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	for _, p := range reminderService.Programs() {
		label := "🔕 " + p.Title
		data := "rem_on_" + p.ID
		if reminderService.Enabled(p.ID) {
			label = "🔔 " + p.Title
			data = "rem_off_" + p.ID
		}
		rows = append(rows, markup.Row(markup.Data(label, data)))
	}
	markup.Inline(rows...)
	return "Program reminders — tap to toggle. 🔔 means a reminder fires 15 minutes before start.", markup
}
