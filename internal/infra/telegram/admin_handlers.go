package telegram

import (
	"context"
	"fmt"
	"strings"

	"program_reminder_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterAdminHandlers registers handlers for admin commands.
// It requires the bot instance, news service, and the configured admin Telegram ID.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, newsService *app.NewsService, adminTelegramID int64, baseLogger *logrus.Entry) {
	b.Handle("/add_news", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/add_news",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You are not allowed to post news.")
		}

		// Expected format: /add_news <headline...>
		title := strings.TrimSpace(strings.Join(c.Args(), " "))
		if title == "" {
			handlerLogger.Warn("Invalid command format")
			return c.Send("Usage: /add_news <headline>")
		}

		item, err := newsService.PostNews(ctx, c.Sender().ID, title)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch err {
			case app.ErrNewsNotAuthorized: // Technically redundant here due to the initial sender check
				logWithError.Warn("Admin not authorized (service level)")
				return c.Send("You are not allowed to post news.")
			case app.ErrEmptyNewsTitle:
				logWithError.Warn("Empty headline")
				return c.Send("Usage: /add_news <headline>")
			default:
				logWithError.Error("Failed to post news item")
				return c.Send("Could not post the headline. Please try again later.")
			}
		}

		handlerLogger.WithField("news_id", item.ID).Info("News item posted")
		return c.Send(fmt.Sprintf("Posted: %s", item.Title))
	})
}
