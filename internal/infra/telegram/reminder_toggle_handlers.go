// internal/infra/telegram/reminder_toggle_handlers.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"program_reminder_bot/internal/app"

	"gopkg.in/telebot.v3"
)

func RegisterReminderToggleHandlers(ctx context.Context, b *telebot.Bot, reminderService *app.ReminderService) {
	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := strings.TrimPrefix(c.Callback().Data, "\f")

		var programID string
		var enable bool
		switch {
		case strings.HasPrefix(data, "rem_on_"):
			programID = strings.TrimPrefix(data, "rem_on_")
			enable = true
		case strings.HasPrefix(data, "rem_off_"):
			programID = strings.TrimPrefix(data, "rem_off_")
			enable = false
		default:
			// Fallback for unhandled callbacks by this specific handler.
			c.Bot().OnError(fmt.Errorf("unhandled callback data by reminder_toggle_handler: %s", data), c)
			return c.Respond(&telebot.CallbackResponse{Text: "Unknown action."})
		}

		if err := reminderService.SetEnabled(ctx, programID, enable); err != nil {
			c.Bot().OnError(fmt.Errorf("error toggling reminders for program %s: %w", programID, err), c)
			return c.Respond(&telebot.CallbackResponse{Text: toggleErrorText(err)})
		}

		// Redraw the keyboard so the toggle reflects the committed state.
		text, markup := reminderKeyboard(reminderService)
		if err := c.Edit(text, markup); err != nil {
			c.Bot().OnError(fmt.Errorf("error redrawing reminder keyboard: %w", err), c)
		}

		if enable {
			return c.Respond(&telebot.CallbackResponse{Text: "Reminder on. You'll hear from me 15 minutes before start."})
		}
		return c.Respond(&telebot.CallbackResponse{Text: "Reminder off."})
	})
}

// toggleErrorText maps the engine's failure taxonomy onto user-facing copy so
// the chat can re-render an accurate state on failure.
func toggleErrorText(err error) string {
	switch {
	case errors.Is(err, app.ErrUnknownProgram):
		return "That program is no longer on the grid."
	case errors.Is(err, app.ErrPermissionDenied):
		return "I can't message you yet. Open this chat and press Start, then try again."
	case errors.Is(err, app.ErrStorage):
		return "Saving your preference failed. Nothing was changed; please try again."
	default:
		return "Something went wrong. Your reminders were left as they were."
	}
}
