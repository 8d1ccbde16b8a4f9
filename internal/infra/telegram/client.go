// internal/infra/telegram/client.go
package telegram

import (
	"fmt"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified recipient.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.User{ID: recipientChatID} // Subscriber chats are direct user chats
	_, err := tba.bot.Send(recipient, text, options)
	return err
}

// ChatReachable probes the chat through the Bot API. The call fails until the
// user has started the bot, and again if the user blocks it, which is exactly
// the reachability signal the permission gate needs.
func (tba *TelebotAdapter) ChatReachable(chatID int64) error {
	if _, err := tba.bot.ChatByID(chatID); err != nil {
		return fmt.Errorf("chat %d not reachable: %w", chatID, err)
	}
	return nil
}
