package telegram

import "gopkg.in/telebot.v3"

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
	// ChatReachable reports whether the bot can deliver to the chat, i.e. the
	// chat exists and the user has started (and not blocked) the bot.
	ChatReachable(chatID int64) error
}
