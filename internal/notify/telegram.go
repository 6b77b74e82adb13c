package notify

import (
	"context"

	tele "gopkg.in/telebot.v3"
)

// TelegramChannel delivers messages through the Telegram Bot API.
type TelegramChannel struct {
	bot *tele.Bot
}

// NewTelegramChannel wraps an existing bot instance. The bot does not
// need a running poller to send.
func NewTelegramChannel(bot *tele.Bot) *TelegramChannel {
	return &TelegramChannel{bot: bot}
}

func (t *TelegramChannel) Send(ctx context.Context, chatID int64, text string, button *Button) error {
	recipient := &tele.User{ID: chatID}

	opts := []interface{}{tele.ModeHTML}
	if button != nil {
		menu := &tele.ReplyMarkup{}
		btn := menu.URL(button.Text, button.URL)
		menu.Inline(menu.Row(btn))
		opts = append(opts, menu)
	}

	_, err := t.bot.Send(recipient, text, opts...)
	return err
}

// ChatInfo looks up a chat's Telegram username and first name.
func (t *TelegramChannel) ChatInfo(chatID int64) (string, string, error) {
	chat, err := t.bot.ChatByID(chatID)
	if err != nil {
		return "", "", err
	}
	return chat.Username, chat.FirstName, nil
}
