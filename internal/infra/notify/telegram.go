package notify

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/telebot.v3"

	"web_monitor_bot/internal/domain/channel"
)

// Telegram sends change alerts to a chat through the Bot API.
type Telegram struct {
	bot    *telebot.Bot
	chatID int64
}

// NewTelegram creates the bot client. The token is validated against the Bot
// API here, so a bad token surfaces at startup rather than on the first
// change event.
func NewTelegram(botToken string, chatID int64) (*Telegram, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  botToken,
		Client: defaultClient,
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: error creating bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Name() string         { return "telegram" }
func (t *Telegram) Class() channel.Class { return channel.ClassChat }

func (t *Telegram) Send(ctx context.Context, msg channel.Message) error {
	deadline, ok := ctx.Deadline()
	if ok && time.Until(deadline) <= 0 {
		return ctx.Err()
	}
	text := fmt.Sprintf("🚨 *%s*\n\n%s", msg.Subject, msg.Body)
	_, err := t.bot.Send(telebot.ChatID(t.chatID), text, &telebot.SendOptions{
		ParseMode: telebot.ModeMarkdown,
	})
	if err != nil {
		return fmt.Errorf("telegram: error sending message: %w", err)
	}
	return nil
}
