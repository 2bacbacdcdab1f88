package telegram

import (
	"errors"
	"fmt"

	"github.com/YashDwivedi1205/AIFSA-Project/pkg/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrNotConfigured is returned when the bot token or chat id is missing.
var ErrNotConfigured = errors.New("telegram is not configured")

// Notifier posts Markdown messages to one chat.
type Notifier interface {
	SendMessage(text string) error
}

type client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a notifier for the configured chat.
func NewClient(cfg config.Telegram) (Notifier, error) {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return nil, ErrNotConfigured
	}
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &client{
		bot:    bot,
		chatID: cfg.ChatID,
	}, nil
}

func (c *client) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := c.bot.Send(msg)
	return err
}

// SendAll sends parts in order and stops at the first failure.
func SendAll(n Notifier, parts []string) error {
	for i, part := range parts {
		if err := n.SendMessage(part); err != nil {
			return fmt.Errorf("send part %d/%d: %w", i+1, len(parts), err)
		}
	}
	return nil
}
