package error_notificator

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramInfra struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramInfra returns nil when alerting is not configured;
// the caller falls back to Nop.
func NewTelegramInfra() *TelegramInfra {
	token := os.Getenv("TELEGRAM_ALERT_TOKEN")
	chatStr := os.Getenv("TELEGRAM_ALERT_CHAT_ID")
	if token == "" || chatStr == "" {
		return nil
	}

	chatID, err := strconv.ParseInt(chatStr, 10, 64)
	if err != nil {
		log.Printf("[error_notificator] bad TELEGRAM_ALERT_CHAT_ID: %v", err)
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("[error_notificator] bot init fail: %v", err)
		return nil
	}

	return &TelegramInfra{bot: bot, chatID: chatID}
}

func (i *TelegramInfra) Notify(ctx context.Context, err error, details string) error {
	text := fmt.Sprintf(
		"Suara backend error\n\nError: %v\n\nDetails: %s",
		err,
		details,
	)

	msg := tgbotapi.NewMessage(i.chatID, text)

	if _, sendErr := i.bot.Send(msg); sendErr != nil {
		log.Printf("[error_notificator] send fail: %v", sendErr)
		return sendErr
	}

	return nil
}

// Nop swallows reports when no alert chat is configured.
type Nop struct{}

func (Nop) Notify(ctx context.Context, err error, details string) error {
	return nil
}
