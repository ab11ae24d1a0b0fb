package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService pings the admin chat about notable events. Safe to use as
// a nil receiver: a disabled integration skips silently.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, adminChatID int64) (*TelegramService, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &TelegramService{bot: bot, chatID: adminChatID}, nil
}

func (t *TelegramService) send(text string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send] failed: %v", err)
	}
}

func (t *TelegramService) NotifyNewUser(name, email string) {
	t.send(fmt.Sprintf("New Blogsyte user: %s <%s>", name, email))
}

func (t *TelegramService) NotifyNewPost(title, author string) {
	t.send(fmt.Sprintf("New post published: %q by %s", title, author))
}
