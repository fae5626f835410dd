package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier delivers review reminders to a Telegram chat
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// SendReminder sends a message telling the user how many words are due
func (n *TelegramNotifier) SendReminder(dueCount int) error {
	wordForm := "words"
	if dueCount == 1 {
		wordForm = "word"
	}
	text := fmt.Sprintf("You have %d %s due for review! Open the trainer and run a review session.", dueCount, wordForm)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}
