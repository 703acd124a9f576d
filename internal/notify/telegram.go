package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/quizhub/pkg/models"
)

// TelegramNotifier delivers practice reminders through a Telegram bot.
// Users without a linked Telegram account are skipped silently.
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
}

// NewTelegramNotifier creates a notifier for the given bot token
func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}
	return &TelegramNotifier{api: api}, nil
}

// SendReminder sends the due-question count to the user's Telegram chat
func (n *TelegramNotifier) SendReminder(user models.User, dueCount int) error {
	if user.TelegramID == 0 {
		return nil
	}

	text := fmt.Sprintf("You have %d questions ready for practice. Keep your streak going!", dueCount)
	msg := tgbotapi.NewMessage(user.TelegramID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}
