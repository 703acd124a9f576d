package notify

import (
	"log"

	"github.com/example/quizhub/pkg/models"
)

// LogNotifier writes reminders to the application log. Used when no
// delivery channel is configured.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// SendReminder logs the reminder instead of delivering it
func (n *LogNotifier) SendReminder(user models.User, dueCount int) error {
	log.Printf("Reminder for user %d: %d questions due for practice", user.ID, dueCount)
	return nil
}
