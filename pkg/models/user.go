package models

import "time"

// User represents a learner on the platform
type User struct {
	ID                  int64     `json:"id" db:"id"`
	TelegramID          int64     `json:"telegram_id" db:"telegram_id"` // 0 when no Telegram account is linked
	Username            string    `json:"username" db:"username"`
	FirstName           string    `json:"first_name" db:"first_name"`
	NotificationEnabled bool      `json:"notification_enabled" db:"notification_enabled"`
	NotificationHour    int       `json:"notification_hour" db:"notification_hour"` // Hour of day for reminders (0-23)
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}
