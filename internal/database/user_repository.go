package database

import (
	"context"
	"fmt"

	"github.com/example/quizhub/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID returns a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := DB.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// GetUsersForNotification returns users who opted into reminders at the
// given hour of day
func (r *UserRepository) GetUsersForNotification(ctx context.Context, hour int) ([]models.User, error) {
	var users []models.User
	err := DB.SelectContext(ctx, &users,
		"SELECT * FROM users WHERE notification_enabled = true AND notification_hour = $1",
		hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %v", err)
	}
	return users, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (telegram_id, username, first_name, notification_enabled, notification_hour)
		VALUES ($1, $2, $3, $4, $5)
	`
	if DB.DriverName() == "postgres" {
		return DB.QueryRowContext(ctx, query+" RETURNING id",
			user.TelegramID, user.Username, user.FirstName,
			user.NotificationEnabled, user.NotificationHour,
		).Scan(&user.ID)
	}

	result, err := DB.ExecContext(ctx, query,
		user.TelegramID, user.Username, user.FirstName,
		user.NotificationEnabled, user.NotificationHour)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	user.ID = id
	return nil
}
