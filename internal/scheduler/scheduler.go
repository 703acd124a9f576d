package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/quizhub/internal/database"
	"github.com/example/quizhub/pkg/models"
)

// Default notification window (hours of day, UTC)
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22

	// A question counts as due for reminder purposes while its stored
	// priority is at most this, or while it has never been answered.
	urgentPriorityCeiling = 3
)

// Notifier interface for sending practice reminders
type Notifier interface {
	SendReminder(user models.User, dueCount int) error
}

// Scheduler runs the hourly reminder job: every user whose notification
// hour matches the current hour and who has urgent questions waiting gets
// a reminder with the count.
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders checks for users who need reminders and sends them
func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().UTC().Hour()

	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	ctx := context.Background()
	userRepo := database.NewUserRepository()
	questionRepo := database.NewQuestionRepository()

	users, err := userRepo.GetUsersForNotification(ctx, currentHour)
	if err != nil {
		log.Printf("Error getting users for notification: %v", err)
		return
	}

	for _, user := range users {
		dueCount, err := questionRepo.CountUrgentForUser(ctx, user.ID, urgentPriorityCeiling)
		if err != nil {
			log.Printf("Error counting due questions for user %d: %v", user.ID, err)
			continue
		}

		if dueCount > 0 {
			if err := s.notifier.SendReminder(user, dueCount); err != nil {
				log.Printf("Error sending reminder to user %d: %v", user.ID, err)
			}
		}
	}
}

// RunManualCheck forces a reminder check for a specific user
func (s *Scheduler) RunManualCheck(ctx context.Context, userID int64) error {
	userRepo := database.NewUserRepository()
	questionRepo := database.NewQuestionRepository()

	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	dueCount, err := questionRepo.CountUrgentForUser(ctx, userID, urgentPriorityCeiling)
	if err != nil {
		return err
	}

	if dueCount > 0 {
		return s.notifier.SendReminder(*user, dueCount)
	}
	return nil
}

func envHour(name string, fallback int) int {
	if value := os.Getenv(name); value != "" {
		if h, err := strconv.Atoi(value); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
