package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/quizhub/internal/database"
	"github.com/example/quizhub/internal/leaderboard"
	"github.com/example/quizhub/internal/notify"
	"github.com/example/quizhub/internal/practice"
	"github.com/example/quizhub/internal/scheduler"
	"github.com/example/quizhub/internal/server"
	"github.com/example/quizhub/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	questionRepo := database.NewQuestionRepository()
	masteryRepo := database.NewMasteryRepository()
	leaderboardRepo := database.NewLeaderboardRepository()

	board := leaderboard.NewService(leaderboardRepo)
	selector := session.NewSelector(questionRepo)
	practiceSvc := practice.NewService(questionRepo, masteryRepo, board)

	// Reminder delivery goes through Telegram when a token is configured,
	// otherwise reminders only show up in the log
	var notifier scheduler.Notifier
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		telegramNotifier, err := notify.NewTelegramNotifier(token)
		if err != nil {
			log.Fatalf("Failed to create telegram notifier: %v", err)
		}
		notifier = telegramNotifier
	} else {
		notifier = notify.NewLogNotifier()
	}

	reminders := scheduler.New(notifier)
	if os.Getenv("SCHEDULER_ENABLED") != "false" {
		reminders.Start()
		defer reminders.Stop()
	}

	srv := server.New(selector, practiceSvc, board)

	address := os.Getenv("LISTEN_ADDRESS")
	if address == "" {
		address = ":8080"
	}

	go func() {
		if err := srv.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Printf("Server started on %s. Press Ctrl+C to stop.", address)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped successfully")
}
