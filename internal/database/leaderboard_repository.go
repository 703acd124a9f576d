package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/quizhub/pkg/models"
)

// LeaderboardRepository handles database operations for leaderboard entries
type LeaderboardRepository struct{}

// NewLeaderboardRepository creates a new repository instance
func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{}
}

// GetByUserAndCourse returns the leaderboard entry for a user in a course.
// Returns (nil, nil) when the user has no entry yet; rows are created
// lazily on the first practice answer in the course.
func (r *LeaderboardRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.LeaderboardEntry, error) {
	var entry models.LeaderboardEntry
	err := DB.GetContext(ctx, &entry,
		"SELECT * FROM leaderboard_entries WHERE user_id = $1 AND course_id = $2",
		userID, courseID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard entry: %v", err)
	}
	return &entry, nil
}

// Save persists a leaderboard entry. New entries (ID == 0) are inserted,
// existing ones updated under an optimistic version check; both paths
// return ErrConflict when a concurrent writer won the race.
func (r *LeaderboardRepository) Save(ctx context.Context, entry *models.LeaderboardEntry) error {
	if entry.ID == 0 {
		return r.insert(ctx, entry)
	}
	return r.update(ctx, entry)
}

func (r *LeaderboardRepository) insert(ctx context.Context, entry *models.LeaderboardEntry) error {
	query := `
		INSERT INTO leaderboard_entries (
			user_id, course_id, score, league, answered_correctly,
			answered_wrong, streak, due_date, leaderboard_name,
			show_in_leaderboard, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)
	`
	if DB.DriverName() == "postgres" {
		err := DB.QueryRowContext(ctx, query+" RETURNING id",
			entry.UserID, entry.CourseID, entry.Score, entry.League,
			entry.AnsweredCorrectly, entry.AnsweredWrong, entry.Streak,
			entry.DueDate, entry.LeaderboardName, entry.ShowInLeaderboard,
		).Scan(&entry.ID)
		if isUniqueViolation(err) {
			return ErrConflict
		}
		if err != nil {
			return fmt.Errorf("failed to create leaderboard entry: %v", err)
		}
		entry.Version = 1
		return nil
	}

	result, err := DB.ExecContext(ctx, query,
		entry.UserID, entry.CourseID, entry.Score, entry.League,
		entry.AnsweredCorrectly, entry.AnsweredWrong, entry.Streak,
		entry.DueDate, entry.LeaderboardName, entry.ShowInLeaderboard,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create leaderboard entry: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	entry.ID = id
	entry.Version = 1
	return nil
}

func (r *LeaderboardRepository) update(ctx context.Context, entry *models.LeaderboardEntry) error {
	result, err := DB.ExecContext(ctx, `
		UPDATE leaderboard_entries SET
			score = $1,
			league = $2,
			answered_correctly = $3,
			answered_wrong = $4,
			streak = $5,
			due_date = $6,
			leaderboard_name = $7,
			show_in_leaderboard = $8,
			version = version + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $9 AND version = $10
	`,
		entry.Score, entry.League, entry.AnsweredCorrectly, entry.AnsweredWrong,
		entry.Streak, entry.DueDate, entry.LeaderboardName,
		entry.ShowInLeaderboard, entry.ID, entry.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update leaderboard entry: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return ErrConflict
	}
	entry.Version++
	return nil
}

// GetVisibleByCourse returns the opted-in entries of a course ordered for
// ranking: score descending, ties broken by user ID so the order is stable
// across calls.
func (r *LeaderboardRepository) GetVisibleByCourse(ctx context.Context, courseID int64) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := DB.SelectContext(ctx, &entries, `
		SELECT * FROM leaderboard_entries
		WHERE course_id = $1 AND show_in_leaderboard = true
		ORDER BY score DESC, user_id ASC
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard entries: %v", err)
	}
	return entries, nil
}
