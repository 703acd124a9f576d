package models

import "time"

// LeaderboardEntry is a user's aggregate practice record for one course.
// One row exists per (user, course) pair, created lazily on the first
// practice answer in the course. League progression is computed by an
// external service; the value is only stored and read here.
type LeaderboardEntry struct {
	ID                int64     `json:"id" db:"id"`
	UserID            int64     `json:"user_id" db:"user_id"`
	CourseID          int64     `json:"course_id" db:"course_id"`
	Score             int       `json:"score" db:"score"`
	League            int       `json:"league" db:"league"`
	AnsweredCorrectly int       `json:"answered_correctly" db:"answered_correctly"`
	AnsweredWrong     int       `json:"answered_wrong" db:"answered_wrong"`
	Streak            int       `json:"streak" db:"streak"`
	DueDate           time.Time `json:"due_date" db:"due_date"`
	LeaderboardName   string    `json:"leaderboard_name" db:"leaderboard_name"`
	ShowInLeaderboard bool      `json:"show_in_leaderboard" db:"show_in_leaderboard"`
	Version           int64     `json:"version" db:"version"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// RankedEntry is one line of the ranked leaderboard view.
type RankedEntry struct {
	Rank              int    `json:"rank"`
	LeaderboardName   string `json:"leaderboard_name"`
	Score             int    `json:"score"`
	AnsweredCorrectly int    `json:"answered_correctly"`
	AnsweredWrong     int    `json:"answered_wrong"`
}
