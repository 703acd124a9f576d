package models

import "time"

// Attempt is a single recorded practice answer for a mastery state.
// Attempts are append-only: they are never updated or removed.
type Attempt struct {
	ID         int64     `json:"id" db:"id"`
	MasteryID  int64     `json:"mastery_id" db:"mastery_id"`
	AnsweredAt time.Time `json:"answered_at" db:"answered_at"`
	Score      float64   `json:"score" db:"score"` // normalized score in [0,1]
}

// MasteryState tracks a user's mastery of a specific quiz question.
// One row exists per (user, question) pair, created lazily on the first
// practice answer.
type MasteryState struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	QuestionID     int64     `json:"question_id" db:"question_id"`
	EasinessFactor float64   `json:"easiness_factor" db:"easiness_factor"` // growth rate of review spacing, floored at 1.3
	Interval       int       `json:"interval" db:"interval"`               // abstract spacing unit, >= 1
	Box            int       `json:"box" db:"box"`                         // Leitner tier 1 (new) to 6 (mastered)
	Priority       int       `json:"priority" db:"priority"`               // scheduling urgency, lower = sooner
	Repetition     int       `json:"repetition" db:"repetition"`           // consecutive-correct streak ending at the last attempt
	SessionCount   int       `json:"session_count" db:"session_count"`     // total attempts recorded
	LastScore      float64   `json:"last_score" db:"last_score"`
	LastAnsweredAt time.Time `json:"last_answered_at" db:"last_answered_at"`
	Version        int64     `json:"version" db:"version"` // optimistic concurrency token
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
	Attempts       []Attempt `json:"attempts" db:"-"` // oldest first
}
