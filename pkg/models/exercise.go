package models

import "time"

// QuizExercise groups questions inside a course. Only exercises with
// IsOpenForPractice set contribute questions to practice sessions.
type QuizExercise struct {
	ID                int64     `json:"id" db:"id"`
	CourseID          int64     `json:"course_id" db:"course_id"`
	Title             string    `json:"title" db:"title"`
	IsOpenForPractice bool      `json:"is_open_for_practice" db:"is_open_for_practice"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
