package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/quizhub/pkg/models"
)

// QuestionRepository handles database operations for quiz questions
type QuestionRepository struct{}

// NewQuestionRepository creates a new repository instance
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{}
}

// PracticeCandidate is a practice-eligible question joined with the user's
// stored scheduling priority. Priority is NULL for questions the user has
// never answered; the session selector decides the default.
type PracticeCandidate struct {
	models.QuizQuestion
	Priority sql.NullInt64 `db:"mastery_priority"`
}

// GetByID returns a question by ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.QuizQuestion, error) {
	var question models.QuizQuestion
	err := DB.GetContext(ctx, &question, "SELECT * FROM quiz_questions WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %v", err)
	}
	return &question, nil
}

// GetPracticeCandidates returns every question of the course that belongs to
// an exercise open for practice, each joined with the user's stored priority.
// The single-statement join doubles as the consistent snapshot the session
// selector needs.
func (r *QuestionRepository) GetPracticeCandidates(ctx context.Context, courseID, userID int64) ([]PracticeCandidate, error) {
	var candidates []PracticeCandidate
	err := DB.SelectContext(ctx, &candidates, `
		SELECT q.id, q.exercise_id, q.text, q.question_type, q.options,
		       q.correct_answer, q.created_at, q.updated_at,
		       m.priority AS mastery_priority
		FROM quiz_questions q
		JOIN quiz_exercises e ON q.exercise_id = e.id
		LEFT JOIN mastery_states m ON m.question_id = q.id AND m.user_id = $2
		WHERE e.course_id = $1 AND e.is_open_for_practice = true
	`, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get practice candidates: %v", err)
	}
	return candidates, nil
}

// CountUrgentForUser counts practice-eligible questions whose stored
// priority is at most maxPriority, including questions the user has never
// answered. Used by the reminder scheduler.
func (r *QuestionRepository) CountUrgentForUser(ctx context.Context, userID int64, maxPriority int) (int, error) {
	var count int
	err := DB.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM quiz_questions q
		JOIN quiz_exercises e ON q.exercise_id = e.id
		LEFT JOIN mastery_states m ON m.question_id = q.id AND m.user_id = $1
		WHERE e.is_open_for_practice = true
		  AND (m.priority IS NULL OR m.priority <= $2)
	`, userID, maxPriority)
	if err != nil {
		return 0, fmt.Errorf("failed to count urgent questions: %v", err)
	}
	return count, nil
}

// GetByTextAndExercise returns the question with the given text inside an
// exercise, or (nil, nil) when none exists. Used by the importer to upsert.
func (r *QuestionRepository) GetByTextAndExercise(ctx context.Context, text string, exerciseID int64) (*models.QuizQuestion, error) {
	var question models.QuizQuestion
	err := DB.GetContext(ctx, &question,
		"SELECT * FROM quiz_questions WHERE text = $1 AND exercise_id = $2",
		text, exerciseID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %v", err)
	}
	return &question, nil
}

// Create inserts a new question
func (r *QuestionRepository) Create(ctx context.Context, question *models.QuizQuestion) error {
	query := `
		INSERT INTO quiz_questions (exercise_id, text, question_type, options, correct_answer)
		VALUES ($1, $2, $3, $4, $5)
	`
	if DB.DriverName() == "postgres" {
		return DB.QueryRowContext(ctx, query+" RETURNING id",
			question.ExerciseID, question.Text, question.QuestionType,
			question.Options, question.CorrectAnswer,
		).Scan(&question.ID)
	}

	result, err := DB.ExecContext(ctx, query,
		question.ExerciseID, question.Text, question.QuestionType,
		question.Options, question.CorrectAnswer,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	question.ID = id
	return nil
}

// Update modifies an existing question
func (r *QuestionRepository) Update(ctx context.Context, question *models.QuizQuestion) error {
	result, err := DB.ExecContext(ctx, `
		UPDATE quiz_questions SET
			text = $1,
			question_type = $2,
			options = $3,
			correct_answer = $4,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
	`,
		question.Text, question.QuestionType, question.Options,
		question.CorrectAnswer, question.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("question not found")
	}
	return nil
}
