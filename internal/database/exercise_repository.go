package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/quizhub/pkg/models"
)

// ExerciseRepository handles database operations for quiz exercises
type ExerciseRepository struct{}

// NewExerciseRepository creates a new repository instance
func NewExerciseRepository() *ExerciseRepository {
	return &ExerciseRepository{}
}

// GetByCourse returns all exercises of a course
func (r *ExerciseRepository) GetByCourse(ctx context.Context, courseID int64) ([]models.QuizExercise, error) {
	var exercises []models.QuizExercise
	err := DB.SelectContext(ctx, &exercises,
		"SELECT * FROM quiz_exercises WHERE course_id = $1 ORDER BY id ASC", courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exercises: %v", err)
	}
	return exercises, nil
}

// GetByTitleAndCourse returns the exercise with the given title in a course,
// or (nil, nil) when none exists
func (r *ExerciseRepository) GetByTitleAndCourse(ctx context.Context, title string, courseID int64) (*models.QuizExercise, error) {
	var exercise models.QuizExercise
	err := DB.GetContext(ctx, &exercise,
		"SELECT * FROM quiz_exercises WHERE title = $1 AND course_id = $2",
		title, courseID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise: %v", err)
	}
	return &exercise, nil
}

// Create inserts a new exercise
func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.QuizExercise) error {
	query := `
		INSERT INTO quiz_exercises (course_id, title, is_open_for_practice)
		VALUES ($1, $2, $3)
	`
	if DB.DriverName() == "postgres" {
		return DB.QueryRowContext(ctx, query+" RETURNING id",
			exercise.CourseID, exercise.Title, exercise.IsOpenForPractice,
		).Scan(&exercise.ID)
	}

	result, err := DB.ExecContext(ctx, query,
		exercise.CourseID, exercise.Title, exercise.IsOpenForPractice)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	exercise.ID = id
	return nil
}

// SetOpenForPractice toggles practice eligibility for an exercise
func (r *ExerciseRepository) SetOpenForPractice(ctx context.Context, exerciseID int64, open bool) error {
	result, err := DB.ExecContext(ctx,
		"UPDATE quiz_exercises SET is_open_for_practice = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		open, exerciseID)
	if err != nil {
		return fmt.Errorf("failed to update exercise: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("exercise not found")
	}
	return nil
}
