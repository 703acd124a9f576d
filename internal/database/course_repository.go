package database

import (
	"context"
	"fmt"

	"github.com/example/quizhub/pkg/models"
)

// CourseRepository handles database operations for courses
type CourseRepository struct{}

// NewCourseRepository creates a new repository instance
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{}
}

// GetByID returns a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	err := DB.GetContext(ctx, &course, "SELECT * FROM courses WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %v", err)
	}
	return &course, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := "INSERT INTO courses (title) VALUES ($1)"
	if DB.DriverName() == "postgres" {
		return DB.QueryRowContext(ctx, query+" RETURNING id", course.Title).Scan(&course.ID)
	}

	result, err := DB.ExecContext(ctx, query, course.Title)
	if err != nil {
		return fmt.Errorf("failed to create course: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	course.ID = id
	return nil
}
