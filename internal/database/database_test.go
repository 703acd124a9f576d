package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/example/quizhub/pkg/models"
)

// setupTestDB points the package-global DB at a fresh in-memory sqlite
// database with the full schema applied.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	DB = db
	require.NoError(t, initializeSchema())

	t.Cleanup(func() {
		db.Close()
		DB = nil
	})
}

func createTestUser(t *testing.T) int64 {
	t.Helper()
	user := &models.User{Username: "learner", FirstName: "Lea", NotificationEnabled: true, NotificationHour: 9}
	require.NoError(t, NewUserRepository().Create(context.Background(), user))
	return user.ID
}

func createTestCourse(t *testing.T) int64 {
	t.Helper()
	course := &models.Course{Title: "Biology 101"}
	require.NoError(t, NewCourseRepository().Create(context.Background(), course))
	return course.ID
}

func createTestExercise(t *testing.T, courseID int64, title string, open bool) int64 {
	t.Helper()
	exercise := &models.QuizExercise{CourseID: courseID, Title: title, IsOpenForPractice: open}
	require.NoError(t, NewExerciseRepository().Create(context.Background(), exercise))
	return exercise.ID
}

func createTestQuestion(t *testing.T, exerciseID int64, text string) int64 {
	t.Helper()
	question := &models.QuizQuestion{
		ExerciseID:    exerciseID,
		Text:          text,
		QuestionType:  models.QuestionTypeShortAnswer,
		CorrectAnswer: "42",
	}
	require.NoError(t, NewQuestionRepository().Create(context.Background(), question))
	return question.ID
}
