package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPracticeCandidates(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t)
	courseID := createTestCourse(t)
	openExercise := createTestExercise(t, courseID, "Cells", true)
	closedExercise := createTestExercise(t, courseID, "Exam prep", false)

	attempted := createTestQuestion(t, openExercise, "What is a cell?")
	fresh := createTestQuestion(t, openExercise, "What is a nucleus?")
	createTestQuestion(t, closedExercise, "Hidden until the exercise opens")

	// The user has answered one of the open questions before
	state := newMasteryState(userID, attempted, time.Now().UTC())
	state.Priority = 5
	require.NoError(t, NewMasteryRepository().Save(ctx, &state))

	candidates, err := NewQuestionRepository().GetPracticeCandidates(ctx, courseID, userID)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	byID := map[int64]PracticeCandidate{}
	for _, c := range candidates {
		byID[c.ID] = c
	}

	require.Contains(t, byID, attempted)
	require.True(t, byID[attempted].Priority.Valid)
	assert.Equal(t, int64(5), byID[attempted].Priority.Int64)

	require.Contains(t, byID, fresh)
	assert.False(t, byID[fresh].Priority.Valid)
}

func TestGetPracticeCandidatesOtherUsersStateInvisible(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t)
	otherID := createTestUser(t)
	courseID := createTestCourse(t)
	exerciseID := createTestExercise(t, courseID, "Cells", true)
	questionID := createTestQuestion(t, exerciseID, "What is a cell?")

	state := newMasteryState(otherID, questionID, time.Now().UTC())
	state.Priority = 9
	require.NoError(t, NewMasteryRepository().Save(ctx, &state))

	candidates, err := NewQuestionRepository().GetPracticeCandidates(ctx, courseID, userID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.False(t, candidates[0].Priority.Valid)
}

func TestCountUrgentForUser(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t)
	courseID := createTestCourse(t)
	exerciseID := createTestExercise(t, courseID, "Cells", true)
	repo := NewQuestionRepository()
	masteryRepo := NewMasteryRepository()

	mastered := createTestQuestion(t, exerciseID, "well known")
	urgent := createTestQuestion(t, exerciseID, "shaky")
	createTestQuestion(t, exerciseID, "never seen")

	now := time.Now().UTC()
	state := newMasteryState(userID, mastered, now)
	state.Priority = 8
	require.NoError(t, masteryRepo.Save(ctx, &state))

	state = newMasteryState(userID, urgent, now)
	state.Priority = 2
	require.NoError(t, masteryRepo.Save(ctx, &state))

	// The unanswered and the low-priority question count, the mastered
	// one doesn't
	count, err := repo.CountUrgentForUser(ctx, userID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestQuestionUpsertByTextAndExercise(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	courseID := createTestCourse(t)
	exerciseID := createTestExercise(t, courseID, "Cells", true)
	repo := NewQuestionRepository()

	missing, err := repo.GetByTextAndExercise(ctx, "not there", exerciseID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	questionID := createTestQuestion(t, exerciseID, "What is a cell?")
	found, err := repo.GetByTextAndExercise(ctx, "What is a cell?", exerciseID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, questionID, found.ID)

	found.CorrectAnswer = "the basic unit of life"
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.GetByID(ctx, questionID)
	require.NoError(t, err)
	assert.Equal(t, "the basic unit of life", updated.CorrectAnswer)
}
