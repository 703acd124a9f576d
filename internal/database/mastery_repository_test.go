package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/quizhub/pkg/models"
)

func newMasteryState(userID, questionID int64, answeredAt time.Time) models.MasteryState {
	return models.MasteryState{
		UserID:         userID,
		QuestionID:     questionID,
		EasinessFactor: 2.6,
		Interval:       3,
		Box:            1,
		Priority:       2,
		Repetition:     1,
		SessionCount:   1,
		LastScore:      1.0,
		LastAnsweredAt: answeredAt,
		Attempts:       []models.Attempt{{AnsweredAt: answeredAt, Score: 1.0}},
	}
}

func TestMasteryGetAbsentReturnsNil(t *testing.T) {
	setupTestDB(t)
	state, err := NewMasteryRepository().GetByUserAndQuestion(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMasterySaveAndReload(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t)
	courseID := createTestCourse(t)
	exerciseID := createTestExercise(t, courseID, "Cells", true)
	questionID := createTestQuestion(t, exerciseID, "What is a mitochondrion?")
	repo := NewMasteryRepository()

	answeredAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	state := newMasteryState(userID, questionID, answeredAt)
	require.NoError(t, repo.Save(ctx, &state))
	assert.NotZero(t, state.ID)
	assert.Equal(t, int64(1), state.Version)

	loaded, err := repo.GetByUserAndQuestion(ctx, userID, questionID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, state.ID, loaded.ID)
	assert.InDelta(t, 2.6, loaded.EasinessFactor, 1e-9)
	assert.Equal(t, 2, loaded.Priority)
	require.Len(t, loaded.Attempts, 1)
	assert.Equal(t, 1.0, loaded.Attempts[0].Score)
}

func TestMasteryUpdateAppendsAttempt(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t)
	courseID := createTestCourse(t)
	exerciseID := createTestExercise(t, courseID, "Cells", true)
	questionID := createTestQuestion(t, exerciseID, "What is a ribosome?")
	repo := NewMasteryRepository()

	answeredAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	state := newMasteryState(userID, questionID, answeredAt)
	require.NoError(t, repo.Save(ctx, &state))

	loaded, err := repo.GetByUserAndQuestion(ctx, userID, questionID)
	require.NoError(t, err)

	second := answeredAt.Add(time.Hour)
	loaded.Repetition = 2
	loaded.Box = 2
	loaded.Priority = 4
	loaded.SessionCount = 2
	loaded.LastScore = 0.8
	loaded.LastAnsweredAt = second
	loaded.Attempts = append(loaded.Attempts, models.Attempt{AnsweredAt: second, Score: 0.8})
	require.NoError(t, repo.Save(ctx, loaded))
	assert.Equal(t, int64(2), loaded.Version)

	reloaded, err := repo.GetByUserAndQuestion(ctx, userID, questionID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.SessionCount)
	require.Len(t, reloaded.Attempts, 2)
	// Oldest first, nothing rewritten
	assert.Equal(t, 1.0, reloaded.Attempts[0].Score)
	assert.Equal(t, 0.8, reloaded.Attempts[1].Score)
}

func TestMasteryStaleVersionConflicts(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t)
	courseID := createTestCourse(t)
	exerciseID := createTestExercise(t, courseID, "Cells", true)
	questionID := createTestQuestion(t, exerciseID, "What is osmosis?")
	repo := NewMasteryRepository()

	state := newMasteryState(userID, questionID, time.Now().UTC())
	require.NoError(t, repo.Save(ctx, &state))

	// Two writers load the same version
	first, err := repo.GetByUserAndQuestion(ctx, userID, questionID)
	require.NoError(t, err)
	second, err := repo.GetByUserAndQuestion(ctx, userID, questionID)
	require.NoError(t, err)

	first.SessionCount = 2
	require.NoError(t, repo.Save(ctx, first))

	second.SessionCount = 2
	err = repo.Save(ctx, second)
	require.ErrorIs(t, err, ErrConflict)
}

func TestMasteryConcurrentFirstAnswerConflicts(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t)
	courseID := createTestCourse(t)
	exerciseID := createTestExercise(t, courseID, "Cells", true)
	questionID := createTestQuestion(t, exerciseID, "What is mitosis?")
	repo := NewMasteryRepository()

	now := time.Now().UTC()
	first := newMasteryState(userID, questionID, now)
	require.NoError(t, repo.Save(ctx, &first))

	// A second writer that never saw the row tries to create it too
	second := newMasteryState(userID, questionID, now)
	err := repo.Save(ctx, &second)
	require.ErrorIs(t, err, ErrConflict)
}

func TestMasteryBoxDistribution(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t)
	courseID := createTestCourse(t)
	exerciseID := createTestExercise(t, courseID, "Cells", true)
	repo := NewMasteryRepository()

	now := time.Now().UTC()
	for i, box := range []int{1, 1, 3} {
		questionID := createTestQuestion(t, exerciseID, "question "+string(rune('a'+i)))
		state := newMasteryState(userID, questionID, now)
		state.Box = box
		require.NoError(t, repo.Save(ctx, &state))
	}

	distribution, err := repo.GetBoxDistribution(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 2, 3: 1}, distribution)
}
