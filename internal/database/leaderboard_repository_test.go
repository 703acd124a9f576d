package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/quizhub/pkg/models"
)

func newLeaderboardEntry(userID, courseID int64) models.LeaderboardEntry {
	return models.LeaderboardEntry{
		UserID:            userID,
		CourseID:          courseID,
		Score:             10,
		AnsweredCorrectly: 5,
		AnsweredWrong:     1,
		Streak:            2,
		DueDate:           time.Now().UTC(),
		LeaderboardName:   "learner",
		ShowInLeaderboard: true,
	}
}

func TestLeaderboardGetAbsentReturnsNil(t *testing.T) {
	setupTestDB(t)
	entry, err := NewLeaderboardRepository().GetByUserAndCourse(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestLeaderboardSaveAndReload(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t)
	courseID := createTestCourse(t)
	repo := NewLeaderboardRepository()

	entry := newLeaderboardEntry(userID, courseID)
	require.NoError(t, repo.Save(ctx, &entry))
	assert.NotZero(t, entry.ID)

	loaded, err := repo.GetByUserAndCourse(ctx, userID, courseID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 10, loaded.Score)
	assert.Equal(t, 5, loaded.AnsweredCorrectly)
	assert.True(t, loaded.ShowInLeaderboard)

	loaded.Score = 14
	loaded.AnsweredCorrectly = 6
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.GetByUserAndCourse(ctx, userID, courseID)
	require.NoError(t, err)
	assert.Equal(t, 14, reloaded.Score)
	assert.Equal(t, int64(2), reloaded.Version)
}

func TestLeaderboardStaleVersionConflicts(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t)
	courseID := createTestCourse(t)
	repo := NewLeaderboardRepository()

	entry := newLeaderboardEntry(userID, courseID)
	require.NoError(t, repo.Save(ctx, &entry))

	first, err := repo.GetByUserAndCourse(ctx, userID, courseID)
	require.NoError(t, err)
	second, err := repo.GetByUserAndCourse(ctx, userID, courseID)
	require.NoError(t, err)

	first.Score += 2
	require.NoError(t, repo.Save(ctx, first))

	second.Score += 4
	require.ErrorIs(t, repo.Save(ctx, second), ErrConflict)
}

func TestLeaderboardVisibleByCourseOrdering(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	courseID := createTestCourse(t)
	repo := NewLeaderboardRepository()

	scores := []struct {
		score   int
		visible bool
	}{
		{score: 12, visible: true},
		{score: 30, visible: true},
		{score: 50, visible: false}, // opted out, must not appear
		{score: 12, visible: true},
	}
	var userIDs []int64
	for _, s := range scores {
		userID := createTestUser(t)
		userIDs = append(userIDs, userID)
		entry := newLeaderboardEntry(userID, courseID)
		entry.Score = s.score
		entry.ShowInLeaderboard = s.visible
		require.NoError(t, repo.Save(ctx, &entry))
	}

	entries, err := repo.GetVisibleByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Score descending, ties by user ID ascending
	assert.Equal(t, 30, entries[0].Score)
	assert.Equal(t, userIDs[0], entries[1].UserID)
	assert.Equal(t, userIDs[3], entries[2].UserID)
}
