package leaderboard

import (
	"context"
	"fmt"

	"github.com/example/quizhub/internal/training"
	"github.com/example/quizhub/pkg/models"
)

// CorrectReward is the number of points awarded per Leitner box level for
// a correct answer.
const CorrectReward = 2

// EntryStore persists per-(user, course) leaderboard rows
type EntryStore interface {
	GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.LeaderboardEntry, error)
	Save(ctx context.Context, entry *models.LeaderboardEntry) error
	GetVisibleByCourse(ctx context.Context, courseID int64) ([]models.LeaderboardEntry, error)
}

// Service folds answer outcomes into leaderboard rows and produces ranked
// views. League progression is an external concern: the stored league value
// is never touched here.
type Service struct {
	store EntryStore
}

// NewService creates a leaderboard service backed by the given store
func NewService(store EntryStore) *Service {
	return &Service{store: store}
}

// UpdateScore folds the outcome of a just-recorded answer into the user's
// leaderboard row for the course, creating the row on the first answer.
// A correct answer (mastery.LastScore at the correctness threshold) earns
// CorrectReward points per box level and extends the streak; an incorrect
// answer resets the streak and earns nothing. Conflicts from concurrent
// updates of the same row propagate as database.ErrConflict.
func (s *Service) UpdateScore(ctx context.Context, userID, courseID int64, mastery models.MasteryState) error {
	entry, err := s.store.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if entry == nil {
		entry = &models.LeaderboardEntry{UserID: userID, CourseID: courseID}
	}

	if mastery.LastScore >= training.CorrectThreshold {
		entry.AnsweredCorrectly++
		entry.Score += mastery.Box * CorrectReward
		entry.Streak++
	} else {
		entry.AnsweredWrong++
		entry.Streak = 0
	}

	return s.store.Save(ctx, entry)
}

// Ranking returns the course scoreboard: opted-in entries sorted by score
// descending with 1-based contiguous ranks. Ties keep the store's stable
// user-ID order and still receive distinct consecutive ranks.
func (s *Service) Ranking(ctx context.Context, courseID int64) ([]models.RankedEntry, error) {
	entries, err := s.store.GetVisibleByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to build ranking: %v", err)
	}

	ranking := make([]models.RankedEntry, 0, len(entries))
	for i, entry := range entries {
		ranking = append(ranking, models.RankedEntry{
			Rank:              i + 1,
			LeaderboardName:   entry.LeaderboardName,
			Score:             entry.Score,
			AnsweredCorrectly: entry.AnsweredCorrectly,
			AnsweredWrong:     entry.AnsweredWrong,
		})
	}
	return ranking, nil
}
