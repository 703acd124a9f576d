package session

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/quizhub/internal/database"
	"github.com/example/quizhub/pkg/models"
)

const (
	// SessionSize is the maximum number of questions in one practice batch
	SessionSize = 10
	// NewQuestionPriority is the urgency assigned to questions the user has
	// never answered. New material enters the rotation ahead of material
	// that is already mastered.
	NewQuestionPriority = 1
)

// CandidateStore provides the practice-eligible questions of a course
// joined with the user's stored priorities.
type CandidateStore interface {
	GetPracticeCandidates(ctx context.Context, courseID, userID int64) ([]database.PracticeCandidate, error)
}

// Selector builds practice sessions. Read-only: selecting a batch never
// changes any mastery state.
type Selector struct {
	store CandidateStore
}

// NewSelector creates a session selector backed by the given store
func NewSelector(store CandidateStore) *Selector {
	return &Selector{store: store}
}

// NextSession returns the user's next practice batch for a course: every
// question of a practice-open exercise, ranked by ascending priority with
// ties broken by question ID, trimmed to SessionSize. A course with no
// eligible questions yields an empty batch, not an error.
func (s *Selector) NextSession(ctx context.Context, courseID, userID int64) ([]models.QuizQuestion, error) {
	candidates, err := s.store.GetPracticeCandidates(ctx, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect session candidates: %v", err)
	}

	sort.Slice(candidates, func(i, j int) bool {
		pi, pj := effectivePriority(candidates[i]), effectivePriority(candidates[j])
		if pi != pj {
			return pi < pj
		}
		return candidates[i].ID < candidates[j].ID
	})

	if len(candidates) > SessionSize {
		candidates = candidates[:SessionSize]
	}

	questions := make([]models.QuizQuestion, 0, len(candidates))
	for _, c := range candidates {
		questions = append(questions, c.QuizQuestion)
	}
	return questions, nil
}

func effectivePriority(c database.PracticeCandidate) int {
	if c.Priority.Valid {
		return int(c.Priority.Int64)
	}
	return NewQuestionPriority
}
