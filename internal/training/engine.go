package training

import (
	"math"
	"time"

	"github.com/example/quizhub/pkg/models"
)

// Tunables of the mastery update rule. An answer counts as correct when its
// normalized score reaches CorrectThreshold; the easiness factor moves by
// easinessSlope per unit of distance from that threshold and never drops
// below MinEasiness.
const (
	CorrectThreshold = 0.6
	MinEasiness      = 1.3
	DefaultEasiness  = 2.5
	easinessSlope    = 0.25
)

// NewState returns the mastery state a question starts from before the
// first recorded answer.
func NewState(userID, questionID int64) models.MasteryState {
	return models.MasteryState{
		UserID:         userID,
		QuestionID:     questionID,
		EasinessFactor: DefaultEasiness,
		Interval:       1,
		Box:            1,
		Priority:       1,
		Repetition:     0,
		SessionCount:   0,
		LastScore:      0,
	}
}

// Update folds a newly graded answer into the mastery state and returns the
// full replacement value. It is a pure function: prev is not modified, and
// persisting the result is the caller's concern. Scores are expected to be
// pre-validated to [0,1] by the grading layer.
//
// When prev is nil the state starts from the defaults of NewState with zero
// user and question IDs; the caller fills those in before persisting.
func Update(prev *models.MasteryState, score float64, answeredAt time.Time) models.MasteryState {
	var state models.MasteryState
	if prev != nil {
		state = *prev
		state.Attempts = append([]models.Attempt(nil), prev.Attempts...)
	} else {
		state = NewState(0, 0)
	}

	correct := score >= CorrectThreshold

	state.Repetition = streakWith(state.Attempts, score)
	state.EasinessFactor = UpdateEasiness(score, state.EasinessFactor)
	state.Box = BoxForRepetition(state.Repetition)
	state.Interval = nextInterval(state.EasinessFactor, state.Repetition)

	if correct {
		state.Priority = state.Box + state.Repetition
	} else {
		state.Priority = state.Box
	}

	state.SessionCount++
	state.LastScore = score
	state.LastAnsweredAt = answeredAt
	state.Attempts = append(state.Attempts, models.Attempt{AnsweredAt: answeredAt, Score: score})

	return state
}

// UpdateEasiness moves the easiness factor toward or away from the review
// spacing the score deserves, never below MinEasiness.
func UpdateEasiness(score, easiness float64) float64 {
	easiness += (score - CorrectThreshold) * easinessSlope
	if easiness < MinEasiness {
		return MinEasiness
	}
	return easiness
}

// BoxForRepetition maps a consecutive-correct streak onto a Leitner box.
func BoxForRepetition(repetition int) int {
	switch {
	case repetition <= 1:
		return 1
	case repetition == 2:
		return 2
	case repetition <= 4:
		return 3
	case repetition <= 7:
		return 4
	case repetition <= 15:
		return 5
	default:
		return 6
	}
}

// streakWith is the consecutive-correct run ending at the answer being
// recorded now. The new score is part of the run: an incorrect answer
// resets the streak regardless of history.
func streakWith(attempts []models.Attempt, score float64) int {
	if score < CorrectThreshold {
		return 0
	}
	streak := 1
	for i := len(attempts) - 1; i >= 0; i-- {
		if attempts[i].Score < CorrectThreshold {
			break
		}
		streak++
	}
	return streak
}

func nextInterval(easiness float64, repetition int) int {
	interval := int(math.Round(math.Pow(easiness, float64(repetition))))
	if interval < 1 {
		return 1
	}
	return interval
}
