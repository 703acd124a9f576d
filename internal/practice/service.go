package practice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/quizhub/internal/database"
	"github.com/example/quizhub/internal/training"
	"github.com/example/quizhub/pkg/models"
)

// QuestionStore loads the question being answered
type QuestionStore interface {
	GetByID(ctx context.Context, id int64) (*models.QuizQuestion, error)
}

// ProgressStore persists per-(user, question) mastery states
type ProgressStore interface {
	GetByUserAndQuestion(ctx context.Context, userID, questionID int64) (*models.MasteryState, error)
	Save(ctx context.Context, state *models.MasteryState) error
}

// ScoreFolder folds an answer outcome into the course leaderboard
type ScoreFolder interface {
	UpdateScore(ctx context.Context, userID, courseID int64, mastery models.MasteryState) error
}

// Submission is one practice answer. Score, when set, is a pre-normalized
// grade from the external grading layer and bypasses the built-in graders;
// it must already be validated to [0,1].
type Submission struct {
	UserID     int64     `json:"user_id"`
	QuestionID int64     `json:"question_id"`
	CourseID   int64     `json:"course_id"`
	Answer     string    `json:"answer"`
	Score      *float64  `json:"score,omitempty"`
	AnsweredAt time.Time `json:"answered_at,omitempty"`
}

// Result is the graded outcome returned to the caller
type Result struct {
	QuestionID int64               `json:"question_id"`
	Score      float64             `json:"score"`
	Correct    bool                `json:"correct"`
	Mastery    models.MasteryState `json:"mastery"`
}

// Service runs the submit-answer flow: grade, update mastery, persist,
// fold into the leaderboard.
type Service struct {
	questions QuestionStore
	progress  ProgressStore
	scores    ScoreFolder
	graders   map[string]Grader
}

// NewService creates the practice service with the built-in graders
// registered. Additional strategies can be added with RegisterGrader.
func NewService(questions QuestionStore, progress ProgressStore, scores ScoreFolder) *Service {
	s := &Service{
		questions: questions,
		progress:  progress,
		scores:    scores,
		graders:   make(map[string]Grader),
	}
	s.RegisterGrader(models.QuestionTypeMultipleChoice, MultipleChoiceGrader{})
	s.RegisterGrader(models.QuestionTypeShortAnswer, ShortAnswerGrader{})
	return s
}

// RegisterGrader installs the grading strategy for a question type
func (s *Service) RegisterGrader(questionType string, grader Grader) {
	s.graders[questionType] = grader
}

// Submit grades the answer, folds it into the user's mastery state and the
// course leaderboard, and returns the graded result. Concurrent updates of
// the same row are retried once; a second conflict propagates to the
// caller.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	question, err := s.questions.GetByID(ctx, sub.QuestionID)
	if err != nil {
		return nil, err
	}

	score, err := s.resolveScore(*question, sub)
	if err != nil {
		return nil, err
	}

	answeredAt := sub.AnsweredAt
	if answeredAt.IsZero() {
		answeredAt = time.Now()
	}

	state, err := s.recordProgress(ctx, sub.UserID, sub.QuestionID, score, answeredAt)
	if errors.Is(err, database.ErrConflict) {
		state, err = s.recordProgress(ctx, sub.UserID, sub.QuestionID, score, answeredAt)
	}
	if err != nil {
		return nil, err
	}

	err = s.scores.UpdateScore(ctx, sub.UserID, sub.CourseID, state)
	if errors.Is(err, database.ErrConflict) {
		err = s.scores.UpdateScore(ctx, sub.UserID, sub.CourseID, state)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		QuestionID: sub.QuestionID,
		Score:      score,
		Correct:    score >= training.CorrectThreshold,
		Mastery:    state,
	}, nil
}

func (s *Service) resolveScore(question models.QuizQuestion, sub Submission) (float64, error) {
	if sub.Score != nil {
		return *sub.Score, nil
	}
	grader, ok := s.graders[question.QuestionType]
	if !ok {
		return 0, fmt.Errorf("no grader registered for question type %q", question.QuestionType)
	}
	return grader.Grade(question, sub.Answer)
}

// recordProgress is one read-modify-write pass over the mastery row. On a
// retry the state is reloaded so the recomputation starts from the
// winner's version.
func (s *Service) recordProgress(ctx context.Context, userID, questionID int64, score float64, answeredAt time.Time) (models.MasteryState, error) {
	prev, err := s.progress.GetByUserAndQuestion(ctx, userID, questionID)
	if err != nil {
		return models.MasteryState{}, err
	}

	state := training.Update(prev, score, answeredAt)
	state.UserID = userID
	state.QuestionID = questionID

	if err := s.progress.Save(ctx, &state); err != nil {
		return models.MasteryState{}, err
	}
	return state, nil
}
