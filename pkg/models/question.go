package models

import (
	"encoding/json"
	"time"
)

// Question type identifiers. Grading strategies are registered per type;
// types without a built-in strategy must be submitted with an externally
// graded score.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeShortAnswer    = "short_answer"
)

// QuizQuestion is a single practice question belonging to a quiz exercise.
type QuizQuestion struct {
	ID            int64     `json:"id" db:"id"`
	ExerciseID    int64     `json:"exercise_id" db:"exercise_id"`
	Text          string    `json:"text" db:"text"`
	QuestionType  string    `json:"question_type" db:"question_type"`
	Options       string    `json:"options,omitempty" db:"options"` // JSON-encoded list for multiple choice
	CorrectAnswer string    `json:"-" db:"correct_answer"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// OptionList decodes the JSON-encoded options column.
func (q *QuizQuestion) OptionList() ([]string, error) {
	if q.Options == "" {
		return nil, nil
	}
	var options []string
	if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
		return nil, err
	}
	return options, nil
}

// EncodeOptions encodes an option list for the options column.
func EncodeOptions(options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
