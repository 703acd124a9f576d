package practice

import (
	"fmt"
	"strings"

	"github.com/example/quizhub/pkg/models"
)

// Grader turns a raw answer to one question into a normalized score in
// [0,1]. The submission flow never branches on question kind itself; it
// only looks up the grader registered for the question's type. Richer
// question types are graded by the external grading layer, which submits
// a pre-normalized score instead of a raw answer.
type Grader interface {
	Grade(question models.QuizQuestion, answer string) (float64, error)
}

// MultipleChoiceGrader scores an answer against the question's option list
type MultipleChoiceGrader struct{}

// Grade returns 1.0 when the chosen option is the correct one, 0.0 for any
// other option. An answer outside the option list is a malformed
// submission, not a wrong answer.
func (MultipleChoiceGrader) Grade(question models.QuizQuestion, answer string) (float64, error) {
	options, err := question.OptionList()
	if err != nil {
		return 0, fmt.Errorf("failed to decode options for question %d: %v", question.ID, err)
	}

	answer = strings.TrimSpace(answer)
	valid := false
	for _, option := range options {
		if answer == option {
			valid = true
			break
		}
	}
	if !valid {
		return 0, fmt.Errorf("answer is not one of the question's options")
	}

	if answer == strings.TrimSpace(question.CorrectAnswer) {
		return 1.0, nil
	}
	return 0.0, nil
}

// ShortAnswerGrader scores free-text answers by case-insensitive comparison
// with the stored correct answer.
type ShortAnswerGrader struct{}

func (ShortAnswerGrader) Grade(question models.QuizQuestion, answer string) (float64, error) {
	if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(question.CorrectAnswer)) {
		return 1.0, nil
	}
	return 0.0, nil
}
