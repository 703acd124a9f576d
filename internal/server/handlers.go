package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/example/quizhub/internal/database"
	"github.com/example/quizhub/internal/excel"
	"github.com/example/quizhub/internal/practice"
	"github.com/example/quizhub/pkg/models"
)

// questionView is a question as shown to the learner: the correct answer
// stays on the server.
type questionView struct {
	ID           int64    `json:"id"`
	ExerciseID   int64    `json:"exercise_id"`
	Text         string   `json:"text"`
	QuestionType string   `json:"question_type"`
	Options      []string `json:"options,omitempty"`
}

// nextSession returns the user's next practice batch for a course
func (s *Server) nextSession(c echo.Context) error {
	courseID, err := pathID(c, "courseID")
	if err != nil {
		return err
	}
	userID, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}

	questions, err := s.sessions.NextSession(c.Request().Context(), courseID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views := make([]questionView, 0, len(questions))
	for _, question := range questions {
		view, err := newQuestionView(question)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		views = append(views, view)
	}
	return c.JSON(http.StatusOK, views)
}

// submitAnswer grades a practice answer and records the outcome
func (s *Server) submitAnswer(c echo.Context) error {
	var submission practice.Submission
	if err := c.Bind(&submission); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid submission")
	}
	if submission.UserID == 0 || submission.QuestionID == 0 || submission.CourseID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id, question_id and course_id are required")
	}

	result, err := s.practice.Submit(c.Request().Context(), submission)
	if errors.Is(err, database.ErrConflict) {
		return echo.NewHTTPError(http.StatusConflict, "answer was recorded concurrently, please retry")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// courseLeaderboard returns the ranked scoreboard of a course
func (s *Server) courseLeaderboard(c echo.Context) error {
	courseID, err := pathID(c, "courseID")
	if err != nil {
		return err
	}

	ranking, err := s.board.Ranking(c.Request().Context(), courseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ranking)
}

// importRequest describes a server-side question bank import
type importRequest struct {
	FilePath        string `json:"file_path"`
	CourseID        int64  `json:"course_id"`
	SheetName       string `json:"sheet_name,omitempty"`
	OpenForPractice *bool  `json:"open_for_practice,omitempty"`
}

// importQuestions runs a question bank import from a file on the server
func (s *Server) importQuestions(c echo.Context) error {
	var req importRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid import request")
	}
	if req.FilePath == "" || req.CourseID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "file_path and course_id are required")
	}

	config := excel.DefaultImportConfig()
	config.FilePath = req.FilePath
	config.CourseID = req.CourseID
	if req.SheetName != "" {
		config.SheetName = req.SheetName
	}
	if req.OpenForPractice != nil {
		config.OpenForPractice = *req.OpenForPractice
	}

	result, err := excel.ImportQuestions(c.Request().Context(), config)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func newQuestionView(question models.QuizQuestion) (questionView, error) {
	options, err := question.OptionList()
	if err != nil {
		return questionView{}, err
	}
	return questionView{
		ID:           question.ID,
		ExerciseID:   question.ExerciseID,
		Text:         question.Text,
		QuestionType: question.QuestionType,
		Options:      options,
	}, nil
}
