package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/example/quizhub/internal/leaderboard"
	"github.com/example/quizhub/internal/practice"
	"github.com/example/quizhub/internal/session"
)

// Server exposes the training core over HTTP
type Server struct {
	echo     *echo.Echo
	sessions *session.Selector
	practice *practice.Service
	board    *leaderboard.Service
}

// New creates the HTTP server and registers all routes
func New(sessions *session.Selector, practiceSvc *practice.Service, board *leaderboard.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		sessions: sessions,
		practice: practiceSvc,
		board:    board,
	}

	api := e.Group("/api/v1")
	api.GET("/courses/:courseID/session", s.nextSession)
	api.POST("/answers", s.submitAnswer)
	api.GET("/courses/:courseID/leaderboard", s.courseLeaderboard)
	api.POST("/questions/import", s.importQuestions)

	return s
}

// Start begins serving on the given address
func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
