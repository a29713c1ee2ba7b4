// Package server exposes habits, tasks and the calendar as a JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/taskflow/internal/constants"
	"github.com/julianstephens/taskflow/internal/logger"
	"github.com/julianstephens/taskflow/internal/storage"
	"github.com/julianstephens/taskflow/internal/tracker"
	"github.com/julianstephens/taskflow/internal/utils"
	"github.com/julianstephens/taskflow/internal/validation"
)

type Option func(*Server)

// WithClock overrides the clock used to resolve "today" and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithUser serves the data of a user other than the default local one.
func WithUser(userID string) Option {
	return func(s *Server) {
		s.userID = userID
	}
}

type Server struct {
	store   storage.Provider
	tracker *tracker.Service
	router  *gin.Engine
	userID  string
	now     func() time.Time
}

func New(store storage.Provider, opts ...Option) *Server {
	s := &Server{
		store:  store,
		userID: constants.DefaultUserID,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tracker = tracker.New(store, tracker.WithClock(s.now))

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	api := router.Group("/api")
	{
		api.GET("/habits", s.handleListHabits)
		api.POST("/habits", s.handleCreateHabit)
		api.DELETE("/habits/:id", s.handleDeleteHabit)
		api.POST("/habits/:id/complete", s.handleCompleteHabit)
		api.GET("/habits/:id/streak", s.handleHabitStreak)
		api.GET("/habits/:id/progress", s.handleHabitProgress)

		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.POST("/tasks/:id/toggle", s.handleToggleTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)

		api.GET("/calendar", s.handleCalendar)
		api.GET("/achievements", s.handleAchievements)

		api.GET("/theme", s.handleGetTheme)
		api.PUT("/theme", s.handleUpdateTheme)
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

const shutdownTimeout = 5 * time.Second

// Run serves the API on addr until ctx is cancelled or the listener fails.
// In-flight requests get shutdownTimeout to finish.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting API server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// today is resolved once per request so every computation in a handler
// agrees on the date.
func (s *Server) today() time.Time {
	return utils.DateOf(s.now())
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, validation.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	}

	body := gin.H{"success": false, "error": err.Error()}
	var fields validation.Errors
	if errors.As(err, &fields) {
		body["fields"] = fields
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
