package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/julianstephens/taskflow/internal/calendar"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/tracker"
	"github.com/julianstephens/taskflow/internal/validation"
)

// taskView adds the derived display fields of a task.
type taskView struct {
	models.Task
	Overdue       bool   `json:"overdue"`
	Progress      int    `json:"progress_percentage"`
	PriorityLabel string `json:"priority_label"`
	PriorityClass string `json:"priority_class"`
}

func newTaskView(t models.Task, today time.Time) taskView {
	return taskView{
		Task:          t,
		Overdue:       t.IsOverdue(today),
		Progress:      t.ProgressPercentage(today),
		PriorityLabel: t.Priority.Label(),
		PriorityClass: t.Priority.Class(),
	}
}

type monthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Habits

func (s *Server) handleListHabits(c *gin.Context) {
	views, err := s.tracker.HabitViews(s.userID, s.today())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"habits":  views,
		"summary": tracker.Summarize(views),
	})
}

func (s *Server) handleCreateHabit(c *gin.Context) {
	var in validation.HabitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	if profile, err := s.store.GetProfile(s.userID); err == nil {
		in = in.WithDefaultReminder(profile)
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		UserID:    s.userID,
		Active:    true,
		CreatedAt: s.now(),
	}
	if err := in.Apply(&habit); err != nil {
		s.fail(c, err)
		return
	}
	if err := s.store.AddHabit(habit); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "habit": habit})
}

func (s *Server) handleDeleteHabit(c *gin.Context) {
	if err := s.store.DeleteHabit(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleCompleteHabit(c *gin.Context) {
	result, err := s.tracker.RecordCompletion(c.Param("id"), s.today())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"log":                  result.Log,
		"new_streak":           result.Streak,
		"achievement_unlocked": result.Achievement,
	})
}

func (s *Server) handleHabitStreak(c *gin.Context) {
	id := c.Param("id")
	streak, err := s.tracker.GetStreak(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "habit_id": id, "streak": streak})
}

func (s *Server) handleHabitProgress(c *gin.Context) {
	id := c.Param("id")
	window, err := s.tracker.GetProgressWindow(id, s.today())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "habit_id": id, "progress": window})
}

// Tasks

func (s *Server) handleListTasks(c *gin.Context) {
	includeCompleted := c.Query("completed") == "true"
	tasks, err := s.store.GetAllTasks(s.userID, includeCompleted)
	if err != nil {
		s.fail(c, err)
		return
	}

	today := s.today()
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, newTaskView(t, today))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": views})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var in validation.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}

	now := s.now()
	task := models.Task{
		ID:        uuid.New().String(),
		UserID:    s.userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := in.Apply(&task); err != nil {
		s.fail(c, err)
		return
	}
	if err := s.store.AddTask(task); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "task": newTaskView(task, s.today())})
}

func (s *Server) handleToggleTask(c *gin.Context) {
	task, err := s.store.GetTask(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	task.SetCompleted(!task.Completed, s.now())
	if err := s.store.UpdateTask(task); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "completed": task.Completed, "task": newTaskView(task, s.today())})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.store.DeleteTask(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Calendar and achievements

func (s *Server) handleCalendar(c *gin.Context) {
	today := s.today()
	year, month := today.Year(), today.Month()

	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "year must be a number")
			return
		}
		year = n
	}
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "month must be a number")
			return
		}
		month = time.Month(n)
	}
	if month < time.January || month > time.December {
		badRequest(c, "month must be between 1 and 12")
		return
	}

	first, last := calendar.Range(year, month)
	tasks, err := s.store.GetTasksDueBetween(s.userID, first, last)
	if err != nil {
		s.fail(c, err)
		return
	}

	view, err := calendar.Month(year, month, today, tasks)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	prevYear, prevMonth := view.Prev()
	nextYear, nextMonth := view.Next()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"calendar": view,
		"prev":     monthRef{Year: prevYear, Month: prevMonth},
		"next":     monthRef{Year: nextYear, Month: nextMonth},
	})
}

func (s *Server) handleAchievements(c *gin.Context) {
	achievements, err := s.store.GetAchievements(s.userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "achievements": achievements})
}

// Theme

func themeBody(p models.Profile) gin.H {
	return gin.H{
		"theme_mode":      p.ThemeMode,
		"primary_color":   p.PrimaryColor,
		"secondary_color": p.SecondaryColor,
		"accent_color":    p.AccentColor,
	}
}

func (s *Server) handleGetTheme(c *gin.Context) {
	profile, err := s.store.GetProfile(s.userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "theme": themeBody(profile)})
}

func (s *Server) handleUpdateTheme(c *gin.Context) {
	var in validation.ThemeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}

	profile, err := s.store.GetProfile(s.userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	ignored, err := in.Apply(&profile)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.store.SaveProfile(profile); err != nil {
		s.fail(c, err)
		return
	}

	if ignored == nil {
		ignored = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "theme": themeBody(profile), "ignored": ignored})
}
