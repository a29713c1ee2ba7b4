package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/taskflow/internal/logger"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/utils"
)

// Store is the persistence surface the tracker depends on.
type Store interface {
	GetHabit(id string) (models.Habit, error)
	GetAllHabits(userID string, includeInactive bool) ([]models.Habit, error)
	// ListCompletedLogs returns the habit's completed logs ordered by date descending.
	ListCompletedLogs(habitID string) ([]models.HabitLog, error)
	// GetOrCreateLog atomically returns the log for (log.HabitID, log.Date),
	// inserting log when none exists. created reports whether it was inserted.
	GetOrCreateLog(log models.HabitLog) (models.HabitLog, bool, error)
	// IncrementLog bumps the completion counter of an existing log in place and
	// marks it completed at completedAt.
	IncrementLog(id string, completedAt time.Time) (models.HabitLog, error)
	AddAchievement(models.Achievement) error
	AddNotification(models.Notification) error
}

// CompletionResult is returned by RecordCompletion.
type CompletionResult struct {
	Log         models.HabitLog     `json:"log"`
	Created     bool                `json:"created"`
	Streak      int                 `json:"new_streak"`
	Achievement *models.Achievement `json:"achievement_unlocked,omitempty"`
}

// HabitView is the display read model of a habit. It carries derived values
// alongside the stored entity without modifying it.
type HabitView struct {
	Habit          models.Habit `json:"habit"`
	Streak         int          `json:"streak"`
	Progress       []Bucket     `json:"progress"`
	CompletedToday bool         `json:"completed_today"`
}

// Summary aggregates a list of habit views for dashboard headers.
type Summary struct {
	TotalStreak    int `json:"total_streak"`
	CompletedToday int `json:"completed_today"`
	TotalHabits    int `json:"total_habits"`
}

type Option func(*Service)

// WithClock overrides the source of completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

type Service struct {
	store Store
	now   func() time.Time
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordCompletion marks the habit completed for today, re-derives its streak
// from the full log history and awards a milestone achievement when the new
// streak lands exactly on one.
func (s *Service) RecordCompletion(habitID string, today time.Time) (CompletionResult, error) {
	habit, err := s.store.GetHabit(habitID)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("failed to get habit %s: %w", habitID, err)
	}

	day := utils.DateOf(today)
	completedAt := s.now()

	log, created, err := s.store.GetOrCreateLog(models.HabitLog{
		ID:              uuid.New().String(),
		HabitID:         habit.ID,
		Date:            day,
		Completed:       true,
		CompletionCount: 1,
		CompletedAt:     &completedAt,
	})
	if err != nil {
		return CompletionResult{}, fmt.Errorf("failed to record log for %s: %w", utils.FormatDate(day), err)
	}
	if !created {
		updated, err := s.store.IncrementLog(log.ID, completedAt)
		if err != nil {
			return CompletionResult{}, fmt.Errorf("failed to increment log %s: %w", log.ID, err)
		}
		log = updated
	}

	streak, err := s.streakFor(habit)
	if err != nil {
		return CompletionResult{}, err
	}

	result := CompletionResult{
		Log:     log,
		Created: created,
		Streak:  streak,
	}

	if m, ok := MilestoneFor(streak); ok {
		achievement, err := s.award(habit, m, completedAt)
		if err != nil {
			return CompletionResult{}, err
		}
		result.Achievement = &achievement
	}

	logger.Debug("Recorded habit completion",
		"habit", habit.ID, "day", utils.FormatDate(day), "count", log.CompletionCount, "streak", streak)
	return result, nil
}

// GetStreak returns the habit's current streak.
func (s *Service) GetStreak(habitID string) (int, error) {
	habit, err := s.store.GetHabit(habitID)
	if err != nil {
		return 0, fmt.Errorf("failed to get habit %s: %w", habitID, err)
	}
	return s.streakFor(habit)
}

// GetProgressWindow returns the habit's rolling progress window ending at today.
func (s *Service) GetProgressWindow(habitID string, today time.Time) ([]Bucket, error) {
	habit, err := s.store.GetHabit(habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit %s: %w", habitID, err)
	}
	if !habit.Frequency.Supported() {
		logger.Debug("No progress window for frequency", "habit", habit.ID, "frequency", habit.Frequency)
		return []Bucket{}, nil
	}

	logs, err := s.store.ListCompletedLogs(habit.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs for habit %s: %w", habit.ID, err)
	}
	return BuildWindow(habit.Frequency, logs, today), nil
}

// HabitViews builds the read model for every active habit of the user.
func (s *Service) HabitViews(userID string, today time.Time) ([]HabitView, error) {
	habits, err := s.store.GetAllHabits(userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	day := utils.DateOf(today)
	views := make([]HabitView, 0, len(habits))
	for _, habit := range habits {
		logs, err := s.store.ListCompletedLogs(habit.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list logs for habit %s: %w", habit.ID, err)
		}

		view := HabitView{
			Habit:    habit,
			Streak:   ComputeStreak(logs, habit.Frequency),
			Progress: BuildWindow(habit.Frequency, logs, day),
		}
		for _, log := range logs {
			if utils.DateOf(log.Date).Equal(day) {
				view.CompletedToday = true
				break
			}
		}
		views = append(views, view)
	}

	return views, nil
}

// Summarize totals streaks and today's completions across views.
func Summarize(views []HabitView) Summary {
	sum := Summary{TotalHabits: len(views)}
	for _, v := range views {
		sum.TotalStreak += v.Streak
		if v.CompletedToday {
			sum.CompletedToday++
		}
	}
	return sum
}

func (s *Service) streakFor(habit models.Habit) (int, error) {
	if !habit.Frequency.Supported() {
		logger.Debug("Streak not computed for frequency", "habit", habit.ID, "frequency", habit.Frequency)
		return 0, nil
	}

	logs, err := s.store.ListCompletedLogs(habit.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list logs for habit %s: %w", habit.ID, err)
	}
	return ComputeStreak(logs, habit.Frequency), nil
}

func (s *Service) award(habit models.Habit, m Milestone, now time.Time) (models.Achievement, error) {
	habitID := habit.ID
	achievement := models.Achievement{
		ID:          uuid.New().String(),
		UserID:      habit.UserID,
		Title:       m.Title,
		Description: m.Description(habit.Title),
		Badge:       m.Badge,
		EarnedAt:    now,
		HabitID:     &habitID,
	}
	if err := s.store.AddAchievement(achievement); err != nil {
		return models.Achievement{}, fmt.Errorf("failed to save achievement: %w", err)
	}

	notification := models.Notification{
		ID:        uuid.New().String(),
		UserID:    habit.UserID,
		Title:     "Achievement unlocked: " + m.Title,
		Message:   fmt.Sprintf("%s %s streak for %s!", m.Badge, m.Days, habit.Title),
		Type:      models.NotificationAchievement,
		HabitID:   &habitID,
		CreatedAt: now,
	}
	if err := s.store.AddNotification(notification); err != nil {
		// The achievement itself is already persisted.
		logger.Warn("Failed to save achievement notification", "habit", habit.ID, "error", err)
	}

	logger.Info("Achievement unlocked", "habit", habit.ID, "title", m.Title, "streak", m.Streak)
	return achievement, nil
}
