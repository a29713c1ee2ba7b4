package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/taskflow/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when the database has not been created yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'taskflow init' first")
)

// SchemaStatus describes the migration state of a database.
type SchemaStatus struct {
	Current int
	Latest  int
}

// Pending returns the number of migrations not yet applied.
func (s SchemaStatus) Pending() int {
	if s.Latest <= s.Current {
		return 0
	}
	return s.Latest - s.Current
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (SchemaStatus, error)

	// Profile
	GetProfile(userID string) (models.Profile, error)
	SaveProfile(models.Profile) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits(userID string, includeInactive bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes the habit with its logs and notifications. Achievements
	// earned for it are kept with their habit reference cleared.
	DeleteHabit(id string) error

	// Habit logs
	// GetOrCreateLog atomically returns the log for (log.HabitID, log.Date),
	// inserting log when none exists. created reports whether it was inserted.
	GetOrCreateLog(log models.HabitLog) (models.HabitLog, bool, error)
	// IncrementLog adds one to the completion counter of a log in a single
	// statement and marks it completed at completedAt.
	IncrementLog(id string, completedAt time.Time) (models.HabitLog, error)
	GetLog(habitID string, date time.Time) (models.HabitLog, error)
	// ListCompletedLogs returns the habit's completed logs ordered by date descending.
	ListCompletedLogs(habitID string) ([]models.HabitLog, error)

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks(userID string, includeCompleted bool) ([]models.Task, error)
	GetTasksDueBetween(userID string, start, end time.Time) ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// Achievements
	AddAchievement(models.Achievement) error
	GetAchievements(userID string) ([]models.Achievement, error)

	// Notifications
	AddNotification(models.Notification) error
	GetNotifications(userID string, unreadOnly bool) ([]models.Notification, error)
	MarkNotificationRead(id string) error

	// Utils
	GetConfigPath() string
}
