// Package scheduler decides which task and habit reminders are due and
// records them as notifications.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/taskflow/internal/logger"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/storage"
	"github.com/julianstephens/taskflow/internal/utils"
)

// DefaultInterval is how often Run sweeps for due reminders.
const DefaultInterval = time.Minute

type Store interface {
	GetAllTasks(userID string, includeCompleted bool) ([]models.Task, error)
	UpdateTask(models.Task) error
	GetAllHabits(userID string, includeInactive bool) ([]models.Habit, error)
	GetLog(habitID string, date time.Time) (models.HabitLog, error)
	GetNotifications(userID string, unreadOnly bool) ([]models.Notification, error)
	AddNotification(models.Notification) error
}

// Reminder is a task or habit whose reminder time has passed.
type Reminder struct {
	Type models.NotificationType
	// At is the civil date and time the reminder was due, in UTC.
	At    time.Time
	Task  *models.Task
	Habit *models.Habit
}

type Scheduler struct {
	store  Store
	userID string
}

func New(store Store, userID string) *Scheduler {
	return &Scheduler{store: store, userID: userID}
}

// civil maps a wall clock reading onto the UTC civil time line used by dates.
func civil(now time.Time) time.Time {
	return utils.DateOf(now).Add(time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute)
}

// parseTime returns minutes since midnight for an HH:MM string.
func parseTime(timeStr string) (int, error) {
	t, err := utils.ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func at(date time.Time, timeStr *string) time.Time {
	if timeStr == nil {
		return date
	}
	minutes, err := parseTime(*timeStr)
	if err != nil {
		return date
	}
	return date.Add(time.Duration(minutes) * time.Minute)
}

// DueReminders returns the reminders due at now, earliest first.
//
// A task is due once its due date and time have passed, provided it has a
// reminder set, is open and was not reminded before; tasks without a due
// time are due from the start of their due date. A daily habit is due once
// its reminder time has passed today unless it is already done or was
// reminded today. habitsDone and habitsReminded are keyed by habit ID.
func DueReminders(tasks []models.Task, habits []models.Habit, habitsDone, habitsReminded map[string]bool, now time.Time) []Reminder {
	current := civil(now)
	today := utils.DateOf(now)

	var due []Reminder
	for i := range tasks {
		t := tasks[i]
		if !t.ReminderSet || t.ReminderSent || t.Completed || t.DueDate == nil {
			continue
		}
		when := at(*t.DueDate, t.DueTime)
		if when.After(current) {
			continue
		}
		due = append(due, Reminder{Type: models.NotificationTask, At: when, Task: &t})
	}

	for i := range habits {
		h := habits[i]
		if !h.Active || h.ReminderTime == nil || h.Frequency != models.FrequencyDaily {
			continue
		}
		if habitsDone[h.ID] || habitsReminded[h.ID] {
			continue
		}
		when := at(today, h.ReminderTime)
		if when.After(current) {
			continue
		}
		due = append(due, Reminder{Type: models.NotificationHabit, At: when, Habit: &h})
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].At.Before(due[j].At)
	})
	return due
}

func (r Reminder) notification(userID string, now time.Time) models.Notification {
	n := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      r.Type,
		CreatedAt: now,
	}
	switch {
	case r.Task != nil:
		id := r.Task.ID
		n.TaskID = &id
		n.Title = "Task due: " + r.Task.Title
		n.Message = fmt.Sprintf("%q is due %s.", r.Task.Title, r.At.Format("Jan 2 15:04"))
	case r.Habit != nil:
		id := r.Habit.ID
		n.HabitID = &id
		n.Title = "Habit reminder: " + r.Habit.Title
		n.Message = fmt.Sprintf("Time for %s. %s", r.Habit.Title, r.Habit.GoalDescription)
	}
	return n
}

// Sweep records a notification for every reminder due at now and marks
// reminded tasks so they are not reminded again.
func (s *Scheduler) Sweep(now time.Time) ([]models.Notification, error) {
	today := utils.DateOf(now)

	tasks, err := s.store.GetAllTasks(s.userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	habits, err := s.store.GetAllHabits(s.userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}

	done := make(map[string]bool)
	for _, h := range habits {
		log, err := s.store.GetLog(h.ID, today)
		switch {
		case err == nil:
			done[h.ID] = log.Completed
		case !errors.Is(err, storage.ErrNotFound):
			return nil, err
		}
	}

	existing, err := s.store.GetNotifications(s.userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	reminded := make(map[string]bool)
	for _, n := range existing {
		if n.Type == models.NotificationHabit && n.HabitID != nil && utils.DateOf(n.CreatedAt).Equal(today) {
			reminded[*n.HabitID] = true
		}
	}

	var created []models.Notification
	for _, r := range DueReminders(tasks, habits, done, reminded, now) {
		n := r.notification(s.userID, now)
		if err := s.store.AddNotification(n); err != nil {
			return created, err
		}
		if r.Task != nil {
			r.Task.ReminderSent = true
			r.Task.UpdatedAt = now
			if err := s.store.UpdateTask(*r.Task); err != nil {
				return created, err
			}
		}
		created = append(created, n)
	}
	return created, nil
}

// Run sweeps immediately and then every interval until ctx is done. Sweep
// failures are logged and retried on the next tick.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, now func() time.Time) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		created, err := s.Sweep(now())
		if err != nil {
			logger.Warn("Reminder sweep failed", "error", err)
		} else if len(created) > 0 {
			logger.Info("Recorded reminders", "count", len(created))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
