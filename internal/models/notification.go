package models

import "time"

type NotificationType string

const (
	NotificationTask        NotificationType = "task"
	NotificationHabit       NotificationType = "habit"
	NotificationAchievement NotificationType = "achievement"
	NotificationSystem      NotificationType = "system"
)

// Notification is a stored message shown to the user on their next visit.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	TaskID    *string          `json:"task_id,omitempty"`
	HabitID   *string          `json:"habit_id,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
