package models

import (
	"time"

	"github.com/julianstephens/taskflow/internal/utils"
)

// Priority orders tasks; lower values are more urgent.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High Priority"
	case PriorityMedium:
		return "Medium Priority"
	default:
		return "Low Priority"
	}
}

// Class returns the CSS-style class name used by front ends to color the priority badge.
func (p Priority) Class() string {
	switch p {
	case PriorityHigh:
		return "priority-high"
	case PriorityMedium:
		return "priority-medium"
	default:
		return "priority-low"
	}
}

// Task represents a one-time task
type Task struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"` // civil date
	DueTime      *string    `json:"due_time,omitempty"` // HH:MM format
	Completed    bool       `json:"completed"`
	Priority     Priority   `json:"priority"`
	ReminderSet  bool       `json:"reminder_set"`
	ReminderSent bool       `json:"reminder_sent"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsOverdue reports whether an incomplete task's due date lies before today.
func (t *Task) IsOverdue(today time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return t.DueDate.Before(today)
}

// ProgressPercentage reports how much of the window between creation and the
// due date has elapsed. Overdue tasks report 100; tasks without a due date,
// completed tasks and zero-length windows report 0.
func (t *Task) ProgressPercentage(today time.Time) int {
	if t.DueDate == nil || t.Completed {
		return 0
	}
	if t.DueDate.Before(today) {
		return 100
	}

	daysTotal := utils.DaysBetween(t.CreatedAt, *t.DueDate)
	daysPassed := utils.DaysBetween(t.CreatedAt, today)
	if daysTotal <= 0 {
		return 0
	}

	pct := daysPassed * 100 / daysTotal
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// SetCompleted toggles completion and keeps CompletedAt consistent with it.
func (t *Task) SetCompleted(done bool, now time.Time) {
	t.Completed = done
	if done {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	t.UpdatedAt = now
}
