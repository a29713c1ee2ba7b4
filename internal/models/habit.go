package models

import "time"

// Frequency is the cadence at which a habit is expected to be completed.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyCustom    Frequency = "custom"
)

// Frequencies lists every accepted frequency in display order.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyCustom,
}

// Valid reports whether f is one of the accepted frequency values.
func (f Frequency) Valid() bool {
	for _, v := range Frequencies {
		if f == v {
			return true
		}
	}
	return false
}

// Supported reports whether streaks and progress windows are computed for f.
// Quarterly and custom habits are accepted but have no computed behavior.
func (f Frequency) Supported() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// Label returns the display name of the frequency.
func (f Frequency) Label() string {
	switch f {
	case FrequencyDaily:
		return "Daily"
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyMonthly:
		return "Monthly"
	case FrequencyQuarterly:
		return "Quarterly"
	case FrequencyCustom:
		return "Custom"
	default:
		return string(f)
	}
}

// Habit represents a recurring activity tracked at a fixed cadence
type Habit struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	GoalDescription string    `json:"goal_description"`
	Frequency       Frequency `json:"frequency"`
	ReminderTime    *string   `json:"reminder_time,omitempty"` // HH:MM format
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// HabitLog records the completion state of a habit for one period.
// Date is a civil date (midnight UTC); at most one log exists per (HabitID, Date).
type HabitLog struct {
	ID              string     `json:"id"`
	HabitID         string     `json:"habit_id"`
	Date            time.Time  `json:"date"`
	Completed       bool       `json:"completed"`
	CompletionCount int        `json:"completion_count"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Note            string     `json:"note,omitempty"`
}

// Achievement is an immutable record of a milestone reached by a user.
// HabitID is cleared, not cascaded, when the related habit is deleted.
type Achievement struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Badge       string    `json:"badge"`
	EarnedAt    time.Time `json:"earned_at"`
	HabitID     *string   `json:"habit_id,omitempty"`
}
