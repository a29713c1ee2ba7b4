package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/utils"
)

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid input")

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// FieldError describes a problem with a single input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every field problem found in one input
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error {
	return ErrInvalid
}

func (e *Errors) add(field, format string, args ...any) {
	*e = append(*e, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (e Errors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// IsColor reports whether s is a #RRGGBB hex color.
func IsColor(s string) bool {
	return colorPattern.MatchString(s)
}

// HabitInput is the user-editable part of a habit
type HabitInput struct {
	Title           string `json:"title"`
	GoalDescription string `json:"goal_description"`
	Frequency       string `json:"frequency"`
	ReminderTime    string `json:"reminder_time,omitempty"`
}

func (in HabitInput) Validate() error {
	var errs Errors
	if strings.TrimSpace(in.Title) == "" {
		errs.add("title", "is required")
	}
	if strings.TrimSpace(in.GoalDescription) == "" {
		errs.add("goal_description", "is required")
	}
	if !models.Frequency(in.Frequency).Valid() {
		errs.add("frequency", "must be one of daily, weekly, monthly, quarterly, custom (got %q)", in.Frequency)
	}
	if in.ReminderTime != "" && !utils.ValidateTimeFormat(in.ReminderTime) {
		errs.add("reminder_time", "must be HH:MM (got %q)", in.ReminderTime)
	}
	return errs.err()
}

// Apply validates the input and copies it onto h.
func (in HabitInput) Apply(h *models.Habit) error {
	if err := in.Validate(); err != nil {
		return err
	}
	h.Title = strings.TrimSpace(in.Title)
	h.GoalDescription = strings.TrimSpace(in.GoalDescription)
	h.Frequency = models.Frequency(in.Frequency)
	h.ReminderTime = nil
	if in.ReminderTime != "" {
		reminder := in.ReminderTime
		h.ReminderTime = &reminder
	}
	return nil
}

// WithDefaultReminder fills an empty reminder time with the recommended time
// for the profile's productivity preference.
func (in HabitInput) WithDefaultReminder(p models.Profile) HabitInput {
	if strings.TrimSpace(in.ReminderTime) == "" {
		in.ReminderTime = p.RecommendedTime()
	}
	return in
}

// ParsePriority parses a task priority, falling back to low priority for
// anything that is not a known value.
func ParsePriority(s string) models.Priority {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !models.Priority(n).Valid() {
		return models.PriorityLow
	}
	return models.Priority(n)
}

// TaskInput is the user-editable part of a task
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	DueTime     string `json:"due_time,omitempty"`
	Priority    string `json:"priority,omitempty"`
	ReminderSet bool   `json:"reminder_set,omitempty"`
}

func (in TaskInput) Validate() error {
	var errs Errors
	if strings.TrimSpace(in.Title) == "" {
		errs.add("title", "is required")
	}
	if in.DueDate != "" {
		if _, err := utils.ParseDate(in.DueDate); err != nil {
			errs.add("due_date", "must be YYYY-MM-DD (got %q)", in.DueDate)
		}
	}
	if in.DueTime != "" && !utils.ValidateTimeFormat(in.DueTime) {
		errs.add("due_time", "must be HH:MM (got %q)", in.DueTime)
	}
	return errs.err()
}

// Apply validates the input and copies it onto t.
func (in TaskInput) Apply(t *models.Task) error {
	if err := in.Validate(); err != nil {
		return err
	}
	t.Title = strings.TrimSpace(in.Title)
	t.Description = strings.TrimSpace(in.Description)
	t.Priority = ParsePriority(in.Priority)
	t.ReminderSet = in.ReminderSet

	t.DueDate = nil
	if in.DueDate != "" {
		d, _ := utils.ParseDate(in.DueDate)
		t.DueDate = &d
	}
	t.DueTime = nil
	if in.DueTime != "" {
		dueTime := in.DueTime
		t.DueTime = &dueTime
	}
	return nil
}

// ThemeInput carries theme changes; empty fields are left unchanged
type ThemeInput struct {
	Mode           string `json:"theme_mode,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	AccentColor    string `json:"accent_color,omitempty"`
}

// Apply updates p. An unknown mode is an error; malformed colors are skipped
// and returned in ignored so the caller can warn about them.
func (in ThemeInput) Apply(p *models.Profile) (ignored []string, err error) {
	if in.Mode != "" {
		if !models.ThemeMode(in.Mode).Valid() {
			var errs Errors
			errs.add("theme_mode", "must be one of light, dark, night (got %q)", in.Mode)
			return nil, errs
		}
		p.ThemeMode = models.ThemeMode(in.Mode)
	}

	colors := []struct {
		field string
		value string
		dest  *string
	}{
		{"primary_color", in.PrimaryColor, &p.PrimaryColor},
		{"secondary_color", in.SecondaryColor, &p.SecondaryColor},
		{"accent_color", in.AccentColor, &p.AccentColor},
	}
	for _, c := range colors {
		if c.value == "" {
			continue
		}
		if !IsColor(c.value) {
			ignored = append(ignored, c.field)
			continue
		}
		*c.dest = c.value
	}
	return ignored, nil
}

// OnboardingInput is collected by the first-run wizard
type OnboardingInput struct {
	Name          string   `json:"name"`
	Preference    string   `json:"preference"`
	StarterHabits []string `json:"starter_habits,omitempty"`
}

func (in OnboardingInput) Validate() error {
	var errs Errors
	if strings.TrimSpace(in.Name) == "" {
		errs.add("name", "is required")
	}
	if !models.ProductivityPreference(in.Preference).Valid() {
		errs.add("preference", "must be one of morning, evening, anytime (got %q)", in.Preference)
	}
	return errs.err()
}

// ParseDateArg parses an optional YYYY-MM-DD argument, defaulting to today.
func ParseDateArg(s string, today time.Time) (time.Time, error) {
	if s == "" {
		return utils.DateOf(today), nil
	}
	d, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, Errors{{Field: "date", Message: err.Error()}}
	}
	return d, nil
}
