package onboarding

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/taskflow/internal/logger"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/validation"
)

const WelcomeTitle = "Welcome to TaskFlow! 🎉"

type Store interface {
	SaveProfile(models.Profile) error
	AddHabit(models.Habit) error
	AddNotification(models.Notification) error
}

type Result struct {
	Profile      models.Profile       `json:"profile"`
	Habits       []models.Habit       `json:"habits"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// Complete finishes first-run setup: it stores the user's name and
// preference, creates a daily habit for each non-blank starter title with
// the preference's recommended reminder time, and leaves a welcome
// notification.
func Complete(store Store, profile models.Profile, in validation.OnboardingInput, now time.Time) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	profile.CustomName = strings.TrimSpace(in.Name)
	profile.ProductivityPreference = models.ProductivityPreference(in.Preference)
	reminder := profile.RecommendedTime()

	result := Result{Habits: []models.Habit{}}
	for _, title := range in.StarterHabits {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		r := reminder
		habit := models.Habit{
			ID:              uuid.New().String(),
			UserID:          profile.UserID,
			Title:           title,
			GoalDescription: fmt.Sprintf("Complete %s daily", title),
			Frequency:       models.FrequencyDaily,
			ReminderTime:    &r,
			Active:          true,
			CreatedAt:       now,
		}
		if err := store.AddHabit(habit); err != nil {
			return Result{}, fmt.Errorf("failed to create starter habit %q: %w", title, err)
		}
		result.Habits = append(result.Habits, habit)
	}

	profile.OnboardingCompleted = true
	if err := store.SaveProfile(profile); err != nil {
		return Result{}, err
	}
	result.Profile = profile

	notification := models.Notification{
		ID:        uuid.New().String(),
		UserID:    profile.UserID,
		Title:     WelcomeTitle,
		Message:   fmt.Sprintf("Hey %s! You're all set up. Let's crush those goals together!", profile.CustomName),
		Type:      models.NotificationSystem,
		CreatedAt: now,
	}
	if err := store.AddNotification(notification); err != nil {
		logger.Warn("Failed to save welcome notification", "error", err)
	} else {
		result.Notification = &notification
	}

	logger.Info("Onboarding completed", "user", profile.UserID, "starter_habits", len(result.Habits))
	return result, nil
}

// Skip marks onboarding complete without creating habits or notifications.
func Skip(store Store, profile models.Profile) (models.Profile, error) {
	profile.OnboardingCompleted = true
	if err := store.SaveProfile(profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}
