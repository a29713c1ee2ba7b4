package sqlite

import (
	"fmt"

	"github.com/julianstephens/taskflow/internal/models"
)

func (s *Store) GetProfile(userID string) (models.Profile, error) {
	row := s.db.QueryRow(`
		SELECT user_id, custom_name, productivity_preference, onboarding_completed,
			theme_mode, primary_color, secondary_color, accent_color, created_at
		FROM profiles WHERE user_id = ?`, userID)

	var p models.Profile
	var pref, mode, createdAt string
	err := row.Scan(&p.UserID, &p.CustomName, &pref, &p.OnboardingCompleted,
		&mode, &p.PrimaryColor, &p.SecondaryColor, &p.AccentColor, &createdAt)
	if err != nil {
		return models.Profile{}, notFound(err)
	}
	p.ProductivityPreference = models.ProductivityPreference(pref)
	p.ThemeMode = models.ThemeMode(mode)

	p.CreatedAt, err = parseTime("created_at", createdAt)
	if err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (s *Store) SaveProfile(p models.Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO profiles (user_id, custom_name, productivity_preference, onboarding_completed,
			theme_mode, primary_color, secondary_color, accent_color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			custom_name = excluded.custom_name,
			productivity_preference = excluded.productivity_preference,
			onboarding_completed = excluded.onboarding_completed,
			theme_mode = excluded.theme_mode,
			primary_color = excluded.primary_color,
			secondary_color = excluded.secondary_color,
			accent_color = excluded.accent_color`,
		p.UserID, p.CustomName, string(p.ProductivityPreference), p.OnboardingCompleted,
		string(p.ThemeMode), p.PrimaryColor, p.SecondaryColor, p.AccentColor, formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
