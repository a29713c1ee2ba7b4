package models

import (
	"time"

	"github.com/julianstephens/taskflow/internal/constants"
)

type ProductivityPreference string

const (
	PreferenceMorning ProductivityPreference = "morning"
	PreferenceEvening ProductivityPreference = "evening"
	PreferenceAnytime ProductivityPreference = "anytime"
)

func (p ProductivityPreference) Valid() bool {
	switch p {
	case PreferenceMorning, PreferenceEvening, PreferenceAnytime:
		return true
	default:
		return false
	}
}

func (p ProductivityPreference) Label() string {
	switch p {
	case PreferenceMorning:
		return "Morning Person"
	case PreferenceEvening:
		return "Evening Person"
	default:
		return "No Preference"
	}
}

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	ThemeNight ThemeMode = "night"
)

func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeNight:
		return true
	default:
		return false
	}
}

// Profile holds the personalization settings of the local user
type Profile struct {
	UserID                 string                 `json:"user_id"`
	CustomName             string                 `json:"custom_name"`
	ProductivityPreference ProductivityPreference `json:"productivity_preference"`
	OnboardingCompleted    bool                   `json:"onboarding_completed"`
	ThemeMode              ThemeMode              `json:"theme_mode"`
	PrimaryColor           string                 `json:"primary_color"`
	SecondaryColor         string                 `json:"secondary_color"`
	AccentColor            string                 `json:"accent_color"`
	CreatedAt              time.Time              `json:"created_at"`
}

// NewProfile returns a profile populated with default settings.
func NewProfile(userID string, now time.Time) Profile {
	p := Profile{
		UserID:                 userID,
		CustomName:             constants.DefaultCustomName,
		ProductivityPreference: PreferenceAnytime,
		ThemeMode:              ThemeMode(constants.DefaultThemeMode),
		CreatedAt:              now,
	}
	p.ResetColors()
	return p
}

// RecommendedTime returns the default reminder time (HH:MM) for the user's
// productivity preference.
func (p *Profile) RecommendedTime() string {
	switch p.ProductivityPreference {
	case PreferenceMorning:
		return "08:00"
	case PreferenceEvening:
		return "18:00"
	default:
		return "12:00"
	}
}

// ResetColors restores the default color scheme.
func (p *Profile) ResetColors() {
	p.PrimaryColor = constants.DefaultPrimaryColor
	p.SecondaryColor = constants.DefaultSecondaryColor
	p.AccentColor = constants.DefaultAccentColor
}
