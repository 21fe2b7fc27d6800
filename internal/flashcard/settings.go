package flashcard

import (
	"fmt"
	"slices"
)

// Theme is the display theme chosen by the user.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeSepia Theme = "sepia"
)

// Themes lists every supported theme.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeSepia}

// DailyGoalOptions are the card counts the user can pick as a daily goal.
var DailyGoalOptions = []int{10, 20, 30, 50}

// ParseTheme converts a user supplied name into a Theme.
func ParseTheme(name string) (Theme, error) {
	theme := Theme(name)
	if !slices.Contains(Themes, theme) {
		return "", newValidationError("theme", fmt.Sprintf("unknown theme %q, must be one of %v", name, Themes))
	}
	return theme, nil
}

// Settings is the user's configuration. It is always saved as a whole.
type Settings struct {
	Theme          Theme `json:"theme" yaml:"theme" validate:"oneof=light dark sepia"`
	StudyReminders bool  `json:"studyReminders" yaml:"study_reminders"`
	DailyGoal      int   `json:"dailyGoal" yaml:"daily_goal" validate:"oneof=10 20 30 50"`
	SoundEnabled   bool  `json:"soundEnabled" yaml:"sound_enabled"`
}

// DefaultSettings returns the settings of a fresh installation.
func DefaultSettings() Settings {
	return Settings{
		Theme:          ThemeLight,
		StudyReminders: true,
		DailyGoal:      20,
		SoundEnabled:   true,
	}
}

// Validate checks the theme and the daily goal preset.
func (s Settings) Validate() error {
	if _, err := ParseTheme(string(s.Theme)); err != nil {
		return err
	}
	if !slices.Contains(DailyGoalOptions, s.DailyGoal) {
		return newValidationError("dailyGoal", fmt.Sprintf("daily goal must be one of %v", DailyGoalOptions))
	}
	return nil
}
