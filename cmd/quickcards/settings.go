package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/quickcards/internal/cli"
	"github.com/at-ishikawa/quickcards/internal/config"
	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/storage"
)

// ThemeFlag accepts one of the supported theme names.
type ThemeFlag string

// Set implements pflag.Value.
func (f *ThemeFlag) Set(v string) error {
	theme, err := flashcard.ParseTheme(v)
	if err != nil {
		return err
	}
	*f = ThemeFlag(theme)
	return nil
}

// String implements pflag.Value.
func (f *ThemeFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *ThemeFlag) Type() string {
	return "ThemeFlag"
}

var (
	_ pflag.Value = (*ThemeFlag)(nil)
)

func newSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}
	cmd.AddCommand(
		newSettingsShowCommand(),
		newSettingsSetCommand(),
	)
	return cmd
}

func newSettingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(_ context.Context, _ *config.Config, _ *storage.Repository, snapshot storage.Snapshot) error {
				cli.NewPrinter(cmd.OutOrStdout()).PrintSettings(snapshot.Settings)
				return nil
			})
		},
	}
}

func newSettingsSetCommand() *cobra.Command {
	var theme ThemeFlag
	var dailyGoal int
	var reminders, sound bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, _ *config.Config, store *storage.Repository, snapshot storage.Snapshot) error {
				settings := snapshot.Settings
				flags := cmd.Flags()
				if flags.Changed("theme") {
					settings.Theme = flashcard.Theme(theme)
				}
				if flags.Changed("daily-goal") {
					settings.DailyGoal = dailyGoal
				}
				if flags.Changed("reminders") {
					settings.StudyReminders = reminders
				}
				if flags.Changed("sound") {
					settings.SoundEnabled = sound
				}
				if err := settings.Validate(); err != nil {
					return err
				}

				if err := store.SaveSettings(ctx, settings); err != nil {
					return fmt.Errorf("store.SaveSettings() > %w", err)
				}
				cli.NewPrinter(cmd.OutOrStdout()).PrintSettings(settings)
				return nil
			})
		},
	}

	cmd.Flags().Var(&theme, "theme", "Theme: light, dark or sepia")
	cmd.Flags().IntVar(&dailyGoal, "daily-goal", 0, "Cards to study per day: 10, 20, 30 or 50")
	cmd.Flags().BoolVar(&reminders, "reminders", false, "Enable study reminders")
	cmd.Flags().BoolVar(&sound, "sound", false, "Enable sound effects")
	return cmd
}
