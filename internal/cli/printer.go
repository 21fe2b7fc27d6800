package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/schedule"
	"github.com/at-ishikawa/quickcards/internal/statistics"
)

// Printer writes the non-interactive command output
type Printer struct {
	w    io.Writer
	bold *color.Color
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:    w,
		bold: color.New(color.Bold),
	}
}

func (p *Printer) heading(title string) {
	_, _ = p.bold.Fprintln(p.w, title)
	_, _ = fmt.Fprintln(p.w, underline(title))
}

func underline(title string) string {
	line := make([]rune, 0, len(title))
	for range []rune(title) {
		line = append(line, '=')
	}
	return string(line)
}

// PrintDecks lists decks with their card and due counts.
func (p *Printer) PrintDecks(decks flashcard.Decks, now time.Time) {
	if len(decks) == 0 {
		_, _ = fmt.Fprintln(p.w, "No decks yet. Create one with `quickcards deck create`.")
		return
	}
	_, _ = fmt.Fprintf(p.w, "%-38s  %-24s  %5s  %5s  %7s\n", "ID", "Name", "Cards", "Due", "Mastery")
	for _, deck := range decks {
		stats := statistics.Calculate(deck.Cards)
		_, _ = fmt.Fprintf(p.w, "%-38s  %-24s  %5d  %5d  %6.0f%%\n",
			deck.ID,
			deck.Name,
			stats.Total,
			schedule.DueCount(deck.Cards, now),
			stats.MasteryPercentage(),
		)
	}
}

// PrintDeck shows one deck and its cards.
func (p *Printer) PrintDeck(deck flashcard.Deck, now time.Time) {
	p.heading(deck.Name)
	if deck.Description != "" {
		_, _ = fmt.Fprintln(p.w, deck.Description)
	}
	stats := statistics.Calculate(deck.Cards)
	_, _ = fmt.Fprintf(p.w, "ID: %s  Color: %s  Created: %s\n", deck.ID, deck.Color, formatDate(deck.CreatedAt))
	_, _ = fmt.Fprintf(p.w, "Cards: %d (%d mastered, %d learning, %d new), %d due\n",
		stats.Total, stats.Mastered, stats.Learning, stats.New, schedule.DueCount(deck.Cards, now))
	_, _ = fmt.Fprintf(p.w, "Last studied: %s  Study time: %s\n", formatDate(deck.LastStudied), formatMilliseconds(deck.TotalStudyTime))
	_, _ = fmt.Fprintln(p.w)
	for _, card := range deck.Cards {
		_, _ = fmt.Fprintf(p.w, "- [%s] %s / %s (level %d, next review %s)\n",
			card.ID, card.Front, card.Back, card.Difficulty.Int(), formatDate(card.NextReview))
	}
}

// PrintOverview shows the home and progress figures.
func (p *Printer) PrintOverview(overview statistics.Overview) {
	p.heading("Progress")
	_, _ = fmt.Fprintf(p.w, "Cards:           %d (%d mastered, %d learning, %d new)\n",
		overview.Stats.Total, overview.Stats.Mastered, overview.Stats.Learning, overview.Stats.New)
	_, _ = fmt.Fprintf(p.w, "Mastery:         %.0f%%\n", overview.Stats.MasteryPercentage())
	_, _ = fmt.Fprintf(p.w, "Due now:         %d\n", overview.DueCount)
	_, _ = fmt.Fprintf(p.w, "Today:           %d of %d cards (%.0f%%)\n",
		overview.CardsStudiedToday, overview.DailyGoal, overview.DailyGoalProgress())
	_, _ = fmt.Fprintf(p.w, "Day streak:      %d\n", overview.DayStreak)
	_, _ = fmt.Fprintf(p.w, "Sessions:        %d\n", overview.TotalSessions)
	_, _ = fmt.Fprintf(p.w, "Study time:      %s\n", overview.TotalStudyTime.Round(time.Second))
	p.printActivity(overview.RecentActivity)

	if len(overview.Decks) == 0 {
		return
	}
	_, _ = fmt.Fprintln(p.w)
	_, _ = fmt.Fprintf(p.w, "%-24s  %5s  %8s  %8s  %5s  %5s  %7s\n", "Deck", "Cards", "Mastered", "Learning", "New", "Due", "Mastery")
	for _, deck := range overview.Decks {
		_, _ = fmt.Fprintf(p.w, "%-24s  %5d  %8d  %8d  %5d  %5d  %6.0f%%\n",
			deck.Name,
			deck.Stats.Total,
			deck.Stats.Mastered,
			deck.Stats.Learning,
			deck.Stats.New,
			deck.DueCount,
			deck.Stats.MasteryPercentage(),
		)
	}
}

const activityBarWidth = 20

func (p *Printer) printActivity(activity []statistics.DayActivity) {
	if len(activity) == 0 {
		return
	}
	most := 0
	for _, day := range activity {
		most = max(most, day.CardsStudied)
	}

	_, _ = fmt.Fprintln(p.w)
	_, _ = fmt.Fprintf(p.w, "Last %d days:\n", len(activity))
	for _, day := range activity {
		width := 0
		if most > 0 {
			width = day.CardsStudied * activityBarWidth / most
		}
		if day.CardsStudied > 0 && width == 0 {
			width = 1
		}
		_, _ = fmt.Fprintf(p.w, "  %s  %-*s %d\n", day.Day.Format("Mon 01-02"), activityBarWidth, strings.Repeat("#", width), day.CardsStudied)
	}
}

func (p *Printer) PrintSettings(settings flashcard.Settings) {
	p.heading("Settings")
	_, _ = fmt.Fprintf(p.w, "Theme:           %s\n", settings.Theme)
	_, _ = fmt.Fprintf(p.w, "Study reminders: %s\n", onOff(settings.StudyReminders))
	_, _ = fmt.Fprintf(p.w, "Daily goal:      %d cards\n", settings.DailyGoal)
	_, _ = fmt.Fprintf(p.w, "Sound:           %s\n", onOff(settings.SoundEnabled))
}

func formatDate(t flashcard.Timestamp) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatMilliseconds(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
