// Package statistics derives progress figures from cards and study sessions.
package statistics

import (
	"time"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/schedule"
)

// masteredRung is the lowest rung counted as mastered.
const masteredRung schedule.Rung = 3

// StudyStats partitions cards into mastery buckets.
// Mastered + Learning + New always equals Total.
type StudyStats struct {
	Total    int
	Mastered int
	Learning int
	New      int
}

// Calculate buckets cards by their rung.
func Calculate(cards []flashcard.Card) StudyStats {
	stats := StudyStats{Total: len(cards)}
	for _, card := range cards {
		switch {
		case card.Difficulty >= masteredRung:
			stats.Mastered++
		case card.Difficulty > schedule.MinRung:
			stats.Learning++
		default:
			stats.New++
		}
	}
	return stats
}

// MasteryPercentage is 0 for an empty collection.
func (s StudyStats) MasteryPercentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Mastered) / float64(s.Total) * 100
}

// DeckStatistics is the summary shown for one deck
type DeckStatistics struct {
	DeckID   string
	Name     string
	Stats    StudyStats
	DueCount int
}

// Overview is the summary shown on the home and progress screens.
type Overview struct {
	Stats             StudyStats
	DueCount          int
	Decks             []DeckStatistics
	TotalSessions     int
	TotalStudyTime    time.Duration
	DayStreak         int
	CardsStudiedToday int
	DailyGoal         int
	RecentActivity    []DayActivity
}

// DailyGoalProgress is the share of today's goal already studied, capped at 100.
func (o Overview) DailyGoalProgress() float64 {
	if o.DailyGoal <= 0 {
		return 0
	}
	progress := float64(o.CardsStudiedToday) / float64(o.DailyGoal) * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// CalculateOverview summarizes decks and sessions at now.
func CalculateOverview(decks flashcard.Decks, sessions []flashcard.StudySession, settings flashcard.Settings, now time.Time) Overview {
	cards := decks.AllCards()
	overview := Overview{
		Stats:             Calculate(cards),
		DueCount:          schedule.DueCount(cards, now),
		Decks:             make([]DeckStatistics, 0, len(decks)),
		TotalSessions:     len(sessions),
		TotalStudyTime:    TotalStudyTime(sessions),
		DayStreak:         DayStreak(sessions, now),
		CardsStudiedToday: CardsStudiedOn(sessions, now),
		DailyGoal:         settings.DailyGoal,
		RecentActivity:    RecentActivity(sessions, now, ActivityDays),
	}
	for _, deck := range decks {
		overview.Decks = append(overview.Decks, DeckStatistics{
			DeckID:   deck.ID,
			Name:     deck.Name,
			Stats:    Calculate(deck.Cards),
			DueCount: schedule.DueCount(deck.Cards, now),
		})
	}
	return overview
}
