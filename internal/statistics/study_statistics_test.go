package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/schedule"
)

func cardsWithDifficulties(levels ...int) []flashcard.Card {
	cards := make([]flashcard.Card, 0, len(levels))
	for _, level := range levels {
		cards = append(cards, flashcard.Card{Difficulty: schedule.NewRung(level)})
	}
	return cards
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		cards []flashcard.Card
		want  StudyStats
	}{
		{
			name:  "mixed collection",
			cards: cardsWithDifficulties(0, 0, 1, 2, 3, 3, 4, 4, 4, 1),
			want:  StudyStats{Total: 10, Mastered: 5, Learning: 3, New: 2},
		},
		{
			name:  "empty collection",
			cards: nil,
			want:  StudyStats{},
		},
		{
			name:  "all new",
			cards: cardsWithDifficulties(0, 0, 0),
			want:  StudyStats{Total: 3, New: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.cards)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Total, got.Mastered+got.Learning+got.New)
		})
	}
}

func TestStudyStats_MasteryPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Calculate(nil).MasteryPercentage())
	assert.Equal(t, 50.0, Calculate(cardsWithDifficulties(0, 0, 1, 2, 3, 3, 4, 4, 4, 1)).MasteryPercentage())
	assert.Equal(t, 100.0, Calculate(cardsWithDifficulties(3, 4)).MasteryPercentage())
}

func TestCalculateOverview(t *testing.T) {
	now := time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC)
	past := flashcard.NewTimestamp(now.Add(-time.Hour))
	future := flashcard.NewTimestamp(now.Add(time.Hour))

	decks := flashcard.Decks{
		{ID: "a", Name: "Spanish", Cards: []flashcard.Card{
			{ID: "1", Difficulty: 0, NextReview: past},
			{ID: "2", Difficulty: 3, NextReview: future},
		}},
		{ID: "b", Name: "Math", Cards: []flashcard.Card{
			{ID: "3", Difficulty: 1, NextReview: past},
		}},
	}
	sessions := []flashcard.StudySession{
		{
			ID:           "s1",
			StartTime:    flashcard.NewTimestamp(now.Add(-2 * time.Hour)),
			EndTime:      flashcard.NewTimestamp(now.Add(-2*time.Hour + 10*time.Minute)),
			CardsStudied: 6,
		},
		{
			ID:           "s2",
			StartTime:    flashcard.NewTimestamp(now.AddDate(0, 0, -1)),
			EndTime:      flashcard.NewTimestamp(now.AddDate(0, 0, -1).Add(5 * time.Minute)),
			CardsStudied: 4,
		},
	}

	got := CalculateOverview(decks, sessions, flashcard.Settings{DailyGoal: 10}, now)

	assert.Equal(t, StudyStats{Total: 3, Mastered: 1, Learning: 1, New: 1}, got.Stats)
	assert.Equal(t, 2, got.DueCount)
	assert.Equal(t, 2, got.TotalSessions)
	assert.Equal(t, 15*time.Minute, got.TotalStudyTime)
	assert.Equal(t, 2, got.DayStreak)
	assert.Equal(t, 6, got.CardsStudiedToday)
	assert.Equal(t, 60.0, got.DailyGoalProgress())
	require.Len(t, got.RecentActivity, ActivityDays)
	assert.Equal(t, DayActivity{Day: time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC), CardsStudied: 4}, got.RecentActivity[5])
	assert.Equal(t, DayActivity{Day: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), CardsStudied: 6}, got.RecentActivity[6])
	assert.Equal(t, []DeckStatistics{
		{DeckID: "a", Name: "Spanish", Stats: StudyStats{Total: 2, Mastered: 1, New: 1}, DueCount: 1},
		{DeckID: "b", Name: "Math", Stats: StudyStats{Total: 1, Learning: 1}, DueCount: 1},
	}, got.Decks)
}

func TestOverview_DailyGoalProgress(t *testing.T) {
	assert.Equal(t, 0.0, Overview{}.DailyGoalProgress())
	assert.Equal(t, 100.0, Overview{DailyGoal: 10, CardsStudiedToday: 25}.DailyGoalProgress())
}
