package flashcard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quickcards/internal/schedule"
)

func TestNewCard(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		front   string
		back    string
		wantErr bool
	}{
		{name: "trims both sides", front: "  Hello ", back: "Hola\n"},
		{name: "empty front", front: "", back: "Hola", wantErr: true},
		{name: "blank back", front: "Hello", back: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCard(tt.front, tt.back, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "Hello", got.Front)
			assert.Equal(t, "Hola", got.Back)
			assert.Equal(t, schedule.MinRung, got.Difficulty)
			assert.Equal(t, now, got.NextReview.Time)
			assert.True(t, got.LastReviewed.IsZero())
			assert.Zero(t, got.ReviewCount)
			assert.Zero(t, got.CorrectCount)
			assert.True(t, schedule.IsDue(got, now))
		})
	}
}

func TestCard_Review(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	card := Card{ID: "c1", Front: "Q", Back: "A", Difficulty: 2, ReviewCount: 4, CorrectCount: 3}

	t.Run("correct answer", func(t *testing.T) {
		got := card.Review(true, now)
		assert.Equal(t, schedule.Rung(3), got.Difficulty)
		assert.Equal(t, now.Add(8*24*time.Hour), got.NextReview.Time)
		assert.Equal(t, now, got.LastReviewed.Time)
		assert.Equal(t, 5, got.ReviewCount)
		assert.Equal(t, 4, got.CorrectCount)
	})

	t.Run("incorrect answer", func(t *testing.T) {
		got := card.Review(false, now)
		assert.Equal(t, schedule.Rung(1), got.Difficulty)
		assert.Equal(t, now.Add(2*24*time.Hour), got.NextReview.Time)
		assert.Equal(t, 5, got.ReviewCount)
		assert.Equal(t, 3, got.CorrectCount)
	})

	t.Run("original card is untouched", func(t *testing.T) {
		assert.Equal(t, schedule.Rung(2), card.Difficulty)
		assert.Equal(t, 4, card.ReviewCount)
	})
}

func TestCompleteCards(t *testing.T) {
	cards := []Card{
		{ID: "1", Front: " a ", Back: "b"},
		{ID: "2", Front: "", Back: "b"},
		{ID: "3", Front: "a", Back: " "},
		{ID: "4", Front: "c", Back: "d", Difficulty: 3},
	}
	got := CompleteCards(cards)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "a", got[0].Front)
	assert.Equal(t, "4", got[1].ID)
	assert.Equal(t, schedule.Rung(3), got[1].Difficulty)
}
