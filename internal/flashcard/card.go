package flashcard

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/quickcards/internal/schedule"
)

var newID = uuid.NewString

// Card is a single question and answer.
type Card struct {
	ID           string        `json:"id" yaml:"id" validate:"required"`
	Front        string        `json:"front" yaml:"front" validate:"required"`
	Back         string        `json:"back" yaml:"back" validate:"required"`
	Difficulty   schedule.Rung `json:"difficulty" yaml:"difficulty" validate:"gte=0,lte=4"`
	LastReviewed Timestamp     `json:"lastReviewed" yaml:"last_reviewed"`
	NextReview   Timestamp     `json:"nextReview" yaml:"next_review"`
	ReviewCount  int           `json:"reviewCount" yaml:"review_count" validate:"gte=0"`
	CorrectCount int           `json:"correctCount" yaml:"correct_count" validate:"gte=0,ltefield=ReviewCount"`
}

// NewCard creates a card that is due immediately.
func NewCard(front, back string, now time.Time) (Card, error) {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" || back == "" {
		return Card{}, newValidationError("card", "please fill in both front and back of the card")
	}
	card := NewDraftCard(now)
	card.Front = front
	card.Back = back
	return card, nil
}

// NewDraftCard creates a blank card for the deck editor. Blank cards are
// dropped when the deck is saved.
func NewDraftCard(now time.Time) Card {
	return Card{
		ID:         newID(),
		Difficulty: schedule.MinRung,
		NextReview: NewTimestamp(now),
	}
}

// DueAt implements schedule.Reviewable.
func (c Card) DueAt() time.Time {
	return c.NextReview.Time
}

// IsComplete reports whether both sides have text.
func (c Card) IsComplete() bool {
	return strings.TrimSpace(c.Front) != "" && strings.TrimSpace(c.Back) != ""
}

// Review returns the card after an answer submitted at now.
func (c Card) Review(wasCorrect bool, now time.Time) Card {
	result := schedule.ComputeNextReview(c.Difficulty, wasCorrect, now)
	c.Difficulty = result.Difficulty
	c.NextReview = NewTimestamp(result.NextReview)
	c.LastReviewed = NewTimestamp(now)
	c.ReviewCount++
	if wasCorrect {
		c.CorrectCount++
	}
	return c
}

// CompleteCards drops cards missing either side and trims the rest.
func CompleteCards(cards []Card) []Card {
	result := make([]Card, 0, len(cards))
	for _, card := range cards {
		if !card.IsComplete() {
			continue
		}
		card.Front = strings.TrimSpace(card.Front)
		card.Back = strings.TrimSpace(card.Back)
		result = append(result, card)
	}
	return result
}
