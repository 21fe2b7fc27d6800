package flashcard

import "time"

// MixedDeckID is the deck id of a session that spans several decks.
const MixedDeckID = "mixed"

// StudySession records one study run. It is never changed once EndTime is set.
type StudySession struct {
	ID               string    `json:"id" yaml:"id" validate:"required"`
	DeckID           string    `json:"deckId" yaml:"deck_id" validate:"required"`
	StartTime        Timestamp `json:"startTime" yaml:"start_time"`
	EndTime          Timestamp `json:"endTime" yaml:"end_time"`
	CardsStudied     int       `json:"cardsStudied" yaml:"cards_studied" validate:"gte=0"`
	CorrectAnswers   int       `json:"correctAnswers" yaml:"correct_answers" validate:"gte=0"`
	IncorrectAnswers int       `json:"incorrectAnswers" yaml:"incorrect_answers" validate:"gte=0"`
}

// NewStudySession starts an in-progress session.
func NewStudySession(deckID string, now time.Time) StudySession {
	return StudySession{
		ID:        newID(),
		DeckID:    deckID,
		StartTime: NewTimestamp(now),
	}
}

// Completed reports whether the session has ended.
func (s StudySession) Completed() bool {
	return !s.EndTime.IsZero()
}

// Duration is zero for sessions still in progress.
func (s StudySession) Duration() time.Duration {
	if !s.Completed() || s.StartTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime.Time)
}

// Accuracy is the percentage of correct answers, 0 when nothing was studied.
func (s StudySession) Accuracy() float64 {
	if s.CardsStudied == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.CardsStudied) * 100
}
