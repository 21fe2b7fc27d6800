// Package study runs a study session over a snapshot of the due cards.
package study

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/schedule"
)

var (
	ErrNothingDue      = errors.New("no cards are due for review")
	ErrSessionFinished = errors.New("study session is already finished")
)

// DueCard is a card in the queue together with the deck that owns it.
type DueCard struct {
	DeckID string
	Card   flashcard.Card
}

// Session is one pass over the cards that were due when it started. The
// queue is never refiltered, so a card answered incorrectly comes back in a
// later session and not in this one. Answers are applied one at a time.
type Session struct {
	mu           sync.Mutex
	record       flashcard.StudySession
	queue        []DueCard
	position     int
	correct      int
	incorrect    int
	lastAnswerAt time.Time
	finished     bool
}

// Start queues the due cards of every deck in display order.
func Start(decks flashcard.Decks, now time.Time) (*Session, error) {
	return start(decks, flashcard.MixedDeckID, now)
}

// StartDeck queues the due cards of a single deck.
func StartDeck(decks flashcard.Decks, deckID string, now time.Time) (*Session, error) {
	deck, ok := decks.Find(deckID)
	if !ok {
		return nil, fmt.Errorf("deck %s: %w", deckID, flashcard.ErrDeckNotFound)
	}
	return start(flashcard.Decks{deck}, deck.ID, now)
}

func start(decks flashcard.Decks, sessionDeckID string, now time.Time) (*Session, error) {
	var queue []DueCard
	for _, deck := range decks {
		for _, card := range schedule.CardsForReview(deck.Cards, now) {
			queue = append(queue, DueCard{DeckID: deck.ID, Card: card})
		}
	}
	if len(queue) == 0 {
		return nil, ErrNothingDue
	}

	return &Session{
		record:       flashcard.NewStudySession(sessionDeckID, now),
		queue:        queue,
		lastAnswerAt: now,
	}, nil
}

// Current returns the card to answer next.
func (s *Session) Current() (DueCard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.position >= len(s.queue) {
		return DueCard{}, false
	}
	return s.queue[s.position], true
}

func (s *Session) Total() int {
	return len(s.queue)
}

func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) - s.position
}

// Progress is the percentage of the queue already answered.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.position) / float64(len(s.queue)) * 100
}

// Answer applies the answer for the current card to decks and returns the
// updated list, which the caller persists. The owning deck is stamped as
// studied and the time since the previous answer is added to its study time.
func (s *Session) Answer(decks flashcard.Decks, wasCorrect bool, now time.Time) (flashcard.Decks, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.position >= len(s.queue) {
		return nil, ErrSessionFinished
	}

	head := s.queue[s.position]
	deck, ok := decks.Find(head.DeckID)
	if !ok {
		return nil, fmt.Errorf("deck %s: %w", head.DeckID, flashcard.ErrDeckNotFound)
	}
	deck, err := deck.ReviewCard(head.Card.ID, wasCorrect, now)
	if err != nil {
		return nil, fmt.Errorf("deck.ReviewCard() > %w", err)
	}
	deck.LastStudied = flashcard.NewTimestamp(now)
	if elapsed := now.Sub(s.lastAnswerAt); elapsed > 0 {
		deck.TotalStudyTime += elapsed.Milliseconds()
	}
	updated, err := decks.Replace(deck)
	if err != nil {
		return nil, fmt.Errorf("decks.Replace() > %w", err)
	}

	if wasCorrect {
		s.correct++
	} else {
		s.incorrect++
	}
	s.position++
	s.lastAnswerAt = now
	return updated, nil
}

// Finish ends the session and returns its record. Later calls return the
// same record.
func (s *Session) Finish(now time.Time) flashcard.StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return s.record
	}

	s.record.EndTime = flashcard.NewTimestamp(now)
	s.record.CorrectAnswers = s.correct
	s.record.IncorrectAnswers = s.incorrect
	s.record.CardsStudied = s.correct + s.incorrect
	s.finished = true
	return s.record
}

// Record returns the session record as it is now.
func (s *Session) Record() flashcard.StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}
