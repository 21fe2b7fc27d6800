// Package flashcard defines decks, cards, study sessions and settings, and the
// operations the user can apply to them.
package flashcard

import (
	"fmt"
	"strings"
	"time"

	"github.com/at-ishikawa/quickcards/internal/schedule"
)

const DefaultDeckColor = "#4A90E2"

// Deck is a named, ordered collection of cards. It owns its cards.
type Deck struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Name        string    `json:"name" yaml:"name" validate:"required"`
	Description string    `json:"description" yaml:"description"`
	Color       string    `json:"color" yaml:"color"`
	Cards       []Card    `json:"cards" yaml:"cards" validate:"dive"`
	CreatedAt   Timestamp `json:"createdAt" yaml:"created_at"`
	LastStudied Timestamp `json:"lastStudied" yaml:"last_studied"`
	// TotalStudyTime is in milliseconds.
	TotalStudyTime int64 `json:"totalStudyTime" yaml:"total_study_time" validate:"gte=0"`
}

// DeckEdit holds the values submitted from the deck editor.
type DeckEdit struct {
	Name        string
	Description string
	Color       string
	Cards       []Card
}

// NewDeck validates the input and creates a deck with the complete cards only.
func NewDeck(name, description, color string, cards []Card, now time.Time) (Deck, error) {
	deck := Deck{
		ID:        newID(),
		CreatedAt: NewTimestamp(now),
	}
	return deck.Edit(DeckEdit{
		Name:        name,
		Description: description,
		Color:       color,
		Cards:       cards,
	})
}

// Edit replaces the deck's text fields and card list. Cards keep their
// scheduling fields; incomplete cards are dropped.
func (d Deck) Edit(edit DeckEdit) (Deck, error) {
	name := strings.TrimSpace(edit.Name)
	if name == "" {
		return Deck{}, newValidationError("name", "please enter a deck name")
	}
	cards := CompleteCards(edit.Cards)
	if len(cards) == 0 {
		return Deck{}, newValidationError("cards", "please add at least one complete card")
	}

	d.Name = name
	d.Description = strings.TrimSpace(edit.Description)
	d.Color = edit.Color
	if d.Color == "" {
		d.Color = DefaultDeckColor
	}
	d.Cards = cards
	return d, nil
}

// WithCard appends card to a copy of the deck.
func (d Deck) WithCard(card Card) Deck {
	cards := make([]Card, 0, len(d.Cards)+1)
	cards = append(cards, d.Cards...)
	d.Cards = append(cards, card)
	return d
}

// EditCard replaces the text of one card. Its scheduling fields are kept
// and a side left blank is rejected.
func (d Deck) EditCard(cardID, front, back string) (Deck, error) {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" || back == "" {
		return Deck{}, newValidationError("card", "please fill in both front and back of the card")
	}

	cards := make([]Card, len(d.Cards))
	found := false
	for i, card := range d.Cards {
		if card.ID == cardID {
			card.Front = front
			card.Back = back
			found = true
		}
		cards[i] = card
	}
	if !found {
		return Deck{}, fmt.Errorf("card %s in deck %s: %w", cardID, d.ID, ErrCardNotFound)
	}
	d.Cards = cards
	return d, nil
}

// FindCard returns the card with id.
func (d Deck) FindCard(id string) (Card, bool) {
	for _, card := range d.Cards {
		if card.ID == id {
			return card, true
		}
	}
	return Card{}, false
}

// ReviewCard applies an answer to one card and returns the updated deck.
func (d Deck) ReviewCard(cardID string, wasCorrect bool, now time.Time) (Deck, error) {
	cards := make([]Card, len(d.Cards))
	found := false
	for i, card := range d.Cards {
		if card.ID == cardID {
			card = card.Review(wasCorrect, now)
			found = true
		}
		cards[i] = card
	}
	if !found {
		return Deck{}, fmt.Errorf("card %s in deck %s: %w", cardID, d.ID, ErrCardNotFound)
	}
	d.Cards = cards
	return d, nil
}

// DueCards returns the deck's cards that are due at now.
func (d Deck) DueCards(now time.Time) []Card {
	return schedule.CardsForReview(d.Cards, now)
}

// Decks is the user's deck list in display order.
type Decks []Deck

// Find returns the deck with id.
func (ds Decks) Find(id string) (Deck, bool) {
	for _, deck := range ds {
		if deck.ID == id {
			return deck, true
		}
	}
	return Deck{}, false
}

// Add returns a new list with deck appended.
func (ds Decks) Add(deck Deck) Decks {
	result := make(Decks, 0, len(ds)+1)
	result = append(result, ds...)
	return append(result, deck)
}

// Replace returns a new list where the deck with the same id is replaced.
func (ds Decks) Replace(deck Deck) (Decks, error) {
	result := make(Decks, len(ds))
	found := false
	for i, d := range ds {
		if d.ID == deck.ID {
			d = deck
			found = true
		}
		result[i] = d
	}
	if !found {
		return nil, fmt.Errorf("deck %s: %w", deck.ID, ErrDeckNotFound)
	}
	return result, nil
}

// Remove returns a new list without the deck with id.
func (ds Decks) Remove(id string) (Decks, error) {
	result := make(Decks, 0, len(ds))
	for _, d := range ds {
		if d.ID != id {
			result = append(result, d)
		}
	}
	if len(result) == len(ds) {
		return nil, fmt.Errorf("deck %s: %w", id, ErrDeckNotFound)
	}
	return result, nil
}

// AllCards flattens every deck's cards in display order.
func (ds Decks) AllCards() []Card {
	var cards []Card
	for _, d := range ds {
		cards = append(cards, d.Cards...)
	}
	return cards
}
