package storage

import (
	"time"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
)

// SampleData is written on the first launch so a new user has something to study.
func SampleData(now time.Time) Snapshot {
	created := flashcard.NewTimestamp(now)
	newCard := func(id, front, back string) flashcard.Card {
		return flashcard.Card{
			ID:         id,
			Front:      front,
			Back:       back,
			NextReview: created,
		}
	}

	return Snapshot{
		Decks: flashcard.Decks{
			{
				ID:          "sample-1",
				Name:        "Spanish Basics",
				Description: "Essential Spanish vocabulary for beginners",
				Color:       "#4A90E2",
				CreatedAt:   created,
				Cards: []flashcard.Card{
					newCard("card-1", "Hello", "Hola"),
					newCard("card-2", "Thank you", "Gracias"),
					newCard("card-3", "Goodbye", "Adiós"),
				},
			},
			{
				ID:          "sample-2",
				Name:        "Math Formulas",
				Description: "Important mathematical formulas and equations",
				Color:       "#50E3C2",
				CreatedAt:   created,
				Cards: []flashcard.Card{
					newCard("card-4", "Area of a circle", "π × r²"),
					newCard("card-5", "Pythagorean theorem", "a² + b² = c²"),
				},
			},
		},
		Sessions: []flashcard.StudySession{},
		Settings: flashcard.DefaultSettings(),
	}
}
