package study

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/schedule"
)

var startedAt = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

func testDecks() flashcard.Decks {
	due := flashcard.NewTimestamp(startedAt.Add(-time.Hour))
	later := flashcard.NewTimestamp(startedAt.AddDate(0, 0, 2))
	return flashcard.Decks{
		{
			ID:   "spanish",
			Name: "Spanish",
			Cards: []flashcard.Card{
				{ID: "hello", Front: "Hello", Back: "Hola", NextReview: due},
				{ID: "thanks", Front: "Thank you", Back: "Gracias", Difficulty: 2, NextReview: later},
				{ID: "bye", Front: "Goodbye", Back: "Adiós", Difficulty: 2, NextReview: due},
			},
		},
		{
			ID:   "math",
			Name: "Math",
			Cards: []flashcard.Card{
				{ID: "circle", Front: "Area of a circle", Back: "π × r²", NextReview: flashcard.NewTimestamp(startedAt)},
			},
		},
	}
}

func queueIDs(s *Session) []string {
	ids := make([]string, 0, len(s.queue))
	for _, due := range s.queue {
		ids = append(ids, due.DeckID+"/"+due.Card.ID)
	}
	return ids
}

func TestStart(t *testing.T) {
	tests := []struct {
		name       string
		decks      flashcard.Decks
		deckID     string
		wantQueue  []string
		wantDeckID string
		wantErr    error
	}{
		{
			name:       "all decks",
			decks:      testDecks(),
			wantQueue:  []string{"spanish/hello", "spanish/bye", "math/circle"},
			wantDeckID: flashcard.MixedDeckID,
		},
		{
			name:       "single deck",
			decks:      testDecks(),
			deckID:     "math",
			wantQueue:  []string{"math/circle"},
			wantDeckID: "math",
		},
		{
			name:    "unknown deck",
			decks:   testDecks(),
			deckID:  "french",
			wantErr: flashcard.ErrDeckNotFound,
		},
		{
			name:    "nothing due",
			decks:   flashcard.Decks{{ID: "empty", Name: "Empty"}},
			wantErr: ErrNothingDue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *Session
			var err error
			if tt.deckID == "" {
				got, err = Start(tt.decks, startedAt)
			} else {
				got, err = StartDeck(tt.decks, tt.deckID, startedAt)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQueue, queueIDs(got))

			record := got.Record()
			assert.NotEmpty(t, record.ID)
			assert.Equal(t, tt.wantDeckID, record.DeckID)
			assert.Equal(t, flashcard.NewTimestamp(startedAt), record.StartTime)
			assert.False(t, record.Completed())
			assert.Equal(t, len(tt.wantQueue), got.Remaining())
			assert.Zero(t, got.Progress())
		})
	}
}

func TestSession_Answer(t *testing.T) {
	decks := testDecks()
	session, err := Start(decks, startedAt)
	require.NoError(t, err)

	firstAnswer := startedAt.Add(10 * time.Second)
	afterFirst, err := session.Answer(decks, true, firstAnswer)
	require.NoError(t, err)

	hello, ok := afterFirst[0].FindCard("hello")
	require.True(t, ok)
	assert.Equal(t, schedule.Rung(1), hello.Difficulty)
	assert.Equal(t, flashcard.NewTimestamp(firstAnswer.AddDate(0, 0, 2)), hello.NextReview)
	assert.Equal(t, flashcard.NewTimestamp(firstAnswer), hello.LastReviewed)
	assert.Equal(t, 1, hello.ReviewCount)
	assert.Equal(t, 1, hello.CorrectCount)
	assert.Equal(t, flashcard.NewTimestamp(firstAnswer), afterFirst[0].LastStudied)
	assert.Equal(t, int64(10000), afterFirst[0].TotalStudyTime)

	// the input list is left untouched
	original, _ := decks[0].FindCard("hello")
	assert.Zero(t, original.ReviewCount)
	assert.True(t, decks[0].LastStudied.IsZero())

	secondAnswer := firstAnswer.Add(5 * time.Second)
	afterSecond, err := session.Answer(afterFirst, false, secondAnswer)
	require.NoError(t, err)

	bye, _ := afterSecond[0].FindCard("bye")
	assert.Equal(t, schedule.Rung(1), bye.Difficulty)
	assert.Equal(t, flashcard.NewTimestamp(secondAnswer.AddDate(0, 0, 2)), bye.NextReview)
	assert.Equal(t, 1, bye.ReviewCount)
	assert.Zero(t, bye.CorrectCount)
	assert.Equal(t, int64(15000), afterSecond[0].TotalStudyTime)

	assert.Equal(t, 2, session.Answered())
	assert.Equal(t, 1, session.Remaining())
	current, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "circle", current.Card.ID)

	thirdAnswer := secondAnswer.Add(3 * time.Second)
	afterThird, err := session.Answer(afterSecond, true, thirdAnswer)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), afterThird[1].TotalStudyTime)
	assert.Equal(t, 100.0, session.Progress())

	_, ok = session.Current()
	assert.False(t, ok)
	_, err = session.Answer(afterThird, true, thirdAnswer)
	assert.ErrorIs(t, err, ErrSessionFinished)

	record := session.Finish(thirdAnswer.Add(time.Second))
	assert.Equal(t, flashcard.NewTimestamp(thirdAnswer.Add(time.Second)), record.EndTime)
	assert.Equal(t, 3, record.CardsStudied)
	assert.Equal(t, 2, record.CorrectAnswers)
	assert.Equal(t, 1, record.IncorrectAnswers)
}

func TestSession_QueueIsNotRefiltered(t *testing.T) {
	decks := testDecks()
	session, err := Start(decks, startedAt)
	require.NoError(t, err)

	// bye is pushed out of the due window after the session started
	spanish := decks[0]
	spanish.Cards = append([]flashcard.Card(nil), spanish.Cards...)
	spanish.Cards[2].NextReview = flashcard.NewTimestamp(startedAt.AddDate(0, 0, 10))
	changed, err := decks.Replace(spanish)
	require.NoError(t, err)

	changed, err = session.Answer(changed, false, startedAt.Add(time.Second))
	require.NoError(t, err)
	current, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "bye", current.Card.ID)

	// hello is due again only tomorrow and is not appended to this session
	assert.Equal(t, 2, session.Remaining())
	_, err = session.Answer(changed, true, startedAt.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, session.Remaining())
}

func TestSession_AnswerMissingDeck(t *testing.T) {
	session, err := Start(testDecks(), startedAt)
	require.NoError(t, err)

	_, err = session.Answer(flashcard.Decks{}, true, startedAt)
	assert.ErrorIs(t, err, flashcard.ErrDeckNotFound)
	assert.Equal(t, 0, session.Answered())
}

func TestSession_Finish(t *testing.T) {
	decks := testDecks()
	session, err := StartDeck(decks, "spanish", startedAt)
	require.NoError(t, err)

	_, err = session.Answer(decks, true, startedAt.Add(time.Second))
	require.NoError(t, err)

	finishedAt := startedAt.Add(time.Minute)
	record := session.Finish(finishedAt)
	assert.True(t, record.Completed())
	assert.Equal(t, "spanish", record.DeckID)
	assert.Equal(t, 1, record.CardsStudied)
	assert.Equal(t, 100.0, record.Accuracy())

	again := session.Finish(finishedAt.Add(time.Hour))
	assert.Equal(t, record, again)

	_, err = session.Answer(decks, true, finishedAt)
	assert.ErrorIs(t, err, ErrSessionFinished)
}

func TestSession_ConcurrentAnswers(t *testing.T) {
	decks := testDecks()
	session, err := Start(decks, startedAt)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := session.Answer(decks, true, startedAt.Add(time.Second))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, finished int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSessionFinished):
			finished++
		}
	}
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 2, finished)
	assert.Equal(t, 3, session.Finish(startedAt.Add(time.Minute)).CardsStudied)
}
