package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	mock_storage "github.com/at-ishikawa/quickcards/internal/mocks/storage"
	"github.com/at-ishikawa/quickcards/internal/schedule"
	"github.com/at-ishikawa/quickcards/internal/study"
)

var studyStart = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

func studyDecks() flashcard.Decks {
	due := flashcard.NewTimestamp(studyStart.Add(-time.Minute))
	return flashcard.Decks{
		{
			ID:   "spanish",
			Name: "Spanish Basics",
			Cards: []flashcard.Card{
				{ID: "card-1", Front: "Hello", Back: "Hola", NextReview: due},
				{ID: "card-2", Front: "Thank you", Back: "Gracias", Difficulty: 1, NextReview: due},
			},
		},
	}
}

// fixedClock advances by one second on every call.
func fixedClock() func() time.Time {
	current := studyStart
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestStudyCLI_Session(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name          string
		input         string
		saveErr       error
		wantCorrect   int
		wantIncorrect int
		wantOutput    []string
	}{
		{
			name:          "answers every card",
			input:         "\ny\n\nn\n",
			wantCorrect:   1,
			wantIncorrect: 1,
			wantOutput: []string{
				"[1/2] Spanish Basics",
				"Hello",
				"Answer: Hola",
				"[2/2] Spanish Basics",
				"Answer: Gracias",
				"Session complete!",
				"You studied 2 cards with 50% accuracy.",
			},
		},
		{
			name:        "asks again on an unclear answer",
			input:       "\nperhaps\nyes\n\ny\n",
			wantCorrect: 2,
			wantOutput:  []string{"Please answer y or n.", "You studied 2 cards with 100% accuracy."},
		},
		{
			name:        "save failures do not stop the session",
			input:       "\ny\n\ny\n",
			saveErr:     errors.New("disk full"),
			wantCorrect: 2,
			wantOutput:  []string{"Session complete!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mock_storage.NewMockStore(ctrl)

			decks := studyDecks()
			session, err := study.Start(decks, studyStart)
			require.NoError(t, err)

			var saved []flashcard.Decks
			store.EXPECT().SaveDecks(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, decks flashcard.Decks) error {
					saved = append(saved, decks)
					return tt.saveErr
				}).
				Times(2)
			var recorded flashcard.StudySession
			store.EXPECT().AppendSession(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, session flashcard.StudySession) error {
					recorded = session
					return nil
				}).
				Times(1)

			var out bytes.Buffer
			base := NewInteractiveCLI(strings.NewReader(tt.input), &out)
			studyCLI := NewStudyCLI(base, store, decks, session, fixedClock())

			ctx := context.Background()
			require.NoError(t, studyCLI.Session(ctx))
			require.NoError(t, studyCLI.Session(ctx))
			assert.ErrorIs(t, studyCLI.Session(ctx), errEnd)

			require.Len(t, saved, 2)
			assert.Equal(t, studyCLI.Decks(), saved[1])
			first, _ := saved[0][0].FindCard("card-1")
			assert.Equal(t, 1, first.ReviewCount)

			assert.Equal(t, tt.wantCorrect, recorded.CorrectAnswers)
			assert.Equal(t, tt.wantIncorrect, recorded.IncorrectAnswers)
			assert.Equal(t, tt.wantCorrect+tt.wantIncorrect, recorded.CardsStudied)
			assert.Equal(t, flashcard.MixedDeckID, recorded.DeckID)
			assert.True(t, recorded.Completed())

			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}

			// Finishing again does not record a second session.
			_, err = studyCLI.Finish(ctx)
			assert.NoError(t, err)
		})
	}
}

func TestStudyCLI_SchedulesAnsweredCards(t *testing.T) {
	color.NoColor = true
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)
	store.EXPECT().SaveDecks(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	decks := studyDecks()
	session, err := study.Start(decks, studyStart)
	require.NoError(t, err)

	clock := func() time.Time { return studyStart.Add(time.Minute) }
	studyCLI := NewStudyCLI(NewInteractiveCLI(strings.NewReader("\nn\n"), &bytes.Buffer{}), store, decks, session, clock)
	require.NoError(t, studyCLI.Session(context.Background()))

	card, ok := studyCLI.Decks()[0].FindCard("card-1")
	require.True(t, ok)
	assert.Equal(t, schedule.MinRung, card.Difficulty)
	assert.Equal(t, flashcard.NewTimestamp(studyStart.Add(time.Minute).AddDate(0, 0, 1)), card.NextReview)
	assert.Equal(t, int64(time.Minute/time.Millisecond), studyCLI.Decks()[0].TotalStudyTime)
}

func TestStudyCLI_FinishWithoutAnswers(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)

	decks := studyDecks()
	session, err := study.Start(decks, studyStart)
	require.NoError(t, err)

	studyCLI := NewStudyCLI(NewInteractiveCLI(strings.NewReader(""), &bytes.Buffer{}), store, decks, session, fixedClock())
	record, err := studyCLI.Finish(context.Background())
	require.NoError(t, err)
	assert.Zero(t, record.CardsStudied)
}

func TestStudyCLI_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)

	decks := studyDecks()
	session, err := study.Start(decks, studyStart)
	require.NoError(t, err)

	studyCLI := NewStudyCLI(NewInteractiveCLI(strings.NewReader(""), &bytes.Buffer{}), store, decks, session, fixedClock())
	err = studyCLI.Session(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading input")
	assert.Equal(t, 0, session.Answered())
}

func TestStudyCLI_AnswerAfterFinish(t *testing.T) {
	color.NoColor = true
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)
	store.EXPECT().SaveDecks(gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().AppendSession(gomock.Any(), gomock.Any()).Times(0)

	decks := studyDecks()
	session, err := study.Start(decks, studyStart)
	require.NoError(t, err)

	studyCLI := NewStudyCLI(NewInteractiveCLI(strings.NewReader("\ny\n"), &bytes.Buffer{}), store, decks, session, fixedClock())
	_, err = studyCLI.Finish(context.Background())
	require.NoError(t, err)

	err = studyCLI.Session(context.Background())
	assert.ErrorIs(t, err, errEnd)
	assert.Equal(t, 0, session.Answered())
	assert.Equal(t, decks, studyCLI.Decks())
}

func TestStudyCLI_SavesAnswerAfterCancel(t *testing.T) {
	color.NoColor = true
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)
	store.EXPECT().SaveDecks(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ flashcard.Decks) error {
			return ctx.Err()
		}).Times(1)

	decks := studyDecks()
	session, err := study.Start(decks, studyStart)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	studyCLI := NewStudyCLI(NewInteractiveCLI(strings.NewReader("\ny\n"), &out), store, decks, session, fixedClock())
	require.NoError(t, studyCLI.Session(ctx))
	assert.Equal(t, 1, session.Answered())
	assert.Contains(t, out.String(), "Correct")
}
