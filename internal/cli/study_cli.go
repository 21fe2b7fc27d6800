package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/storage"
	"github.com/at-ishikawa/quickcards/internal/study"
)

// StudyCLI manages the interactive session for the due cards
type StudyCLI struct {
	*InteractiveCLI
	store   storage.Store
	session *study.Session
	now     func() time.Time

	// mu guards decks and finished. Finish may run on another goroutine
	// while Session is waiting for input.
	mu       sync.Mutex
	decks    flashcard.Decks
	finished bool
}

func NewStudyCLI(
	base *InteractiveCLI,
	store storage.Store,
	decks flashcard.Decks,
	session *study.Session,
	now func() time.Time,
) *StudyCLI {
	return &StudyCLI{
		InteractiveCLI: base,
		store:          store,
		session:        session,
		decks:          decks,
		now:            now,
	}
}

// Decks returns the deck list with every answer applied so far.
func (r *StudyCLI) Decks() flashcard.Decks {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decks
}

// Session asks one card. It returns errEnd after the last card, once the
// session has been recorded.
func (r *StudyCLI) Session(ctx context.Context) error {
	due, ok := r.session.Current()
	if !ok {
		record, err := r.Finish(ctx)
		if err != nil {
			return err
		}
		r.printSummary(record)
		return errEnd
	}

	deckName := due.DeckID
	if deck, found := r.Decks().Find(due.DeckID); found {
		deckName = deck.Name
	}
	_, _ = r.faint.Fprintf(r.stdoutWriter, "[%d/%d] %s\n", r.session.Answered()+1, r.session.Total(), deckName)
	_, _ = r.bold.Fprintf(r.stdoutWriter, "%s\n", due.Card.Front)
	_, _ = fmt.Fprint(r.stdoutWriter, "Press Enter to show the answer")
	if _, err := r.readLine(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(r.stdoutWriter, "Answer: %s\n", r.italic.Sprint(due.Card.Back))

	correct, err := r.askYesNo("Did you get it right?")
	if err != nil {
		return err
	}

	if err := r.answer(ctx, correct); err != nil {
		return err
	}

	if correct {
		_, _ = fmt.Fprint(r.stdoutWriter, "✅ ")
		_, _ = color.New(color.FgGreen).Fprintln(r.stdoutWriter, "Correct")
	} else {
		_, _ = fmt.Fprint(r.stdoutWriter, "❌ ")
		_, _ = color.New(color.FgRed).Fprintln(r.stdoutWriter, "Incorrect")
	}
	_, _ = fmt.Fprintln(r.stdoutWriter)
	return nil
}

// answer applies the answer unless the session was finished meanwhile.
func (r *StudyCLI) answer(ctx context.Context, correct bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished {
		return errEnd
	}

	decks, err := r.session.Answer(r.decks, correct, r.now())
	if err != nil {
		return fmt.Errorf("session.Answer() > %w", err)
	}
	r.decks = decks
	// The answer counts even when the user interrupts right after giving it.
	if err := r.store.SaveDecks(context.WithoutCancel(ctx), decks); err != nil {
		// The next answer saves the whole list again.
		slog.Warn("failed to save decks", "error", err)
	}
	return nil
}

// Finish records the session once. Sessions without any answer are not recorded.
func (r *StudyCLI) Finish(ctx context.Context) (flashcard.StudySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.session.Finish(r.now())
	if r.finished || record.CardsStudied == 0 {
		r.finished = true
		return record, nil
	}
	r.finished = true
	if err := r.store.AppendSession(ctx, record); err != nil {
		return record, fmt.Errorf("store.AppendSession() > %w", err)
	}
	return record, nil
}

func (r *StudyCLI) printSummary(record flashcard.StudySession) {
	_, _ = r.bold.Fprintln(r.stdoutWriter, "Session complete!")
	_, _ = fmt.Fprintf(r.stdoutWriter, "You studied %d cards with %.0f%% accuracy.\n", record.CardsStudied, record.Accuracy())
}
