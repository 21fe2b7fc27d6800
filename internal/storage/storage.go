// Package storage persists decks, study sessions and settings in a key-value
// store, one key per collection.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
)

//go:generate mockgen -source=storage.go -destination=../mocks/storage/mock_storage.go -package=mock_storage

// Keys of the collections.
const (
	DecksKey       = "quickcards_decks"
	SessionsKey    = "quickcards_sessions"
	SettingsKey    = "quickcards_settings"
	FirstLaunchKey = "quickcards_first_launch"
)

// ErrPersistence is wrapped by every read or write failure of a store.
var ErrPersistence = errors.New("persistence failure")

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s > %w", ErrPersistence, op, err)
}

// Entry is a single key and its encoded value.
type Entry struct {
	Key   string
	Value []byte
}

// KeyValueStore is the backend of a Repository. Every Set overwrites the
// whole value of its key.
type KeyValueStore interface {
	// Get returns false when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetAll writes the entries together. Backends with transactions write
	// all of them or none.
	SetAll(ctx context.Context, entries []Entry) error
}

// Snapshot is the complete persisted state.
type Snapshot struct {
	Decks    flashcard.Decks
	Sessions []flashcard.StudySession
	Settings flashcard.Settings
}

// Store is the typed persistence used by the commands.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	SaveDecks(ctx context.Context, decks flashcard.Decks) error
	SaveSessions(ctx context.Context, sessions []flashcard.StudySession) error
	SaveSettings(ctx context.Context, settings flashcard.Settings) error
	AppendSession(ctx context.Context, session flashcard.StudySession) error
	Replace(ctx context.Context, snapshot Snapshot) error
}
