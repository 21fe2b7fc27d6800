// Package testutil provides shared test helpers for creating config files and deck fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/schedule"
	"github.com/at-ishikawa/quickcards/internal/storage"
)

// SetupTestConfig creates a config file that stores data as YAML files under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"data", "backups", "reports"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`storage:
  driver: file
  file_directory: %s
  write_attempts: 1
backup:
  directory: %s
  fetch_timeout_seconds: 5
report:
  output_directory: %s
`,
		filepath.Join(tmpDir, "data"),
		filepath.Join(tmpDir, "backups"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupSQLiteConfig creates a config file that stores data in a sqlite database under tmpDir.
func SetupSQLiteConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`storage:
  driver: sqlite
  sqlite_path: %s
backup:
  directory: %s
report:
  output_directory: %s
`,
		filepath.Join(tmpDir, "quickcards.db"),
		filepath.Join(tmpDir, "backups"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// DeckOption configures optional fields when creating a deck fixture.
type DeckOption func(*flashcard.Deck)

// WithDifficulties sets the difficulty of the deck's cards in order.
func WithDifficulties(levels ...int) DeckOption {
	return func(deck *flashcard.Deck) {
		for i, level := range levels {
			if i < len(deck.Cards) {
				deck.Cards[i].Difficulty = schedule.NewRung(level)
			}
		}
	}
}

// WithNextReview sets the next review of every card in the deck.
func WithNextReview(next time.Time) DeckOption {
	return func(deck *flashcard.Deck) {
		for i := range deck.Cards {
			deck.Cards[i].NextReview = flashcard.NewTimestamp(next)
		}
	}
}

// NewDeck builds a deck with id and one card per front/back pair.
// Every card is due at now unless WithNextReview overrides it.
func NewDeck(t *testing.T, id, name string, now time.Time, pairs [][2]string, opts ...DeckOption) flashcard.Deck {
	t.Helper()

	deck := flashcard.Deck{
		ID:        id,
		Name:      name,
		Color:     flashcard.DefaultDeckColor,
		CreatedAt: flashcard.NewTimestamp(now),
	}
	for i, pair := range pairs {
		deck.Cards = append(deck.Cards, flashcard.Card{
			ID:         fmt.Sprintf("%s-card-%d", id, i+1),
			Front:      pair[0],
			Back:       pair[1],
			NextReview: flashcard.NewTimestamp(now),
		})
	}
	for _, opt := range opts {
		opt(&deck)
	}
	return deck
}

// WriteSnapshot stores decks, sessions and settings as YAML files in directory,
// so loading them does not seed the sample data.
func WriteSnapshot(t *testing.T, directory string, snapshot storage.Snapshot) {
	t.Helper()

	require.NoError(t, os.MkdirAll(directory, 0755))
	repository := storage.NewRepository(storage.NewFileStore(directory), storage.YAMLCodec{})
	require.NoError(t, repository.Replace(context.Background(), snapshot))
}

// ReadSnapshot loads what the commands stored in directory.
func ReadSnapshot(t *testing.T, directory string) storage.Snapshot {
	t.Helper()

	repository := storage.NewRepository(storage.NewFileStore(directory), storage.YAMLCodec{})
	snapshot, err := repository.Read(context.Background())
	require.NoError(t, err)
	return snapshot
}
