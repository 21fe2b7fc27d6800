package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
)

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store := NewFileStore(dir)
	ctx := context.Background()

	_, found, err := store.Get(ctx, DecksKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, DecksKey, []byte("- id: d1\n")))
	require.NoError(t, store.Set(ctx, DecksKey, []byte("[]\n")))

	got, found, err := store.Get(ctx, DecksKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("[]\n"), got)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, DecksKey+".yml", files[0].Name())
}

func TestFileStore_SetAll(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	err := store.SetAll(context.Background(), []Entry{
		{Key: DecksKey, Value: []byte("[]\n")},
		{Key: SettingsKey, Value: []byte("theme: dark\n")},
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, DecksKey+".yml"))
	assert.FileExists(t, filepath.Join(dir, SettingsKey+".yml"))
}

func TestFileStore_CanceledContext(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, DecksKey, []byte("[]")), context.Canceled)
}

func TestFileStore_WithRepository(t *testing.T) {
	dir := t.TempDir()
	repo := newTestRepository(NewFileStore(dir), YAMLCodec{})
	ctx := context.Background()

	seeded, err := repo.Load(ctx)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, SettingsKey+".yml"))
	require.NoError(t, err)
	assert.Equal(t, "theme: light\nstudy_reminders: true\ndaily_goal: 20\nsound_enabled: true\n", string(data))

	deck := seeded.Decks[0]
	deck.Name = "Spanish Verbs"
	decks, err := seeded.Decks.Replace(deck)
	require.NoError(t, err)
	require.NoError(t, repo.SaveDecks(ctx, decks))

	reloaded, err := NewRepository(NewFileStore(dir), YAMLCodec{}).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, decks, reloaded.Decks)
	assert.Equal(t, flashcard.DefaultSettings(), reloaded.Settings)
}
