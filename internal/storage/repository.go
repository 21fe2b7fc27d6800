package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
)

const firstLaunchDone = "true"

// Repository implements Store on a KeyValueStore.
type Repository struct {
	kv            KeyValueStore
	codec         Codec
	writeAttempts uint
	retryDelay    time.Duration
	now           func() time.Time
}

type Option func(*Repository)

// WithWriteAttempts retries failed writes up to attempts times in total.
func WithWriteAttempts(attempts uint) Option {
	return func(r *Repository) {
		r.writeAttempts = attempts
	}
}

// WithRetryDelay sets the initial backoff between write attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(r *Repository) {
		r.retryDelay = delay
	}
}

// WithClock sets the clock used for the sample data timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a new Repository. Writes are not retried by default.
func NewRepository(kv KeyValueStore, codec Codec, opts ...Option) *Repository {
	r := &Repository{
		kv:            kv,
		codec:         codec,
		writeAttempts: 1,
		retryDelay:    100 * time.Millisecond,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads every collection. On the first launch it writes the sample data
// instead and marks the launch as done. If that write fails the sample
// snapshot is still returned along with the error.
func (r *Repository) Load(ctx context.Context) (Snapshot, error) {
	_, launched, err := r.kv.Get(ctx, FirstLaunchKey)
	if err != nil {
		return Snapshot{}, persistenceError(fmt.Sprintf("kv.Get(%s)", FirstLaunchKey), err)
	}
	if !launched {
		sample := SampleData(r.now())
		slog.Info("first launch, writing sample data", "decks", len(sample.Decks))
		if err := r.Replace(ctx, sample); err != nil {
			return sample, err
		}
		return sample, nil
	}
	return r.Read(ctx)
}

// Read returns what is stored without seeding anything. Missing collections
// are empty and missing settings keep their defaults.
func (r *Repository) Read(ctx context.Context) (Snapshot, error) {
	decks := flashcard.Decks{}
	if err := r.read(ctx, DecksKey, &decks); err != nil {
		return Snapshot{}, err
	}
	sessions, err := r.loadSessions(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	settings := flashcard.DefaultSettings()
	if err := r.read(ctx, SettingsKey, &settings); err != nil {
		return Snapshot{}, err
	}

	if decks == nil {
		decks = flashcard.Decks{}
	}
	return Snapshot{
		Decks:    decks,
		Sessions: sessions,
		Settings: settings,
	}, nil
}

func (r *Repository) SaveDecks(ctx context.Context, decks flashcard.Decks) error {
	return r.write(ctx, map[string]any{DecksKey: decks}, DecksKey)
}

func (r *Repository) SaveSessions(ctx context.Context, sessions []flashcard.StudySession) error {
	return r.write(ctx, map[string]any{SessionsKey: sessions}, SessionsKey)
}

func (r *Repository) SaveSettings(ctx context.Context, settings flashcard.Settings) error {
	return r.write(ctx, map[string]any{SettingsKey: settings}, SettingsKey)
}

// AppendSession adds a finished session to the stored history.
func (r *Repository) AppendSession(ctx context.Context, session flashcard.StudySession) error {
	sessions, err := r.loadSessions(ctx)
	if err != nil {
		return err
	}
	return r.SaveSessions(ctx, append(sessions, session))
}

// Replace overwrites every collection, for example after importing a backup.
func (r *Repository) Replace(ctx context.Context, snapshot Snapshot) error {
	decks := snapshot.Decks
	if decks == nil {
		decks = flashcard.Decks{}
	}
	sessions := snapshot.Sessions
	if sessions == nil {
		sessions = []flashcard.StudySession{}
	}
	values := map[string]any{
		DecksKey:       decks,
		SessionsKey:    sessions,
		SettingsKey:    snapshot.Settings,
		FirstLaunchKey: firstLaunchDone,
	}
	return r.write(ctx, values, DecksKey, SessionsKey, SettingsKey, FirstLaunchKey)
}

func (r *Repository) loadSessions(ctx context.Context) ([]flashcard.StudySession, error) {
	sessions := []flashcard.StudySession{}
	if err := r.read(ctx, SessionsKey, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []flashcard.StudySession{}
	}
	return sessions, nil
}

// read leaves v untouched when the key is missing.
func (r *Repository) read(ctx context.Context, key string, v any) error {
	data, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return persistenceError(fmt.Sprintf("kv.Get(%s)", key), err)
	}
	if !ok {
		return nil
	}
	if err := r.codec.Unmarshal(data, v); err != nil {
		return persistenceError(fmt.Sprintf("codec.Unmarshal(%s)", key), err)
	}
	return nil
}

// write encodes values in the order of keys and writes them as one batch.
func (r *Repository) write(ctx context.Context, values map[string]any, keys ...string) error {
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		data, err := r.codec.Marshal(values[key])
		if err != nil {
			return persistenceError(fmt.Sprintf("codec.Marshal(%s)", key), err)
		}
		entries = append(entries, Entry{Key: key, Value: data})
	}

	put := func() error {
		if len(entries) == 1 {
			return r.kv.Set(ctx, entries[0].Key, entries[0].Value)
		}
		return r.kv.SetAll(ctx, entries)
	}

	var err error
	if r.writeAttempts <= 1 {
		err = put()
	} else {
		err = retry.Do(
			put,
			retry.Context(ctx),
			retry.Attempts(r.writeAttempts),
			retry.Delay(r.retryDelay),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(n uint, err error) {
				slog.Warn("retrying store write", "attempt", n+1, "keys", keys, "error", err)
			}),
		)
	}
	if err != nil {
		return persistenceError(fmt.Sprintf("kv.Set(%v)", keys), err)
	}
	return nil
}
