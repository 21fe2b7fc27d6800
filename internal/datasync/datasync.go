// Package datasync copies decks and study sessions between stores, for
// example from a YAML data directory into a database.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/storage"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	DecksNew        int
	DecksSkipped    int
	DecksUpdated    int
	CardsNew        int
	SessionsNew     int
	SessionsSkipped int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer merges another snapshot into a store.
type Importer struct {
	store  storage.Store
	writer io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(store storage.Store, writer io.Writer) *Importer {
	return &Importer{
		store:  store,
		writer: writer,
	}
}

// Import merges source into target, the snapshot currently in the store.
// Decks and sessions are matched by id. An existing deck is replaced only
// with UpdateExisting, and existing sessions are always kept. Settings are
// not imported.
func (imp *Importer) Import(ctx context.Context, target, source storage.Snapshot, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	decks := target.Decks
	decksChanged := false
	for _, deck := range source.Decks {
		if _, ok := decks.Find(deck.ID); !ok {
			decks = decks.Add(deck)
			decksChanged = true
			_, _ = fmt.Fprintf(imp.writer, "  [NEW]  %q (%d cards)\n", deck.Name, len(deck.Cards))
			result.DecksNew++
			result.CardsNew += len(deck.Cards)
			continue
		}
		if !opts.UpdateExisting {
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", deck.Name)
			result.DecksSkipped++
			continue
		}

		replaced, err := decks.Replace(deck)
		if err != nil {
			return nil, fmt.Errorf("decks.Replace() > %w", err)
		}
		decks = replaced
		decksChanged = true
		_, _ = fmt.Fprintf(imp.writer, "  [UPDATE]  %q (%d cards)\n", deck.Name, len(deck.Cards))
		result.DecksUpdated++
	}

	sessions := append([]flashcard.StudySession{}, target.Sessions...)
	known := make(map[string]struct{}, len(sessions))
	for _, session := range sessions {
		known[session.ID] = struct{}{}
	}
	for _, session := range source.Sessions {
		if _, ok := known[session.ID]; ok {
			result.SessionsSkipped++
			continue
		}
		known[session.ID] = struct{}{}
		sessions = append(sessions, session)
		result.SessionsNew++
	}

	if opts.DryRun {
		return &result, nil
	}
	if decksChanged {
		if err := imp.store.SaveDecks(ctx, decks); err != nil {
			return nil, fmt.Errorf("store.SaveDecks() > %w", err)
		}
	}
	if result.SessionsNew > 0 {
		if err := imp.store.SaveSessions(ctx, sessions); err != nil {
			return nil, fmt.Errorf("store.SaveSessions() > %w", err)
		}
	}
	return &result, nil
}

// Exporter writes a complete snapshot into another store.
type Exporter struct {
	store storage.Store
}

// NewExporter creates a new Exporter.
func NewExporter(store storage.Store) *Exporter {
	return &Exporter{
		store: store,
	}
}

// Export replaces everything in the exporter's store with snapshot.
func (e *Exporter) Export(ctx context.Context, snapshot storage.Snapshot) error {
	if err := e.store.Replace(ctx, snapshot); err != nil {
		return fmt.Errorf("store.Replace() > %w", err)
	}
	return nil
}
